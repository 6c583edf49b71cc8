package loop

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomz197/fruitcatch/internal/loop/config"
)

func TestLoadSettingsDefaults(t *testing.T) {
	for _, key := range []string{"FRUIT_TUNING", "FRUIT_CATCH", "FRUIT_POPULATION", "FRUIT_SKIP_MENU", "FRUIT_DIFFICULTY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Catch != CatchRadius || s.Population != PopulationDual {
		t.Errorf("settings = %v", s)
	}
	if s.SkipMenu || s.Difficulty != DifficultyNormal {
		t.Errorf("settings = %v", s)
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("session:\n  duration_seconds: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FRUIT_TUNING", path)
	t.Setenv("FRUIT_CATCH", CatchRing)
	t.Setenv("FRUIT_POPULATION", PopulationSingle)
	t.Setenv("FRUIT_SKIP_MENU", "yes")
	t.Setenv("FRUIT_DIFFICULTY", "hard")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Tuning.Session.DurationSeconds != 30 {
		t.Errorf("duration = %v, want 30", s.Tuning.Session.DurationSeconds)
	}
	if !s.SkipMenu || s.Difficulty != DifficultyHard {
		t.Errorf("settings = %v", s)
	}

	a, err := s.SessionOptions()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := s.SessionOptions()
	ra, ok := a.Catch.(*RingCatch)
	if !ok {
		t.Fatalf("catch = %T, want *RingCatch", a.Catch)
	}
	if rb := b.Catch.(*RingCatch); ra == rb {
		t.Error("sessions share one ring catch")
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	tests := []struct {
		name, key, value string
		want             error
	}{
		{"unknown catch", "FRUIT_CATCH", "net", ErrUnknownPolicy},
		{"unknown population", "FRUIT_POPULATION", "triple", ErrUnknownPolicy},
		{"missing tuning file", "FRUIT_TUNING", "/nonexistent/tuning.yaml", os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadSettings(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("bad difficulty", func(t *testing.T) {
		t.Setenv("FRUIT_DIFFICULTY", "nightmare")
		if _, err := LoadSettings(); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestSettingsTuningReachesSession(t *testing.T) {
	tun := config.Default()
	tun.Presets.Easy.Life = 3
	s := Settings{Tuning: tun, Catch: CatchBody, Population: PopulationSingle, SkipMenu: true, Difficulty: DifficultyEasy}
	opts, err := s.SessionOptions()
	if err != nil {
		t.Fatal(err)
	}
	sess := NewSession(opts)
	if sess.Phase != PhasePlaying || sess.Life != 3 {
		t.Errorf("phase %v life %d, want PLAYING with 3 lives", sess.Phase, sess.Life)
	}
}
