package loop

import (
	"math/rand"
	"testing"

	"github.com/tomz197/fruitcatch/internal/input"
	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/object"
	"github.com/tomz197/fruitcatch/internal/vmath"
)

func idle() input.Input {
	return input.Input{Number: -1}
}

func newTestSession(t *testing.T, skipMenu bool) *Session {
	t.Helper()
	return NewSession(Options{
		Tuning:     config.Default(),
		Rand:       rand.New(rand.NewSource(42)),
		SkipMenu:   skipMenu,
		Difficulty: DifficultyNormal,
	})
}

// basketFruit returns a fruit sitting in the default basket, not moving.
func basketFruit(points int, kind object.FruitKind) *object.Fruit {
	return &object.Fruit{
		Position:   vmath.V3(0, 2.3, 5.3),
		Prev:       vmath.V3(0, 2.3, 5.3),
		Points:     points,
		Kind:       kind,
		Active:     true,
		Generation: 1,
	}
}

// farFruit returns a fruit well away from the player.
func farFruit() *object.Fruit {
	return &object.Fruit{
		Position:   vmath.V3(20, 40, -15),
		Prev:       vmath.V3(20, 40, -15),
		Speed:      6,
		Points:     1,
		Active:     true,
		Generation: 1,
	}
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewSessionStartsInMenu(t *testing.T) {
	s := newTestSession(t, false)
	if s.Phase != PhaseMenu {
		t.Fatalf("phase = %v, want menu", s.Phase)
	}
	s.Tick(idle(), 0.016)
	if s.Phase != PhaseMenu {
		t.Fatalf("phase after idle tick = %v, want menu", s.Phase)
	}
}

func TestSelectNormalInitializesSession(t *testing.T) {
	s := newTestSession(t, false)
	in := idle()
	in.Number = 2
	s.Tick(in, 0.016)

	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.Phase)
	}
	if s.Difficulty != DifficultyNormal {
		t.Errorf("difficulty = %v, want NORMAL", s.Difficulty)
	}
	if s.Life != 20 {
		t.Errorf("life = %d, want 20", s.Life)
	}
	if s.SpeedMultiplier() != 1.0 {
		t.Errorf("speed multiplier = %v, want 1.0", s.SpeedMultiplier())
	}
	if s.Elapsed != 0 || s.Score != 0 {
		t.Errorf("elapsed = %v score = %d, want 0 and 0", s.Elapsed, s.Score)
	}
	if len(s.Fruits) != 7 {
		t.Fatalf("fruits = %d, want 5 main + 2 black", len(s.Fruits))
	}
	black := 0
	for i, f := range s.Fruits {
		if !f.Active {
			t.Errorf("fruit %d not active", i)
		}
		if want := 50 + 15*float64(i); f.Position.Y != want {
			t.Errorf("fruit %d height = %v, want %v", i, f.Position.Y, want)
		}
		if f.Kind == object.FruitBlack {
			black++
		}
	}
	if black != 2 {
		t.Errorf("black fruits = %d, want 2", black)
	}
	if countEvents(s.DrainEvents(), EventDifficultySelected) != 1 {
		t.Error("no difficulty event")
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		d     Difficulty
		life  int
		mult  float64
		count int
	}{
		{DifficultyEasy, 30, 0.7, 5},
		{DifficultyNormal, 20, 1.0, 7},
		{DifficultyHard, 10, 1.5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			s := newTestSession(t, false)
			if !s.SelectDifficulty(tt.d) {
				t.Fatal("selection refused")
			}
			if s.Life != tt.life || s.SpeedMultiplier() != tt.mult || len(s.Fruits) != tt.count {
				t.Errorf("got life=%d mult=%v fruits=%d", s.Life, s.SpeedMultiplier(), len(s.Fruits))
			}
		})
	}
}

func TestSelectDifficultyOnlyFromMenu(t *testing.T) {
	s := newTestSession(t, true)
	if s.SelectDifficulty(DifficultyHard) {
		t.Error("selection accepted while playing")
	}
	if s.Difficulty != DifficultyNormal {
		t.Errorf("difficulty = %v, want NORMAL", s.Difficulty)
	}
}

func TestBlackCatchCostsLife(t *testing.T) {
	s := newTestSession(t, true)
	black := basketFruit(-1, object.FruitBlack)
	main := farFruit()
	s.Fruits = []*object.Fruit{black, main}
	s.DrainEvents()

	mainY := main.Position.Y
	s.Tick(idle(), 0.01)

	if s.Score != -1 {
		t.Errorf("score = %d, want -1", s.Score)
	}
	if s.Life != 19 {
		t.Errorf("life = %d, want 19", s.Life)
	}
	if s.FlashTime <= 0 {
		t.Error("penalty flash not started")
	}
	// Caught fruit went dormant and was respawned within the same tick.
	if black.Generation != 2 || black.Position.Y != s.Tuning().Session.SpawnHeight {
		t.Errorf("black fruit not recycled: gen=%d y=%v", black.Generation, black.Position.Y)
	}
	if black.Kind != object.FruitBlack {
		t.Errorf("dual pool changed kind to %v", black.Kind)
	}
	if !main.Active || main.Generation != 1 || main.Position.Y >= mainY {
		t.Errorf("main fruit disturbed: %+v", main)
	}
	events := s.DrainEvents()
	if countEvents(events, EventCatch) != 1 || countEvents(events, EventLifeLost) != 1 {
		t.Errorf("events = %+v", events)
	}
}

func TestCaughtFruitIsNotAnEscape(t *testing.T) {
	s := newTestSession(t, true)
	s.Fruits = []*object.Fruit{basketFruit(1, object.FruitMain)}
	s.DrainEvents()
	s.Tick(idle(), 0.01)

	events := s.DrainEvents()
	if countEvents(events, EventCatch) != 1 {
		t.Fatalf("catches = %d, want 1", countEvents(events, EventCatch))
	}
	if countEvents(events, EventEscape) != 0 {
		t.Error("caught fruit also counted as escape")
	}
	if s.Score != 1 {
		t.Errorf("score = %d, want 1", s.Score)
	}
}

func TestEscapeHasNoScoreEffect(t *testing.T) {
	s := newTestSession(t, true)
	f := farFruit()
	f.Position.Y = -0.95
	s.Fruits = []*object.Fruit{f}
	s.DrainEvents()
	s.Tick(idle(), 0.05)

	if countEvents(s.DrainEvents(), EventEscape) != 1 {
		t.Error("no escape event")
	}
	if s.Score != 0 || s.Life != 20 {
		t.Errorf("score = %d life = %d after escape", s.Score, s.Life)
	}
	if !f.Active || f.Position.Y != s.Tuning().Session.SpawnHeight {
		t.Error("escaped fruit not respawned")
	}
}

func TestLifeReachesZeroOnce(t *testing.T) {
	s := newTestSession(t, true)
	s.Life = 1
	s.Fruits = []*object.Fruit{
		basketFruit(-1, object.FruitBlack),
		basketFruit(10, object.FruitMain),
		basketFruit(-1, object.FruitBlack),
	}
	s.DrainEvents()
	s.Tick(idle(), 0.01)

	if s.Phase != PhaseGameOver || s.End != EndLivesExhausted {
		t.Fatalf("phase = %v end = %v, want gameover by lives", s.Phase, s.End)
	}
	if s.Life != 0 {
		t.Errorf("life = %d, want 0", s.Life)
	}
	// All catches of the tick are applied before the life check.
	if s.Score != 8 {
		t.Errorf("score = %d, want 8", s.Score)
	}
	for i, f := range s.Fruits {
		if f.Active {
			t.Errorf("fruit %d respawned after game over", i)
		}
	}

	s.Tick(idle(), 0.01)
	s.Tick(idle(), 0.01)
	if n := countEvents(s.DrainEvents(), EventGameOver); n != 1 {
		t.Errorf("game over events = %d, want 1", n)
	}
	if s.Life < 0 {
		t.Errorf("life went negative: %d", s.Life)
	}
}

func TestCatchOrderDoesNotMatter(t *testing.T) {
	points := []int{-1, 10, -1, 2, -1}
	run := func(order []int) (int, int) {
		s := newTestSession(t, true)
		s.Life = 2
		s.Fruits = nil
		for _, i := range order {
			kind := object.FruitMain
			if points[i] < 0 {
				kind = object.FruitBlack
			}
			s.Fruits = append(s.Fruits, basketFruit(points[i], kind))
		}
		s.Tick(idle(), 0.01)
		return s.Score, s.Life
	}

	score1, life1 := run([]int{0, 1, 2, 3, 4})
	score2, life2 := run([]int{4, 3, 2, 1, 0})
	score3, life3 := run([]int{1, 0, 3, 2, 4})
	if score1 != score2 || score1 != score3 || life1 != life2 || life1 != life3 {
		t.Errorf("order changed result: (%d,%d) (%d,%d) (%d,%d)", score1, life1, score2, life2, score3, life3)
	}
	if score1 != 9 || life1 != 0 {
		t.Errorf("score = %d life = %d, want 9 and 0", score1, life1)
	}
}

func TestTimeUpKeepsScore(t *testing.T) {
	s := newTestSession(t, true)
	s.Score = 7
	s.Elapsed = s.Tuning().Session.DurationSeconds - 0.005
	s.Fruits = []*object.Fruit{basketFruit(10, object.FruitMain)}
	s.Tick(idle(), 0.01)

	if s.Phase != PhaseGameOver || s.End != EndTimeUp {
		t.Fatalf("phase = %v end = %v, want gameover by time", s.Phase, s.End)
	}
	if s.Score != 7 {
		t.Errorf("score = %d, want unchanged 7", s.Score)
	}
	if !s.Fruits[0].Active {
		t.Error("fruit processed on the time-up tick")
	}
}

func TestEndGameKey(t *testing.T) {
	s := newTestSession(t, true)
	in := idle()
	in.EndGame = true
	s.Tick(in, 0.01)
	if s.Phase != PhaseGameOver || s.End != EndRequested {
		t.Errorf("phase = %v end = %v", s.Phase, s.End)
	}
}

func TestRestart(t *testing.T) {
	t.Run("to menu", func(t *testing.T) {
		s := newTestSession(t, false)
		s.SelectDifficulty(DifficultyHard)
		s.EndSession()
		in := idle()
		in.Restart = true
		s.Tick(in, 0.01)
		if s.Phase != PhaseMenu {
			t.Errorf("phase = %v, want menu", s.Phase)
		}
	})
	t.Run("menu skipped", func(t *testing.T) {
		s := newTestSession(t, true)
		s.Score = 12
		s.EndSession()
		s.Restart()
		if s.Phase != PhasePlaying || s.Score != 0 || s.Life != 20 {
			t.Errorf("phase = %v score = %d life = %d", s.Phase, s.Score, s.Life)
		}
	})
}

func TestMovementBeforeCatch(t *testing.T) {
	s := newTestSession(t, true)
	// One step forward at 8 units/s over 0.1s puts the basket on this fruit.
	f := basketFruit(3, object.FruitMain)
	f.Position.Z, f.Prev.Z = 4.4, 4.4
	s.Fruits = []*object.Fruit{f}
	in := idle()
	in.Forward = true
	s.Tick(in, 0.1)
	if s.Score != 3 {
		t.Errorf("score = %d, want 3 (catch against the moved pose)", s.Score)
	}
}

func TestDeltaIsClamped(t *testing.T) {
	s := newTestSession(t, true)
	s.Fruits = []*object.Fruit{farFruit()}
	s.Tick(idle(), 5)
	if s.Elapsed != config.MaxDeltaSeconds {
		t.Errorf("elapsed = %v, want %v", s.Elapsed, config.MaxDeltaSeconds)
	}
}

func TestSplashParticlesExpire(t *testing.T) {
	s := newTestSession(t, true)
	s.Fruits = []*object.Fruit{basketFruit(1, object.FruitMain)}
	s.Tick(idle(), 0.01)
	if len(s.Effects) != config.SplashParticles {
		t.Fatalf("effects = %d, want %d", len(s.Effects), config.SplashParticles)
	}
	s.EndSession()
	for i := 0; i < 20; i++ {
		s.Tick(idle(), 0.1)
	}
	if len(s.Effects) != 0 {
		t.Errorf("effects = %d after lifetime", len(s.Effects))
	}
	if s.FlashIntensity() != 0 {
		t.Error("flash still showing")
	}
}
