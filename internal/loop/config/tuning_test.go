package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte(`
session:
  duration_seconds: 90
basket:
  radius: 0.8
difficulty:
  hard:
    life: 5
    speed_multiplier: 2
    fruit_count: 9
    black_count: 4
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	tun, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tun.Session.DurationSeconds != 90 {
		t.Errorf("duration = %v, want 90", tun.Session.DurationSeconds)
	}
	if tun.Session.SpawnHeight != 50 {
		t.Errorf("spawn height = %v, want default 50", tun.Session.SpawnHeight)
	}
	if tun.Basket.Radius != 0.8 || tun.Basket.Offset != 0.7 {
		t.Errorf("basket = %+v, want radius 0.8 offset 0.7", tun.Basket)
	}
	if tun.Presets.Hard.Life != 5 || tun.Presets.Normal.Life != 20 {
		t.Errorf("presets = %+v", tun.Presets)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("fruit:\n  black_points: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("Load err = %v, want ErrInvalidTuning", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load err = %v, want not-exist", err)
	}
}

func TestBandSelection(t *testing.T) {
	f := Default().Fruit
	tests := []struct {
		elapsed float64
		points  int
	}{
		{0, 1},
		{30, 1},
		{60, 1},
		{60.5, 2},
		{100, 2},
		{110, 10},
		{500, 10},
	}
	for _, tt := range tests {
		if got := f.Band(tt.elapsed).Points; got != tt.points {
			t.Errorf("Band(%v).Points = %d, want %d", tt.elapsed, got, tt.points)
		}
	}
}
