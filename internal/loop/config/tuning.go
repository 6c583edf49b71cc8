package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is returned by Validate (and Load) for inconsistent values.
var ErrInvalidTuning = errors.New("invalid tuning")

// RGB is a colour with components in [0,1]. Written as [r, g, b] in YAML.
type RGB [3]float64

// Tuning holds every gameplay number that differed between revisions of
// the game. Default returns the canonical set; Load overlays a YAML file.
type Tuning struct {
	Session SessionTuning `yaml:"session"`
	Arena   ArenaTuning   `yaml:"arena"`
	Fruit   FruitTuning   `yaml:"fruit"`
	Basket  RadiusTuning  `yaml:"basket"`
	Body    RadiusTuning  `yaml:"body"`
	Ring    RingTuning    `yaml:"ring"`
	Presets PresetTuning  `yaml:"difficulty"`
}

// SessionTuning controls session length and spawn heights.
type SessionTuning struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
	SpawnHeight     float64 `yaml:"spawn_height"`   // Respawn height above ground
	SpawnInterval   float64 `yaml:"spawn_interval"` // Vertical gap between initial fruits
	FloorY          float64 `yaml:"floor_y"`        // Fruits below this escape
	BlackChance     float64 `yaml:"black_chance"`   // Weighted draw for single-pool sessions
}

// ArenaTuning describes the playable footprint, centred on the origin.
type ArenaTuning struct {
	HalfWidth float64 `yaml:"half_width"` // X extent
	HalfDepth float64 `yaml:"half_depth"` // Z extent
	EyeHeight float64 `yaml:"eye_height"`
	StartZ    float64 `yaml:"start_z"`
}

// FruitBand is the look and value of main fruits spawned up to UntilSeconds
// of session time.
type FruitBand struct {
	UntilSeconds float64 `yaml:"until_seconds"`
	Color        RGB     `yaml:"color"`
	Palette      []RGB   `yaml:"palette"` // If set, colour is drawn from it
	Size         float64 `yaml:"size"`
	Points       int     `yaml:"points"`
	Rainbow      bool    `yaml:"rainbow"`
}

// FruitTuning covers speed and the per-kind profiles.
type FruitTuning struct {
	SpeedMin    float64     `yaml:"speed_min"`
	SpeedMax    float64     `yaml:"speed_max"`
	Bands       []FruitBand `yaml:"bands"`
	BlackColor  RGB         `yaml:"black_color"`
	BlackSize   float64     `yaml:"black_size"`
	BlackPoints int         `yaml:"black_points"`
}

// RadiusTuning configures a radius catch anchored Offset units in front of
// the player. The vertical band is relative to eye height.
type RadiusTuning struct {
	Offset float64 `yaml:"offset"`
	Radius float64 `yaml:"radius"`
	Bottom float64 `yaml:"bottom"`
	Top    float64 `yaml:"top"`
}

// RingTuning configures the ring pass-through catch.
type RingTuning struct {
	Distance    float64 `yaml:"distance"`
	InnerRadius float64 `yaml:"inner_radius"`
	OuterRadius float64 `yaml:"outer_radius"`
}

// DifficultyPreset is what a difficulty selection sets up.
type DifficultyPreset struct {
	Life            int     `yaml:"life"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	FruitCount      int     `yaml:"fruit_count"`
	BlackCount      int     `yaml:"black_count"`
}

// PresetTuning holds one preset per difficulty.
type PresetTuning struct {
	Easy   DifficultyPreset `yaml:"easy"`
	Normal DifficultyPreset `yaml:"normal"`
	Hard   DifficultyPreset `yaml:"hard"`
}

// Default returns the canonical tuning.
func Default() Tuning {
	return Tuning{
		Session: SessionTuning{
			DurationSeconds: 120,
			SpawnHeight:     50,
			SpawnInterval:   15,
			FloorY:          -1,
			BlackChance:     0.15,
		},
		Arena: ArenaTuning{
			HalfWidth: 25,
			HalfDepth: 20,
			EyeHeight: 2,
			StartZ:    6,
		},
		Fruit: FruitTuning{
			SpeedMin: 5.0,
			SpeedMax: 8.0,
			Bands: []FruitBand{
				{UntilSeconds: 60, Color: RGB{1, 0, 0}, Size: 0.5, Points: 1},
				{UntilSeconds: 100, Color: RGB{1, 1, 0}, Size: 0.7, Points: 2},
				{
					UntilSeconds: 120,
					Palette:      []RGB{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 0, 1}},
					Size:         1.0,
					Points:       10,
					Rainbow:      true,
				},
			},
			BlackColor:  RGB{0.15, 0.15, 0.15},
			BlackSize:   0.6,
			BlackPoints: -1,
		},
		Basket: RadiusTuning{Offset: 0.7, Radius: 0.5, Bottom: 0.1, Top: 0.5},
		Body:   RadiusTuning{Offset: 0, Radius: 1.5, Bottom: -3, Top: 2},
		Ring:   RingTuning{Distance: 3, InnerRadius: 0, OuterRadius: 1.0},
		Presets: PresetTuning{
			Easy:   DifficultyPreset{Life: 30, SpeedMultiplier: 0.7, FruitCount: 4, BlackCount: 1},
			Normal: DifficultyPreset{Life: 20, SpeedMultiplier: 1.0, FruitCount: 5, BlackCount: 2},
			Hard:   DifficultyPreset{Life: 10, SpeedMultiplier: 1.5, FruitCount: 7, BlackCount: 3},
		},
	}
}

// Load reads a YAML tuning file on top of Default. Fields missing from the
// file keep their default values.
func Load(path string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate checks the tuning for values the game cannot run with.
func (t Tuning) Validate() error {
	if t.Session.DurationSeconds <= 0 {
		return fmt.Errorf("%w: session duration must be positive", ErrInvalidTuning)
	}
	if t.Session.SpawnHeight <= t.Session.FloorY {
		return fmt.Errorf("%w: spawn height %.1f is below the floor", ErrInvalidTuning, t.Session.SpawnHeight)
	}
	if t.Session.BlackChance < 0 || t.Session.BlackChance > 1 {
		return fmt.Errorf("%w: black chance %.2f outside [0,1]", ErrInvalidTuning, t.Session.BlackChance)
	}
	if t.Arena.HalfWidth <= 0 || t.Arena.HalfDepth <= 0 {
		return fmt.Errorf("%w: arena must have a positive footprint", ErrInvalidTuning)
	}
	if t.Fruit.SpeedMin <= 0 || t.Fruit.SpeedMax < t.Fruit.SpeedMin {
		return fmt.Errorf("%w: fruit speed range [%.1f, %.1f)", ErrInvalidTuning, t.Fruit.SpeedMin, t.Fruit.SpeedMax)
	}
	if len(t.Fruit.Bands) == 0 {
		return fmt.Errorf("%w: at least one fruit band is required", ErrInvalidTuning)
	}
	for i := 1; i < len(t.Fruit.Bands); i++ {
		if t.Fruit.Bands[i].UntilSeconds <= t.Fruit.Bands[i-1].UntilSeconds {
			return fmt.Errorf("%w: fruit bands must be in increasing time order", ErrInvalidTuning)
		}
	}
	if t.Fruit.BlackPoints >= 0 {
		return fmt.Errorf("%w: black fruit points must be negative", ErrInvalidTuning)
	}
	if t.Ring.InnerRadius < 0 || t.Ring.OuterRadius <= t.Ring.InnerRadius {
		return fmt.Errorf("%w: ring annulus [%.2f, %.2f]", ErrInvalidTuning, t.Ring.InnerRadius, t.Ring.OuterRadius)
	}
	for name, p := range map[string]DifficultyPreset{
		"easy": t.Presets.Easy, "normal": t.Presets.Normal, "hard": t.Presets.Hard,
	} {
		if p.Life <= 0 || p.SpeedMultiplier <= 0 || p.FruitCount <= 0 || p.BlackCount < 0 {
			return fmt.Errorf("%w: difficulty %s preset %+v", ErrInvalidTuning, name, p)
		}
	}
	return nil
}

// Band returns the fruit band for the given session time. Times past the
// last band use the last band.
func (f FruitTuning) Band(elapsed float64) FruitBand {
	for _, b := range f.Bands {
		if elapsed <= b.UntilSeconds {
			return b
		}
	}
	return f.Bands[len(f.Bands)-1]
}
