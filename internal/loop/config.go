package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/fruitcatch/internal/loop/config"
)

// Difficulty selects a preset of life, fall speed and pool size.
type Difficulty int

const (
	DifficultyEasy   Difficulty = iota // More lives, slower fruits
	DifficultyNormal                   // Baseline
	DifficultyHard                     // Fewer lives, faster fruits
)

// Difficulties lists the choices in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "EASY"
	case DifficultyNormal:
		return "NORMAL"
	case DifficultyHard:
		return "HARD"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// Preset returns the tuning preset for d.
func (d Difficulty) Preset(p config.PresetTuning) config.DifficultyPreset {
	switch d {
	case DifficultyEasy:
		return p.Easy
	case DifficultyHard:
		return p.Hard
	default:
		return p.Normal
	}
}

// ParseDifficulty reads a difficulty name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return DifficultyNormal, fmt.Errorf("unknown difficulty %q", s)
}
