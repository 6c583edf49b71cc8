package loop

import (
	"fmt"
	"math/rand"

	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/object"
)

// Population decides the fruit pool's make-up.
type Population interface {
	// Kinds returns one kind per fruit in the pool at round start.
	Kinds(p config.DifficultyPreset) []object.FruitKind
	// Next returns the kind a dormant fruit respawns as.
	Next(rng *rand.Rand, prev object.FruitKind, s config.SessionTuning) object.FruitKind
}

// SinglePool is one pool of FruitCount fruits. Every fruit starts as a
// main fruit; each respawn turns black with probability BlackChance.
type SinglePool struct{}

// Kinds implements Population.
func (SinglePool) Kinds(p config.DifficultyPreset) []object.FruitKind {
	return make([]object.FruitKind, p.FruitCount)
}

// Next implements Population.
func (SinglePool) Next(rng *rand.Rand, _ object.FruitKind, s config.SessionTuning) object.FruitKind {
	if rng.Float64() < s.BlackChance {
		return object.FruitBlack
	}
	return object.FruitMain
}

// DualPool keeps FruitCount main fruits and BlackCount black fruits, each
// respawning as its own kind.
type DualPool struct{}

// Kinds implements Population.
func (DualPool) Kinds(p config.DifficultyPreset) []object.FruitKind {
	kinds := make([]object.FruitKind, p.FruitCount+p.BlackCount)
	for i := p.FruitCount; i < len(kinds); i++ {
		kinds[i] = object.FruitBlack
	}
	return kinds
}

// Next implements Population.
func (DualPool) Next(_ *rand.Rand, prev object.FruitKind, _ config.SessionTuning) object.FruitKind {
	return prev
}

// Population names accepted by NewPopulation.
const (
	PopulationSingle = "single"
	PopulationDual   = "dual"
)

// NewPopulation builds a population by name.
func NewPopulation(name string) (Population, error) {
	switch name {
	case "", PopulationDual:
		return DualPool{}, nil
	case PopulationSingle:
		return SinglePool{}, nil
	default:
		return nil, fmt.Errorf("%w: population %q", ErrUnknownPolicy, name)
	}
}
