// Package loop is the fruit-catching game itself: the session state machine,
// the catch geometries and the fruit populations. Rendering and transport
// live in the client and server subpackages.
package loop

import (
	"time"

	"github.com/tomz197/fruitcatch/internal/input"
	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/object"
)

// Tick advances the session by dt seconds with this frame's input.
// Quit is not handled here; the caller ends the loop on it.
func (s *Session) Tick(in input.Input, dt float64) {
	if dt < 0 {
		dt = 0
	}
	dt = min(dt, config.MaxDeltaSeconds)

	s.updateEffects(in, dt)

	switch s.Phase {
	case PhaseMenu:
		s.updateMenu(in)
	case PhasePlaying:
		s.updatePlaying(in, dt)
	case PhaseGameOver:
		s.updateGameOver(in)
	}

	s.FlushSpawned()
}

// updateEffects fades the penalty flash and moves splash particles. Effects
// keep running after GAMEOVER so the last splash finishes.
func (s *Session) updateEffects(in input.Input, dt float64) {
	s.FlashTime = max(s.FlashTime-dt, 0)

	ctx := object.UpdateContext{
		Delta:   time.Duration(dt * float64(time.Second)),
		Input:   in,
		Spawner: s,
	}
	n := 0
	for _, obj := range s.Effects {
		remove, err := obj.Update(ctx)
		if err != nil || remove {
			object.ReleaseObject(obj)
			continue
		}
		s.Effects[n] = obj
		n++
	}
	clear(s.Effects[n:])
	s.Effects = s.Effects[:n]
}

// FlashIntensity returns the penalty overlay strength in [0,1].
func (s *Session) FlashIntensity() float64 {
	if s.FlashTime <= 0 {
		return 0
	}
	return s.FlashTime / config.FlashSeconds
}
