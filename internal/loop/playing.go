package loop

import (
	"github.com/tomz197/fruitcatch/internal/draw"
	"github.com/tomz197/fruitcatch/internal/input"
	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/object"
)

// start sets up a fresh round at difficulty d and enters PLAYING.
func (s *Session) start(d Difficulty) {
	if !d.Valid() {
		d = DifficultyNormal
	}
	s.Difficulty = d
	s.preset = d.Preset(s.tuning.Presets)
	s.Life = s.preset.Life
	s.Score = 0
	s.Elapsed = 0
	s.End = EndNone
	s.FlashTime = 0
	s.endEmitted = false
	s.Camera = object.NewCamera(s.tuning.Arena)
	s.catch.Reset()

	for _, obj := range s.Effects {
		object.ReleaseObject(obj)
	}
	s.Effects = s.Effects[:0]

	kinds := s.population.Kinds(s.preset)
	s.Fruits = make([]*object.Fruit, len(kinds))
	sess := s.tuning.Session
	for i, kind := range kinds {
		f := &object.Fruit{}
		// Staggered so the first fruits do not arrive together.
		f.Respawn(s.rng, sess.SpawnHeight+sess.SpawnInterval*float64(i), 0, kind, s.tuning.Fruit, s.tuning.Arena)
		s.Fruits[i] = f
	}

	s.Phase = PhasePlaying
	s.emit(Event{Kind: EventDifficultySelected})
}

// updatePlaying runs one PLAYING tick: time, then input, fruit movement,
// catches, the life check and respawns, in that order.
func (s *Session) updatePlaying(in input.Input, dt float64) {
	s.Elapsed += dt
	if s.Elapsed >= s.tuning.Session.DurationSeconds {
		s.finish(EndTimeUp)
		return
	}
	if in.EndGame {
		s.finish(EndRequested)
		return
	}

	s.handleMovement(in, dt)

	for _, f := range s.Fruits {
		if f.Update(dt, s.preset.SpeedMultiplier, s.tuning.Session.FloorY) {
			s.emit(Event{Kind: EventEscape, Fruit: f.Kind, Score: s.Score})
		}
	}

	for _, f := range s.collectCatches() {
		s.applyCatch(f)
	}

	if s.Life == 0 {
		s.finish(EndLivesExhausted)
		return
	}

	s.respawnDormant()
}

// handleMovement applies walking and looking. Keyboard look is scaled by
// dt; mouse motion is not, since it is already a per-frame delta.
func (s *Session) handleMovement(in input.Input, dt float64) {
	speed := config.MoveSpeed * dt
	if in.Sprint {
		speed *= config.SprintMultiplier
	}
	var forward, strafe float64
	if in.Forward {
		forward += speed
	}
	if in.Back {
		forward -= speed
	}
	if in.StrafeRight {
		strafe += speed
	}
	if in.StrafeLeft {
		strafe -= speed
	}
	if forward != 0 || strafe != 0 {
		s.Camera.Move(forward, strafe, s.tuning.Arena)
	}

	turn := config.KeyTurnSpeed * dt
	var dyaw, dpitch float64
	if in.LookRight {
		dyaw += turn
	}
	if in.LookLeft {
		dyaw -= turn
	}
	if in.LookUp {
		dpitch += turn
	}
	if in.LookDown {
		dpitch -= turn
	}
	dyaw += float64(in.MouseDX) * config.MouseSensitivity
	dpitch -= float64(in.MouseDY) * config.MouseSensitivity
	if dyaw != 0 || dpitch != 0 {
		s.Camera.Look(dyaw, dpitch)
	}
}

// collectCatches asks the catch policy about every active fruit. The
// policy sees each fruit exactly once per tick.
func (s *Session) collectCatches() []*object.Fruit {
	s.caughtBuf = s.caughtBuf[:0]
	for _, f := range s.Fruits {
		if f.Active && s.catch.Caught(s.Camera, f) {
			s.caughtBuf = append(s.caughtBuf, f)
		}
	}
	return s.caughtBuf
}

// applyCatch scores a caught fruit and puts it to dormant. Life is
// clamped at zero, so the order catches are applied in does not matter.
func (s *Session) applyCatch(f *object.Fruit) {
	s.Score += f.Points
	if f.Points < 0 {
		if s.Life > 0 {
			s.Life--
			s.emit(Event{Kind: EventLifeLost, Score: s.Score})
		}
		s.FlashTime = config.FlashSeconds
	}
	f.Deactivate()

	c := f.DisplayColor()
	object.SpawnSplash(f.Position, draw.RGB(c[0], c[1], c[2]), config.SplashParticles,
		config.SplashSpeed, config.SplashLifetime, s.rng, s)

	s.emit(Event{Kind: EventCatch, Points: f.Points, Fruit: f.Kind, Score: s.Score})
}

// respawnDormant brings every dormant fruit back at spawn height.
func (s *Session) respawnDormant() {
	for _, f := range s.Fruits {
		if f.Active {
			continue
		}
		kind := s.population.Next(s.rng, f.Kind, s.tuning.Session)
		f.Respawn(s.rng, s.tuning.Session.SpawnHeight, s.Elapsed, kind, s.tuning.Fruit, s.tuning.Arena)
	}
}

// finish enters GAMEOVER. The game-over event fires once per round.
func (s *Session) finish(reason EndReason) {
	s.Phase = PhaseGameOver
	s.End = reason
	if !s.endEmitted {
		s.endEmitted = true
		s.emit(Event{Kind: EventGameOver, Reason: reason, Score: s.Score})
	}
}
