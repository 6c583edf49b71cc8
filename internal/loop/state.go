package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/object"
)

// Phase is the session's place in MENU -> PLAYING -> GAMEOVER.
type Phase int

const (
	PhaseMenu     Phase = iota // Waiting for a difficulty
	PhasePlaying               // Fruits falling
	PhaseGameOver              // Final score shown, waiting for restart or quit
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// EndReason tells why a session reached GAMEOVER.
type EndReason int

const (
	EndNone           EndReason = iota
	EndTimeUp                   // Session duration reached
	EndLivesExhausted           // Life dropped to zero
	EndRequested                // Player asked to finish
)

func (r EndReason) String() string {
	switch r {
	case EndTimeUp:
		return "time up"
	case EndLivesExhausted:
		return "out of lives"
	case EndRequested:
		return "ended by player"
	default:
		return "none"
	}
}

// Options configures a Session.
type Options struct {
	Tuning     config.Tuning
	Catch      CatchPolicy // Defaults to the basket-then-body radius catch
	Population Population  // Defaults to DualPool
	Rand       *rand.Rand  // Defaults to a time-seeded source

	// SkipMenu starts straight into PLAYING at Difficulty, and restarts
	// return to PLAYING instead of the menu.
	SkipMenu   bool
	Difficulty Difficulty
}

// Session is one player's game: the fruit pool, the player pose and the
// phase, score and life. It is owned by a single goroutine.
type Session struct {
	Phase      Phase
	Score      int
	Life       int
	Elapsed    float64 // Seconds of PLAYING time
	Difficulty Difficulty
	End        EndReason

	Camera  object.Camera
	Fruits  []*object.Fruit
	Effects []object.Object // Splash particles

	// FlashTime counts down the penalty overlay after a negative catch.
	FlashTime float64

	preset     config.DifficultyPreset
	tuning     config.Tuning
	catch      CatchPolicy
	population Population
	rng        *rand.Rand
	skipMenu   bool

	toSpawn    []object.Object
	caughtBuf  []*object.Fruit
	events     []Event
	endEmitted bool
}

// NewSession creates a session in MENU, or already PLAYING if SkipMenu is set.
func NewSession(opts Options) *Session {
	if opts.Catch == nil {
		opts.Catch = NewRadiusCatch(opts.Tuning)
	}
	if opts.Population == nil {
		opts.Population = DualPool{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		Phase:      PhaseMenu,
		Difficulty: opts.Difficulty,
		Camera:     object.NewCamera(opts.Tuning.Arena),
		tuning:     opts.Tuning,
		catch:      opts.Catch,
		population: opts.Population,
		rng:        opts.Rand,
		skipMenu:   opts.SkipMenu,
	}
	if opts.SkipMenu {
		s.start(opts.Difficulty)
	}
	return s
}

// Tuning returns the tuning the session runs with.
func (s *Session) Tuning() config.Tuning {
	return s.tuning
}

// SpeedMultiplier returns the fall speed factor of the chosen difficulty.
func (s *Session) SpeedMultiplier() float64 {
	return s.preset.SpeedMultiplier
}

// Remaining returns the seconds left in the session.
func (s *Session) Remaining() float64 {
	return max(s.tuning.Session.DurationSeconds-s.Elapsed, 0)
}

// CatchPolicy returns the active catch geometry.
func (s *Session) CatchPolicy() CatchPolicy {
	return s.catch
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (s *Session) Spawn(obj object.Object) {
	s.toSpawn = append(s.toSpawn, obj)
}

// FlushSpawned adds queued effects, dropping the overflow past the
// visible particle cap.
func (s *Session) FlushSpawned() {
	for _, obj := range s.toSpawn {
		if len(s.Effects) >= config.MaxVisibleParticles {
			object.ReleaseObject(obj)
			continue
		}
		s.Effects = append(s.Effects, obj)
	}
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// DrainEvents returns what happened since the last call.
func (s *Session) DrainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}
