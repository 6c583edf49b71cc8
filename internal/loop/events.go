package loop

import "github.com/tomz197/fruitcatch/internal/object"

// EventKind identifies a session event.
type EventKind int

const (
	EventDifficultySelected EventKind = iota
	EventCatch
	EventEscape
	EventLifeLost
	EventGameOver
)

// Event is something the presentation side may react to with a sound,
// a popup or a score submission.
type Event struct {
	Kind   EventKind
	Points int              // EventCatch: points applied
	Fruit  object.FruitKind // EventCatch, EventEscape
	Reason EndReason        // EventGameOver
	Score  int              // Score after the event
}
