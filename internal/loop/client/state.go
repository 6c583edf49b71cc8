package client

import (
	"time"

	"github.com/tomz197/fruitcatch/internal/draw"
	"github.com/tomz197/fruitcatch/internal/loop"
	"github.com/tomz197/fruitcatch/internal/object"
)

// Screen is what the client is showing. It follows the session phase,
// except while the server is shutting down.
type Screen int

const (
	ScreenMenu     Screen = iota // Difficulty choice
	ScreenPlaying                // Active gameplay
	ScreenGameOver               // Final score and high scores
	ScreenShutdown               // Server is shutting down
)

// popup is a short-lived score text floating up from the reticle.
type popup struct {
	text  string
	color draw.Color
	ttl   float64 // Seconds remaining
}

// button is a clickable menu entry in 1-based canvas cells.
type button struct {
	difficulty loop.Difficulty
	col, row   int
	width      int
	height     int
}

func (b button) contains(col, row int) bool {
	return col >= b.col && col < b.col+b.width && row >= b.row && row < b.row+b.height
}

// ClientState holds per-player state (input, session, screen, etc.).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input        object.Input
	Session      *loop.Session     // The player's own game
	Screen       Screen            // What is drawn this frame
	Running      bool              // Client loop running
	RecordRank   int               // Leaderboard rank of the last round, 0 if none
	FinalScore   int               // Printed after the loop when the player ended with Z
	PrintScore   bool              // Whether FinalScore is printed on exit
	termSizeFunc draw.TermSizeFunc // Function to get terminal size
	delta        time.Duration     // Frame delta time (client-side)
	clock        float64           // Seconds since the client started, for blinking
	popups       []popup
	buttons      []button // Menu buttons from the last drawn menu
	prevScreen   Screen
	shutdownTime float64 // Countdown before auto-disconnect on shutdown
	isInactive   bool    // Whether the client is in inactive warning state
	wasInactive  bool
	firstFrame   bool
}

// NewClientState creates a new initialized client state around a session.
func NewClientState(sess *loop.Session) *ClientState {
	s := &ClientState{
		Session:    sess,
		Running:    true,
		firstFrame: true,
	}
	s.Screen = screenFor(sess.Phase)
	s.prevScreen = s.Screen
	return s
}

func screenFor(p loop.Phase) Screen {
	switch p {
	case loop.PhasePlaying:
		return ScreenPlaying
	case loop.PhaseGameOver:
		return ScreenGameOver
	default:
		return ScreenMenu
	}
}

// addPopup queues a floating score text.
func (s *ClientState) addPopup(text string, color draw.Color, ttl float64) {
	s.popups = append(s.popups, popup{text: text, color: color, ttl: ttl})
}

// agePopups drops expired popups.
func (s *ClientState) agePopups(dt float64) {
	n := 0
	for _, p := range s.popups {
		p.ttl -= dt
		if p.ttl > 0 {
			s.popups[n] = p
			n++
		}
	}
	s.popups = s.popups[:n]
}

// buttonAt returns the menu button under the canvas cell (col, row).
func (s *ClientState) buttonAt(col, row int) (loop.Difficulty, bool) {
	for _, b := range s.buttons {
		if b.contains(col, row) {
			return b.difficulty, true
		}
	}
	return 0, false
}
