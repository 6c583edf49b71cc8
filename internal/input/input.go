// Package input turns raw terminal bytes into per-frame key and mouse state.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals send repeats for held keys, so this bridges the gap between them.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit        bool
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	LookLeft    bool
	LookRight   bool
	LookUp      bool
	LookDown    bool
	Sprint      bool
	Enter       bool
	Restart     bool
	EndGame     bool // Z: finish the session and print the score
	Escape      bool
	Number      int // Last digit pressed, -1 if none

	// Mouse motion since the previous frame, in terminal cells.
	MouseDX, MouseDY int
	// Click is set when the left button went down this frame at
	// (ClickCol, ClickRow), 1-based terminal coordinates.
	Click              bool
	ClickCol, ClickRow int

	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit        time.Time
	forward     time.Time
	back        time.Time
	strafeLeft  time.Time
	strafeRight time.Time
	lookLeft    time.Time
	lookRight   time.Time
	lookUp      time.Time
	lookDown    time.Time
	sprint      time.Time
	enter       time.Time
	restart     time.Time
	endGame     time.Time
	escape      time.Time
	number      time.Time
	numberVal   int
}

// mouseState accumulates pointer reports between frames.
type mouseState struct {
	col, row int
	known    bool
	dx, dy   int
	click    bool
	clickCol int
	clickRow int
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	mouse   mouseState
	pending []byte // Incomplete escape sequence carried to the next read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:    make(chan byte, 256),
		state: keyState{numberVal: -1},
	}
}

// ResetKeyInput forgets held keys and pending mouse motion, so a key that
// triggered a screen change does not also act on the next screen.
func ResetKeyInput(s *Stream) {
	s.state = keyState{numberVal: -1}
	s.mouse.dx, s.mouse.dy = 0, 0
	s.mouse.click = false
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and mouse reports, and accumulates
// all pressed keys. Uses key state persistence to allow detecting
// simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := s.pending
	s.pending = nil

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.feed(buf, now)
	return s.snapshot(now, buf)
}

// feed parses bytes and updates key and mouse state.
func (s *Stream) feed(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if i+2 >= len(buf) {
				s.pending = append(s.pending, buf[i:]...)
				return
			}
			switch buf[i+2] {
			case 'A': // Up arrow
				s.state.lookUp = now
				i += 2
				continue
			case 'B': // Down arrow
				s.state.lookDown = now
				i += 2
				continue
			case 'C': // Right arrow
				s.state.lookRight = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.lookLeft = now
				i += 2
				continue
			case '<': // SGR mouse report
				n, complete := s.parseMouse(buf[i+3:])
				if !complete {
					s.pending = append(s.pending, buf[i:]...)
					return
				}
				i += 2 + n
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}
}

// parseMouse parses the body of an SGR mouse report, "b;col;row" followed by
// M (press or motion) or m (release). It returns the bytes consumed and
// whether the report was complete.
func (s *Stream) parseMouse(buf []byte) (int, bool) {
	var fields [3]int
	field := 0
	start := 0
	for i, c := range buf {
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			fields[field], _ = strconv.Atoi(string(buf[start:i]))
			field++
			start = i + 1
		case (c == 'M' || c == 'm') && field == 2:
			fields[2], _ = strconv.Atoi(string(buf[start:i]))
			s.applyMouse(fields[0], fields[1], fields[2], c == 'M')
			return i + 1, true
		default:
			// Malformed; drop what was read.
			return i, true
		}
	}
	return len(buf), false
}

func (s *Stream) applyMouse(button, col, row int, press bool) {
	const motionFlag = 32
	if s.mouse.known {
		s.mouse.dx += col - s.mouse.col
		s.mouse.dy += row - s.mouse.row
	}
	s.mouse.col, s.mouse.row, s.mouse.known = col, row, true

	if press && button&motionFlag == 0 && button&3 == 0 {
		s.mouse.click = true
		s.mouse.clickCol, s.mouse.clickRow = col, row
	}
}

// snapshot builds input from key state. Keys are "pressed" if seen within
// the hold duration. Mouse motion is consumed.
func (s *Stream) snapshot(now time.Time, buf []byte) Input {
	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	in := Input{
		Quit:        held(s.state.quit),
		Forward:     held(s.state.forward),
		Back:        held(s.state.back),
		StrafeLeft:  held(s.state.strafeLeft),
		StrafeRight: held(s.state.strafeRight),
		LookLeft:    held(s.state.lookLeft),
		LookRight:   held(s.state.lookRight),
		LookUp:      held(s.state.lookUp),
		LookDown:    held(s.state.lookDown),
		Sprint:      held(s.state.sprint),
		Enter:       held(s.state.enter),
		Restart:     held(s.state.restart),
		EndGame:     held(s.state.endGame),
		Escape:      held(s.state.escape),
		Number:      -1,
		MouseDX:     s.mouse.dx,
		MouseDY:     s.mouse.dy,
		Click:       s.mouse.click,
		ClickCol:    s.mouse.clickCol,
		ClickRow:    s.mouse.clickRow,
		Pressed:     buf,
	}

	// Number is only set if recently pressed
	if held(s.state.number) {
		in.Number = s.state.numberVal
	}

	s.mouse.dx, s.mouse.dy = 0, 0
	s.mouse.click = false
	return in
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'w', 'W':
		state.forward = now
	case 's', 'S':
		state.back = now
	case 'a', 'A':
		state.strafeLeft = now
	case 'd', 'D':
		state.strafeRight = now
	case 'j', 'J':
		state.lookLeft = now
	case 'l', 'L':
		state.lookRight = now
	case 'i', 'I':
		state.lookUp = now
	case 'k', 'K':
		state.lookDown = now
	case ' ':
		state.sprint = now
	case '\n', '\r':
		state.enter = now
	case 'r', 'R':
		state.restart = now
	case 'z', 'Z':
		state.endGame = now
	case '\x1b':
		state.escape = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
	}
}
