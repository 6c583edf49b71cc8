// Package draw renders the game onto a terminal using half-block characters
// and xterm-256 colours.
package draw

import (
	"math"
	"strconv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an xterm-256 palette index. ColorNone marks an unset pixel, so
// palette entry 0 is never used; the colour cube's black (16) stands in.
type Color uint8

// Named colours used by the game.
const (
	ColorNone    Color = 0
	ColorRed     Color = 196
	ColorYellow  Color = 226
	ColorGreen   Color = 46
	ColorBlue    Color = 21
	ColorMagenta Color = 201
	ColorWhite   Color = 231
	ColorGray    Color = 245
	ColorDimGray Color = 239
	ColorBrown   Color = 130
	ColorCyan    Color = 51
	ColorBlack   Color = 16
)

// ANSI sequences for text styling.
const (
	ColorReset      = "\033[0m"
	ColorBrightCyan = "\033[96m"
	ColorBrightRed  = "\033[91m"
	ColorBold       = "\033[1m"
)

// RGB maps a colour with components in [0,1] to the nearest entry of the
// 6x6x6 colour cube.
func RGB(r, g, b float64) Color {
	level := func(v float64) int {
		v = math.Max(0, math.Min(1, v))
		return int(math.Round(v * 5))
	}
	return Color(16 + 36*level(r) + 6*level(g) + level(b))
}

// Foreground returns the SGR sequence selecting c as text colour.
func (c Color) Foreground() string {
	if c == ColorNone {
		return "\033[39m"
	}
	return "\033[38;5;" + strconv.Itoa(int(c)) + "m"
}

// Background returns the SGR sequence selecting c as background colour.
func (c Color) Background() string {
	if c == ColorNone {
		return "\033[49m"
	}
	return "\033[48;5;" + strconv.Itoa(int(c)) + "m"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
