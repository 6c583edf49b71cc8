package object

import (
	"github.com/tomz197/fruitcatch/internal/draw"
)

// Text is a simple drawable text object, used for the HUD.
// Coordinates are 1-based canvas cells; the writer applies the centering offset.
type Text struct {
	X     int
	Y     int
	Value string
	Color draw.Color // ColorNone keeps the terminal default
}

// Draw writes the text at its position.
func (t Text) Draw(cw *draw.ChunkWriter) {
	if t.Value == "" {
		return
	}
	x := max(t.X, 1)
	y := max(t.Y, 1)
	if t.Color == draw.ColorNone {
		cw.WriteAt(x, y, t.Value)
		return
	}
	cw.WriteStyledAt(x, y, t.Color, t.Value)
}

// Width returns the number of terminal cells the text occupies.
func (t Text) Width() int {
	return len([]rune(t.Value))
}
