package draw

import "math"

// FillCircle fills a disc of logical radius r around center. The radius is
// scaled per axis, so the disc stays round when cells are not square.
func (c *Canvas) FillCircle(center Point, r float64) {
	if r <= 0 {
		return
	}
	cx := center.X * c.scaleX
	cy := center.Y * c.scaleY
	rx := r * c.scaleX
	ry := r * c.scaleY

	// A single pixel for anything smaller than one cell.
	if rx < 0.5 && ry < 0.5 {
		c.setPixel(int(math.Round(cx)), int(math.Round(cy)))
		return
	}

	yStart := max(int(math.Floor(cy-ry)), 0)
	yEnd := min(int(math.Ceil(cy+ry)), c.subPixelHeight-1)
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		xStart := max(int(math.Round(cx-half)), 0)
		xEnd := min(int(math.Round(cx+half)), c.termWidth-1)
		for x := xStart; x <= xEnd; x++ {
			c.setPixel(x, y)
		}
	}
}

// FillRect fills the axis-aligned logical rectangle [x, x+w) x [y, y+h).
func (c *Canvas) FillRect(x, y, w, h float64) {
	x0 := max(int(math.Floor(x*c.scaleX)), 0)
	y0 := max(int(math.Floor(y*c.scaleY)), 0)
	x1 := min(int(math.Ceil((x+w)*c.scaleX)), c.termWidth)
	y1 := min(int(math.Ceil((y+h)*c.scaleY)), c.subPixelHeight)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py)
		}
	}
}

// DrawCrosshair draws a small plus sign centred on p.
func (c *Canvas) DrawCrosshair(p Point, arm float64) {
	c.DrawLine(Point{X: p.X - arm, Y: p.Y}, Point{X: p.X + arm, Y: p.Y})
	c.DrawLine(Point{X: p.X, Y: p.Y - arm}, Point{X: p.X, Y: p.Y + arm})
}
