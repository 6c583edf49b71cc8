package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/tomz197/fruitcatch/internal/vmath"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testProjector() Projector {
	return NewProjector(vmath.V3(0, 0, 0), vmath.V3(0, 0, -1), vmath.V3(0, 1, 0), 90, 120, 80, 0.1, 100)
}

func TestRGB(t *testing.T) {
	tests := []struct {
		r, g, b float64
		want    Color
	}{
		{1, 0, 0, ColorRed},
		{0, 0, 0, ColorBlack},
		{1, 1, 1, ColorWhite},
		{2, -1, 0, ColorRed}, // Clamped
	}
	for _, tt := range tests {
		if got := RGB(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("RGB(%v, %v, %v) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestProject(t *testing.T) {
	p := testProjector()
	tests := []struct {
		name   string
		v      vmath.Vector3
		x, y   float64
		wantOK bool
	}{
		{"centre", vmath.V3(0, 0, -10), 60, 40, true},
		{"right", vmath.V3(10, 0, -10), 100, 40, true},
		{"up", vmath.V3(0, 5, -10), 60, 20, true},
		{"behind", vmath.V3(0, 0, 5), 0, 0, false},
		{"beyond far", vmath.V3(0, 0, -500), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, _, ok := p.Project(tt.v)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (!near(pt.X, tt.x) || !near(pt.Y, tt.y)) {
				t.Errorf("Project = (%v, %v), want (%v, %v)", pt.X, pt.Y, tt.x, tt.y)
			}
		})
	}
	if s := p.Scale(10); !near(s, 4) {
		t.Errorf("Scale(10) = %v, want 4", s)
	}
}

func TestProjectSegmentClipsNearPlane(t *testing.T) {
	p := testProjector()
	pa, pb, ok := p.ProjectSegment(vmath.V3(0, 0, 5), vmath.V3(0, 0, -10))
	if !ok {
		t.Fatal("segment crossing the near plane was dropped")
	}
	if !near(pa.X, 60) || !near(pa.Y, 40) || !near(pb.X, 60) || !near(pb.Y, 40) {
		t.Errorf("clipped segment = %v %v", pa, pb)
	}
	if _, _, ok := p.ProjectSegment(vmath.V3(0, 0, 5), vmath.V3(1, 0, 1)); ok {
		t.Error("segment behind the camera was kept")
	}
}

func TestRayInvertsProject(t *testing.T) {
	p := testProjector()
	v := vmath.V3(3, 2, -7)
	pt, _, ok := p.Project(v)
	if !ok {
		t.Fatal("point not visible")
	}
	got := p.Ray(pt)
	want := v.Normalize()
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("Ray = %+v, want %+v", got, want)
	}
}

func TestZeroProjectorProjectsNothing(t *testing.T) {
	var p Projector
	if _, _, ok := p.Project(vmath.V3(0, 0, -1)); ok {
		t.Error("zero projector projected a point")
	}
}

func TestCanvasRenderDiffs(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.SetColor(ColorRed)
	c.SetFloat(2, 3)
	if got := c.PixelAt(2, 3); got != ColorRed {
		t.Fatalf("PixelAt = %d, want red", got)
	}

	var out bytes.Buffer
	c.Render(&out)
	first := out.String()
	if !strings.Contains(first, ColorRed.Foreground()) || !strings.ContainsRune(first, BlockLowerHalf) {
		t.Errorf("first render lacks the red lower half block: %q", first)
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", out.String())
	}

	c.MarkTextDirty(1, 1, 3)
	out.Reset()
	c.Render(&out)
	if out.Len() == 0 {
		t.Error("cells under text were not repainted")
	}

	c.ForceRedraw()
	out.Reset()
	c.Render(&out)
	if strings.Count(out.String(), string(BlockEmpty)) < 40 {
		t.Error("ForceRedraw did not repaint every cell")
	}
}

func countSet(c *Canvas) int {
	n := 0
	for _, p := range c.pixels {
		if p != ColorNone {
			n++
		}
	}
	return n
}

func TestOverlay(t *testing.T) {
	c := NewScaledCanvas(8, 4, 8, 8)
	c.SetColor(ColorBlue)

	c.Overlay(0)
	if n := countSet(c); n != 0 {
		t.Errorf("density 0 set %d pixels", n)
	}
	c.Overlay(0.5)
	if n := countSet(c); n != 32 {
		t.Errorf("density 0.5 set %d of 64 pixels, want 32", n)
	}
	c.Overlay(1)
	if n := countSet(c); n != 64 {
		t.Errorf("density 1 set %d of 64 pixels", n)
	}
}

func TestFillFuncSkipsSetPixels(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetColor(ColorRed)
	c.SetFloat(0, 0)
	c.FillFunc(func(x, y float64) Color {
		if y < 2 {
			return ColorGreen
		}
		return ColorNone
	})
	if got := c.PixelAt(0, 0); got != ColorRed {
		t.Errorf("set pixel overwritten with %d", got)
	}
	if got := c.PixelAt(1, 0); got != ColorGreen {
		t.Errorf("PixelAt(1, 0) = %d, want green", got)
	}
	if got := c.PixelAt(1, 3); got != ColorNone {
		t.Errorf("PixelAt(1, 3) = %d, want unset", got)
	}
}

func TestSphereCache(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	s := NewSphereCache()
	base, lit := ColorRed, ColorYellow

	s.Draw(c, Point{X: 20, Y: 20}, 5, base, lit)
	s.Draw(c, Point{X: 10, Y: 10}, 5, base, lit)
	if s.Len() != 1 {
		t.Errorf("cache has %d footprints, want 1", s.Len())
	}

	var sawBase, sawLit bool
	for _, p := range c.pixels {
		sawBase = sawBase || p == base
		sawLit = sawLit || p == lit
	}
	if !sawBase || !sawLit {
		t.Errorf("sphere shading missing: base %v lit %v", sawBase, sawLit)
	}
	if c.PixelAt(20, 20) == ColorNone {
		t.Error("sphere centre not drawn")
	}

	s.Draw(c, Point{X: 2, Y: 2}, 0.1, ColorBlue, ColorBlue)
	if c.PixelAt(2, 2) != ColorBlue {
		t.Error("tiny sphere did not draw a single pixel")
	}
}

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(2, 1, "hi")
	if cw.Len() == 0 {
		t.Fatal("nothing buffered")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[3;5Hhi" {
		t.Errorf("output = %q", got)
	}
	if cw.Len() != 0 {
		t.Error("buffer not reset after flush")
	}
}

func TestAcquireTerminalRestores(t *testing.T) {
	var out bytes.Buffer
	release := AcquireTerminal(&out)
	if !strings.Contains(out.String(), "\033[?25l") || !strings.Contains(out.String(), "\033[?1003h") {
		t.Fatalf("acquire wrote %q", out.String())
	}
	out.Reset()
	release()
	for _, want := range []string{"\033[?25h", "\033[?1003l", "\033[?1006l"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("release output %q lacks %q", out.String(), want)
		}
	}
}
