package object

import (
	"math"
	"testing"

	"github.com/tomz197/fruitcatch/internal/loop/config"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewCameraLooksDownNegativeZ(t *testing.T) {
	c := NewCamera(config.Default().Arena)
	f := c.Forward()
	if !near(f.X, 0) || !near(f.Y, 0) || !near(f.Z, -1) {
		t.Errorf("forward = %+v, want (0,0,-1)", f)
	}
	if r := c.Right(); !near(r.X, 1) || !near(r.Z, 0) {
		t.Errorf("right = %+v, want (1,0,0)", r)
	}
	if c.Position.Y != 2 || c.Position.Z != 6 {
		t.Errorf("position = %+v", c.Position)
	}
}

func TestLookClampsPitch(t *testing.T) {
	c := NewCamera(config.Default().Arena)
	c.Look(0, 500)
	if c.Pitch != config.MaxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, config.MaxPitch)
	}
	c.Look(0, -1000)
	if c.Pitch != -config.MaxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, -config.MaxPitch)
	}
}

func TestMoveStaysInArena(t *testing.T) {
	arena := config.Default().Arena
	c := NewCamera(arena)
	c.Move(1000, 0, arena)
	if c.Position.Z != -arena.HalfDepth {
		t.Errorf("z = %v, want %v", c.Position.Z, -arena.HalfDepth)
	}
	c.Move(0, 1000, arena)
	if c.Position.X != arena.HalfWidth {
		t.Errorf("x = %v, want %v", c.Position.X, arena.HalfWidth)
	}
	if c.Position.Y != arena.EyeHeight {
		t.Errorf("moving changed height to %v", c.Position.Y)
	}
}

func TestForwardFlatIgnoresPitch(t *testing.T) {
	c := NewCamera(config.Default().Arena)
	c.Look(0, 45)
	if f := c.ForwardFlat(); f.Y != 0 || !near(f.Len(), 1) {
		t.Errorf("flat forward = %+v", f)
	}
}
