package vmath

import (
	"math"
	"testing"
)

func TestCrossFollowsRightHandRule(t *testing.T) {
	x := V3(1, 0, 0)
	y := V3(0, 1, 0)
	if got := x.Cross(y); got != V3(0, 0, 1) {
		t.Fatalf("x cross y = %+v, want (0,0,1)", got)
	}
	if got := y.Cross(x); got != V3(0, 0, -1) {
		t.Fatalf("y cross x = %+v, want (0,0,-1)", got)
	}
}

func TestNormalize(t *testing.T) {
	v := V3(3, 0, 4).Normalize()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Fatalf("normalized length = %f, want 1", v.Len())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Z-0.8) > 1e-12 {
		t.Fatalf("normalize(3,0,4) = %+v", v)
	}
	if z := (Vector3{}).Normalize(); z != (Vector3{}) {
		t.Fatalf("zero vector normalized to %+v", z)
	}
}

func TestArithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)
	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("add = %+v", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("sub = %+v", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("scale = %+v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("dot = %f", got)
	}
	if got := a.Flat(); got != V3(1, 0, 3) {
		t.Errorf("flat = %+v", got)
	}
	if got := a.Lerp(b, 0.5); got != V3(2.5, 3.5, 4.5) {
		t.Errorf("lerp = %+v", got)
	}
}
