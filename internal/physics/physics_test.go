package physics

import (
	"testing"

	"github.com/tomz197/fruitcatch/internal/vmath"
)

func TestCrossesPlane(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr float64
		want       bool
	}{
		{"positive to negative", 0.4, -0.2, true},
		{"negative to positive", -0.4, 0.1, true},
		{"lands on plane", 0.3, 0, true},
		{"leaves plane", 0, -0.3, false},
		{"stays positive", 0.5, 0.1, false},
		{"stays negative", -0.5, -0.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CrossesPlane(tt.prev, tt.curr); got != tt.want {
				t.Fatalf("CrossesPlane(%v, %v) = %v, want %v", tt.prev, tt.curr, got, tt.want)
			}
		})
	}
}

func TestCrossingFraction(t *testing.T) {
	if got := CrossingFraction(1, -3); got != 0.25 {
		t.Fatalf("fraction = %f, want 0.25", got)
	}
}

func TestSignedPlaneDistance(t *testing.T) {
	origin := vmath.V3(0, 0, -1)
	normal := vmath.V3(0, 0, -1)
	if got := SignedPlaneDistance(vmath.V3(4, 9, -3), origin, normal); got != 2 {
		t.Fatalf("signed distance = %f, want 2", got)
	}
	if got := SignedPlaneDistance(vmath.V3(0, 0, 1), origin, normal); got != -2 {
		t.Fatalf("signed distance = %f, want -2", got)
	}
}

func TestPointInCircleIsStrict(t *testing.T) {
	if PointInCircle(1, 0, 0, 0, 1) {
		t.Fatal("point on the rim should not be inside")
	}
	if !PointInCircle(0.5, 0.5, 0, 0, 1) {
		t.Fatal("point should be inside")
	}
}

func TestInBandIsClosed(t *testing.T) {
	for _, v := range []float64{0.5, 0.75, 1} {
		if !InBand(v, 0.5, 1) {
			t.Errorf("InBand(%v, 0.5, 1) = false", v)
		}
	}
	if InBand(0.49, 0.5, 1) || InBand(1.01, 0.5, 1) {
		t.Error("value outside the band accepted")
	}
}
