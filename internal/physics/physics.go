// Package physics provides collision detection and distance utilities.
package physics

import (
	"math"

	"github.com/tomz197/fruitcatch/internal/vmath"
)

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is strictly within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) < radius*radius
}

// SignedPlaneDistance returns the distance from p to the plane through
// origin with the given unit normal. Positive on the side the normal points to.
func SignedPlaneDistance(p, origin, normal vmath.Vector3) float64 {
	return p.Sub(origin).Dot(normal)
}

// CrossesPlane reports whether a signed distance changed sign between two
// samples. A sample exactly on the plane counts as the crossing; the
// following sample then starts from zero and does not count again.
func CrossesPlane(prev, curr float64) bool {
	return (prev > 0 && curr <= 0) || (prev < 0 && curr >= 0)
}

// CrossingFraction returns how far between the two samples the plane was
// crossed, in [0,1]. Callers must check CrossesPlane first.
func CrossingFraction(prev, curr float64) float64 {
	den := prev - curr
	if den == 0 {
		return 1
	}
	t := prev / den
	return math.Max(0, math.Min(1, t))
}

// InBand reports whether v lies in the closed interval [lo, hi].
func InBand(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
