package draw

import (
	"math"

	"github.com/tomz197/fruitcatch/internal/vmath"
)

// Projector maps world positions onto the logical canvas through a pinhole
// camera. The zero value projects nothing.
type Projector struct {
	eye     vmath.Vector3
	forward vmath.Vector3
	right   vmath.Vector3
	up      vmath.Vector3
	focal   float64 // Logical pixels per unit at depth 1
	cx, cy  float64
	near    float64
	far     float64
}

// NewProjector builds a projector for a camera at eye looking along forward.
// fovDeg is the vertical field of view; width and height are the logical
// canvas size. Logical pixels are treated as square.
func NewProjector(eye, forward, worldUp vmath.Vector3, fovDeg, width, height, near, far float64) Projector {
	f := forward.Normalize()
	r := f.Cross(worldUp).Normalize()
	if r.LenSq() == 0 {
		// Looking straight up or down; any horizontal right vector works.
		r = vmath.V3(1, 0, 0)
	}
	u := r.Cross(f)
	return Projector{
		eye:     eye,
		forward: f,
		right:   r,
		up:      u,
		focal:   (height / 2) / math.Tan(fovDeg*math.Pi/360),
		cx:      width / 2,
		cy:      height / 2,
		near:    near,
		far:     far,
	}
}

// Depth returns the distance of p along the view direction.
func (p Projector) Depth(v vmath.Vector3) float64 {
	return v.Sub(p.eye).Dot(p.forward)
}

// Project returns the canvas position of v and its view depth. ok is false
// when v is outside the near and far planes.
func (p Projector) Project(v vmath.Vector3) (pt Point, depth float64, ok bool) {
	d := v.Sub(p.eye)
	depth = d.Dot(p.forward)
	if p.focal == 0 || depth < p.near || depth > p.far {
		return Point{}, depth, false
	}
	return p.toScreen(d, depth), depth, true
}

func (p Projector) toScreen(d vmath.Vector3, depth float64) Point {
	return Point{
		X: p.cx + p.focal*d.Dot(p.right)/depth,
		Y: p.cy - p.focal*d.Dot(p.up)/depth,
	}
}

// ProjectSegment projects the segment a-b after clipping it against the
// near plane. ok is false when the whole segment is behind the camera.
func (p Projector) ProjectSegment(a, b vmath.Vector3) (pa, pb Point, ok bool) {
	if p.focal == 0 {
		return Point{}, Point{}, false
	}
	da, db := a.Sub(p.eye), b.Sub(p.eye)
	za, zb := da.Dot(p.forward), db.Dot(p.forward)
	if za < p.near && zb < p.near {
		return Point{}, Point{}, false
	}
	if za < p.near {
		t := (p.near - za) / (zb - za)
		da, za = da.Lerp(db, t), p.near
	} else if zb < p.near {
		t := (p.near - zb) / (za - zb)
		db, zb = db.Lerp(da, t), p.near
	}
	return p.toScreen(da, za), p.toScreen(db, zb), true
}

// Scale returns logical pixels per world unit at the given depth.
func (p Projector) Scale(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return p.focal / depth
}

// Ray returns the unit world direction through the logical canvas point pt.
func (p Projector) Ray(pt Point) vmath.Vector3 {
	if p.focal == 0 {
		return vmath.Vector3{}
	}
	x := (pt.X - p.cx) / p.focal
	y := (p.cy - pt.Y) / p.focal
	return p.forward.Add(p.right.Scale(x)).Add(p.up.Scale(y)).Normalize()
}

// Eye returns the camera position.
func (p Projector) Eye() vmath.Vector3 {
	return p.eye
}
