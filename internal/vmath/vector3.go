// Package vmath provides the small 3D vector type shared by the game objects,
// the catch policies and the renderer.
package vmath

import "math"

// Vector3 is a float64 3-component vector. Y is up.
type Vector3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vector3{x, y, z}.
func V3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v x o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LenSq returns the squared length. Use this when comparing distances.
func (v Vector3) LenSq() float64 {
	return v.Dot(v)
}

// Len returns the Euclidean length.
func (v Vector3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns v scaled to unit length, or the zero vector if v has
// no length.
func (v Vector3) Normalize() Vector3 {
	l := v.Len()
	if l == 0 {
		return Vector3{}
	}
	inv := 1.0 / l
	return Vector3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Flat returns v projected onto the ground plane (Y zeroed).
func (v Vector3) Flat() Vector3 {
	return Vector3{v.X, 0, v.Z}
}

// Lerp returns the point t of the way from v to o.
func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return v.Add(o.Sub(v).Scale(t))
}
