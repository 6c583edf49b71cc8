package loop

import (
	"errors"
	"fmt"

	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/object"
	"github.com/tomz197/fruitcatch/internal/physics"
	"github.com/tomz197/fruitcatch/internal/vmath"
)

// ErrUnknownPolicy is returned for catch or population names that do not exist.
var ErrUnknownPolicy = errors.New("unknown policy")

// CatchPolicy decides whether a fruit is caught. Caught is called once per
// tick for every active fruit, after the player and fruits have moved.
type CatchPolicy interface {
	Caught(cam object.Camera, f *object.Fruit) bool
	// Reset drops per-fruit state at the start of a round.
	Reset()
}

// RadiusCatch catches fruit that come within Radius of an anchor Offset
// units ahead of the player, inside a height band around eye level.
type RadiusCatch struct {
	config.RadiusTuning
}

// Anchor returns the catch centre for the player pose.
func (r RadiusCatch) Anchor(cam object.Camera) vmath.Vector3 {
	return cam.Position.Add(cam.ForwardFlat().Scale(r.Offset))
}

// Caught implements CatchPolicy.
func (r RadiusCatch) Caught(cam object.Camera, f *object.Fruit) bool {
	anchor := r.Anchor(cam)
	if !physics.PointInCircle(f.Position.X, f.Position.Z, anchor.X, anchor.Z, r.Radius) {
		return false
	}
	return f.Position.Y > anchor.Y+r.Bottom && f.Position.Y < anchor.Y+r.Top
}

// Reset implements CatchPolicy.
func (RadiusCatch) Reset() {}

// CompositeCatch catches a fruit if any of its policies does. Every policy
// is consulted, so stateful ones keep seeing each fruit.
type CompositeCatch []CatchPolicy

// Caught implements CatchPolicy.
func (c CompositeCatch) Caught(cam object.Camera, f *object.Fruit) bool {
	caught := false
	for _, p := range c {
		if p.Caught(cam, f) {
			caught = true
		}
	}
	return caught
}

// Reset implements CatchPolicy.
func (c CompositeCatch) Reset() {
	for _, p := range c {
		p.Reset()
	}
}

// NewRadiusCatch returns the basket catch backed by the body catch.
func NewRadiusCatch(t config.Tuning) CompositeCatch {
	return CompositeCatch{RadiusCatch{t.Basket}, RadiusCatch{t.Body}}
}

// ringSample is where a fruit was last tick.
type ringSample struct {
	position   vmath.Vector3
	generation uint64
}

// RingCatch catches fruit that pass through a ring held Distance ahead of
// the camera, facing along the view. A fruit counts when its path since the
// last tick crosses the ring plane within [InnerRadius, OuterRadius] of the
// ring centre. Both ends of the path are measured against the current ring
// pose, so turning or walking never moves a fruit through the ring.
type RingCatch struct {
	config.RingTuning
	samples map[*object.Fruit]ringSample
}

// NewRingCatch returns a ring catch with the given geometry.
func NewRingCatch(t config.RingTuning) *RingCatch {
	return &RingCatch{RingTuning: t, samples: make(map[*object.Fruit]ringSample)}
}

// Center returns the ring centre and normal for the player pose.
func (r *RingCatch) Center(cam object.Camera) (center, normal vmath.Vector3) {
	normal = cam.Forward()
	return cam.Position.Add(normal.Scale(r.Distance)), normal
}

// Caught implements CatchPolicy.
func (r *RingCatch) Caught(cam object.Camera, f *object.Fruit) bool {
	prev, seen := r.samples[f]
	r.samples[f] = ringSample{position: f.Position, generation: f.Generation}
	// A fresh fall has no previous position to compare with.
	if !seen || prev.generation != f.Generation {
		return false
	}

	center, normal := r.Center(cam)
	before := physics.SignedPlaneDistance(prev.position, center, normal)
	after := physics.SignedPlaneDistance(f.Position, center, normal)
	if !physics.CrossesPlane(before, after) {
		return false
	}

	// The crossing point lies in the ring plane, so its distance to the
	// centre is the radial distance on the ring.
	at := prev.position.Lerp(f.Position, physics.CrossingFraction(before, after))
	return physics.InBand(at.Sub(center).Len(), r.InnerRadius, r.OuterRadius)
}

// Reset implements CatchPolicy.
func (r *RingCatch) Reset() {
	clear(r.samples)
}

// Catch policy names accepted by NewCatchPolicy.
const (
	CatchRadius = "radius" // Basket, then body
	CatchBasket = "basket"
	CatchBody   = "body"
	CatchRing   = "ring"
)

// NewCatchPolicy builds a catch policy by name.
func NewCatchPolicy(name string, t config.Tuning) (CatchPolicy, error) {
	switch name {
	case "", CatchRadius:
		return NewRadiusCatch(t), nil
	case CatchBasket:
		return RadiusCatch{t.Basket}, nil
	case CatchBody:
		return RadiusCatch{t.Body}, nil
	case CatchRing:
		return NewRingCatch(t.Ring), nil
	default:
		return nil, fmt.Errorf("%w: catch %q", ErrUnknownPolicy, name)
	}
}
