package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/fruitcatch/internal/draw"
	"github.com/tomz197/fruitcatch/internal/vmath"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// splashGravity pulls particles down, in units per second squared.
const splashGravity = 9.8

// Particle is a short-lived visual effect.
type Particle struct {
	Position    vmath.Vector3
	Velocity    vmath.Vector3
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Color       draw.Color
	Fade        bool // Whether to fade out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel vmath.Vector3, lifetime float64, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.Position = pos
	p.Velocity = vel
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Color = color
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnSplash bursts particles out of a caught fruit, mostly upwards.
func SpawnSplash(pos vmath.Vector3, color draw.Color, count int, speed, lifetime float64, rng *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rng.Float64()*0.5)

		vel := vmath.V3(math.Cos(angle)*spd, spd*(0.5+rng.Float64()*0.5), math.Sin(angle)*spd)
		spawner.Spawn(NewParticle(pos, vel, life, color))
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.Velocity = p.Velocity.Scale(dragFactor)
	p.Velocity.Y -= splashGravity * dt
	p.Position = p.Position.Add(p.Velocity.Scale(dt))

	return false, nil
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) error {
	// Skip faded particles (< 25% lifetime)
	if p.Fade && p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}

	pt, _, ok := ctx.Projector.Project(p.Position)
	if !ok {
		return nil
	}
	ctx.Canvas.SetColor(p.Color)
	ctx.Canvas.SetFloat(pt.X, pt.Y)
	return nil
}
