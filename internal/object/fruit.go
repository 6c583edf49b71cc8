package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/fruitcatch/internal/draw"
	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/vmath"
)

// FruitKind distinguishes fruit to catch from fruit to avoid.
type FruitKind int

const (
	FruitMain  FruitKind = iota // Scores by time band
	FruitBlack                  // Always negative, costs a life
)

func (k FruitKind) String() string {
	if k == FruitBlack {
		return "black"
	}
	return "main"
}

// Fruit is a falling sphere. An inactive fruit is dormant and waits for
// Respawn; it is recycled in place rather than freed.
type Fruit struct {
	Position vmath.Vector3
	Prev     vmath.Vector3 // Position before the last Update
	Color    config.RGB
	Size     float64 // Radius in world units
	Speed    float64 // Units per second before the difficulty multiplier
	Points   int
	Active   bool
	Kind     FruitKind
	Rainbow  bool
	Phase    float64 // Rainbow colour phase in radians

	// Generation changes on every respawn, so per-fruit state kept
	// elsewhere can tell a new fall from the previous one.
	Generation uint64
}

// Respawn places the fruit at a random point of the arena footprint at the
// given height and redraws its look and value. Main fruits take the time
// band for elapsed; black fruits always use the black profile.
func (f *Fruit) Respawn(rng *rand.Rand, height, elapsed float64, kind FruitKind, ft config.FruitTuning, arena config.ArenaTuning) {
	f.Position = vmath.V3(
		(rng.Float64()*2-1)*arena.HalfWidth,
		height,
		(rng.Float64()*2-1)*arena.HalfDepth,
	)
	f.Prev = f.Position
	f.Kind = kind

	if kind == FruitBlack {
		f.Color = ft.BlackColor
		f.Size = ft.BlackSize
		f.Points = ft.BlackPoints
		f.Rainbow = false
	} else {
		band := ft.Band(elapsed)
		f.Color = band.Color
		if len(band.Palette) > 0 {
			f.Color = band.Palette[rng.Intn(len(band.Palette))]
		}
		f.Size = band.Size
		f.Points = band.Points
		f.Rainbow = band.Rainbow
	}

	f.Speed = ft.SpeedMin + rng.Float64()*(ft.SpeedMax-ft.SpeedMin)
	f.Phase = rng.Float64() * 2 * math.Pi
	f.Active = true
	f.Generation++
}

// Update drops an active fruit by speed*speedMultiplier*dt. It reports
// whether the fruit fell below floorY this step, in which case it goes
// dormant without scoring.
func (f *Fruit) Update(dt, speedMultiplier, floorY float64) (escaped bool) {
	if !f.Active {
		return false
	}
	f.Prev = f.Position
	f.Position.Y -= f.Speed * speedMultiplier * dt
	if f.Rainbow {
		f.Phase = math.Mod(f.Phase+config.RainbowCycleSpeed*dt, 2*math.Pi)
	}
	if f.Position.Y < floorY {
		f.Active = false
		return true
	}
	return false
}

// Deactivate puts the fruit to dormant after a catch.
func (f *Fruit) Deactivate() {
	f.Active = false
}

// DisplayColor returns the colour the fruit is drawn with right now.
func (f *Fruit) DisplayColor() config.RGB {
	if !f.Rainbow {
		return f.Color
	}
	const third = 2 * math.Pi / 3
	return config.RGB{
		0.5 + 0.5*math.Sin(f.Phase),
		0.5 + 0.5*math.Sin(f.Phase+third),
		0.5 + 0.5*math.Sin(f.Phase+2*third),
	}
}

// Draw renders the fruit as a shaded disc.
func (f *Fruit) Draw(ctx DrawContext) error {
	if !f.Active {
		return nil
	}
	center, depth, ok := ctx.Projector.Project(f.Position)
	if !ok {
		return nil
	}
	r := f.Size * ctx.Projector.Scale(depth)
	c := f.DisplayColor()
	base := draw.RGB(c[0], c[1], c[2])
	lit := draw.RGB(c[0]+0.35, c[1]+0.35, c[2]+0.35)
	if ctx.Spheres != nil {
		ctx.Spheres.Draw(ctx.Canvas, center, r, base, lit)
		return nil
	}
	ctx.Canvas.SetColor(base)
	ctx.Canvas.FillCircle(center, r)
	return nil
}
