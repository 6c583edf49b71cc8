package client

import (
	"math"
	"sort"

	"github.com/tomz197/fruitcatch/internal/draw"
	"github.com/tomz197/fruitcatch/internal/loop"
	"github.com/tomz197/fruitcatch/internal/object"
	"github.com/tomz197/fruitcatch/internal/vmath"
)

// Scene constants in world units.
const (
	fenceHeight     = 1.2
	fencePostStep   = 5.0
	groundTileSize  = 4.0  // World units covered by one texture repeat
	checkerSize     = 2.0  // Checkerboard square size when untextured
	groundDrawLimit = 90.0 // Ground further than this is left as sky
	circleSegments  = 24
	crosshairArm    = 1.5 // Logical units
	flashDensity    = 0.6 // Overlay density at full flash
)

var (
	groundLight = draw.RGB(0.2, 0.6, 0.2)
	groundDark  = draw.RGB(0.2, 0.4, 0.2)
	groundOuter = draw.RGB(0.2, 0.2, 0.2)
	shadowColor = draw.RGB(0.0, 0.2, 0.0)
	fenceColor  = draw.ColorBrown
	ringColor   = draw.ColorCyan
)

// drawWorld paints the 3D scene onto the canvas. Everything that is drawn
// sets pixels in back-to-front order; the ground fills what is left.
func (c *Client) drawWorld(ctx object.DrawContext) error {
	sess := c.state.Session
	proj := ctx.Projector

	c.drawFence(proj)

	if sess.Phase != loop.PhaseMenu {
		c.drawOrder = c.drawOrder[:0]
		for _, f := range sess.Fruits {
			if f.Active {
				c.drawOrder = append(c.drawOrder, f)
			}
		}
		sort.Slice(c.drawOrder, func(i, j int) bool {
			return proj.Depth(c.drawOrder[i].Position) > proj.Depth(c.drawOrder[j].Position)
		})

		for _, f := range c.drawOrder {
			c.drawShadow(proj, f)
		}
		for _, f := range c.drawOrder {
			if err := f.Draw(ctx); err != nil {
				return err
			}
		}
	}

	for _, obj := range sess.Effects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}

	if sess.Phase == loop.PhasePlaying {
		c.drawReticle(proj)
	}

	if flash := sess.FlashIntensity(); flash > 0 {
		c.canvas.SetColor(draw.ColorRed)
		c.canvas.Overlay(flash * flashDensity)
	}

	c.drawGround(proj)
	return nil
}

// drawGround ray-casts every unset pixel onto the y=0 plane.
func (c *Client) drawGround(proj draw.Projector) {
	eye := proj.Eye()
	arena := c.state.Session.Tuning().Arena
	c.canvas.FillFunc(func(x, y float64) draw.Color {
		ray := proj.Ray(draw.Point{X: x, Y: y})
		if ray.Y >= -1e-6 || eye.Y <= 0 {
			return draw.ColorNone
		}
		t := -eye.Y / ray.Y
		if t > groundDrawLimit {
			return draw.ColorNone
		}
		gx, gz := eye.X+ray.X*t, eye.Z+ray.Z*t
		if math.Abs(gx) > arena.HalfWidth || math.Abs(gz) > arena.HalfDepth {
			return groundOuter
		}
		if c.ground != nil {
			if col := c.ground.Sample(gx/groundTileSize, gz/groundTileSize); col != draw.ColorNone {
				return col
			}
		}
		if (int(math.Floor(gx/checkerSize))+int(math.Floor(gz/checkerSize)))&1 == 0 {
			return groundLight
		}
		return groundDark
	})
}

// drawFence outlines the arena with rails and posts.
func (c *Client) drawFence(proj draw.Projector) {
	arena := c.state.Session.Tuning().Arena
	w, d := arena.HalfWidth, arena.HalfDepth
	corners := [4]vmath.Vector3{
		vmath.V3(-w, 0, -d), vmath.V3(w, 0, -d), vmath.V3(w, 0, d), vmath.V3(-w, 0, d),
	}
	up := vmath.V3(0, fenceHeight, 0)

	c.canvas.SetColor(fenceColor)
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		c.segment(proj, a.Add(up), b.Add(up))

		steps := int(math.Round(a.Sub(b).Len() / fencePostStep))
		for s := 0; s < steps; s++ {
			p := a.Lerp(b, float64(s)/float64(steps))
			c.segment(proj, p, p.Add(up))
		}
	}
}

// drawShadow darkens the ground under a fruit.
func (c *Client) drawShadow(proj draw.Projector, f *object.Fruit) {
	center := vmath.V3(f.Position.X, 0.01, f.Position.Z)
	pts := c.canvas.BorrowPoints(8)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(len(pts))
		p := center.Add(vmath.V3(math.Cos(a)*f.Size, 0, math.Sin(a)*f.Size))
		pt, _, ok := proj.Project(p)
		if !ok {
			return
		}
		pts[i] = pt
	}
	c.canvas.SetColor(shadowColor)
	c.canvas.DrawPolygon(pts, true)
}

// drawReticle shows where the active catch policy catches, plus a
// crosshair at the centre of view.
func (c *Client) drawReticle(proj draw.Projector) {
	cam := c.state.Session.Camera
	c.drawCatchArea(proj, cam, c.state.Session.CatchPolicy())

	c.canvas.SetColor(draw.ColorWhite)
	c.canvas.DrawCrosshair(draw.Point{
		X: c.canvas.LogicalWidth() / 2,
		Y: c.canvas.LogicalHeight() / 2,
	}, crosshairArm)
}

func (c *Client) drawCatchArea(proj draw.Projector, cam object.Camera, policy loop.CatchPolicy) {
	switch p := policy.(type) {
	case *loop.RingCatch:
		center, normal := p.Center(cam)
		u := normal.Cross(cam.Up).Normalize()
		if u.LenSq() == 0 {
			u = vmath.V3(1, 0, 0)
		}
		v := u.Cross(normal)
		c.canvas.SetColor(ringColor)
		c.circle(proj, center, u, v, p.OuterRadius)
		if p.InnerRadius > 0 {
			c.circle(proj, center, u, v, p.InnerRadius)
		}
	case loop.CompositeCatch:
		for _, member := range p {
			c.drawCatchArea(proj, cam, member)
		}
	case loop.RadiusCatch:
		// Only a catch area in front of the player is worth showing;
		// the body catch surrounds the camera.
		if p.Offset <= 0 {
			return
		}
		anchor := p.Anchor(cam)
		u, v := vmath.V3(1, 0, 0), vmath.V3(0, 0, 1)
		rim := anchor.Add(vmath.V3(0, p.Top, 0))
		bottom := anchor.Add(vmath.V3(0, p.Bottom, 0))
		c.canvas.SetColor(fenceColor)
		c.circle(proj, rim, u, v, p.Radius)
		c.circle(proj, bottom, u, v, p.Radius*0.7)
		for i := 0; i < 4; i++ {
			a := float64(i) * math.Pi / 2
			dir := u.Scale(math.Cos(a)).Add(v.Scale(math.Sin(a)))
			c.segment(proj, rim.Add(dir.Scale(p.Radius)), bottom.Add(dir.Scale(p.Radius*0.7)))
		}
	}
}

// circle draws a circle of radius r around center in the plane spanned by
// the unit vectors u and v.
func (c *Client) circle(proj draw.Projector, center, u, v vmath.Vector3, r float64) {
	prev := center.Add(u.Scale(r))
	for i := 1; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		next := center.Add(u.Scale(r * math.Cos(a))).Add(v.Scale(r * math.Sin(a)))
		c.segment(proj, prev, next)
		prev = next
	}
}

func (c *Client) segment(proj draw.Projector, a, b vmath.Vector3) {
	if pa, pb, ok := proj.ProjectSegment(a, b); ok {
		c.canvas.DrawLine(pa, pb)
	}
}
