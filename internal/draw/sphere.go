package draw

import "math"

// maxCachedSpheres bounds the footprint cache; it is reset when full.
const maxCachedSpheres = 256

type sphereKey struct {
	rx, ry int // Half-pixel quantized radii
}

type spherePixel struct {
	dx, dy int
	lit    bool
}

// SphereCache renders shaded discs from footprints computed once per
// on-screen size. Each renderer owns its own cache.
type SphereCache struct {
	footprints map[sphereKey][]spherePixel
}

// NewSphereCache returns an empty cache.
func NewSphereCache() *SphereCache {
	return &SphereCache{footprints: make(map[sphereKey][]spherePixel)}
}

// Len reports how many footprints are cached.
func (s *SphereCache) Len() int {
	return len(s.footprints)
}

// Draw paints a sphere of logical radius r at center, lit from the upper
// left: pixels facing the light get lit, the rest base.
func (s *SphereCache) Draw(c *Canvas, center Point, r float64, base, lit Color) {
	if r <= 0 {
		return
	}
	key := sphereKey{
		rx: int(math.Round(r * c.scaleX * 2)),
		ry: int(math.Round(r * c.scaleY * 2)),
	}
	cx := int(math.Round(center.X * c.scaleX))
	cy := int(math.Round(center.Y * c.scaleY))

	if key.rx <= 1 && key.ry <= 1 {
		c.pen = base
		c.setPixel(cx, cy)
		return
	}

	fp, ok := s.footprints[key]
	if !ok {
		if len(s.footprints) >= maxCachedSpheres {
			clear(s.footprints)
		}
		fp = buildFootprint(float64(key.rx)/2, float64(key.ry)/2)
		s.footprints[key] = fp
	}

	pen := c.pen
	for _, p := range fp {
		if p.lit {
			c.pen = lit
		} else {
			c.pen = base
		}
		c.setPixel(cx+p.dx, cy+p.dy)
	}
	c.pen = pen
}

func buildFootprint(rx, ry float64) []spherePixel {
	// Light direction, normalized (-1, -1, 1.5).
	lx, ly, lz := -0.49, -0.49, 0.73
	var fp []spherePixel
	w, h := int(math.Ceil(rx)), int(math.Ceil(ry))
	for dy := -h; dy <= h; dy++ {
		ny := float64(dy) / ry
		for dx := -w; dx <= w; dx++ {
			nx := float64(dx) / rx
			d := nx*nx + ny*ny
			if d > 1 {
				continue
			}
			nz := math.Sqrt(1 - d)
			fp = append(fp, spherePixel{dx: dx, dy: dy, lit: nx*lx+ny*ly+nz*lz > 0.75})
		}
	}
	return fp
}
