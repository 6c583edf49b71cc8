// Package texture loads the ground image and samples it as terminal colours.
package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // PNG ground textures
	"math"
	"os"

	_ "golang.org/x/image/bmp" // Register the BMP decoder

	"github.com/tomz197/fruitcatch/internal/draw"
)

// ErrTextureLoad is returned when a texture cannot be read or decoded.
// Callers render untextured surfaces instead.
var ErrTextureLoad = errors.New("texture load failed")

// Texture is a decoded image reduced to terminal colours.
type Texture struct {
	width, height int
	colors        []draw.Color
}

// Load reads and decodes an image file.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureLoad, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrTextureLoad, path, err)
	}
	return FromImage(img), nil
}

// FromImage converts an image, mapping every pixel to the nearest colour.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := &Texture{
		width:  b.Dx(),
		height: b.Dy(),
		colors: make([]draw.Color, b.Dx()*b.Dy()),
	}
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			t.colors[y*t.width+x] = draw.RGB(float64(r)/0xffff, float64(g)/0xffff, float64(bl)/0xffff)
		}
	}
	return t
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// Sample returns the colour at texture coordinates (u, v), wrapping
// outside [0,1).
func (t *Texture) Sample(u, v float64) draw.Color {
	if t == nil || t.width == 0 || t.height == 0 {
		return draw.ColorNone
	}
	u -= math.Floor(u)
	v -= math.Floor(v)
	x := min(int(u*float64(t.width)), t.width-1)
	y := min(int(v*float64(t.height)), t.height-1)
	return t.colors[y*t.width+x]
}
