package texture

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/tomz197/fruitcatch/internal/draw"
)

func checkerboard() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestLoadBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ground.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, checkerboard()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w, h := tex.Size(); w != 2 || h != 2 {
		t.Fatalf("size = %dx%d, want 2x2", w, h)
	}
	tests := []struct {
		u, v float64
		want draw.Color
	}{
		{0.1, 0.1, draw.RGB(1, 0, 0)},
		{0.9, 0.1, draw.RGB(0, 1, 0)},
		{0.1, 0.9, draw.RGB(0, 0, 1)},
		{1.9, -0.1, draw.RGB(1, 1, 1)}, // Wraps
	}
	for _, tt := range tests {
		if got := tex.Sample(tt.u, tt.v); got != tt.want {
			t.Errorf("Sample(%v, %v) = %d, want %d", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.bmp")); !errors.Is(err, ErrTextureLoad) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}

	junk := filepath.Join(dir, "junk.bmp")
	if err := os.WriteFile(junk, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(junk); !errors.Is(err, ErrTextureLoad) {
		t.Errorf("junk file err = %v, want ErrTextureLoad", err)
	}
}

func TestNilTextureSamplesNothing(t *testing.T) {
	var tex *Texture
	if tex.Sample(0.5, 0.5) != draw.ColorNone {
		t.Error("nil texture returned a colour")
	}
}
