package audio

import (
	"encoding/binary"
	"go/parser"
	"go/token"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestGenerateLengths(t *testing.T) {
	for s, notes := range sounds {
		want := 0
		for _, n := range notes {
			want += int(n.seconds*SampleRate) * BytesPerFrame
		}
		if got := len(Generate(s)); got != want {
			t.Errorf("sound %d: %d bytes, want %d", s, got, want)
		}
	}
	if Generate(Sound(99)) != nil {
		t.Error("unknown sound produced samples")
	}
}

func TestGenerateStaysInRange(t *testing.T) {
	buf := Generate(SoundGameOver)
	for i := 0; i+4 <= len(buf); i += 4 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(buf[i:]))
		if v < -1 || v > 1 {
			t.Fatalf("sample %d = %v out of range", i/4, v)
		}
	}
}

func TestPackageDoesNotImportDriver(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		src, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		f, err := parser.ParseFile(fset, name, src, parser.ImportsOnly)
		if err != nil {
			t.Fatal(err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			if strings.Contains(path, "hajimehoshi/oto") {
				t.Errorf("%s imports %s", name, path)
			}
		}
	}
}
