// Package player plays the game's sound effects on the local audio device.
package player

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/tomz197/fruitcatch/internal/audio"
)

// Player plays sound effects through one oto context.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
}

// New opens the audio device.
func New(volume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(audio.SampleRate, audio.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return &Player{ctx: ctx, ready: ready, volume: math.Max(0, math.Min(1, volume))}, nil
}

// Play starts a sound and returns at once. Sounds requested before the
// device is ready are skipped.
func (p *Player) Play(s audio.Sound) {
	if p == nil {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	samples := audio.Generate(s)
	if len(samples) == 0 {
		return
	}
	go func() {
		player := p.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
