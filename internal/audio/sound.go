// Package audio describes the game's sound effects and renders them as PCM.
// The player subpackage plays them on the local device.
package audio

import "math"

const (
	SampleRate    = 44100
	ChannelCount  = 2
	BytesPerFrame = ChannelCount * 4 // Stereo float32
)

// Sound identifies a sound effect.
type Sound int

const (
	SoundCatch Sound = iota
	SoundRareCatch
	SoundPenalty
	SoundSelect
	SoundGameOver
)

// note is one segment of a sound: a sine sweep with a decaying envelope.
type note struct {
	from, to float64 // Hz
	seconds  float64
	square   bool
}

var sounds = map[Sound][]note{
	SoundCatch:     {{from: 660, to: 990, seconds: 0.08}},
	SoundRareCatch: {{from: 660, to: 880, seconds: 0.06}, {from: 990, to: 1320, seconds: 0.1}},
	SoundPenalty:   {{from: 220, to: 110, seconds: 0.25, square: true}},
	SoundSelect:    {{from: 440, to: 440, seconds: 0.05}},
	SoundGameOver:  {{from: 523, to: 523, seconds: 0.15}, {from: 392, to: 392, seconds: 0.15}, {from: 262, to: 196, seconds: 0.4}},
}

// Generate renders a sound as interleaved stereo float32 little-endian samples.
func Generate(s Sound) []byte {
	notes, ok := sounds[s]
	if !ok {
		return nil
	}
	total := 0
	for _, n := range notes {
		total += int(n.seconds * SampleRate)
	}
	buf := make([]byte, total*BytesPerFrame)

	frame := 0
	for _, n := range notes {
		count := int(n.seconds * SampleRate)
		phase := 0.0
		for i := 0; i < count; i++ {
			t := float64(i) / float64(count)
			freq := n.from + (n.to-n.from)*t
			phase += 2 * math.Pi * freq / SampleRate
			v := math.Sin(phase)
			if n.square {
				v = math.Copysign(0.6, v)
			}
			env := (1 - t) * math.Min(1, float64(i)/200) // Short attack avoids clicks
			putStereoF32(buf, frame, 0.5*v*env)
			frame++
		}
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}
