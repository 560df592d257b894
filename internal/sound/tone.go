package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Tone is a sine wave with a linear fade-out. It ends after its duration.
type Tone struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
	total  int
}

// NewTone returns a tone of freq hertz lasting d.
func NewTone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) *Tone {
	return &Tone{sr: sr, freq: freq, volume: volume, total: sr.N(d)}
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		fade := 1 - float64(t.pos)/float64(t.total)
		v := t.volume * fade * math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(t.sr))
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *Tone) Err() error {
	return nil
}

// Splash is decaying noise run through a one-pole low-pass filter.
type Splash struct {
	pos   int
	total int
	seed  uint32
	last  float64
}

func NewSplash(sr beep.SampleRate, d time.Duration) *Splash {
	return &Splash{total: sr.N(d), seed: 0x9e3779b9}
}

func (s *Splash) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		// xorshift32
		s.seed ^= s.seed << 13
		s.seed ^= s.seed >> 17
		s.seed ^= s.seed << 5
		noise := float64(s.seed)/float64(math.MaxUint32)*2 - 1

		s.last += 0.08 * (noise - s.last)
		env := math.Exp(-4 * float64(s.pos) / float64(s.total))
		v := 0.6 * env * s.last
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *Splash) Err() error {
	return nil
}
