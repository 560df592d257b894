// Package sound plays the short cues of the terminal player.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Player mixes cues into a single speaker stream. A Player that failed to
// initialize stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

func (p *Player) add(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// PlayLaunch is a short click scaled by shot power.
func (p *Player) PlayLaunch(power float64) {
	p.add(LaunchCue(power))
}

// PlayScore is a rising three-note chime.
func (p *Player) PlayScore() {
	p.add(ScoreCue())
}

// PlaySplash is the sound of the ball going into water.
func (p *Player) PlaySplash() {
	p.add(SplashCue())
}

func LaunchCue(power float64) beep.Streamer {
	if power < 1 {
		power = 1
	}
	return NewTone(sampleRate, 180+20*power, 60*time.Millisecond, 0.4)
}

func ScoreCue() beep.Streamer {
	note := 90 * time.Millisecond
	return beep.Seq(
		NewTone(sampleRate, 523.25, note, 0.35),
		NewTone(sampleRate, 659.25, note, 0.35),
		NewTone(sampleRate, 783.99, 3*note, 0.35),
	)
}

func SplashCue() beep.Streamer {
	return NewSplash(sampleRate, 400*time.Millisecond)
}
