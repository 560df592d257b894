package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	total := 0
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+j, buf[j][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("stream never ended")
	return 0
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := NewTone(rate, 440, 100*time.Millisecond, 0.5)

	if got, want := drain(t, tone), rate.N(100*time.Millisecond); got != want {
		t.Errorf("streamed %d samples, want %d", got, want)
	}
	if tone.Err() != nil {
		t.Errorf("unexpected error: %v", tone.Err())
	}
}

func TestToneFadesOut(t *testing.T) {
	rate := beep.SampleRate(8000)
	tone := NewTone(rate, 1000, time.Second, 1)
	buf := make([][2]float64, rate.N(time.Second))
	tone.Stream(buf)

	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range buf[from:to] {
			if s[0] > m {
				m = s[0]
			}
		}
		return m
	}
	if early, late := peak(0, 800), peak(len(buf)-800, len(buf)); late >= early {
		t.Errorf("tone did not fade: early peak %f, late peak %f", early, late)
	}
}

func TestCuesEnd(t *testing.T) {
	note := 90 * time.Millisecond
	if n := drain(t, ScoreCue()); n != 2*sampleRate.N(note)+sampleRate.N(3*note) {
		t.Errorf("score cue streamed %d samples", n)
	}
	if n := drain(t, SplashCue()); n != sampleRate.N(400*time.Millisecond) {
		t.Errorf("splash cue streamed %d samples", n)
	}
	if n := drain(t, LaunchCue(0)); n == 0 {
		t.Error("launch cue was silent")
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer()
	p.PlayScore()
	p.PlaySplash()
	p.Cleanup()
}
