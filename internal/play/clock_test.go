package play

import (
	"testing"
	"time"
)

func TestFrameClockAdvance(t *testing.T) {
	base := time.Unix(1000, 0)
	c := NewFrameClock(20*time.Millisecond, 30, 1)

	if n := c.Advance(base); n != 0 {
		t.Fatalf("first call should only start the clock, got %d", n)
	}

	steps := []struct {
		after time.Duration
		want  int
	}{
		{10 * time.Millisecond, 0},
		{10 * time.Millisecond, 1},  // remainder carried over
		{45 * time.Millisecond, 2},  // 5ms left over
		{15 * time.Millisecond, 1},  // 5+15
		{-5 * time.Millisecond, 0},  // clock went backwards
		{601 * time.Millisecond, 0}, // over 30 ticks: dropped
		{20 * time.Millisecond, 1},
	}
	now := base
	for i, s := range steps {
		now = now.Add(s.after)
		if got := c.Advance(now); got != s.want {
			t.Errorf("step %d (+%v): got %d ticks, want %d", i, s.after, got, s.want)
		}
	}
}

func TestFrameClockSpeed(t *testing.T) {
	base := time.Unix(0, 1)
	c := NewFrameClock(20*time.Millisecond, 30, 2)
	c.Start(base)
	if got := c.Advance(base.Add(100 * time.Millisecond)); got != 10 {
		t.Errorf("double speed: got %d ticks, want 10", got)
	}

	c.SetSpeed(0.5)
	if got := c.Advance(base.Add(180 * time.Millisecond)); got != 2 {
		t.Errorf("half speed: got %d ticks, want 2", got)
	}

	c.SetSpeed(-1)
	if c.speed != 0.5 {
		t.Errorf("non-positive speed should be ignored, speed = %v", c.speed)
	}
}

func TestMeterPower(t *testing.T) {
	tests := map[int]float64{0: 11, 25: 6, 50: 1, 75: 6, 100: 11, 150: 1, -50: 1}
	for frame, want := range tests {
		if got := MeterPower(frame); got != want {
			t.Errorf("MeterPower(%d) = %v, want %v", frame, got, want)
		}
	}
}
