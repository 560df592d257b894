package play

import "time"

// FrameClock turns wall-clock time into whole physics ticks.
type FrameClock struct {
	tick       time.Duration
	maxCatchUp int
	speed      float64

	last    time.Time
	backlog time.Duration
}

// NewFrameClock returns a clock that emits one tick per tick duration of
// scaled time. A gap longer than maxCatchUp ticks is dropped instead of
// replayed.
func NewFrameClock(tick time.Duration, maxCatchUp int, speed float64) *FrameClock {
	if speed <= 0 {
		speed = 1
	}
	return &FrameClock{tick: tick, maxCatchUp: maxCatchUp, speed: speed}
}

// Start sets the reference time without producing ticks.
func (c *FrameClock) Start(now time.Time) {
	c.last = now
	c.backlog = 0
}

// Advance reports how many ticks are due at now.
func (c *FrameClock) Advance(now time.Time) int {
	if c.last.IsZero() {
		c.Start(now)
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta <= 0 {
		return 0
	}
	if delta > c.tick*time.Duration(c.maxCatchUp) {
		c.backlog = 0
		return 0
	}

	c.backlog += time.Duration(float64(delta) * c.speed)
	n := int(c.backlog / c.tick)
	c.backlog -= time.Duration(n) * c.tick
	return n
}

// SetSpeed changes the playback rate for future ticks.
func (c *FrameClock) SetSpeed(speed float64) {
	if speed > 0 {
		c.speed = speed
	}
}

// MeterPower is the launch power shown by the swinging power meter at frame.
// It sweeps between 1 and 11 and back every 100 frames.
func MeterPower(frame int) float64 {
	const rng = 50
	n := frame % (rng * 2)
	if n < 0 {
		n += rng * 2
	}
	d := rng - n
	if d < 0 {
		d = -d
	}
	return float64(d)/5 + 1
}
