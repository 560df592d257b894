package play

import "github.com/playmatatu/golf/internal/golf"

// A ball counts as still once it has moved less than stillDistance for more
// than stillFramesNeeded consecutive steps.
const (
	stillDistance     = 0.05
	stillFramesNeeded = 5
)

// RestTracker decides when a ball may be launched again from the positions it
// reports after each step.
type RestTracker struct {
	last   golf.Vec2
	frames int
}

func NewRestTracker(start golf.Vec2) RestTracker {
	return RestTracker{last: start}
}

// Observe records the ball position after a step.
func (r *RestTracker) Observe(pos golf.Vec2) {
	if pos.ManhattanDistance(r.last) < stillDistance {
		r.frames++
	} else {
		r.frames = 0
	}
	r.last = pos
}

func (r *RestTracker) AtRest() bool {
	return r.frames > stillFramesNeeded
}

// Clear starts the count over after a shot.
func (r *RestTracker) Clear() {
	r.frames = 0
}

// LaunchPowerLimit is the most power a launch may record. Putts are halved
// before they are recorded.
func LaunchPowerLimit(puttMode bool) float64 {
	if puttMode {
		return MaxPower / 2
	}
	return MaxPower
}
