package play

import (
	"testing"

	"github.com/playmatatu/golf/internal/golf"
)

func TestRestTracker(t *testing.T) {
	r := NewRestTracker(golf.Vec2{X: 10, Y: 10})
	for i := 0; i < stillFramesNeeded; i++ {
		r.Observe(golf.Vec2{X: 10, Y: 10.01})
	}
	if r.AtRest() {
		t.Fatalf("at rest after %d still steps, want more than %d", stillFramesNeeded, stillFramesNeeded)
	}
	r.Observe(golf.Vec2{X: 10, Y: 10.02})
	if !r.AtRest() {
		t.Fatal("not at rest after enough still steps")
	}

	r.Observe(golf.Vec2{X: 11, Y: 10.02})
	if r.AtRest() {
		t.Error("a moving ball still counts as at rest")
	}

	for i := 0; i <= stillFramesNeeded; i++ {
		r.Observe(golf.Vec2{X: 11, Y: 10.02})
	}
	r.Clear()
	if r.AtRest() {
		t.Error("at rest straight after Clear")
	}
}

func TestLaunchPowerLimit(t *testing.T) {
	if got := LaunchPowerLimit(false); got != MaxPower {
		t.Errorf("full swing limit = %v, want %v", got, MaxPower)
	}
	if got := LaunchPowerLimit(true); got != MaxPower/2 {
		t.Errorf("putt limit = %v, want %v", got, MaxPower/2)
	}
}
