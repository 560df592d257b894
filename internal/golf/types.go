package golf

import (
	"errors"
	"fmt"
)

// CollisionObject is an authored polygon. Segments[i] is the material of the
// edge from Points[i] to Points[(i+1)%len(Points)].
type CollisionObject struct {
	Points   []Vec2     `json:"points"`
	Segments []Material `json:"segments"`
}

// Complete reports whether every edge of the loop has a material.
func (o CollisionObject) Complete() bool {
	return len(o.Points) >= 3 && len(o.Segments) == len(o.Points)
}

// Validate rejects polygons the physics cannot handle: open loops, unknown
// materials and zero-length edges.
func (o CollisionObject) Validate() error {
	if len(o.Points) < 3 {
		return fmt.Errorf("polygon needs at least 3 points, got %d", len(o.Points))
	}
	if !o.Complete() {
		return fmt.Errorf("polygon has %d points but %d segments", len(o.Points), len(o.Segments))
	}
	for i, m := range o.Segments {
		if !m.Valid() {
			return fmt.Errorf("segment %d: unknown material %d", i, int(m))
		}
		next := o.Points[(i+1)%len(o.Points)]
		if next.IsEqualTo(o.Points[i]) {
			return fmt.Errorf("segment %d has zero length", i)
		}
	}
	return nil
}

// HoleData is one playable hole as produced by the editor.
type HoleData struct {
	CollisionObjects []CollisionObject `json:"collisionObjects"`
	StartPos         Vec2              `json:"startPos"`
	Dimensions       Vec2              `json:"dimensions"`
}

func (h HoleData) Validate() error {
	if h.Dimensions.X <= 0 || h.Dimensions.Y <= 0 {
		return errors.New("stage dimensions must be positive")
	}
	if h.StartPos.X < 0 || h.StartPos.Y < 0 || h.StartPos.X > h.Dimensions.X || h.StartPos.Y > h.Dimensions.Y {
		return errors.New("start position is outside the stage")
	}
	for i, obj := range h.CollisionObjects {
		if err := obj.Validate(); err != nil {
			return fmt.Errorf("collision object %d: %w", i, err)
		}
	}
	return nil
}

// FlagPosition marks the middle of a cup and the direction the flag points.
type FlagPosition struct {
	Root      Vec2 `json:"root"`
	Direction Vec2 `json:"direction"`
}

// Launch is one recorded shot.
type Launch struct {
	Position    Vec2    `json:"position"`
	Angle       float64 `json:"angle"`
	Power       float64 `json:"power"`
	Frame       int     `json:"frame"`
	OutOfBounds bool    `json:"outOfBounds,omitempty"`
}

// ScoreFromLaunches counts one stroke per launch plus one per launch that
// ended out of bounds.
func ScoreFromLaunches(launches []Launch) int {
	score := len(launches)
	for _, l := range launches {
		if l.OutOfBounds {
			score++
		}
	}
	return score
}
