package golf

import "time"

// PhysicsConfig holds the simulation constants. The zero value is not usable;
// start from DefaultPhysicsConfig.
type PhysicsConfig struct {
	BallRadius  float64 `json:"ball_radius"`
	Gravity     float64 `json:"gravity"`      // added to velocity.y every tick
	SinkGravity float64 `json:"sink_gravity"` // gravity while sinking
	SinkDamping float64 `json:"sink_damping"` // velocity factor per sinking tick
	SinkTicks   int     `json:"sink_ticks"`   // ticks spent sinking before respawn

	ImpactNudge          float64 `json:"impact_nudge"`      // fraction of the way to the contact the ball is placed
	CollisionEpsilon     float64 `json:"collision_epsilon"` // proportions closer than this are one collision
	WedgeThreshold       float64 `json:"wedge_threshold"`
	MaxCollisionsPerTick int     `json:"max_collisions_per_tick"`

	ReplayTolerance float64       `json:"replay_tolerance"`
	TickDuration    time.Duration `json:"tick_duration"`
	MaxCatchUpTicks int           `json:"max_catch_up_ticks"`
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		BallRadius:           4,
		Gravity:              0.2,
		SinkGravity:          0.05,
		SinkDamping:          0.8,
		SinkTicks:            50,
		ImpactNudge:          0.999,
		CollisionEpsilon:     1e-9,
		WedgeThreshold:       0.00001,
		MaxCollisionsPerTick: 64,
		ReplayTolerance:      0.05,
		TickDuration:         20 * time.Millisecond,
		MaxCatchUpTicks:      30,
	}
}
