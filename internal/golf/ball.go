package golf

// BallState is the phase of a ball's physics.
type BallState int

const (
	BallNormal  BallState = iota // free flight
	BallStuck                    // at rest until the next launch
	BallSinking                  // fell in water, settling before respawn
	BallScored                   // in the cup
)

func (s BallState) String() string {
	switch s {
	case BallNormal:
		return "normal"
	case BallStuck:
		return "stuck"
	case BallSinking:
		return "sinking"
	case BallScored:
		return "scored"
	}
	return "unknown"
}

type recentCollision struct {
	collision    *Collision
	updatesSince int
}

// Ball is a single player's ball on a stage.
type Ball struct {
	SpawnPoint Vec2      `json:"spawn_point"`
	Position   Vec2      `json:"position"`
	Velocity   Vec2      `json:"velocity"`
	State      BallState `json:"state"`
	StateTimer int       `json:"state_timer"` // ticks since the last state change
	Frame      int       `json:"frame"`       // ticks since the last reset
	Launches   []Launch  `json:"launches"`

	lastCollision *recentCollision
	surfaces      []*Surface
	cfg           PhysicsConfig
}

// NewBall places a ball at spawn among the given surfaces.
func NewBall(spawn Vec2, surfaces []*Surface, cfg PhysicsConfig) *Ball {
	return &Ball{
		SpawnPoint: spawn,
		Position:   spawn,
		surfaces:   surfaces,
		cfg:        cfg,
	}
}

// Launch adds a shot of the given angle (radians) and power to the current
// velocity. When at is set the ball is first moved there.
func (b *Ball) Launch(angle, power float64, at *Vec2) {
	if at != nil {
		b.Position = *at
	}
	b.Velocity = b.Velocity.Plus(FromAngle(angle, power))
	b.Launches = append(b.Launches, Launch{
		Position: b.Position,
		Angle:    angle,
		Power:    power,
		Frame:    b.Frame,
	})
	b.setState(BallNormal)
}

func (b *Ball) setState(s BallState) {
	b.State = s
	b.StateTimer = 0
}

// Update advances the ball one tick. It reports true only on the tick the ball
// drops into the cup.
func (b *Ball) Update() bool {
	b.StateTimer++
	b.Frame++
	if b.lastCollision != nil {
		b.lastCollision.updatesSince++
	}

	switch b.State {
	case BallNormal:
		b.applyPhysics(b.cfg.Gravity)
		return b.State == BallScored
	case BallSinking:
		if b.StateTimer > b.cfg.SinkTicks {
			b.Respawn()
			return false
		}
		b.Velocity = b.Velocity.Times(b.cfg.SinkDamping)
		b.applyPhysics(b.cfg.SinkGravity)
		return b.State == BallScored
	}
	return false
}

func (b *Ball) findNearestCollision(prev *Collision) *Collision {
	var nearest *Collision
	for _, s := range b.surfaces {
		nearest = CompareCollisions(nearest, s.FindNearestCollision(b.Position, b.Velocity, prev), b.cfg.CollisionEpsilon)
	}
	return nearest
}

func (b *Ball) applyPhysics(gravity float64) {
	b.Velocity.Y += gravity
	traveled := 0.0

	var prev *Collision
	for i := 0; ; i++ {
		if i >= b.cfg.MaxCollisionsPerTick {
			b.Velocity = Vec2{}
			break
		}
		collision := b.findNearestCollision(prev)
		if collision == nil {
			break
		}

		// A second hit at the same spot right after the last one means the ball
		// is wedged in a tight corner; stop it rather than let it slip through.
		if collision.Proportion-traveled < b.cfg.WedgeThreshold &&
			b.lastCollision != nil && b.lastCollision.updatesSince <= 1 {
			b.Velocity = Vec2{}
			b.lastCollision = &recentCollision{collision: collision}
			break
		}
		b.lastCollision = &recentCollision{collision: collision}
		b.Position = collision.Point

		material := collision.Material()
		if material == Hole {
			b.setState(BallScored)
			b.Velocity = Vec2{}
			break
		}
		if material == Sticky && b.State == BallNormal && b.StateTimer > 1 {
			b.setState(BallStuck)
			b.Velocity = Vec2{}
			break
		}

		b.Velocity = ResponseVelocity(collision, b.Velocity)
		traveled = collision.Proportion
		if material == Water {
			if b.State != BallSinking {
				b.setState(BallSinking)
			}
			break
		}
		prev = collision
	}

	b.Position = b.Position.Plus(b.Velocity.Times(1 - traveled))
}

// LastContact returns the material of the most recent collision.
func (b *Ball) LastContact() (Material, bool) {
	if b.lastCollision == nil {
		return 0, false
	}
	return b.lastCollision.collision.Material(), true
}

// InPuttMode reports whether the ball last touched the green.
func (b *Ball) InPuttMode() bool {
	m, ok := b.LastContact()
	return ok && m == Green
}

// Respawn returns the ball to where it was last launched from and marks that
// launch out of bounds. Without a launch it goes back to the spawn point.
func (b *Ball) Respawn() {
	if n := len(b.Launches); n > 0 {
		b.Position = b.Launches[n-1].Position
		b.Launches[n-1].OutOfBounds = true
	} else {
		b.Position = b.SpawnPoint
	}
	b.Velocity = Vec2{}
	b.setState(BallStuck)
}

// Reset clears the shot history and puts the ball back on the spawn point.
func (b *Ball) Reset() {
	b.Launches = nil
	b.Respawn()
	b.lastCollision = nil
	b.Frame = 0
	b.setState(BallNormal)
}

// Score is the number of strokes taken, including out-of-bounds penalties.
func (b *Ball) Score() int {
	return ScoreFromLaunches(b.Launches)
}

// AtRest reports whether the ball is not going anywhere on its own.
func (b *Ball) AtRest() bool {
	return b.State == BallStuck || (b.State == BallNormal && b.Velocity.IsZero())
}
