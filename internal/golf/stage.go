package golf

// Stage is one hole in play: its terrain, the balls on it and any replay
// being played back.
type Stage struct {
	Surfaces []*Surface
	Players  []*Ball

	dimensions Vec2
	winners    []*Ball
	replay     [][]Launch // launches installed by ReplayLaunches
	queues     [][]Launch // launches still to be played back
	cfg        PhysicsConfig
}

// NewStage builds the collision surfaces for data, plus a rectangle around
// the whole stage so no ball can leave it.
func NewStage(data HoleData, cfg PhysicsConfig) *Stage {
	surfaces := make([]*Surface, 0, len(data.CollisionObjects)+1)
	for _, obj := range data.CollisionObjects {
		surfaces = append(surfaces, NewSurface(obj, data.StartPos, cfg))
	}
	surfaces = append(surfaces, NewSurface(boundingBox(data.Dimensions), data.StartPos, cfg))

	return &Stage{
		Surfaces:   surfaces,
		Players:    []*Ball{NewBall(data.StartPos, surfaces, cfg)},
		dimensions: data.Dimensions,
		cfg:        cfg,
	}
}

func boundingBox(d Vec2) CollisionObject {
	return CollisionObject{
		Points:   []Vec2{{0, 0}, {d.X, 0}, {d.X, d.Y}, {0, d.Y}},
		Segments: []Material{Normal, Normal, Normal, Normal},
	}
}

// Update advances every ball one tick and returns the balls that scored on
// this tick.
func (s *Stage) Update() []*Ball {
	s.dispatchReplay()

	var scored []*Ball
	for _, p := range s.Players {
		if p.State == BallScored {
			continue
		}
		if p.Update() {
			scored = append(scored, p)
		}
	}
	s.winners = append(s.winners, scored...)
	return scored
}

func (s *Stage) dispatchReplay() {
	for i, queue := range s.queues {
		if len(queue) == 0 || i >= len(s.Players) {
			continue
		}
		p := s.Players[i]
		next := queue[0]
		due := p.Frame == next.Frame ||
			(p.Frame > next.Frame && p.Position.ManhattanDistance(next.Position) <= s.cfg.ReplayTolerance)
		if !due {
			continue
		}
		s.queues[i] = queue[1:]
		at := next.Position
		p.Launch(next.Angle, next.Power, &at)
	}
}

// LaunchBall shoots the ball of player index. at optionally moves the ball
// before the shot.
func (s *Stage) LaunchBall(index int, angle, power float64, at *Vec2) {
	s.Players[index].Launch(angle, power, at)
}

func (s *Stage) BallPositions() []Vec2 {
	positions := make([]Vec2, len(s.Players))
	for i, p := range s.Players {
		positions[i] = p.Position
	}
	return positions
}

// Score returns the strokes of player index, penalties included.
func (s *Stage) Score(index int) int {
	return s.Players[index].Score()
}

// IsPuttMode reports whether the first player's ball last touched the green.
func (s *Stage) IsPuttMode() bool {
	return s.Players[0].InPuttMode()
}

func (s *Stage) FlagPositions() []FlagPosition {
	var flags []FlagPosition
	for _, surface := range s.Surfaces {
		flags = append(flags, surface.Flags...)
	}
	return flags
}

// Winners lists every ball that has scored since the last reset.
func (s *Stage) Winners() []*Ball {
	return s.winners
}

func (s *Stage) Dimensions() Vec2 {
	return s.dimensions
}

// Replay returns a copy of every player's launch record.
func (s *Stage) Replay() [][]Launch {
	replay := make([][]Launch, len(s.Players))
	for i, p := range s.Players {
		replay[i] = append([]Launch(nil), p.Launches...)
	}
	return replay
}

// ReplayLaunches resets the stage and queues the recorded launches so they
// play themselves as the stage is updated.
func (s *Stage) ReplayLaunches(launches [][]Launch) {
	s.replay = make([][]Launch, len(launches))
	for i, l := range launches {
		s.replay[i] = append([]Launch(nil), l...)
	}
	s.Reset()
}

func (s *Stage) ClearReplay() {
	s.replay = nil
	s.queues = nil
}

// Replaying reports whether recorded launches are still waiting to be played.
func (s *Stage) Replaying() bool {
	for _, q := range s.queues {
		if len(q) > 0 {
			return true
		}
	}
	return false
}

// Reset puts every ball back on the start and rearms any installed replay.
func (s *Stage) Reset() {
	for _, p := range s.Players {
		p.Reset()
	}
	s.winners = nil
	s.queues = nil
	if s.replay != nil {
		s.queues = make([][]Launch, len(s.replay))
		for i, l := range s.replay {
			s.queues[i] = make([]Launch, len(l))
			for j, launch := range l {
				launch.OutOfBounds = false
				s.queues[i][j] = launch
			}
		}
	}
}

// SimulationResult is the outcome of playing a recorded round headlessly.
type SimulationResult struct {
	Scored    bool       `json:"scored"`
	Score     int        `json:"score"`
	Ticks     int        `json:"ticks"`
	Positions []Vec2     `json:"positions"`
	Replay    [][]Launch `json:"replay"`
}

// Simulate plays launches on a fresh stage for data until the first player
// scores or maxTicks pass.
func Simulate(data HoleData, launches [][]Launch, cfg PhysicsConfig, maxTicks int) SimulationResult {
	stage := NewStage(data, cfg)
	stage.ReplayLaunches(launches)

	result := SimulationResult{}
	for result.Ticks < maxTicks {
		result.Ticks++
		if len(stage.Update()) > 0 {
			result.Scored = true
			break
		}
		if !stage.Replaying() && stage.Players[0].State == BallStuck {
			break
		}
	}
	result.Score = stage.Score(0)
	result.Positions = stage.BallPositions()
	result.Replay = stage.Replay()
	return result
}
