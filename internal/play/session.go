package play

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/playmatatu/golf/internal/golf"
	"github.com/playmatatu/golf/internal/levelcode"
)

const (
	MaxPower = 11.0
)

var (
	ErrBallMoving   = errors.New("ball is still moving")
	ErrRoundOver    = errors.New("ball is already in the cup")
	ErrInvalidShot  = errors.New("launch angle or power out of range")
	ErrSessionEnded = errors.New("session has ended")
)

// Event types published to a session's subscriber.
const (
	EventFrame  = "frame"
	EventScored = "scored"
	EventReset  = "reset"
)

// Snapshot is what a client needs to draw the current frame.
type Snapshot struct {
	Frame     int                 `json:"frame"`
	Position  golf.Vec2           `json:"position"`
	State     string              `json:"state"`
	Score     int                 `json:"score"`
	PuttMode  bool                `json:"putt_mode"`
	CanLaunch bool                `json:"can_launch"`
	Flags     []golf.FlagPosition `json:"flags,omitempty"`
}

// Event is pushed to the subscriber after each step and on score.
type Event struct {
	Type     string    `json:"type"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Score    int       `json:"score,omitempty"`
	Replay   string    `json:"replay,omitempty"`
}

// Session is one player's round on one course.
type Session struct {
	ID       string
	CourseID int

	mu         sync.Mutex
	stage      *golf.Stage
	clock      *FrameClock
	physics    golf.PhysicsConfig
	frame      int
	rest       RestTracker
	scored     bool
	lastActive time.Time
	publish    func(Event)

	stopOnce sync.Once
	done     chan struct{}
}

// NewSession builds a stage for hole. publish receives every event and may be
// nil.
func NewSession(id string, courseID int, hole golf.HoleData, physics golf.PhysicsConfig, publish func(Event)) *Session {
	stage := golf.NewStage(hole, physics)
	return &Session{
		ID:         id,
		CourseID:   courseID,
		stage:      stage,
		clock:      NewFrameClock(physics.TickDuration, physics.MaxCatchUpTicks, 1),
		physics:    physics,
		rest:       NewRestTracker(stage.BallPositions()[0]),
		lastActive: time.Now(),
		publish:    publish,
		done:       make(chan struct{}),
	}
}

// Run drives the session from the wall clock until ctx ends or Stop is called.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(s.physics.TickDuration)
	defer ticker.Stop()

	s.mu.Lock()
	s.clock.Start(time.Now())
	s.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			n := s.clock.Advance(now)
			s.mu.Unlock()
			if n > 0 {
				s.Step(n)
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Session) stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Step advances the stage n ticks and publishes the resulting frame.
func (s *Session) Step(n int) {
	var events []Event

	s.mu.Lock()
	if s.scored || n <= 0 {
		s.mu.Unlock()
		return
	}
	for i := 0; i < n; i++ {
		s.frame++
		if len(s.stage.Update()) > 0 {
			s.scored = true
			events = append(events, s.scoredEventLocked())
			break
		}
	}

	s.rest.Observe(s.stage.BallPositions()[0])
	frame := Event{Type: EventFrame, Snapshot: s.snapshotLocked(false)}
	publish := s.publish
	s.mu.Unlock()

	if publish == nil {
		return
	}
	publish(frame)
	for _, e := range events {
		publish(e)
	}
}

func (s *Session) scoredEventLocked() Event {
	score := s.stage.Score(0)
	replay, err := levelcode.EncodeReplay(s.stage.Replay())
	if err != nil {
		log.Printf("[PLAY] Session %s: failed to encode replay: %v", s.ID, err)
	}
	log.Printf("[PLAY] Session %s holed out on course %d in %d", s.ID, s.CourseID, score)
	return Event{Type: EventScored, Score: score, Replay: replay}
}

func (s *Session) canLaunchLocked() bool {
	return !s.scored && s.rest.AtRest()
}

func (s *Session) snapshotLocked(withFlags bool) *Snapshot {
	ball := s.stage.Players[0]
	snap := &Snapshot{
		Frame:     s.frame,
		Position:  ball.Position,
		State:     ball.State.String(),
		Score:     s.stage.Score(0),
		PuttMode:  s.stage.IsPuttMode(),
		CanLaunch: s.canLaunchLocked(),
	}
	if withFlags {
		snap.Flags = s.stage.FlagPositions()
	}
	return snap
}

// Snapshot returns the current frame including the flag positions.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.snapshotLocked(true)
}

// Launch shoots the ball once it has come to rest. Power is halved on the
// green.
func (s *Session) Launch(angle, power float64) error {
	if math.IsNaN(angle) || math.IsInf(angle, 0) || !(power > 0 && power <= MaxPower) {
		return ErrInvalidShot
	}
	if s.stopped() {
		return ErrSessionEnded
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	if s.scored {
		return ErrRoundOver
	}
	if !s.canLaunchLocked() {
		return ErrBallMoving
	}
	if s.stage.IsPuttMode() {
		power *= 0.5
	}
	s.stage.LaunchBall(0, angle, power, nil)
	s.rest.Clear()
	return nil
}

// Reset starts the round over from the tee.
func (s *Session) Reset() error {
	if s.stopped() {
		return ErrSessionEnded
	}

	s.mu.Lock()
	s.stage.ClearReplay()
	s.stage.Reset()
	s.frame = 0
	s.scored = false
	s.rest = NewRestTracker(s.stage.BallPositions()[0])
	s.lastActive = time.Now()
	evt := Event{Type: EventReset, Snapshot: s.snapshotLocked(true)}
	publish := s.publish
	s.mu.Unlock()

	if publish != nil {
		publish(evt)
	}
	return nil
}

// Replay returns the level code of the shots taken so far.
func (s *Session) Replay() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, err := levelcode.EncodeReplay(s.stage.Replay())
	if err != nil {
		return "", fmt.Errorf("session %s: %w", s.ID, err)
	}
	return code, nil
}

// IdleSince reports when the player last acted.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Touch marks the session as active.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}
