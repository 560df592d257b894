package score

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/golf/internal/golf"
	"github.com/playmatatu/golf/internal/levelcode"
	"github.com/playmatatu/golf/internal/models"
	"github.com/playmatatu/golf/internal/play"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNotScored     = errors.New("replay does not finish the hole")
	ErrInvalidReplay = errors.New("invalid replay")
	ErrInvalidPlayer = errors.New("player name must be 1-50 characters")
)

const maxPlayerName = 50

// HoleSource resolves a course id to its playable hole.
type HoleSource interface {
	Hole(ctx context.Context, id int) (golf.HoleData, error)
}

// Service verifies submitted rounds and keeps per-course leaderboards.
type Service struct {
	db       *sqlx.DB
	rdb      *redis.Client
	holes    HoleSource
	physics  golf.PhysicsConfig
	maxTicks int
}

func NewService(db *sqlx.DB, rdb *redis.Client, holes HoleSource, physics golf.PhysicsConfig, maxTicks int) *Service {
	return &Service{db: db, rdb: rdb, holes: holes, physics: physics, maxTicks: maxTicks}
}

func leaderboardKey(courseID int) string {
	return fmt.Sprintf("leaderboard:%d", courseID)
}

// Verify plays a submitted round on hole and returns the outcome when the ball
// ends in the cup within maxTicks. The ball is never moved to a recorded
// position. Every launch must be one a live session would have accepted: the
// ball at rest where the launch says it was, and the power within the meter
// range (halved on the green).
func Verify(hole golf.HoleData, replay [][]golf.Launch, physics golf.PhysicsConfig, maxTicks int) (golf.SimulationResult, error) {
	if len(replay) != 1 || len(replay[0]) == 0 {
		return golf.SimulationResult{}, fmt.Errorf("%w: need launches for exactly one player", ErrInvalidReplay)
	}
	launches := replay[0]

	stage := golf.NewStage(hole, physics)
	ball := stage.Players[0]
	rest := play.NewRestTracker(ball.Position)

	var result golf.SimulationResult
	finish := func(err error) (golf.SimulationResult, error) {
		result.Score = stage.Score(0)
		result.Positions = stage.BallPositions()
		result.Replay = stage.Replay()
		return result, err
	}

	next := 0
	for {
		if next < len(launches) {
			l := launches[next]
			if ball.Frame > l.Frame {
				return finish(fmt.Errorf("%w: launch %d at frame %d comes after frame %d", ErrInvalidReplay, next+1, l.Frame, ball.Frame))
			}
			if ball.Frame == l.Frame {
				if err := checkLaunch(stage, &rest, l, physics); err != nil {
					return finish(fmt.Errorf("%w: launch %d: %v", ErrInvalidReplay, next+1, err))
				}
				stage.LaunchBall(0, l.Angle, l.Power, nil)
				rest.Clear()
				next++
				continue
			}
		}

		if result.Ticks >= maxTicks {
			return finish(ErrNotScored)
		}
		result.Ticks++
		scored := len(stage.Update()) > 0
		rest.Observe(ball.Position)

		if scored {
			if next < len(launches) {
				return finish(fmt.Errorf("%w: %d launches after the ball was holed", ErrInvalidReplay, len(launches)-next))
			}
			result.Scored = true
			return finish(nil)
		}
		if next == len(launches) && ball.State == golf.BallStuck {
			return finish(ErrNotScored)
		}
	}
}

func checkLaunch(stage *golf.Stage, rest *play.RestTracker, l golf.Launch, physics golf.PhysicsConfig) error {
	limit := play.LaunchPowerLimit(stage.IsPuttMode())
	if math.IsNaN(l.Angle) || math.IsInf(l.Angle, 0) {
		return errors.New("angle is not a finite number")
	}
	if !(l.Power > 0 && l.Power <= limit) {
		return fmt.Errorf("power %v outside (0, %v]", l.Power, limit)
	}
	if !rest.AtRest() {
		return errors.New("ball is still moving")
	}
	pos := stage.Players[0].Position
	if pos.ManhattanDistance(l.Position) > physics.ReplayTolerance {
		return fmt.Errorf("recorded at %v but the ball is at %v", l.Position, pos)
	}
	return nil
}

// Submit verifies replayCode against the course and records the score.
func (s *Service) Submit(ctx context.Context, courseID int, player, replayCode string) (*models.Score, error) {
	player = strings.TrimSpace(player)
	if player == "" || len(player) > maxPlayerName {
		return nil, ErrInvalidPlayer
	}
	replay, err := levelcode.DecodeReplay(replayCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReplay, err)
	}
	hole, err := s.holes.Hole(ctx, courseID)
	if err != nil {
		return nil, err
	}

	result, err := Verify(hole, replay, s.physics, s.maxTicks)
	if err != nil {
		log.Printf("[SCORE] Rejected round for course %d by %q: %v (ticks=%d)", courseID, player, err, result.Ticks)
		return nil, err
	}

	// Store the replay as the simulation recorded it so penalties are baked in.
	canonical, err := levelcode.EncodeReplay(result.Replay)
	if err != nil {
		return nil, fmt.Errorf("encode replay: %w", err)
	}

	sc := models.Score{
		CourseID:   courseID,
		PlayerName: player,
		Strokes:    result.Score,
		Replay:     canonical,
		Ticks:      result.Ticks,
	}
	row := s.db.QueryRowxContext(ctx, `
		INSERT INTO scores (course_id, player_name, strokes, replay, ticks, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, sc.CourseID, sc.PlayerName, sc.Strokes, sc.Replay, sc.Ticks)
	if err := row.Scan(&sc.ID, &sc.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert score: %w", err)
	}

	if s.rdb != nil {
		// LT keeps a player's best (lowest) stroke count.
		err := s.rdb.ZAddArgs(ctx, leaderboardKey(courseID), redis.ZAddArgs{
			LT:      true,
			Members: []redis.Z{{Score: float64(sc.Strokes), Member: player}},
		}).Err()
		if err != nil {
			log.Printf("[SCORE] Leaderboard update failed for course %d: %v", courseID, err)
		}
	}

	log.Printf("[SCORE] Course %d: %q holed out in %d strokes (%d ticks)", courseID, player, sc.Strokes, sc.Ticks)
	return &sc, nil
}

// Leaderboard returns the n best players on a course, fewest strokes first.
func (s *Service) Leaderboard(ctx context.Context, courseID, n int) ([]models.LeaderboardEntry, error) {
	if n <= 0 {
		n = 10
	}

	if s.rdb != nil {
		zs, err := s.rdb.ZRangeWithScores(ctx, leaderboardKey(courseID), 0, int64(n-1)).Result()
		if err != nil {
			log.Printf("[SCORE] Leaderboard read failed for course %d, using database: %v", courseID, err)
		} else if len(zs) > 0 {
			return entriesFromZ(zs), nil
		}
	}

	entries := []models.LeaderboardEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT player_name, MIN(strokes) AS strokes
		FROM scores
		WHERE course_id = $1
		GROUP BY player_name
		ORDER BY MIN(strokes) ASC, MIN(created_at) ASC
		LIMIT $2
	`, courseID, n)
	if err != nil {
		return nil, fmt.Errorf("leaderboard for course %d: %w", courseID, err)
	}
	return entries, nil
}

func entriesFromZ(zs []redis.Z) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		name, ok := z.Member.(string)
		if !ok {
			name = fmt.Sprint(z.Member)
		}
		entries = append(entries, models.LeaderboardEntry{PlayerName: name, Strokes: int(z.Score)})
	}
	return entries
}
