package course

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/golf/internal/golf"
	"github.com/playmatatu/golf/internal/levelcode"
	"github.com/playmatatu/golf/internal/models"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound    = errors.New("course not found")
	ErrInvalidName = errors.New("course name must be 1-100 characters")
)

const maxNameLength = 100

// InvalidDataError reports a submission whose hole data cannot be played.
type InvalidDataError struct {
	Err error
}

func (e *InvalidDataError) Error() string {
	return "invalid course data: " + e.Err.Error()
}

func (e *InvalidDataError) Unwrap() error {
	return e.Err
}

// NewCourse is a course as submitted by the editor.
type NewCourse struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// Service stores courses in postgres and caches single lookups in redis.
type Service struct {
	db      *sqlx.DB
	rdb     *redis.Client
	ttl     time.Duration
	physics golf.PhysicsConfig
}

// NewService builds a course service. rdb may be nil to disable caching.
func NewService(db *sqlx.DB, rdb *redis.Client, ttl time.Duration, physics golf.PhysicsConfig) *Service {
	return &Service{db: db, rdb: rdb, ttl: ttl, physics: physics}
}

func cacheKey(id int) string {
	return fmt.Sprintf("course:%d", id)
}

// List returns courses newest first. filter matches names case-insensitively.
func (s *Service) List(ctx context.Context, filter string, limit, page int) ([]models.Course, error) {
	if limit <= 0 {
		limit = 50
	}
	if page < 0 {
		page = 0
	}

	courses := []models.Course{}
	query := `SELECT id, name, data, created_at FROM courses`
	args := []interface{}{}
	if filter = strings.TrimSpace(filter); filter != "" {
		query += ` WHERE name ILIKE $1 ESCAPE '\'`
		args = append(args, "%"+escapeLike(filter)+"%")
	}
	query += fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, page*limit)

	if err := s.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Get loads one course, reading through the redis cache.
func (s *Service) Get(ctx context.Context, id int) (*models.Course, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey(id)).Bytes(); err == nil {
			var c models.Course
			if err := json.Unmarshal(cached, &c); err == nil {
				return &c, nil
			}
			log.Printf("[COURSE] Dropping unreadable cache entry for course %d", id)
			s.rdb.Del(ctx, cacheKey(id))
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("[COURSE] Cache read failed for course %d: %v", id, err)
		}
	}

	var c models.Course
	err := s.db.GetContext(ctx, &c, `SELECT id, name, data, created_at FROM courses WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(c); err == nil {
			if err := s.rdb.Set(ctx, cacheKey(id), payload, s.ttl).Err(); err != nil {
				log.Printf("[COURSE] Cache write failed for course %d: %v", id, err)
			}
		}
	}
	return &c, nil
}

// Hole loads a course and decodes its hole data.
func (s *Service) Hole(ctx context.Context, id int) (golf.HoleData, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return golf.HoleData{}, err
	}
	data, err := levelcode.DecodeHole(c.Data)
	if err != nil {
		return golf.HoleData{}, fmt.Errorf("course %d: %w", id, err)
	}
	return data, nil
}

// Validate checks a submission without storing it.
func (s *Service) Validate(nc NewCourse) (golf.HoleData, error) {
	name := strings.TrimSpace(nc.Name)
	if name == "" || len(name) > maxNameLength {
		return golf.HoleData{}, ErrInvalidName
	}
	if strings.TrimSpace(nc.Data) == "" {
		return golf.HoleData{}, &InvalidDataError{Err: errors.New("empty")}
	}
	data, err := levelcode.DecodeHole(nc.Data)
	if err != nil {
		return golf.HoleData{}, &InvalidDataError{Err: err}
	}
	if err := teeClear(data, s.physics.BallRadius); err != nil {
		return golf.HoleData{}, &InvalidDataError{Err: err}
	}
	return data, nil
}

// teeClear rejects holes whose ball would spawn overlapping an edge.
func teeClear(data golf.HoleData, radius float64) error {
	for i, obj := range data.CollisionObjects {
		for j := range obj.Points {
			a, b := obj.Points[j], obj.Points[(j+1)%len(obj.Points)]
			if d := distanceToSegment(data.StartPos, a, b); d < radius {
				return fmt.Errorf("tee is %.2f from edge %d of object %d, inside the ball radius %.2f", d, j, i, radius)
			}
		}
	}
	return nil
}

func distanceToSegment(p, a, b golf.Vec2) float64 {
	ab := b.Minus(a)
	lenSq := ab.MagnitudeSquared()
	if lenSq == 0 {
		return p.Minus(a).Magnitude()
	}
	t := math.Max(0, math.Min(1, p.Minus(a).Dot(ab)/lenSq))
	return p.Minus(a.Plus(ab.Times(t))).Magnitude()
}

// Add validates and stores a course, returning it with its new id.
func (s *Service) Add(ctx context.Context, nc NewCourse) (*models.Course, error) {
	if _, err := s.Validate(nc); err != nil {
		return nil, err
	}

	c := models.Course{Name: strings.TrimSpace(nc.Name), Data: strings.TrimSpace(nc.Data)}
	row := s.db.QueryRowxContext(ctx,
		`INSERT INTO courses (name, data, created_at) VALUES ($1, $2, NOW()) RETURNING id, created_at`,
		c.Name, c.Data)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	log.Printf("[COURSE] Added course %d (%q)", c.ID, c.Name)
	return &c, nil
}

// Delete removes a course and its cache entry.
func (s *Service) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete course %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if s.rdb != nil {
		s.rdb.Del(ctx, cacheKey(id))
	}
	log.Printf("[COURSE] Deleted course %d", id)
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
