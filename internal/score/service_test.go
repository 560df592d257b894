package score

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/playmatatu/golf/internal/golf"
	"github.com/playmatatu/golf/internal/levelcode"
	"github.com/playmatatu/golf/internal/play"
	"github.com/redis/go-redis/v9"
)

// greenCourse is a 200 wide box whose floor has a cup in the middle. The tee
// drops the ball onto the green left of the cup.
func greenCourse() golf.HoleData {
	return golf.HoleData{
		CollisionObjects: []golf.CollisionObject{{
			Points:   []golf.Vec2{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 100}, {X: 0, Y: 100}},
			Segments: []golf.Material{golf.Normal, golf.Normal, golf.Hole, golf.Normal},
		}},
		StartPos:   golf.Vec2{X: 40, Y: 95},
		Dimensions: golf.Vec2{X: 300, Y: 200},
	}
}

// sealedCourse puts the tee and the cup in two closed boxes.
func sealedCourse() golf.HoleData {
	return golf.HoleData{
		CollisionObjects: []golf.CollisionObject{
			{
				Points:   []golf.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
				Segments: []golf.Material{golf.Normal, golf.Normal, golf.Normal, golf.Normal},
			},
			{
				Points:   []golf.Vec2{{X: 200, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 100}, {X: 200, Y: 100}},
				Segments: []golf.Material{golf.Normal, golf.Normal, golf.Hole, golf.Normal},
			},
		},
		StartPos:   golf.Vec2{X: 50, Y: 95},
		Dimensions: golf.Vec2{X: 400, Y: 200},
	}
}

// playRound putts toward the cup in a live session until the ball drops and
// returns the recorded launches.
func playRound(t *testing.T, hole golf.HoleData, cfg golf.PhysicsConfig) []golf.Launch {
	t.Helper()
	var code string
	s := play.NewSession("verify", 1, hole, cfg, func(e play.Event) {
		if e.Type == play.EventScored {
			code = e.Replay
		}
	})
	for i := 0; i < 5000 && code == ""; i++ {
		if snap := s.Snapshot(); snap.CanLaunch {
			angle := 0.0
			if snap.Position.X > 100 {
				angle = math.Pi
			}
			if err := s.Launch(angle, 6); err != nil {
				t.Fatal(err)
			}
		}
		s.Step(1)
	}
	if code == "" {
		t.Fatal("live round never finished")
	}
	replay, err := levelcode.DecodeReplay(code)
	if err != nil {
		t.Fatal(err)
	}
	return replay[0]
}

type stubHoles struct {
	hole golf.HoleData
	err  error
}

func (s stubHoles) Hole(ctx context.Context, id int) (golf.HoleData, error) {
	return s.hole, s.err
}

func TestVerifyAcceptsLiveRound(t *testing.T) {
	cfg := golf.DefaultPhysicsConfig()
	good := playRound(t, greenCourse(), cfg)

	result, err := Verify(greenCourse(), [][]golf.Launch{good}, cfg, 10000)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !result.Scored {
		t.Fatal("round did not score")
	}
	if want := golf.ScoreFromLaunches(good); result.Score != want {
		t.Errorf("score = %d, want %d", result.Score, want)
	}
	if len(result.Replay) != 1 || len(result.Replay[0]) != len(good) {
		t.Fatalf("recorded replay = %+v", result.Replay)
	}
	for i, l := range result.Replay[0] {
		if l.Position != good[i].Position || l.Frame != good[i].Frame {
			t.Errorf("launch %d replayed as %+v, recorded %+v", i, l, good[i])
		}
	}
}

func TestVerifyRejectsImpossibleRounds(t *testing.T) {
	cfg := golf.DefaultPhysicsConfig()
	good := playRound(t, greenCourse(), cfg)
	if good[0].Power != 3 {
		t.Fatalf("first shot should be a halved putt, got power %v", good[0].Power)
	}

	edit := func(f func([]golf.Launch) []golf.Launch) [][]golf.Launch {
		cp := append([]golf.Launch(nil), good...)
		return [][]golf.Launch{f(cp)}
	}
	last := good[len(good)-1]

	tests := []struct {
		name   string
		hole   golf.HoleData
		replay [][]golf.Launch
		ticks  int
		want   error
	}{
		{"no players", greenCourse(), nil, 10000, ErrInvalidReplay},
		{"no launches", greenCourse(), [][]golf.Launch{{}}, 10000, ErrInvalidReplay},
		{"two players", greenCourse(), [][]golf.Launch{good, good}, 10000, ErrInvalidReplay},
		{"moved ball", greenCourse(), edit(func(ls []golf.Launch) []golf.Launch {
			ls[0].Position.X += 30
			return ls
		}), 10000, ErrInvalidReplay},
		{"full power putt", greenCourse(), edit(func(ls []golf.Launch) []golf.Launch {
			ls[0].Power = play.MaxPower
			return ls
		}), 10000, ErrInvalidReplay},
		{"beyond the meter", greenCourse(), edit(func(ls []golf.Launch) []golf.Launch {
			ls[0].Power = play.MaxPower + 1
			return ls
		}), 10000, ErrInvalidReplay},
		{"zero power", greenCourse(), edit(func(ls []golf.Launch) []golf.Launch {
			ls[0].Power = 0
			return ls
		}), 10000, ErrInvalidReplay},
		{"bad angle", greenCourse(), edit(func(ls []golf.Launch) []golf.Launch {
			ls[0].Angle = math.Inf(1)
			return ls
		}), 10000, ErrInvalidReplay},
		{"before the ball settles", greenCourse(), edit(func(ls []golf.Launch) []golf.Launch {
			ls[0].Frame--
			return ls
		}), 10000, ErrInvalidReplay},
		{"two shots in one frame", greenCourse(), edit(func(ls []golf.Launch) []golf.Launch {
			return append([]golf.Launch{ls[0]}, ls...)
		}), 10000, ErrInvalidReplay},
		{"shot after holing", greenCourse(), edit(func(ls []golf.Launch) []golf.Launch {
			extra := last
			extra.Frame += 10000
			return append(ls, extra)
		}), 20000, ErrInvalidReplay},
		{"out of time", greenCourse(), [][]golf.Launch{good}, good[0].Frame, ErrNotScored},
		{"tee shot from inside the cup box", sealedCourse(), [][]golf.Launch{{
			{Position: golf.Vec2{X: 250, Y: 90}, Angle: math.Pi / 2, Power: 1000},
		}}, 10000, ErrInvalidReplay},
		{"settled tee shot from inside the cup box", sealedCourse(), [][]golf.Launch{{
			{Position: golf.Vec2{X: 250, Y: 90}, Angle: math.Pi / 2, Power: 5, Frame: 200},
		}}, 10000, ErrInvalidReplay},
	}
	for _, tt := range tests {
		result, err := Verify(tt.hole, tt.replay, cfg, tt.ticks)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
		if result.Scored {
			t.Errorf("%s: round reported as scored", tt.name)
		}
	}
}

func TestSubmitRejectsBeforeStoring(t *testing.T) {
	cfg := golf.DefaultPhysicsConfig()
	good := playRound(t, greenCourse(), cfg)

	holes := stubHoles{hole: greenCourse()}
	s := NewService(nil, nil, holes, cfg, 3)
	ctx := context.Background()

	if _, err := s.Submit(ctx, 1, "   ", "x"); !errors.Is(err, ErrInvalidPlayer) {
		t.Errorf("blank player: err = %v", err)
	}
	if _, err := s.Submit(ctx, 1, "ana", "***"); !errors.Is(err, ErrInvalidReplay) {
		t.Errorf("garbage replay: err = %v", err)
	}

	slow, err := levelcode.EncodeReplay([][]golf.Launch{good})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(ctx, 1, "ana", slow); !errors.Is(err, ErrNotScored) {
		t.Errorf("unfinished round: err = %v", err)
	}

	missing := errors.New("course not found")
	s.holes = stubHoles{err: missing}
	if _, err := s.Submit(ctx, 1, "ana", slow); !errors.Is(err, missing) {
		t.Errorf("missing course: err = %v", err)
	}
}

func TestEntriesFromZ(t *testing.T) {
	got := entriesFromZ([]redis.Z{{Score: 2, Member: "ana"}, {Score: 3, Member: "bo"}})
	if len(got) != 2 || got[0].PlayerName != "ana" || got[0].Strokes != 2 || got[1].Strokes != 3 {
		t.Errorf("entriesFromZ = %+v", got)
	}
	if leaderboardKey(7) != "leaderboard:7" {
		t.Errorf("leaderboardKey = %q", leaderboardKey(7))
	}
}
