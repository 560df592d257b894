package golf

import (
	"math"
	"testing"
)

func square(size float64, materials ...Material) CollisionObject {
	if len(materials) == 0 {
		materials = []Material{Normal, Normal, Normal, Normal}
	}
	return CollisionObject{
		Points:   []Vec2{{0, 0}, {size, 0}, {size, size}, {0, size}},
		Segments: materials,
	}
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSurfaceOffsetsTowardContainedBall(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	s := NewSurface(square(100), Vec2{50, 50}, cfg)

	if len(s.Segments) != 4 || len(s.Corners) != 4 {
		t.Fatalf("got %d segments and %d corners, want 4 and 4", len(s.Segments), len(s.Corners))
	}

	want := []struct {
		start, normal Vec2
	}{
		{Vec2{0, 4}, Vec2{0, 1}},
		{Vec2{96, 0}, Vec2{-1, 0}},
		{Vec2{100, 96}, Vec2{0, -1}},
		{Vec2{4, 100}, Vec2{1, 0}},
	}
	for i, w := range want {
		seg := s.Segments[i]
		if !near(seg.Start.X, w.start.X, 1e-12) || !near(seg.Start.Y, w.start.Y, 1e-12) {
			t.Errorf("segment %d start = %+v, want %+v", i, seg.Start, w.start)
		}
		if !near(seg.Normal.X, w.normal.X, 1e-12) || !near(seg.Normal.Y, w.normal.Y, 1e-12) {
			t.Errorf("segment %d normal = %+v, want %+v", i, seg.Normal, w.normal)
		}
	}
}

func TestSurfaceOffsetsAwayFromObstacle(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	s := NewSurface(square(100), Vec2{50, 150}, cfg)

	bottom := s.Segments[2]
	if !near(bottom.Normal.Y, 1, 1e-12) {
		t.Errorf("bottom normal = %+v, want pointing down toward the ball", bottom.Normal)
	}
	if !near(bottom.Start.Y, 104, 1e-12) {
		t.Errorf("bottom start = %+v, want y=104", bottom.Start)
	}
}

func TestWaterEdgesAreNotInflated(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	s := NewSurface(square(100, Normal, Normal, Water, Normal), Vec2{50, 50}, cfg)

	water := s.Segments[2]
	if water.Material != Water {
		t.Fatalf("segment 2 material = %v, want water", water.Material)
	}
	if water.Start != (Vec2{100, 100}) {
		t.Errorf("water start = %+v, want the drawn vertex", water.Start)
	}
	for _, c := range s.Corners {
		if c.Material == Water {
			t.Errorf("corner %+v should not be water", c)
		}
	}
}

func TestAllWaterVertexHasNoCorner(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	s := NewSurface(square(100, Normal, Water, Water, Normal), Vec2{50, 50}, cfg)

	for _, c := range s.Corners {
		if c.Position == (Vec2{100, 100}) {
			t.Errorf("vertex between two water edges got a corner: %+v", c)
		}
	}
	if len(s.Corners) != 3 {
		t.Errorf("got %d corners, want 3", len(s.Corners))
	}
}

func TestCornerTakesLowerPriorityMaterial(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	s := NewSurface(square(100, Bouncy, Sand, Sticky, Green), Vec2{50, 50}, cfg)

	want := map[Vec2]Material{
		{0, 0}:     Bouncy, // green, bouncy
		{100, 0}:   Bouncy, // bouncy, sand
		{100, 100}: Sand,   // sand, sticky
		{0, 100}:   Green,  // sticky, green
	}
	for _, c := range s.Corners {
		if w, ok := want[c.Position]; ok && c.Material != w {
			t.Errorf("corner %v material = %v, want %v", c.Position, c.Material, w)
		}
	}
}

func TestHoleEdgeIsSplitIntoCup(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	s := NewSurface(square(100, Normal, Normal, Hole, Normal), Vec2{50, 50}, cfg)

	if len(s.Segments) != 6 {
		t.Fatalf("got %d segments, want 6", len(s.Segments))
	}
	leadIn, cup, leadOut := s.Segments[2], s.Segments[3], s.Segments[4]
	if leadIn.Material != Green || cup.Material != Hole || leadOut.Material != Green {
		t.Fatalf("materials = %v/%v/%v, want green/hole/green", leadIn.Material, cup.Material, leadOut.Material)
	}
	if cup.Start != (Vec2{58, 100}) || cup.Span != (Vec2{-16, 0}) {
		t.Errorf("cup = start %+v span %+v, want start (58,100) span (-16,0)", cup.Start, cup.Span)
	}
	if leadIn.Start != (Vec2{100, 96}) || leadIn.Span != (Vec2{-42, 0}) {
		t.Errorf("lead-in = start %+v span %+v", leadIn.Start, leadIn.Span)
	}
	if leadOut.Start != (Vec2{42, 96}) || leadOut.Span != (Vec2{-42, 0}) {
		t.Errorf("lead-out = start %+v span %+v", leadOut.Start, leadOut.Span)
	}

	if len(s.Flags) != 1 {
		t.Fatalf("got %d flags, want 1", len(s.Flags))
	}
	if s.Flags[0].Root != (Vec2{50, 100}) {
		t.Errorf("flag root = %+v, want (50,100)", s.Flags[0].Root)
	}

	for _, c := range s.Corners {
		if c.Material == Hole {
			t.Errorf("corner %+v is a hole; corners must never sink the ball", c)
		}
	}
}

func TestFindNearestCollisionAgainstFloor(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	s := NewSurface(square(100), Vec2{50, 50}, cfg)

	c := s.FindNearestCollision(Vec2{50, 90}, Vec2{0, 10}, nil)
	if c == nil {
		t.Fatal("expected a collision with the floor")
	}
	if len(c.With) != 1 || c.With[0].Kind != ContactSegment || c.With[0].Segment != s.Segments[2] {
		t.Fatalf("collision with %+v, want the bottom segment only", c.With)
	}
	if !near(c.Proportion, 0.6, 1e-12) {
		t.Errorf("proportion = %v, want 0.6", c.Proportion)
	}
	if !near(c.Point.Y, 90+6*0.999, 1e-9) {
		t.Errorf("impact point = %+v, want nudged short of y=96", c.Point)
	}

	if c := s.FindNearestCollision(Vec2{50, 50}, Vec2{0, 10}, nil); c != nil {
		t.Errorf("ball far from the floor collided: %+v", c)
	}
}

func TestFindNearestCollisionExcludesPreviousContact(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	s := NewSurface(square(100), Vec2{50, 50}, cfg)

	first := s.FindNearestCollision(Vec2{50, 90}, Vec2{0, 10}, nil)
	if first == nil {
		t.Fatal("expected a collision")
	}
	again := s.FindNearestCollision(first.Point, Vec2{0, 10}, first)
	if again != nil && again.involves(first.With[0]) {
		t.Errorf("previous contact was found again: %+v", again)
	}
}

func TestCornerCollisionTakesNearerRoot(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	obstacle := CollisionObject{
		Points:   []Vec2{{100, 100}, {200, 100}, {200, 200}, {100, 200}},
		Segments: []Material{Normal, Normal, Normal, Normal},
	}
	s := NewSurface(obstacle, Vec2{0, 0}, cfg)

	// Heading straight at the top-left vertex along the diagonal.
	c := s.FindNearestCollision(Vec2{80, 80}, Vec2{20, 20}, nil)
	if c == nil {
		t.Fatal("expected a corner collision")
	}
	if c.With[0].Kind != ContactCorner {
		t.Fatalf("first contact kind = %v, want corner", c.With[0].Kind)
	}
	want := (20*math.Sqrt2 - 4) / (20 * math.Sqrt2)
	if !near(c.Proportion, want, 1e-9) {
		t.Errorf("proportion = %v, want %v", c.Proportion, want)
	}
}

func TestSimultaneousContactsMerge(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	s := NewSurface(square(100), Vec2{50, 50}, cfg)

	c := s.FindNearestCollision(Vec2{50, 50}, Vec2{50, 50}, nil)
	if c == nil {
		t.Fatal("expected a collision in the corner")
	}
	if len(c.With) != 2 {
		t.Fatalf("got %d contacts, want the two walls merged", len(c.With))
	}

	v := ResponseVelocity(c, Vec2{50, 50})
	if !near(v.X, -15, 1e-9) || !near(v.Y, -15, 1e-9) {
		t.Errorf("response = %+v, want (-15,-15) from the bisector normal", v)
	}
}

func TestCompareCollisions(t *testing.T) {
	a := &Collision{With: []Contact{{Kind: ContactCorner, Corner: &Corner{}}}, Proportion: 0.2}
	b := &Collision{With: []Contact{{Kind: ContactCorner, Corner: &Corner{}}}, Proportion: 0.5}

	if got := CompareCollisions(nil, b, 1e-9); got != b {
		t.Errorf("nil vs b should return b")
	}
	if got := CompareCollisions(a, nil, 1e-9); got != a {
		t.Errorf("a vs nil should return a")
	}
	if got := CompareCollisions(b, a, 1e-9); got != a {
		t.Errorf("earlier collision should win")
	}
	tie := &Collision{With: []Contact{{Kind: ContactCorner, Corner: &Corner{}}}, Proportion: 0.2 + 1e-12}
	merged := CompareCollisions(a, tie, 1e-9)
	if len(merged.With) != 2 || merged.Proportion != a.Proportion {
		t.Errorf("tie should merge into one collision, got %+v", merged)
	}
}

func TestResponseNeverAddsEnergy(t *testing.T) {
	normal := Vec2{0, -1}
	incoming := Vec2{3, 4}

	for _, m := range Materials() {
		seg := &Segment{Material: m, Normal: normal}
		c := &Collision{With: []Contact{{Kind: ContactSegment, Segment: seg}}}
		out := ResponseVelocity(c, incoming)

		if math.Abs(out.X) > math.Abs(incoming.X)+1e-12 {
			t.Errorf("%v: tangential speed grew from %v to %v", m, incoming.X, out.X)
		}
		if math.Abs(out.Y) > math.Abs(incoming.Y)+1e-12 {
			t.Errorf("%v: normal speed grew from %v to %v", m, incoming.Y, out.Y)
		}
		if m == Water {
			// Water lets the ball carry on through the line.
			if out.Y <= 0 {
				t.Errorf("water should keep the ball moving in, got %+v", out)
			}
			continue
		}
		if out.Y > 0 {
			t.Errorf("%v: ball was not turned back, got %+v", m, out)
		}
	}
}
