package golf

import "math"

// Segment is a terrain edge offset toward the playing side so the ball centre
// can be tested against it directly.
type Segment struct {
	Material Material
	Start    Vec2
	Span     Vec2
	Normal   Vec2 // unit, pointing toward the playing side
}

// Corner is a polygon vertex, treated as a circle of ball radius.
type Corner struct {
	Position Vec2
	Material Material
}

type ContactKind int

const (
	ContactSegment ContactKind = iota
	ContactCorner
)

// Contact is one collider touched by a collision.
type Contact struct {
	Kind    ContactKind
	Segment *Segment
	Corner  *Corner
}

func (c Contact) Material() Material {
	if c.Kind == ContactSegment {
		return c.Segment.Material
	}
	return c.Corner.Material
}

// Normal returns the unit contact normal for a ball touching at point. Corner
// normals point from the corner toward the ball, matching segment normals.
func (c Contact) Normal(point Vec2) Vec2 {
	if c.Kind == ContactSegment {
		return c.Segment.Normal
	}
	return point.Minus(c.Corner.Position).Normalize()
}

func (c Contact) same(o Contact) bool {
	return c.Kind == o.Kind && c.Segment == o.Segment && c.Corner == o.Corner
}

// Collision is the earliest contact found along a tick's remaining travel.
// Proportion is measured from the start of the tick.
type Collision struct {
	With       []Contact
	Point      Vec2
	Proportion float64
}

// Material of a collision is the material of its first contact.
func (c *Collision) Material() Material {
	return c.With[0].Material()
}

func (c *Collision) involves(contact Contact) bool {
	if c == nil {
		return false
	}
	for _, w := range c.With {
		if w.same(contact) {
			return true
		}
	}
	return false
}

// Surface is the collision boundary derived from one authored polygon.
type Surface struct {
	Segments []*Segment
	Corners  []*Corner
	Flags    []FlagPosition
	cfg      PhysicsConfig
}

// NewSurface builds the offset boundary of obj. reference is the ball spawn;
// offsets always face the side the ball plays from.
func NewSurface(obj CollisionObject, reference Vec2, cfg PhysicsConfig) *Surface {
	s := &Surface{cfg: cfg}
	points := obj.Points
	n := len(points)
	leftHanded := IsClockwise(points) != PointInPolygon(reference, points)
	r := cfg.BallRadius

	for i, material := range obj.Segments {
		point := points[i]
		next := points[(i+1)%n]
		span := next.Minus(point)
		unit := span.Normalize()
		normal := unit.RightNormal()
		if leftHanded {
			normal = unit.LeftNormal()
		}

		prevMaterial := obj.Segments[(i-1+len(obj.Segments))%len(obj.Segments)]
		if cornerMaterial := minMaterial(material, prevMaterial); cornerMaterial != Water {
			if cornerMaterial == Hole {
				cornerMaterial = Green
			}
			s.Corners = append(s.Corners, &Corner{Position: point, Material: cornerMaterial})
		}

		switch material {
		case Hole:
			s.addCup(point, next, unit, normal)
		case Water:
			s.Segments = append(s.Segments, &Segment{Material: Water, Start: point, Span: span, Normal: normal})
		default:
			s.Segments = append(s.Segments, &Segment{
				Material: material,
				Start:    point.Plus(normal.Times(r)),
				Span:     span,
				Normal:   normal,
			})
		}
	}
	return s
}

// addCup splits a hole edge into a green lead-in, the cup and a green
// lead-out. The cup is left on the drawn line so the ball drops into it.
func (s *Surface) addCup(point, next, unit, normal Vec2) {
	r := s.cfg.BallRadius
	mid := point.Plus(next.Minus(point).Times(0.5))
	cupStart := mid.Minus(unit.Times(r * 2))
	cupEnd := mid.Plus(unit.Times(r * 2))

	s.Flags = append(s.Flags, FlagPosition{Root: mid, Direction: normal})
	s.Segments = append(s.Segments,
		&Segment{Material: Green, Start: point.Plus(normal.Times(r)), Span: cupStart.Minus(point), Normal: normal},
		&Segment{Material: Hole, Start: cupStart, Span: cupEnd.Minus(cupStart), Normal: normal},
		&Segment{Material: Green, Start: cupEnd.Plus(normal.Times(r)), Span: next.Minus(cupEnd), Normal: normal},
	)
	s.Corners = append(s.Corners,
		&Corner{Position: cupStart, Material: Green},
		&Corner{Position: cupEnd, Material: Green},
	)
}

// FindNearestCollision returns the earliest collision of a ball at pos moving
// by velocity this tick, or nil. When prev is set, its contacts are skipped
// and only the travel left after prev.Proportion is searched.
func (s *Surface) FindNearestCollision(pos, velocity Vec2, prev *Collision) *Collision {
	traveled := 0.0
	if prev != nil {
		traveled = prev.Proportion
	}

	var nearest *Collision
	for _, seg := range s.Segments {
		contact := Contact{Kind: ContactSegment, Segment: seg}
		if prev.involves(contact) {
			continue
		}
		nearest = CompareCollisions(nearest, s.segmentIntersection(pos, velocity, contact, traveled), s.cfg.CollisionEpsilon)
	}
	for _, corner := range s.Corners {
		contact := Contact{Kind: ContactCorner, Corner: corner}
		if prev.involves(contact) {
			continue
		}
		nearest = CompareCollisions(nearest, s.cornerIntersection(pos, velocity, contact, traveled), s.cfg.CollisionEpsilon)
	}
	return nearest
}

func (s *Surface) segmentIntersection(pos, velocity Vec2, contact Contact, traveled float64) *Collision {
	seg := contact.Segment
	denominator := velocity.Cross(seg.Span)
	if denominator == 0 {
		return nil
	}
	distance := seg.Start.Minus(pos)
	t := distance.Cross(seg.Span) / denominator
	if t < 0 || t > 1-traveled {
		return nil
	}
	u := distance.Cross(velocity) / denominator
	if u < 0 || u > 1 {
		return nil
	}
	return &Collision{
		With:       []Contact{contact},
		Point:      pos.Plus(velocity.Times(t * s.cfg.ImpactNudge)),
		Proportion: t + traveled,
	}
}

func (s *Surface) cornerIntersection(pos, velocity Vec2, contact Contact, traveled float64) *Collision {
	distance := pos.Minus(contact.Corner.Position)
	a := velocity.Dot(velocity)
	if a == 0 {
		return nil
	}
	b := 2 * velocity.Dot(distance)
	c := distance.Dot(distance) - s.cfg.BallRadius*s.cfg.BallRadius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}
	root := math.Sqrt(discriminant)

	t := (-b - root) / (2 * a)
	if t < 0 || t > 1-traveled {
		t = (-b + root) / (2 * a)
		if t < 0 || t > 1-traveled {
			return nil
		}
	}
	return &Collision{
		With:       []Contact{contact},
		Point:      pos.Plus(velocity.Times(t * s.cfg.ImpactNudge)),
		Proportion: t + traveled,
	}
}

// CompareCollisions returns whichever of a and b happens first. Collisions
// within epsilon of each other are merged into one carrying both contacts.
func CompareCollisions(a, b *Collision, epsilon float64) *Collision {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if math.Abs(a.Proportion-b.Proportion) <= epsilon {
		with := make([]Contact, 0, len(a.With)+len(b.With))
		with = append(with, a.With...)
		with = append(with, b.With...)
		return &Collision{With: with, Point: a.Point, Proportion: a.Proportion}
	}
	if a.Proportion < b.Proportion {
		return a
	}
	return b
}

// ResponseVelocity applies the material of c to velocity: the component along
// the averaged contact normal is scaled by bounce, the rest by friction.
func ResponseVelocity(c *Collision, velocity Vec2) Vec2 {
	var sum Vec2
	for _, w := range c.With {
		sum = sum.Plus(w.Normal(c.Point))
	}
	if sum.IsZero() {
		sum = c.With[0].Normal(c.Point)
	}
	n := sum.Normalize()

	normal := n.Times(velocity.Dot(n))
	tangent := velocity.Minus(normal)
	props := c.Material().Properties()
	return tangent.Times(props.Friction).Plus(normal.Times(props.Bounce))
}
