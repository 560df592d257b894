package golf

import (
	"math"
	"testing"
)

func TestVectorArithmetic(t *testing.T) {
	a := NewVec2(3, 4)
	b := NewVec2(-1, 2)

	if got := a.Plus(b); got != NewVec2(2, 6) {
		t.Errorf("Plus = %+v", got)
	}
	if got := a.Minus(b); got != NewVec2(4, 2) {
		t.Errorf("Minus = %+v", got)
	}
	if got := a.Times(2); got != NewVec2(6, 8) {
		t.Errorf("Times = %+v", got)
	}
	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot = %v, want 5", got)
	}
	if got := a.Cross(b); got != 10 {
		t.Errorf("Cross = %v, want 10", got)
	}
	if got := b.Cross(a); got != -10 {
		t.Errorf("Cross should be antisymmetric, got %v", got)
	}
	if got := a.Magnitude(); got != 5 {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := a.ManhattanDistance(b); got != 6 {
		t.Errorf("ManhattanDistance = %v, want 6", got)
	}
}

func TestNormalize(t *testing.T) {
	n := NewVec2(3, 4).Normalize()
	if math.Abs(n.Magnitude()-1) > 1e-12 {
		t.Errorf("normalized magnitude = %v", n.Magnitude())
	}
	if n.X != 0.6 || n.Y != 0.8 {
		t.Errorf("Normalize = %+v, want (0.6, 0.8)", n)
	}

	z := Vec2{}.Normalize()
	if !math.IsNaN(z.X) || !math.IsNaN(z.Y) {
		t.Errorf("zero vector should normalize to NaN, got %+v", z)
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi/2, 10)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-10) > 1e-12 {
		t.Errorf("FromAngle(pi/2, 10) = %+v", v)
	}
}

func TestNormalsAreRotations(t *testing.T) {
	v := NewVec2(1, 0)
	if got := v.LeftNormal(); got != NewVec2(0, 1) {
		t.Errorf("LeftNormal = %+v", got)
	}
	if got := v.RightNormal(); got != NewVec2(0, -1) {
		t.Errorf("RightNormal = %+v", got)
	}
}
