package minkowski

import (
	"testing"

	"github.com/akmonengine/feather2d/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

func newSquares(t *testing.T, x float64) Difference {
	t.Helper()

	square, err := geometry.NewRectangle(1, 1)
	if err != nil {
		t.Fatalf("NewRectangle: %v", err)
	}
	return NewDifference(square, geometry.NewTransform(), square, geometry.NewTranslation(x, 0))
}

func TestDifference_Support(t *testing.T) {
	d := newSquares(t, 3)

	// farthest(A, +x) = (0.5, -0.5), farthest(B, -x) = (2.5, -0.5)
	if got := d.Support(mgl64.Vec2{1, 0}); got != (mgl64.Vec2{-2, 0}) {
		t.Errorf("Support(+x) = %v, want (-2, 0)", got)
	}

	p := d.SupportPoint(mgl64.Vec2{-1, 0})
	if p.SupportPoint1 != (mgl64.Vec2{-0.5, -0.5}) {
		t.Errorf("SupportPoint1 = %v, want (-0.5, -0.5)", p.SupportPoint1)
	}
	if p.SupportPoint2 != (mgl64.Vec2{3.5, -0.5}) {
		t.Errorf("SupportPoint2 = %v, want (3.5, -0.5)", p.SupportPoint2)
	}
	if p.Point != p.SupportPoint1.Sub(p.SupportPoint2) {
		t.Errorf("Point = %v is not the difference of its support points", p.Point)
	}
}

func TestDifference_InitialDirection(t *testing.T) {
	if got := newSquares(t, 3).InitialDirection(); got != (mgl64.Vec2{3, 0}) {
		t.Errorf("InitialDirection = %v, want (3, 0)", got)
	}
	if got := newSquares(t, 0).InitialDirection(); !geometry.IsZero(got) {
		t.Errorf("coincident centers should give a zero direction, got %v", got)
	}
}

func TestSimplex(t *testing.T) {
	var s Simplex
	s.Add(mgl64.Vec2{1, 0})
	s.Add(mgl64.Vec2{0, 1})

	if s.Count != 2 {
		t.Fatalf("Count = %d, want 2", s.Count)
	}
	if s.Last() != (mgl64.Vec2{0, 1}) {
		t.Errorf("Last = %v, want (0, 1)", s.Last())
	}
	if points := s.Slice(); len(points) != 2 || points[0] != (mgl64.Vec2{1, 0}) {
		t.Errorf("Slice = %v", points)
	}

	s.Reset()
	if s.Count != 0 || len(s.Slice()) != 0 {
		t.Errorf("Reset left %d points", s.Count)
	}
}
