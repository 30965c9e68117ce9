package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vec2ApproxEqual(a, b mgl64.Vec2, tolerance float64) bool {
	return math.Abs(a[0]-b[0]) <= tolerance && math.Abs(a[1]-b[1]) <= tolerance
}

func TestTransform(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		tr := NewTransform()
		p := mgl64.Vec2{1, 2}
		if got := tr.Apply(p); !vec2ApproxEqual(got, p, 1e-12) {
			t.Errorf("Apply(%v) = %v, want %v", p, got, p)
		}
	})

	t.Run("rotation then translation", func(t *testing.T) {
		tr := Transform{Position: mgl64.Vec2{3, 0}, Rotation: math.Pi / 2}
		got := tr.Apply(mgl64.Vec2{1, 0})
		if !vec2ApproxEqual(got, mgl64.Vec2{3, 1}, 1e-12) {
			t.Errorf("Apply = %v, want (3, 1)", got)
		}

		back := tr.ApplyInverse(got)
		if !vec2ApproxEqual(back, mgl64.Vec2{1, 0}, 1e-12) {
			t.Errorf("ApplyInverse = %v, want (1, 0)", back)
		}
	})

	t.Run("vectors ignore translation", func(t *testing.T) {
		tr := Transform{Position: mgl64.Vec2{10, 10}, Rotation: math.Pi}
		got := tr.ApplyVector(mgl64.Vec2{1, 0})
		if !vec2ApproxEqual(got, mgl64.Vec2{-1, 0}, 1e-12) {
			t.Errorf("ApplyVector = %v, want (-1, 0)", got)
		}
		if back := tr.ApplyInverseVector(got); !vec2ApproxEqual(back, mgl64.Vec2{1, 0}, 1e-12) {
			t.Errorf("ApplyInverseVector = %v, want (1, 0)", back)
		}
	})
}

func TestVectorHelpers(t *testing.T) {
	if c := Cross(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}); c != 1 {
		t.Errorf("Cross = %v, want 1", c)
	}

	// Component of (1, 1) perpendicular to the x axis, scaled by |x|²
	tp := TripleProduct(mgl64.Vec2{2, 0}, mgl64.Vec2{1, 1}, mgl64.Vec2{2, 0})
	if !vec2ApproxEqual(tp, mgl64.Vec2{0, 4}, 1e-12) {
		t.Errorf("TripleProduct = %v, want (0, 4)", tp)
	}

	if l := Left(mgl64.Vec2{1, 0}); l != (mgl64.Vec2{0, 1}) {
		t.Errorf("Left = %v", l)
	}
	if r := Right(mgl64.Vec2{1, 0}); r != (mgl64.Vec2{0, -1}) {
		t.Errorf("Right = %v", r)
	}

	if v, length := Normalize(mgl64.Vec2{}); length != 0 || v != (mgl64.Vec2{}) {
		t.Errorf("Normalize(zero) = %v, %v", v, length)
	}

	closest := ClosestPointOnSegment(mgl64.Vec2{5, 5}, mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0})
	if closest != (mgl64.Vec2{2, 0}) {
		t.Errorf("ClosestPointOnSegment clamps to endpoint, got %v", closest)
	}
	closest = ClosestPointOnSegment(mgl64.Vec2{1, 5}, mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0})
	if !vec2ApproxEqual(closest, mgl64.Vec2{1, 0}, 1e-12) {
		t.Errorf("ClosestPointOnSegment = %v, want (1, 0)", closest)
	}
}

func TestInterval(t *testing.T) {
	a := Interval{Min: 0, Max: 2}

	tests := []struct {
		name      string
		other     Interval
		overlaps  bool
		overlap   float64
		contained bool
	}{
		{"disjoint", Interval{3, 4}, false, 0, false},
		{"touching", Interval{2, 3}, true, 0, false},
		{"partial", Interval{1, 3}, true, 1, false},
		{"inside", Interval{0.5, 1.5}, true, 1, true},
		{"equal", Interval{0, 2}, true, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.other); got != tt.overlaps {
				t.Errorf("Overlaps = %v, want %v", got, tt.overlaps)
			}
			if got := a.Overlap(tt.other); math.Abs(got-tt.overlap) > 1e-12 {
				t.Errorf("Overlap = %v, want %v", got, tt.overlap)
			}
			if got := a.ContainsExclusive(tt.other); got != tt.contained {
				t.Errorf("ContainsExclusive = %v, want %v", got, tt.contained)
			}
		})
	}
}

func TestNewPolygon(t *testing.T) {
	t.Run("clockwise input is reversed", func(t *testing.T) {
		p, err := NewPolygon(mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1}, mgl64.Vec2{1, 0})
		if err != nil {
			t.Fatalf("NewPolygon: %v", err)
		}
		v := p.Vertices()
		if Cross(v[1].Sub(v[0]), v[2].Sub(v[1])) <= 0 {
			t.Errorf("vertices are not counter-clockwise: %v", v)
		}
	})

	t.Run("normals point outward", func(t *testing.T) {
		p, err := NewRectangle(2, 2)
		if err != nil {
			t.Fatalf("NewRectangle: %v", err)
		}
		vertices := p.Vertices()
		for i, n := range p.Normals() {
			mid := vertices[i].Add(vertices[(i+1)%len(vertices)]).Mul(0.5)
			if n.Dot(mid) <= 0 {
				t.Errorf("normal %d = %v points inward", i, n)
			}
			if math.Abs(n.Len()-1) > 1e-12 {
				t.Errorf("normal %d is not unit length", i)
			}
		}
	})

	t.Run("centroid", func(t *testing.T) {
		p, err := NewPolygon(mgl64.Vec2{0, 0}, mgl64.Vec2{3, 0}, mgl64.Vec2{0, 3})
		if err != nil {
			t.Fatalf("NewPolygon: %v", err)
		}
		if !vec2ApproxEqual(p.Center(), mgl64.Vec2{1, 1}, 1e-12) {
			t.Errorf("Center = %v, want (1, 1)", p.Center())
		}
	})

	invalid := map[string][]mgl64.Vec2{
		"too few":   {{0, 0}, {1, 0}},
		"duplicate": {{0, 0}, {0, 0}, {1, 1}},
		"collinear": {{0, 0}, {1, 0}, {2, 0}},
		"concave":   {{0, 0}, {2, 0}, {1, 0.5}, {2, 2}, {0, 2}},
	}
	for name, vertices := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := NewPolygon(vertices...)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestPolygon_Queries(t *testing.T) {
	square, _ := NewRectangle(1, 1)
	tr := NewTranslation(2, 0)

	t.Run("farthest point", func(t *testing.T) {
		got := square.FarthestPoint(mgl64.Vec2{1, 1}, tr)
		if !vec2ApproxEqual(got, mgl64.Vec2{2.5, 0.5}, 1e-12) {
			t.Errorf("FarthestPoint = %v, want (2.5, 0.5)", got)
		}
	})

	t.Run("farthest point under rotation", func(t *testing.T) {
		rotated := Transform{Rotation: math.Pi / 4}
		got := square.FarthestPoint(mgl64.Vec2{1, 0}, rotated)
		want := math.Sqrt(0.5)
		if math.Abs(got.X()-want) > 1e-12 || math.Abs(got.Y()) > 1e-12 {
			t.Errorf("FarthestPoint = %v, want (%v, 0)", got, want)
		}
	})

	t.Run("project", func(t *testing.T) {
		interval := square.Project(mgl64.Vec2{1, 0}, tr)
		if math.Abs(interval.Min-1.5) > 1e-12 || math.Abs(interval.Max-2.5) > 1e-12 {
			t.Errorf("Project = %+v, want [1.5, 2.5]", interval)
		}
	})

	t.Run("contains", func(t *testing.T) {
		if !square.Contains(mgl64.Vec2{2, 0}, tr) {
			t.Error("center should be contained")
		}
		if !square.Contains(mgl64.Vec2{2.5, 0}, tr) {
			t.Error("boundary should be contained")
		}
		if square.Contains(mgl64.Vec2{0, 0}, tr) {
			t.Error("origin should not be contained")
		}
	})

	t.Run("axes include focus axis", func(t *testing.T) {
		axes := square.Axes([]mgl64.Vec2{{0, 0}}, tr)
		if len(axes) != 5 {
			t.Fatalf("expected 4 normals and 1 focus axis, got %d", len(axes))
		}
		focus := axes[4]
		// Closest vertex is (1.5, -0.5)
		want, _ := Normalize(mgl64.Vec2{-1.5, 0.5})
		if !vec2ApproxEqual(focus, want, 1e-12) {
			t.Errorf("focus axis = %v, want %v", focus, want)
		}
	})

	if foci := square.Foci(tr); len(foci) != 0 {
		t.Errorf("polygon foci should be empty, got %v", foci)
	}
}

func TestCircle(t *testing.T) {
	if _, err := NewCircle(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero radius should be rejected, got %v", err)
	}

	c, err := NewCircle(2)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	tr := NewTranslation(1, 1)

	if got := c.FarthestPoint(mgl64.Vec2{0, 5}, tr); !vec2ApproxEqual(got, mgl64.Vec2{1, 3}, 1e-12) {
		t.Errorf("FarthestPoint = %v, want (1, 3)", got)
	}

	foci := c.Foci(tr)
	if len(foci) != 1 || foci[0] != (mgl64.Vec2{1, 1}) {
		t.Errorf("Foci = %v, want [(1, 1)]", foci)
	}

	axes := c.Axes([]mgl64.Vec2{{1, 5}, {1, 1}}, tr)
	if len(axes) != 1 || !vec2ApproxEqual(axes[0], mgl64.Vec2{0, 1}, 1e-12) {
		t.Errorf("Axes = %v, want [(0, 1)] (coincident focus skipped)", axes)
	}

	interval := c.Project(mgl64.Vec2{1, 0}, tr)
	if interval.Min != -1 || interval.Max != 3 {
		t.Errorf("Project = %+v, want [-1, 3]", interval)
	}

	if !c.Contains(mgl64.Vec2{3, 1}, tr) || c.Contains(mgl64.Vec2{3.1, 1}, tr) {
		t.Error("Contains should include the boundary only")
	}
}

func TestSegment(t *testing.T) {
	if _, err := NewSegment(mgl64.Vec2{1, 1}, mgl64.Vec2{1, 1}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("degenerate segment should be rejected, got %v", err)
	}

	s, err := NewSegment(mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0})
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	tr := NewTransform()

	if s.Length() != 2 {
		t.Errorf("Length = %v, want 2", s.Length())
	}
	if s.Normal() != (mgl64.Vec2{0, -1}) {
		t.Errorf("Normal = %v, want (0, -1)", s.Normal())
	}
	if got := s.FarthestPoint(mgl64.Vec2{-1, 1}, tr); got != (mgl64.Vec2{-1, 0}) {
		t.Errorf("FarthestPoint = %v, want (-1, 0)", got)
	}
	if axes := s.Axes(nil, tr); len(axes) != 2 {
		t.Errorf("expected direction and normal axes, got %v", axes)
	}
	if !s.Contains(mgl64.Vec2{0.5, 0}, tr) || s.Contains(mgl64.Vec2{0.5, 0.1}, tr) {
		t.Error("Contains should accept points on the segment only")
	}
}

func TestNewRay(t *testing.T) {
	r := NewRayToward(mgl64.Vec2{-5, 0}, mgl64.Vec2{0, 0})
	if r.Direction != (mgl64.Vec2{1, 0}) {
		t.Errorf("Direction = %v, want (1, 0)", r.Direction)
	}
	if p := r.PointAt(4); p != (mgl64.Vec2{-1, 0}) {
		t.Errorf("PointAt(4) = %v", p)
	}

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument panic, got %v", err)
		}
	}()
	NewRay(mgl64.Vec2{}, mgl64.Vec2{})
}
