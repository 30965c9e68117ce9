// Package minkowski provides the support function of the Minkowski difference
// of two transformed convex shapes, shared by GJK and EPA.
//
// The Minkowski difference A - B is the set of all vectors (a - b) where a ∈ A
// and b ∈ B. It contains the origin iff A and B overlap. Neither algorithm
// builds it; both only ask for its extreme point in a given direction.
package minkowski

import (
	"github.com/akmonengine/feather2d/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Difference is the Minkowski difference of two transformed convex shapes.
type Difference struct {
	Convex1    geometry.Convex
	Transform1 geometry.Transform
	Convex2    geometry.Convex
	Transform2 geometry.Transform
}

// NewDifference builds the difference shape1 - shape2.
func NewDifference(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) Difference {
	return Difference{Convex1: c1, Transform1: t1, Convex2: c2, Transform2: t2}
}

// Point is a point of the Minkowski difference together with the two support
// points that generated it. Closest points on curved shapes can only be
// recovered from these pairs.
type Point struct {
	Point         mgl64.Vec2
	SupportPoint1 mgl64.Vec2
	SupportPoint2 mgl64.Vec2
}

// Support returns the point of the difference farthest along direction:
//
//	farthest(A, direction) - farthest(B, -direction)
//
// direction need not be normalized. A zero direction is a caller error.
func (d Difference) Support(direction mgl64.Vec2) mgl64.Vec2 {
	p1 := d.Convex1.FarthestPoint(direction, d.Transform1)
	p2 := d.Convex2.FarthestPoint(direction.Mul(-1), d.Transform2)
	return p1.Sub(p2)
}

// SupportPoint is Support keeping the generating points.
func (d Difference) SupportPoint(direction mgl64.Vec2) Point {
	p1 := d.Convex1.FarthestPoint(direction, d.Transform1)
	p2 := d.Convex2.FarthestPoint(direction.Mul(-1), d.Transform2)
	return Point{
		Point:         p1.Sub(p2),
		SupportPoint1: p1,
		SupportPoint2: p2,
	}
}

// InitialDirection returns the vector between the world centers, from shape1
// toward shape2. It is zero when the centers coincide.
func (d Difference) InitialDirection() mgl64.Vec2 {
	c1 := d.Transform1.Apply(d.Convex1.Center())
	c2 := d.Transform2.Apply(d.Convex2.Center())
	return c2.Sub(c1)
}

// Simplex is an ordered set of 1-3 points of the difference.
// Points[Count-1] is always the most recent support point.
type Simplex struct {
	Points [3]mgl64.Vec2
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

// Add appends a point. Adding to a full simplex is a caller error.
func (s *Simplex) Add(point mgl64.Vec2) {
	s.Points[s.Count] = point
	s.Count++
}

// Last returns the most recent point.
func (s *Simplex) Last() mgl64.Vec2 {
	return s.Points[s.Count-1]
}

// Slice returns the live points, oldest first.
func (s *Simplex) Slice() []mgl64.Vec2 {
	return s.Points[:s.Count]
}
