package gjk

import (
	"github.com/akmonengine/feather2d/circle"
	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/akmonengine/feather2d/minkowski"
	"github.com/go-gl/mathgl/mgl64"
)

// Distance reports whether the two shapes are separated and, if so, their
// separation: the normal from shape1 toward shape2, the distance, and the
// closest point on each shape.
//
// Overlapping shapes report false, as do shapes whose centers coincide.
// The loop keeps a 2 point simplex of Minkowski points whose closest point to
// the origin moves toward the true closest point each iteration; it stops once
// a new support point improves the result by less than the distance epsilon.
// Reaching the iteration cap reports the current edge as a best effort.
func (g *GJK) Distance(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) (contact.Separation, bool) {
	geometry.MustConvex(c1, "convex1")
	geometry.MustConvex(c2, "convex2")

	if circle1, circle2, ok := circles(c1, c2); ok {
		return circle.Distance(circle1, t1, circle2, t2)
	}

	difference := minkowski.NewDifference(c1, t1, c2, t2)

	d := difference.InitialDirection()
	if geometry.IsZero(d) {
		return contact.Separation{}, false
	}

	a := difference.SupportPoint(d)
	b := difference.SupportPoint(d.Mul(-1))

	// Closest point of the current edge to the origin
	d = geometry.ClosestPointOnSegment(mgl64.Vec2{}, a.Point, b.Point)

	for i := 0; i < g.maxIterations; i++ {
		// Search from the closest point toward the origin
		d = d.Mul(-1)
		if d.LenSqr() <= geometry.Epsilon {
			// The origin lies on the edge
			return contact.Separation{}, false
		}

		c := difference.SupportPoint(d)
		if triangleContainsOrigin(a.Point, b.Point, c.Point) {
			return contact.Separation{}, false
		}

		// No meaningful progress toward the origin: the edge is final
		projection := c.Point.Dot(d)
		if projection-a.Point.Dot(d) < g.distanceEpsilon {
			return separation(d, c, a, b), true
		}

		p1 := geometry.ClosestPointOnSegment(mgl64.Vec2{}, a.Point, c.Point)
		p2 := geometry.ClosestPointOnSegment(mgl64.Vec2{}, c.Point, b.Point)
		p1Mag := p1.LenSqr()
		p2Mag := p2.LenSqr()

		if p1Mag <= geometry.Epsilon {
			return edgeSeparation(d, p1, a, c), true
		}
		if p2Mag <= geometry.Epsilon {
			return edgeSeparation(d, p2, c, b), true
		}

		// Keep the sub-edge closer to the origin
		if p1Mag < p2Mag {
			b = c
			d = p1
		} else {
			a = c
			d = p2
		}
	}

	// d holds the closest point of the current edge, not yet negated
	return edgeSeparation(d.Mul(-1), d, a, b), true
}

// separation builds the result when the edge {a, b} is final.
// d points from the Minkowski difference toward the origin.
func separation(d mgl64.Vec2, c, a, b minkowski.Point) contact.Separation {
	normal, _ := geometry.Normalize(d)
	p1, p2 := closestPoints(a, b)

	return contact.Separation{
		Normal:   normal,
		Distance: -c.Point.Dot(normal),
		Point1:   p1,
		Point2:   p2,
	}
}

// edgeSeparation builds the result from the closest point of the edge {a, b}.
// It is used when a candidate sub-edge passes through the origin within
// epsilon, where the reported distance is that near-zero distance, and when
// the iteration cap is reached.
func edgeSeparation(d, closest mgl64.Vec2, a, b minkowski.Point) contact.Separation {
	normal, _ := geometry.Normalize(d)
	_, distance := geometry.Normalize(closest)
	p1, p2 := closestPoints(a, b)

	return contact.Separation{
		Normal:   normal,
		Distance: distance,
		Point1:   p1,
		Point2:   p2,
	}
}

// closestPoints recovers the closest point on each shape from the final edge.
//
// The closest point of the edge to the origin is a + (b - a)*t. The same t
// interpolates the generating support points. Corners of a polygon would do
// without this, but curved features would not.
func closestPoints(a, b minkowski.Point) (mgl64.Vec2, mgl64.Vec2) {
	l := b.Point.Sub(a.Point)
	if geometry.IsZero(l) {
		return a.SupportPoint1, a.SupportPoint2
	}

	t := mgl64.Clamp(-l.Dot(a.Point)/l.Dot(l), 0, 1)

	p1 := a.SupportPoint1.Add(b.SupportPoint1.Sub(a.SupportPoint1).Mul(t))
	p2 := a.SupportPoint2.Add(b.SupportPoint2.Sub(a.SupportPoint2).Mul(t))
	return p1, p2
}

// triangleContainsOrigin reports whether the origin is strictly inside abc.
func triangleContainsOrigin(a, b, c mgl64.Vec2) bool {
	sa := geometry.Cross(a, b)
	sb := geometry.Cross(b, c)
	sc := geometry.Cross(c, a)
	return sa*sb > 0 && sa*sc > 0
}
