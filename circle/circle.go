// Package circle implements closed-form collision queries for circles.
//
// Circle pairs never need the iterative algorithms: the relationship of two
// circles is fully described by the distance between their centers and the
// sum of their radii. The GJK and SAT detectors route circle pairs here.
package circle

import (
	"fmt"
	"math"

	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultNormal is used when both centers coincide and no direction exists
var DefaultNormal = mgl64.Vec2{1, 0}

// mustCircle catches typed nil pointers, which geometry.MustConvex cannot see
func mustCircle(c *geometry.Circle, name string) {
	if c == nil {
		panic(fmt.Errorf("%w: %s is nil", geometry.ErrInvalidArgument, name))
	}
}

func centers(c1 *geometry.Circle, t1 geometry.Transform, c2 *geometry.Circle, t2 geometry.Transform) (mgl64.Vec2, mgl64.Vec2) {
	return t1.Apply(c1.Center()), t2.Apply(c2.Center())
}

// Detect reports whether two circles overlap. Touching circles do not.
func Detect(c1 *geometry.Circle, t1 geometry.Transform, c2 *geometry.Circle, t2 geometry.Transform) bool {
	mustCircle(c1, "convex1")
	mustCircle(c2, "convex2")

	ce1, ce2 := centers(c1, t1, c2, t2)
	radii := c1.Radius() + c2.Radius()

	return ce2.Sub(ce1).LenSqr() < radii*radii
}

// Penetration returns the penetration of two overlapping circles.
// The normal points from c1 toward c2; coincident centers use DefaultNormal.
func Penetration(c1 *geometry.Circle, t1 geometry.Transform, c2 *geometry.Circle, t2 geometry.Transform) (contact.Penetration, bool) {
	mustCircle(c1, "convex1")
	mustCircle(c2, "convex2")

	ce1, ce2 := centers(c1, t1, c2, t2)
	radii := c1.Radius() + c2.Radius()

	v := ce2.Sub(ce1)
	if v.LenSqr() >= radii*radii {
		return contact.Penetration{}, false
	}

	normal, distance := geometry.Normalize(v)
	if distance == 0 {
		normal = DefaultNormal
	}

	return contact.Penetration{Normal: normal, Depth: radii - distance}, true
}

// Distance returns the separation of two disjoint circles.
// Overlapping circles report false; touching circles report a distance of 0.
func Distance(c1 *geometry.Circle, t1 geometry.Transform, c2 *geometry.Circle, t2 geometry.Transform) (contact.Separation, bool) {
	mustCircle(c1, "convex1")
	mustCircle(c2, "convex2")

	ce1, ce2 := centers(c1, t1, c2, t2)
	r1, r2 := c1.Radius(), c2.Radius()
	radii := r1 + r2

	v := ce2.Sub(ce1)
	if v.LenSqr() < radii*radii {
		return contact.Separation{}, false
	}

	normal, distance := geometry.Normalize(v)

	return contact.Separation{
		Normal:   normal,
		Distance: distance - radii,
		Point1:   ce1.Add(normal.Mul(r1)),
		Point2:   ce2.Sub(normal.Mul(r2)),
	}, true
}

// Raycast returns the first intersection of ray with the circle.
//
// Rays starting inside the circle report no hit. maxLength bounds the hit
// distance; 0 means unbounded.
func Raycast(ray geometry.Ray, maxLength float64, c *geometry.Circle, t geometry.Transform) (contact.Raycast, bool) {
	mustCircle(c, "circle")
	geometry.MustMaxLength(maxLength)

	center := t.Apply(c.Center())
	r := c.Radius()

	if c.Contains(ray.Start, t) {
		return contact.Raycast{}, false
	}

	// |s + d*t - center|² = r², with |d| = 1
	p := ray.Start.Sub(center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(p)
	cc := p.Dot(p) - r*r

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return contact.Raycast{}, false
	}

	var hit float64
	if discriminant <= geometry.Epsilon {
		hit = -b / (2 * a)
	} else {
		sqrt := math.Sqrt(discriminant)
		t1 := (-b - sqrt) / (2 * a)
		t2 := (-b + sqrt) / (2 * a)
		switch {
		case t1 >= 0:
			hit = t1
		case t2 >= 0:
			hit = t2
		default:
			return contact.Raycast{}, false
		}
	}

	if hit < 0 {
		return contact.Raycast{}, false
	}
	if maxLength > 0 && hit > maxLength {
		return contact.Raycast{}, false
	}

	point := ray.PointAt(hit)
	normal, _ := geometry.Normalize(point.Sub(center))

	return contact.Raycast{Point: point, Normal: normal, Distance: hit}, true
}
