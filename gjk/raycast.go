package gjk

import (
	"math"

	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Raycast returns the first point where ray touches the convex shape.
//
// This is the GJK ray cast by conservative advancement: the ray start is
// pushed forward to the boundary of the support planes found so far while a
// 2 point simplex closes in on the hit point. Rays starting inside the shape
// report no hit. maxLength bounds the hit distance; 0 means unbounded.
// Reaching the iteration cap reports no hit.
func (g *GJK) Raycast(ray geometry.Ray, maxLength float64, c geometry.Convex, t geometry.Transform) (contact.Raycast, bool) {
	geometry.MustConvex(c, "convex")
	geometry.MustMaxLength(maxLength)

	if c.Contains(ray.Start, t) {
		return contact.Raycast{}, false
	}

	lambda := 0.0
	start := ray.Start
	x := start
	r := ray.Direction
	n := mgl64.Vec2{}

	var a, b mgl64.Vec2
	var haveA, haveB bool

	d := t.Apply(c.Center()).Sub(x)
	distanceSqr := math.MaxFloat64

	for iterations := 0; distanceSqr > g.distanceEpsilon; iterations++ {
		if iterations == g.maxIterations {
			return contact.Raycast{}, false
		}

		p := c.FarthestPoint(d, t)
		w := x.Sub(p)

		dDotW := d.Dot(w)
		if dDotW > 0 {
			dDotR := d.Dot(r)
			// The ray moves away from the support plane
			if dDotR >= 0 {
				return contact.Raycast{}, false
			}

			lambda -= dDotW / dDotR
			if maxLength > 0 && lambda > maxLength {
				return contact.Raycast{}, false
			}

			x = start.Add(r.Mul(lambda))
			n = d
		}

		switch {
		case haveA && haveB:
			p1 := geometry.ClosestPointOnSegment(x, a, p)
			p2 := geometry.ClosestPointOnSegment(x, p, b)
			if p1.Sub(x).LenSqr() < p2.Sub(x).LenSqr() {
				b = p
				distanceSqr = p1.Sub(x).LenSqr()
			} else {
				a = p
				distanceSqr = p2.Sub(x).LenSqr()
			}
			d = geometry.TripleProduct(b.Sub(a), x.Sub(a), b.Sub(a))
		case haveA:
			b = p
			haveB = true
			d = geometry.TripleProduct(b.Sub(a), x.Sub(a), b.Sub(a))
		default:
			a = p
			haveA = true
			d = d.Mul(-1)
		}

		// x lies on the line through the simplex edge. It is on the boundary
		// only if it lies on the edge itself; otherwise search toward x from
		// the nearest end.
		if geometry.IsZero(d) && haveB {
			gap := x.Sub(geometry.ClosestPointOnSegment(x, a, b))
			if gap.LenSqr() <= g.distanceEpsilon {
				break
			}
			d = gap
		}
	}

	normal, length := geometry.Normalize(n)
	if length == 0 {
		// Converged without ever reaching a support plane
		return contact.Raycast{}, false
	}

	return contact.Raycast{Point: x, Normal: normal, Distance: lambda}, true
}
