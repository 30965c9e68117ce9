package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// Epsilon is the machine epsilon for float64.
	Epsilon = math.Nextafter(1, 2) - 1

	// SqrtEpsilon is the default distance tolerance of the iterative algorithms.
	SqrtEpsilon = math.Sqrt(Epsilon)
)

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// TripleProduct computes (a × b) × c with z = 0, which is b(a·c) - a(b·c).
//
// With a = c = edge and b = toward origin, it yields the component of b
// perpendicular to the edge, which is how GJK builds its search direction.
func TripleProduct(a, b, c mgl64.Vec2) mgl64.Vec2 {
	return b.Mul(a.Dot(c)).Sub(a.Mul(b.Dot(c)))
}

// Left returns v rotated by +90 degrees.
func Left(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}

// Right returns v rotated by -90 degrees.
func Right(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{v[1], -v[0]}
}

// IsZero reports whether v has no usable direction.
func IsZero(v mgl64.Vec2) bool {
	return v.LenSqr() <= Epsilon*Epsilon
}

// Normalize returns v with unit length and its original length.
// A zero vector is returned unchanged with a length of 0.
func Normalize(v mgl64.Vec2) (mgl64.Vec2, float64) {
	length := v.Len()
	if length <= Epsilon {
		return v, 0
	}
	return v.Mul(1.0 / length), length
}

// ClosestPointOnSegment returns the point of segment [a, b] closest to point.
// A degenerate segment returns a.
func ClosestPointOnSegment(point, a, b mgl64.Vec2) mgl64.Vec2 {
	ab := b.Sub(a)
	lengthSqr := ab.LenSqr()
	if lengthSqr <= Epsilon {
		return a
	}

	t := point.Sub(a).Dot(ab) / lengthSqr
	t = mgl64.Clamp(t, 0, 1)

	return a.Add(ab.Mul(t))
}
