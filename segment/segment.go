// Package segment implements the closed-form raycast against a line segment.
package segment

import (
	"fmt"
	"math"

	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Raycast returns the first intersection of ray with the segment.
//
// The ray p0 + d0*t and the segment p1 + d1*s (s in [0, 1]) are solved as two
// parametric lines. When the lines are parallel the determinant vanishes; if
// they are also collinear, the hit is the nearest segment endpoint in front of
// the ray start. maxLength bounds the hit distance; 0 means unbounded.
//
// The reported normal always faces against the ray direction.
func Raycast(ray geometry.Ray, maxLength float64, s *geometry.Segment, t geometry.Transform) (contact.Raycast, bool) {
	if s == nil {
		panic(fmt.Errorf("%w: segment is nil", geometry.ErrInvalidArgument))
	}
	geometry.MustMaxLength(maxLength)

	a, b := s.Points()
	p0 := ray.Start
	d0 := ray.Direction
	p1 := t.Apply(a)
	p2 := t.Apply(b)
	d1 := p2.Sub(p1)

	w := p1.Sub(p0)
	det := geometry.Cross(d1, d0)

	if math.Abs(det) <= geometry.Epsilon*d1.Len() {
		return parallel(ray, maxLength, p1, p2, w)
	}

	distance := geometry.Cross(d1, w) / det
	if distance < 0 {
		return contact.Raycast{}, false
	}
	if maxLength > 0 && distance > maxLength {
		return contact.Raycast{}, false
	}

	param := geometry.Cross(d0, w) / det
	if param < 0 || param > 1 {
		return contact.Raycast{}, false
	}

	normal := t.ApplyVector(s.Normal())
	if normal.Dot(d0) > 0 {
		normal = normal.Mul(-1)
	}

	return contact.Raycast{
		Point:    ray.PointAt(distance),
		Normal:   normal,
		Distance: distance,
	}, true
}

// parallel handles a ray parallel to the segment.
// Only a collinear segment can be hit, at one of its endpoints.
func parallel(ray geometry.Ray, maxLength float64, p1, p2, w mgl64.Vec2) (contact.Raycast, bool) {
	// Offset lines never meet
	if math.Abs(geometry.Cross(ray.Direction, w)) > geometry.SqrtEpsilon {
		return contact.Raycast{}, false
	}

	l1 := p1.Sub(ray.Start).Dot(ray.Direction)
	l2 := p2.Sub(ray.Start).Dot(ray.Direction)
	if l1 < 0 && l2 < 0 {
		return contact.Raycast{}, false
	}

	var distance float64
	var point mgl64.Vec2
	switch {
	case l1 < 0:
		distance, point = l2, p2
	case l2 < 0:
		distance, point = l1, p1
	case l1 < l2:
		distance, point = l1, p1
	default:
		distance, point = l2, p2
	}

	if maxLength > 0 && distance > maxLength {
		return contact.Raycast{}, false
	}

	return contact.Raycast{
		Point:    point,
		Normal:   ray.Direction.Mul(-1),
		Distance: distance,
	}, true
}
