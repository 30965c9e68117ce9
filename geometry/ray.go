package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half line from Start along the unit vector Direction.
type Ray struct {
	Start     mgl64.Vec2
	Direction mgl64.Vec2
}

// NewRay creates a ray, normalizing direction.
// It panics with ErrInvalidArgument if direction is zero.
func NewRay(start, direction mgl64.Vec2) Ray {
	unit, length := Normalize(direction)
	if length == 0 {
		panic(fmt.Errorf("%w: ray direction is zero", ErrInvalidArgument))
	}

	return Ray{Start: start, Direction: unit}
}

// NewRayToward creates a ray from start passing through target.
func NewRayToward(start, target mgl64.Vec2) Ray {
	return NewRay(start, target.Sub(start))
}

// PointAt returns the point at distance t along the ray.
func (r Ray) PointAt(t float64) mgl64.Vec2 {
	return r.Start.Add(r.Direction.Mul(t))
}
