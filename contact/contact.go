// Package contact holds the results produced by the narrow-phase detectors.
//
// Results are plain values. A query that finds nothing returns the zero value
// together with ok == false, so a result is never observed half populated.
package contact

import "github.com/go-gl/mathgl/mgl64"

// Penetration describes how two overlapping shapes intersect.
//
// Normal is a unit vector pointing from the first shape toward the second.
// Moving the second shape by Normal*Depth (or the first by -Normal*Depth)
// brings the pair to touching contact.
type Penetration struct {
	Normal mgl64.Vec2 `msgpack:"normal"`
	Depth  float64    `msgpack:"depth"`
}

// Translation returns the minimum translation vector Normal * Depth.
func (p Penetration) Translation() mgl64.Vec2 {
	return p.Normal.Mul(p.Depth)
}

// Separation describes how far apart two disjoint shapes are.
//
// Normal is a unit vector pointing from the first shape toward the second;
// Point1 lies on the first shape and Point2 on the second, with
// Point2 - Point1 == Normal * Distance.
type Separation struct {
	Normal   mgl64.Vec2 `msgpack:"normal"`
	Distance float64    `msgpack:"distance"`
	Point1   mgl64.Vec2 `msgpack:"point1"`
	Point2   mgl64.Vec2 `msgpack:"point2"`
}

// Vector returns Normal * Distance.
func (s Separation) Vector() mgl64.Vec2 {
	return s.Normal.Mul(s.Distance)
}

// Raycast describes the first point where a ray touches a shape.
//
// Normal is the unit surface normal at Point, facing against the ray.
// Distance is measured along the ray from its start.
type Raycast struct {
	Point    mgl64.Vec2 `msgpack:"point"`
	Normal   mgl64.Vec2 `msgpack:"normal"`
	Distance float64    `msgpack:"distance"`
}
