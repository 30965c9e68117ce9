package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Convex is the capability every collision shape must implement.
// Shapes are defined in local space; the transform places them in the world.
type Convex interface {
	// Center returns the local center of the shape
	Center() mgl64.Vec2
	// FarthestPoint returns the world point farthest along direction.
	// direction need not be normalized but must not be zero.
	FarthestPoint(direction mgl64.Vec2, transform Transform) mgl64.Vec2
	// Axes returns the candidate separating axes in world space (unit length),
	// given the foci of the other shape. May be empty.
	Axes(foci []mgl64.Vec2, transform Transform) []mgl64.Vec2
	// Foci returns the world space curvature reference points. May be empty.
	Foci(transform Transform) []mgl64.Vec2
	// Project returns the interval of the shape along a unit axis.
	Project(axis mgl64.Vec2, transform Transform) Interval
	// Contains reports whether the world point lies in the shape.
	Contains(point mgl64.Vec2, transform Transform) bool
}

// focusAxes builds one axis per focus, from the closest world vertex toward it.
func focusAxes(foci []mgl64.Vec2, vertices []mgl64.Vec2, transform Transform) []mgl64.Vec2 {
	axes := make([]mgl64.Vec2, 0, len(foci))
	for _, focus := range foci {
		closest := mgl64.Vec2{}
		minDistance := math.MaxFloat64
		for _, v := range vertices {
			world := transform.Apply(v)
			if d := focus.Sub(world).LenSqr(); d < minDistance {
				minDistance = d
				closest = world
			}
		}

		axis, length := Normalize(focus.Sub(closest))
		if length > 0 {
			axes = append(axes, axis)
		}
	}
	return axes
}

// Circle represents a circular collision shape
type Circle struct {
	radius float64
	center mgl64.Vec2
}

// NewCircle creates a circle centered on the local origin
func NewCircle(radius float64) (*Circle, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: circle radius %v must be positive", ErrInvalidArgument, radius)
	}
	return &Circle{radius: radius}, nil
}

func (c *Circle) Radius() float64 {
	return c.radius
}

func (c *Circle) Center() mgl64.Vec2 {
	return c.center
}

func (c *Circle) FarthestPoint(direction mgl64.Vec2, transform Transform) mgl64.Vec2 {
	unit, _ := Normalize(direction)
	return transform.Apply(c.center).Add(unit.Mul(c.radius))
}

// Axes of a circle are only the axes toward the other shape's foci;
// a circle has no edge normals.
func (c *Circle) Axes(foci []mgl64.Vec2, transform Transform) []mgl64.Vec2 {
	center := transform.Apply(c.center)
	axes := make([]mgl64.Vec2, 0, len(foci))
	for _, focus := range foci {
		axis, length := Normalize(focus.Sub(center))
		if length > 0 {
			axes = append(axes, axis)
		}
	}
	return axes
}

func (c *Circle) Foci(transform Transform) []mgl64.Vec2 {
	return []mgl64.Vec2{transform.Apply(c.center)}
}

func (c *Circle) Project(axis mgl64.Vec2, transform Transform) Interval {
	projection := transform.Apply(c.center).Dot(axis)
	return Interval{Min: projection - c.radius, Max: projection + c.radius}
}

func (c *Circle) Contains(point mgl64.Vec2, transform Transform) bool {
	return point.Sub(transform.Apply(c.center)).LenSqr() <= c.radius*c.radius
}

// Polygon represents a convex polygon with counter-clockwise vertices
type Polygon struct {
	vertices []mgl64.Vec2
	normals  []mgl64.Vec2
	center   mgl64.Vec2
}

// NewPolygon creates a convex polygon. Clockwise input is reversed.
// It rejects fewer than 3 vertices, duplicate vertices, collinear
// vertices and concave outlines.
func NewPolygon(vertices ...mgl64.Vec2) (*Polygon, error) {
	n := len(vertices)
	if n < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrInvalidArgument, n)
	}

	points := make([]mgl64.Vec2, n)
	copy(points, vertices)

	sign := 0.0
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		c := points[(i+2)%n]
		if b.Sub(a).LenSqr() <= Epsilon {
			return nil, fmt.Errorf("%w: polygon has duplicate vertices at index %d", ErrInvalidArgument, i)
		}

		cross := Cross(b.Sub(a), c.Sub(b))
		if math.Abs(cross) <= Epsilon {
			return nil, fmt.Errorf("%w: polygon has collinear vertices at index %d", ErrInvalidArgument, (i+1)%n)
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Copysign(1, cross) != sign {
			return nil, fmt.Errorf("%w: polygon is not convex", ErrInvalidArgument)
		}
	}

	if sign < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}

	normals := make([]mgl64.Vec2, n)
	for i := 0; i < n; i++ {
		edge := points[(i+1)%n].Sub(points[i])
		normals[i], _ = Normalize(Right(edge))
	}

	return &Polygon{
		vertices: points,
		normals:  normals,
		center:   polygonCentroid(points),
	}, nil
}

// NewRectangle creates an axis-aligned rectangle centered on the local origin
func NewRectangle(width, height float64) (*Polygon, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: rectangle size %vx%v must be positive", ErrInvalidArgument, width, height)
	}
	hw, hh := width/2, height/2

	return NewPolygon(
		mgl64.Vec2{-hw, -hh},
		mgl64.Vec2{hw, -hh},
		mgl64.Vec2{hw, hh},
		mgl64.Vec2{-hw, hh},
	)
}

// polygonCentroid computes the area centroid of a simple polygon
func polygonCentroid(points []mgl64.Vec2) mgl64.Vec2 {
	// Use the first vertex as the reference to limit cancellation
	ref := points[0]
	area := 0.0
	centroid := mgl64.Vec2{}
	for i := 1; i < len(points)-1; i++ {
		e1 := points[i].Sub(ref)
		e2 := points[i+1].Sub(ref)
		a := Cross(e1, e2) / 2
		area += a
		centroid = centroid.Add(e1.Add(e2).Mul(a / 3))
	}

	return ref.Add(centroid.Mul(1 / area))
}

// Vertices returns a copy of the local vertices in counter-clockwise order
func (p *Polygon) Vertices() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(p.vertices))
	copy(out, p.vertices)
	return out
}

// Normals returns a copy of the local outward edge normals.
// Normal i belongs to the edge from vertex i to vertex i+1.
func (p *Polygon) Normals() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(p.normals))
	copy(out, p.normals)
	return out
}

func (p *Polygon) Center() mgl64.Vec2 {
	return p.center
}

func (p *Polygon) FarthestPoint(direction mgl64.Vec2, transform Transform) mgl64.Vec2 {
	local := transform.ApplyInverseVector(direction)

	best := 0
	bestDot := p.vertices[0].Dot(local)
	for i := 1; i < len(p.vertices); i++ {
		if d := p.vertices[i].Dot(local); d > bestDot {
			bestDot = d
			best = i
		}
	}

	return transform.Apply(p.vertices[best])
}

func (p *Polygon) Axes(foci []mgl64.Vec2, transform Transform) []mgl64.Vec2 {
	axes := make([]mgl64.Vec2, 0, len(p.normals)+len(foci))
	for _, n := range p.normals {
		axes = append(axes, transform.ApplyVector(n))
	}
	return append(axes, focusAxes(foci, p.vertices, transform)...)
}

// Foci of a polygon are empty: it has no curved features.
func (p *Polygon) Foci(transform Transform) []mgl64.Vec2 {
	return nil
}

func (p *Polygon) Project(axis mgl64.Vec2, transform Transform) Interval {
	interval := Interval{Min: math.MaxFloat64, Max: -math.MaxFloat64}
	for _, v := range p.vertices {
		d := transform.Apply(v).Dot(axis)
		interval.Min = math.Min(interval.Min, d)
		interval.Max = math.Max(interval.Max, d)
	}
	return interval
}

// Contains includes the boundary.
func (p *Polygon) Contains(point mgl64.Vec2, transform Transform) bool {
	local := transform.ApplyInverse(point)
	n := len(p.vertices)
	for i := 0; i < n; i++ {
		a := p.vertices[i]
		b := p.vertices[(i+1)%n]
		if Cross(b.Sub(a), local.Sub(a)) < 0 {
			return false
		}
	}
	return true
}

// Segment represents a line segment collision shape
type Segment struct {
	points [2]mgl64.Vec2
	normal mgl64.Vec2
	length float64
}

// NewSegment creates a segment between two distinct local points
func NewSegment(a, b mgl64.Vec2) (*Segment, error) {
	edge, length := Normalize(b.Sub(a))
	if length == 0 {
		return nil, fmt.Errorf("%w: segment endpoints are identical", ErrInvalidArgument)
	}

	return &Segment{
		points: [2]mgl64.Vec2{a, b},
		normal: Right(edge),
		length: length,
	}, nil
}

// Points returns the local endpoints
func (s *Segment) Points() (mgl64.Vec2, mgl64.Vec2) {
	return s.points[0], s.points[1]
}

// Normal returns the local unit normal, the right perpendicular of a→b
func (s *Segment) Normal() mgl64.Vec2 {
	return s.normal
}

func (s *Segment) Length() float64 {
	return s.length
}

func (s *Segment) Center() mgl64.Vec2 {
	return s.points[0].Add(s.points[1]).Mul(0.5)
}

func (s *Segment) FarthestPoint(direction mgl64.Vec2, transform Transform) mgl64.Vec2 {
	local := transform.ApplyInverseVector(direction)
	if s.points[1].Dot(local) > s.points[0].Dot(local) {
		return transform.Apply(s.points[1])
	}
	return transform.Apply(s.points[0])
}

// Axes of a segment are its direction and its normal, plus the focus axes.
func (s *Segment) Axes(foci []mgl64.Vec2, transform Transform) []mgl64.Vec2 {
	edge := s.points[1].Sub(s.points[0]).Mul(1 / s.length)
	axes := []mgl64.Vec2{
		transform.ApplyVector(edge),
		transform.ApplyVector(s.normal),
	}
	return append(axes, focusAxes(foci, s.points[:], transform)...)
}

func (s *Segment) Foci(transform Transform) []mgl64.Vec2 {
	return nil
}

func (s *Segment) Project(axis mgl64.Vec2, transform Transform) Interval {
	d0 := transform.Apply(s.points[0]).Dot(axis)
	d1 := transform.Apply(s.points[1]).Dot(axis)
	return Interval{Min: math.Min(d0, d1), Max: math.Max(d0, d1)}
}

// Contains reports whether point lies on the segment, within SqrtEpsilon.
func (s *Segment) Contains(point mgl64.Vec2, transform Transform) bool {
	local := transform.ApplyInverse(point)
	closest := ClosestPointOnSegment(local, s.points[0], s.points[1])
	return closest.Sub(local).Len() <= SqrtEpsilon
}
