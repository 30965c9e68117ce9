// Package sat implements the Separating Axis Theorem for 2D convex shapes.
//
// Two convex shapes are disjoint iff some axis exists on which their
// projections do not overlap. For polygons the edge normals of both shapes are
// enough; curved features need the extra axes toward the other shape's foci.
package sat

import (
	"math"

	"github.com/akmonengine/feather2d/circle"
	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// SAT is a narrow-phase detector. It has no configuration and is safe for
// concurrent use.
type SAT struct{}

// New returns a SAT detector.
func New() *SAT {
	return &SAT{}
}

func circles(c1, c2 geometry.Convex) (*geometry.Circle, *geometry.Circle, bool) {
	circle1, ok1 := c1.(*geometry.Circle)
	circle2, ok2 := c2.(*geometry.Circle)
	return circle1, circle2, ok1 && ok2 && circle1 != nil && circle2 != nil
}

// axes collects the candidate axes of the pair: each shape's own axes, built
// against the other shape's foci.
func axes(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) ([]mgl64.Vec2, []mgl64.Vec2) {
	foci1 := c1.Foci(t1)
	foci2 := c2.Foci(t2)
	return c1.Axes(foci2, t1), c2.Axes(foci1, t2)
}

// Detect reports whether the two shapes overlap. Touching shapes overlap.
func (s *SAT) Detect(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) bool {
	geometry.MustConvex(c1, "convex1")
	geometry.MustConvex(c2, "convex2")

	if circle1, circle2, ok := circles(c1, c2); ok {
		return circle.Detect(circle1, t1, circle2, t2)
	}

	tested := false
	axes1, axes2 := axes(c1, t1, c2, t2)
	for _, set := range [2][]mgl64.Vec2{axes1, axes2} {
		for _, axis := range set {
			if geometry.IsZero(axis) {
				continue
			}
			if !c1.Project(axis, t1).Overlaps(c2.Project(axis, t2)) {
				return false
			}
			tested = true
		}
	}

	// Without a single axis nothing was proven
	return tested
}

// Penetration reports whether the two shapes overlap and, if so, the axis of
// minimum overlap as the normal, oriented from shape1's world center toward
// shape2's.
func (s *SAT) Penetration(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) (contact.Penetration, bool) {
	geometry.MustConvex(c1, "convex1")
	geometry.MustConvex(c2, "convex2")

	if circle1, circle2, ok := circles(c1, c2); ok {
		return circle.Penetration(circle1, t1, circle2, t2)
	}

	var normal mgl64.Vec2
	found := false
	minOverlap := math.MaxFloat64

	axes1, axes2 := axes(c1, t1, c2, t2)
	for _, set := range [2][]mgl64.Vec2{axes1, axes2} {
		for _, axis := range set {
			if geometry.IsZero(axis) {
				continue
			}

			interval1 := c1.Project(axis, t1)
			interval2 := c2.Project(axis, t2)
			if !interval1.Overlaps(interval2) {
				return contact.Penetration{}, false
			}

			overlap := interval1.Overlap(interval2)

			// Containment: the overlap alone underestimates the translation.
			// Add the smaller end gap and point the axis at that end.
			if interval1.ContainsExclusive(interval2) || interval2.ContainsExclusive(interval1) {
				maxGap := math.Abs(interval1.Max - interval2.Max)
				minGap := math.Abs(interval1.Min - interval2.Min)
				if maxGap > minGap {
					axis = axis.Mul(-1)
					overlap += minGap
				} else {
					overlap += maxGap
				}
			}

			if overlap < minOverlap {
				minOverlap = overlap
				normal = axis
				found = true
			}
		}
	}

	if !found {
		// Neither shape produced an axis
		return contact.Penetration{}, false
	}

	c1c := t1.Apply(c1.Center())
	c2c := t2.Apply(c2.Center())
	if c2c.Sub(c1c).Dot(normal) < 0 {
		normal = normal.Mul(-1)
	}

	return contact.Penetration{Normal: normal, Depth: minOverlap}, true
}
