// Package feather2d is the narrow phase of a 2D rigid-body physics engine.
//
// Given two convex shapes under independent rigid transforms it answers
// whether they intersect, how deeply, how far apart they are, and where a ray
// first touches a shape. The algorithms live in sub-packages (gjk, epa, sat,
// circle, segment); this package ties them behind narrow interfaces, routes
// pairs between detectors and runs batches of candidate pairs from a broad phase.
package feather2d

import (
	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/akmonengine/feather2d/sat"
)

// ErrInvalidArgument reports a violated precondition at the API boundary.
var ErrInvalidArgument = geometry.ErrInvalidArgument

// Detector answers boolean and penetration queries for a shape pair.
type Detector interface {
	Detect(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) bool
	Penetration(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) (contact.Penetration, bool)
}

// DistanceDetector answers separation queries for a disjoint shape pair.
type DistanceDetector interface {
	Distance(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) (contact.Separation, bool)
}

// RaycastDetector finds where a ray first touches a shape.
type RaycastDetector interface {
	Raycast(ray geometry.Ray, maxLength float64, c geometry.Convex, t geometry.Transform) (contact.Raycast, bool)
}

var (
	_ Detector         = (*gjk.GJK)(nil)
	_ Detector         = (*sat.SAT)(nil)
	_ Detector         = (*Fallback)(nil)
	_ DistanceDetector = (*gjk.GJK)(nil)
	_ RaycastDetector  = (*gjk.GJK)(nil)
	_ RaycastDetector  = (*Raycaster)(nil)
)
