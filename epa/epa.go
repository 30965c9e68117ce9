// Package epa implements the Expanding Polytope Algorithm for computing penetration depth.
//
// EPA is run after GJK detects a collision to determine:
//   - Penetration depth (how far shapes overlap)
//   - Penetration normal (direction to separate shapes)
//
// The algorithm expands a polytope (starting from GJK's terminal simplex) in the
// Minkowski difference space, always pushing out the edge closest to the origin.
// When that edge cannot be pushed any further, its normal and distance are the
// Minimum Translation Vector (MTV) separating the shapes.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"fmt"

	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/akmonengine/feather2d/minkowski"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultMaxIterations limits polytope expansion.
	// If this limit is reached, EPA reports its current closest edge.
	DefaultMaxIterations = 100

	// MinMaxIterations is the smallest accepted iteration cap.
	MinMaxIterations = 5

	// Small initial capacity for the edge heap - grows dynamically as needed
	polytopeInitialCapacity = 4
)

// DefaultNormal is reported when the simplex is too degenerate to yield any edge.
var DefaultNormal = mgl64.Vec2{1, 0}

// EPA computes penetration depth and normal for overlapping convex shapes.
// The zero value is not usable; create one with New.
type EPA struct {
	maxIterations   int
	distanceEpsilon float64
}

// New returns an EPA solver with the default configuration:
// DefaultMaxIterations and a distance epsilon of sqrt(machine epsilon).
func New() *EPA {
	return &EPA{
		maxIterations:   DefaultMaxIterations,
		distanceEpsilon: geometry.SqrtEpsilon,
	}
}

func (e *EPA) MaxIterations() int {
	return e.maxIterations
}

// SetMaxIterations changes the iteration cap. Values below MinMaxIterations are rejected.
func (e *EPA) SetMaxIterations(maxIterations int) error {
	if maxIterations < MinMaxIterations {
		return fmt.Errorf("%w: EPA max iterations %d is below %d", geometry.ErrInvalidArgument, maxIterations, MinMaxIterations)
	}
	e.maxIterations = maxIterations
	return nil
}

func (e *EPA) DistanceEpsilon() float64 {
	return e.distanceEpsilon
}

// SetDistanceEpsilon changes the convergence tolerance. It must be positive.
func (e *EPA) SetDistanceEpsilon(epsilon float64) error {
	if !(epsilon > 0) {
		return fmt.Errorf("%w: EPA distance epsilon %v must be positive", geometry.ErrInvalidArgument, epsilon)
	}
	e.distanceEpsilon = epsilon
	return nil
}

// Penetration expands the terminal simplex of an intersecting GJK run until
// the closest edge of the Minkowski difference is found.
//
// Algorithm overview:
//  1. Build the initial polytope edges from the simplex
//  2. Take the edge closest to the origin
//  3. Get the support point along that edge's normal
//  4. If the support point does not pass the edge by at least the epsilon → done
//  5. Otherwise split the edge at the support point
//  6. Repeat from step 2
//
// The normal points from shape1 toward shape2 and the depth is non-negative.
// Reaching the iteration cap reports the current closest edge as a best effort.
func (e *EPA) Penetration(simplex *minkowski.Simplex, difference minkowski.Difference) contact.Penetration {
	polytope := NewPolytope(simplex.Slice())

	for i := 0; i < e.maxIterations; i++ {
		edge, ok := polytope.ClosestEdge()
		if !ok {
			break
		}

		support := difference.Support(edge.Normal)
		projection := support.Dot(edge.Normal)

		// No point of the difference lies meaningfully beyond this edge:
		// it is part of the boundary closest to the origin.
		if projection-edge.Distance < e.distanceEpsilon {
			return contact.Penetration{Normal: edge.Normal, Depth: edge.Distance}
		}

		polytope.Expand(support)
	}

	edge, ok := polytope.ClosestEdge()
	if !ok {
		return contact.Penetration{Normal: DefaultNormal, Depth: 0}
	}
	return contact.Penetration{Normal: edge.Normal, Depth: edge.Distance}
}
