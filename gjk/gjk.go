// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for 2D collision detection.
//
// GJK detects whether two convex shapes overlap by testing if their Minkowski difference
// contains the origin. The algorithm builds a simplex incrementally, converging toward
// the origin in typically 3-6 iterations.
//
// The same detector also answers distance queries (closest points of disjoint shapes)
// and raycasts against any convex shape.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
//   - Van den Bergen: "Ray Casting against General Convex Objects with Application
//     to Continuous Collision Detection" (2004)
package gjk

import (
	"fmt"

	"github.com/akmonengine/feather2d/circle"
	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/epa"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/akmonengine/feather2d/minkowski"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultMaxIterations is the default safety limit of every GJK loop.
	DefaultMaxIterations = 30

	// MinMaxIterations is the smallest accepted iteration cap.
	MinMaxIterations = 5

	// DefaultDetectEpsilon is the default separation threshold of Detect:
	// a support point projecting at or below it proves the shapes disjoint.
	DefaultDetectEpsilon = 0.0
)

// DefaultAxis is the search direction used when both shape centers coincide.
var DefaultAxis = mgl64.Vec2{1, 0}

// GJK is a narrow-phase detector.
//
// Configuration is read on every query: changing it while queries run
// concurrently on the same instance is a data race. Queries themselves keep no
// state and may run concurrently.
type GJK struct {
	maxIterations   int
	detectEpsilon   float64
	distanceEpsilon float64
	solver          *epa.EPA
}

// New returns a GJK detector with the default configuration and a default EPA solver.
func New() *GJK {
	return &GJK{
		maxIterations:   DefaultMaxIterations,
		detectEpsilon:   DefaultDetectEpsilon,
		distanceEpsilon: geometry.SqrtEpsilon,
		solver:          epa.New(),
	}
}

func (g *GJK) MaxIterations() int {
	return g.maxIterations
}

// SetMaxIterations changes the iteration cap. Values below MinMaxIterations are rejected.
func (g *GJK) SetMaxIterations(maxIterations int) error {
	if maxIterations < MinMaxIterations {
		return fmt.Errorf("%w: GJK max iterations %d is below %d", geometry.ErrInvalidArgument, maxIterations, MinMaxIterations)
	}
	g.maxIterations = maxIterations
	return nil
}

func (g *GJK) DetectEpsilon() float64 {
	return g.detectEpsilon
}

// SetDetectEpsilon changes the separation threshold of Detect. It must not be negative.
func (g *GJK) SetDetectEpsilon(epsilon float64) error {
	if !(epsilon >= 0) {
		return fmt.Errorf("%w: GJK detect epsilon %v is negative", geometry.ErrInvalidArgument, epsilon)
	}
	g.detectEpsilon = epsilon
	return nil
}

func (g *GJK) DistanceEpsilon() float64 {
	return g.distanceEpsilon
}

// SetDistanceEpsilon changes the convergence tolerance of Distance and Raycast. It must be positive.
func (g *GJK) SetDistanceEpsilon(epsilon float64) error {
	if !(epsilon > 0) {
		return fmt.Errorf("%w: GJK distance epsilon %v must be positive", geometry.ErrInvalidArgument, epsilon)
	}
	g.distanceEpsilon = epsilon
	return nil
}

// Solver returns the EPA solver used by Penetration.
func (g *GJK) Solver() *epa.EPA {
	return g.solver
}

// SetSolver replaces the EPA solver used by Penetration.
func (g *GJK) SetSolver(solver *epa.EPA) error {
	if solver == nil {
		return fmt.Errorf("%w: EPA solver is nil", geometry.ErrInvalidArgument)
	}
	g.solver = solver
	return nil
}

// circles returns both shapes as circles when the pair qualifies for the closed-form path.
func circles(c1, c2 geometry.Convex) (*geometry.Circle, *geometry.Circle, bool) {
	circle1, ok1 := c1.(*geometry.Circle)
	circle2, ok2 := c2.(*geometry.Circle)
	return circle1, circle2, ok1 && ok2 && circle1 != nil && circle2 != nil
}

// Detect reports whether the two shapes overlap.
//
// Reaching the iteration cap reports false. This conflates "could not decide"
// with "separated"; in practice it only happens for degenerate input.
func (g *GJK) Detect(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) bool {
	geometry.MustConvex(c1, "convex1")
	geometry.MustConvex(c2, "convex2")

	if circle1, circle2, ok := circles(c1, c2); ok {
		return circle.Detect(circle1, t1, circle2, t2)
	}

	var simplex minkowski.Simplex
	return g.intersect(minkowski.NewDifference(c1, t1, c2, t2), &simplex)
}

// Penetration reports whether the two shapes overlap and, if so, the
// penetration computed by EPA from the terminal simplex.
func (g *GJK) Penetration(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) (contact.Penetration, bool) {
	geometry.MustConvex(c1, "convex1")
	geometry.MustConvex(c2, "convex2")

	if circle1, circle2, ok := circles(c1, c2); ok {
		return circle.Penetration(circle1, t1, circle2, t2)
	}

	difference := minkowski.NewDifference(c1, t1, c2, t2)
	var simplex minkowski.Simplex
	if !g.intersect(difference, &simplex) {
		return contact.Penetration{}, false
	}

	return g.solver.Penetration(&simplex, difference), true
}

// intersect runs the GJK loop.
//
// Algorithm overview:
//  1. Start with initial search direction (toward B from A)
//  2. Get first support point in Minkowski difference
//  3. Iteratively refine simplex toward origin
//  4. If origin is contained → collision
//  5. If can't reach origin → no collision
//
// On a collision the simplex is left as a triangle enclosing the origin, which
// EPA uses as its initial polytope.
func (g *GJK) intersect(difference minkowski.Difference, simplex *minkowski.Simplex) bool {
	simplex.Reset()

	direction := difference.InitialDirection()
	if geometry.IsZero(direction) {
		direction = DefaultAxis
	}

	simplex.Add(difference.Support(direction))
	if simplex.Last().Dot(direction) <= g.detectEpsilon {
		return false
	}

	// New direction towards the origin from this first point
	direction = simplex.Last().Mul(-1)

	for i := 0; i < g.maxIterations; i++ {
		newPoint := difference.Support(direction)

		// Early exit test: If the new point doesn't pass the origin in the search direction,
		// the origin cannot be reached, therefore no collision.
		if newPoint.Dot(direction) <= g.detectEpsilon {
			return false
		}

		simplex.Add(newPoint)

		// Check if the simplex contains the origin
		// This function also updates the simplex and direction for the next iteration
		if containsOrigin(simplex, &direction) {
			return true
		}
	}

	return false
}

// containsOrigin tests if the simplex contains the origin and refines the simplex.
//
// Behavior by simplex dimension:
//   - 2 points (line): search perpendicular to the segment, toward the origin
//   - 3 points (triangle): test the Voronoi regions of the two edges touching
//     the newest point; keep the edge facing the origin or report containment
//
// Returns:
//   - true: Origin is contained (only possible for a triangle) → collision!
//   - false: Origin is outside, simplex and direction updated for next iteration
func containsOrigin(simplex *minkowski.Simplex, direction *mgl64.Vec2) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	}
	return false
}

// line handles the line simplex case (2 points: A most recent, B).
//
// Region A alone cannot hold the origin: A was found by searching past the origin.
// The origin is therefore in region AB and the new direction is the
// perpendicular of AB pointing at it.
func line(simplex *minkowski.Simplex, direction *mgl64.Vec2) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	*direction = towardOrigin(ab, ao)
	return false
}

// triangle handles the triangle simplex case (3 points: A most recent, B, C).
//
// Tests which Voronoi region contains the origin:
//   - Region AC: drop B, search along the AC perpendicular
//   - Region AB: drop C, search along the AB perpendicular
//   - Otherwise the origin is inside the triangle
func triangle(simplex *minkowski.Simplex, direction *mgl64.Vec2) bool {
	a := simplex.Points[2] // Most recent point
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	// Perpendicular of AC pointing away from B
	acPerp := geometry.TripleProduct(ab, ac, ac)
	if acPerp.Dot(ao) >= 0 {
		simplex.Points[0] = c
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = acPerp
		if geometry.IsZero(acPerp) {
			// Collinear triangle
			*direction = towardOrigin(ac, ao)
		}
		return false
	}

	// Perpendicular of AB pointing away from C
	abPerp := geometry.TripleProduct(ac, ab, ab)
	if abPerp.Dot(ao) < 0 {
		return true
	}

	simplex.Points[0] = b
	simplex.Points[1] = a
	simplex.Count = 2
	*direction = abPerp
	if geometry.IsZero(abPerp) {
		*direction = towardOrigin(ab, ao)
	}
	return false
}

// towardOrigin returns the perpendicular of edge on the side of ao.
// When the origin lies on the edge's line, either perpendicular is valid and
// the left one is chosen.
func towardOrigin(edge, ao mgl64.Vec2) mgl64.Vec2 {
	perp := geometry.TripleProduct(edge, ao, edge)
	if !geometry.IsZero(perp) {
		return perp
	}

	perp = geometry.Left(edge)
	if perp.Dot(ao) < 0 {
		perp = perp.Mul(-1)
	}
	if geometry.IsZero(perp) {
		// Both simplex points coincide
		return ao
	}
	return perp
}
