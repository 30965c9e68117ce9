package epa

import (
	"container/heap"

	"github.com/akmonengine/feather2d/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Edge is an edge of the expanding polytope.
//
// Normal and Distance are fixed at construction: edges are only ever removed
// from the polytope and replaced by new ones, never updated in place, so the
// heap key cannot change under the heap.
type Edge struct {
	Point1   mgl64.Vec2
	Point2   mgl64.Vec2
	Normal   mgl64.Vec2 // outward unit normal
	Distance float64    // distance from the origin to the edge's line
}

// newEdge creates the edge p1→p2 with the outward normal of a polygon of the
// given winding (1 counter-clockwise, -1 clockwise).
func newEdge(p1, p2 mgl64.Vec2, winding int) (Edge, bool) {
	direction := p2.Sub(p1)

	var normal mgl64.Vec2
	if winding < 0 {
		normal = geometry.Left(direction)
	} else {
		normal = geometry.Right(direction)
	}

	normal, length := geometry.Normalize(normal)
	if length == 0 {
		return Edge{}, false
	}

	distance := p1.Dot(normal)
	if distance < 0 {
		distance = -distance
	}

	return Edge{Point1: p1, Point2: p2, Normal: normal, Distance: distance}, true
}

// edgeHeap is a min-heap of edges keyed by Distance.
type edgeHeap []Edge

func (h edgeHeap) Len() int           { return len(h) }
func (h edgeHeap) Less(i, j int) bool { return h[i].Distance < h[j].Distance }
func (h edgeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *edgeHeap) Push(x any) {
	*h = append(*h, x.(Edge))
}

func (h *edgeHeap) Pop() any {
	old := *h
	n := len(old)
	edge := old[n-1]
	*h = old[:n-1]
	return edge
}

// Polytope is the expanding simplex: a closed convex polygon in Minkowski
// space that encloses the origin, with its edges ordered by distance.
//
// The winding is computed once from the initial simplex and reused for every
// edge created afterwards.
type Polytope struct {
	edges   edgeHeap
	winding int
}

// NewPolytope builds the initial polytope from a GJK terminal simplex.
// Zero-length edges (duplicate points) are discarded.
func NewPolytope(points []mgl64.Vec2) *Polytope {
	p := &Polytope{
		edges:   make(edgeHeap, 0, len(points)+polytopeInitialCapacity),
		winding: winding(points),
	}

	n := len(points)
	for i := 0; i < n; i++ {
		j := i + 1
		if j == n {
			j = 0
		}
		if edge, ok := newEdge(points[i], points[j], p.winding); ok {
			p.edges = append(p.edges, edge)
		}
	}
	heap.Init(&p.edges)

	return p
}

// winding returns 1 for a counter-clockwise point sequence, -1 for clockwise.
// Fully collinear input defaults to counter-clockwise.
func winding(points []mgl64.Vec2) int {
	n := len(points)
	for i := 0; i < n; i++ {
		j := i + 1
		if j == n {
			j = 0
		}
		cross := geometry.Cross(points[i], points[j])
		if cross > 0 {
			return 1
		} else if cross < 0 {
			return -1
		}
	}
	return 1
}

// Len returns the number of edges
func (p *Polytope) Len() int {
	return len(p.edges)
}

// Winding returns the fixed winding of the polytope
func (p *Polytope) Winding() int {
	return p.winding
}

// ClosestEdge returns the edge nearest to the origin without removing it.
func (p *Polytope) ClosestEdge() (Edge, bool) {
	if len(p.edges) == 0 {
		return Edge{}, false
	}
	return p.edges[0], true
}

// Expand replaces the closest edge by the two edges joining its endpoints to
// point.
func (p *Polytope) Expand(point mgl64.Vec2) {
	if len(p.edges) == 0 {
		return
	}

	edge := heap.Pop(&p.edges).(Edge)
	if e1, ok := newEdge(edge.Point1, point, p.winding); ok {
		heap.Push(&p.edges, e1)
	}
	if e2, ok := newEdge(point, edge.Point2, p.winding); ok {
		heap.Push(&p.edges, e2)
	}
}
