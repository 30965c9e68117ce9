package feather2d

import (
	"sort"

	"github.com/akmonengine/feather2d/circle"
	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/akmonengine/feather2d/segment"
	"github.com/google/uuid"
)

// Raycaster casts rays against any convex shape, using the closed-form
// routines for circles and segments and GJK for everything else.
type Raycaster struct {
	gjk *gjk.GJK
}

// NewRaycaster creates a raycaster backed by detector for generic shapes.
// A nil detector uses gjk.New().
func NewRaycaster(detector *gjk.GJK) *Raycaster {
	if detector == nil {
		detector = gjk.New()
	}
	return &Raycaster{gjk: detector}
}

func (r *Raycaster) Raycast(ray geometry.Ray, maxLength float64, c geometry.Convex, t geometry.Transform) (contact.Raycast, bool) {
	geometry.MustConvex(c, "convex")

	switch shape := c.(type) {
	case *geometry.Circle:
		return circle.Raycast(ray, maxLength, shape, t)
	case *geometry.Segment:
		return segment.Raycast(ray, maxLength, shape, t)
	default:
		return r.gjk.Raycast(ray, maxLength, c, t)
	}
}

// Hit is a raycast result against one body.
type Hit struct {
	Body    uuid.UUID       `msgpack:"body"`
	Raycast contact.Raycast `msgpack:"raycast"`
}

// RaycastBodies casts ray against every body and returns the hits sorted by
// distance, nearest first. Equal distances keep the order of bodies.
func RaycastBodies(detector RaycastDetector, ray geometry.Ray, maxLength float64, bodies []*Body) ([]Hit, error) {
	if detector == nil {
		return nil, errorf("raycast detector is nil")
	}
	if err := validateBodies(bodies); err != nil {
		return nil, err
	}
	if geometry.IsZero(ray.Direction) {
		return nil, errorf("ray direction is zero")
	}
	if maxLength < 0 {
		return nil, errorf("max length %v is negative", maxLength)
	}

	hits := make([]Hit, 0)
	for _, body := range bodies {
		if result, ok := detector.Raycast(ray, maxLength, body.Shape, body.Transform); ok {
			hits = append(hits, Hit{Body: body.ID, Raycast: result})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Raycast.Distance < hits[j].Raycast.Distance
	})

	return hits, nil
}
