package feather2d

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/google/uuid"
)

// DEFAULT_WORKERS is used when a batch is given fewer than one worker
const DEFAULT_WORKERS = 1

// Body is a convex shape placed in the world
type Body struct {
	ID        uuid.UUID
	Shape     geometry.Convex
	Transform geometry.Transform
}

// NewBody creates a body with a random ID
func NewBody(shape geometry.Convex, transform geometry.Transform) *Body {
	return &Body{ID: uuid.New(), Shape: shape, Transform: transform}
}

// Pair represents a pair of bodies that potentially collide, as produced by a broad phase
type Pair struct {
	BodyA *Body
	BodyB *Body
}

// Contact is the penetration of an overlapping pair
type Contact struct {
	BodyA       uuid.UUID           `msgpack:"body_a"`
	BodyB       uuid.UUID           `msgpack:"body_b"`
	Penetration contact.Penetration `msgpack:"penetration"`
}

// Proximity is the separation of a disjoint pair
type Proximity struct {
	BodyA      uuid.UUID          `msgpack:"body_a"`
	BodyB      uuid.UUID          `msgpack:"body_b"`
	Separation contact.Separation `msgpack:"separation"`
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func validateBody(body *Body) error {
	if body == nil {
		return errorf("body is nil")
	}
	if body.Shape == nil {
		return errorf("body %s has no shape", body.ID)
	}
	return nil
}

func validateBodies(bodies []*Body) error {
	var errs []error
	for i, body := range bodies {
		if err := validateBody(body); err != nil {
			errs = append(errs, fmt.Errorf("body %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// validatePairs checks every pair up front so that no detector ever sees a
// nil shape. All violations are reported together.
func validatePairs(pairs []Pair) error {
	var errs []error
	for i, pair := range pairs {
		if err := validateBody(pair.BodyA); err != nil {
			errs = append(errs, fmt.Errorf("pair %d: body A: %w", i, err))
		}
		if err := validateBody(pair.BodyB); err != nil {
			errs = append(errs, fmt.Errorf("pair %d: body B: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

type indexedPair struct {
	index int
	pair  Pair
}

type indexedContact struct {
	index   int
	contact Contact
}

// NarrowPhase runs every candidate pair through detector on workersCount
// goroutines and returns the contacts of the overlapping pairs, in the order
// of pairs.
//
// detector is shared by the workers and must not be reconfigured meanwhile.
func NarrowPhase(detector Detector, pairs []Pair, workersCount int) ([]Contact, error) {
	if detector == nil {
		return nil, errorf("detector is nil")
	}
	if err := validatePairs(pairs); err != nil {
		return nil, err
	}
	workersCount = max(DEFAULT_WORKERS, workersCount)

	pairChan := make(chan indexedPair, workersCount)
	go func() {
		defer close(pairChan)
		for i, pair := range pairs {
			pairChan <- indexedPair{index: i, pair: pair}
		}
	}()

	contactChan := make(chan indexedContact, workersCount)
	go func() {
		var wg sync.WaitGroup
		defer close(contactChan)

		for w := 0; w < workersCount; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairChan {
					a, b := p.pair.BodyA, p.pair.BodyB
					penetration, ok := detector.Penetration(a.Shape, a.Transform, b.Shape, b.Transform)
					if !ok {
						continue
					}
					contactChan <- indexedContact{
						index: p.index,
						contact: Contact{
							BodyA:       a.ID,
							BodyB:       b.ID,
							Penetration: penetration,
						},
					}
				}
			}()
		}
		wg.Wait()
	}()

	collected := make([]indexedContact, 0)
	for c := range contactChan {
		collected = append(collected, c)
	}

	// Workers finish in any order
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	contacts := make([]Contact, len(collected))
	for i, c := range collected {
		contacts[i] = c.contact
	}
	return contacts, nil
}

// Distances computes the separation of every disjoint pair on workersCount
// goroutines, in the order of pairs. Overlapping pairs are omitted.
func Distances(detector DistanceDetector, pairs []Pair, workersCount int) ([]Proximity, error) {
	if detector == nil {
		return nil, errorf("distance detector is nil")
	}
	if err := validatePairs(pairs); err != nil {
		return nil, err
	}
	workersCount = max(DEFAULT_WORKERS, workersCount)

	// Each worker writes only its own slots
	results := make([]Proximity, len(pairs))
	separated := make([]bool, len(pairs))
	indices := make([]int, len(pairs))
	for i := range indices {
		indices[i] = i
	}

	task(workersCount, indices, func(i int) {
		a, b := pairs[i].BodyA, pairs[i].BodyB
		separation, ok := detector.Distance(a.Shape, a.Transform, b.Shape, b.Transform)
		if !ok {
			return
		}
		results[i] = Proximity{BodyA: a.ID, BodyB: b.ID, Separation: separation}
		separated[i] = true
	})

	proximities := make([]Proximity, 0, len(pairs))
	for i, ok := range separated {
		if ok {
			proximities = append(proximities, results[i])
		}
	}
	return proximities, nil
}

// AllPairs returns every unordered pair of bodies, a brute-force stand-in for
// a broad phase.
func AllPairs(bodies []*Body) []Pair {
	pairs := make([]Pair, 0, len(bodies)*(len(bodies)-1)/2)
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			pairs = append(pairs, Pair{BodyA: bodies[i], BodyB: bodies[j]})
		}
	}
	return pairs
}
