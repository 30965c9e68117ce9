package feather2d

import (
	"fmt"
	"sort"

	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/geometry"
	"github.com/google/uuid"
)

// Condition is a predicate over a shape pair. A matching condition routes the
// pair to the fallback detector.
type Condition interface {
	Match(c1, c2 geometry.Convex) bool
}

// Sorted is implemented by conditions that define their own evaluation order.
// Lower indices are evaluated first; conditions without one use 0.
// Equal indices keep insertion order.
type Sorted interface {
	SortIndex() int
}

// ConditionFunc adapts a function to a Condition.
type ConditionFunc func(c1, c2 geometry.Convex) bool

func (f ConditionFunc) Match(c1, c2 geometry.Convex) bool {
	return f(c1, c2)
}

// SingleTyped matches when either shape is a T.
type SingleTyped[T geometry.Convex] struct {
	Index int
}

func (c SingleTyped[T]) Match(c1, c2 geometry.Convex) bool {
	_, ok1 := c1.(T)
	_, ok2 := c2.(T)
	return ok1 || ok2
}

func (c SingleTyped[T]) SortIndex() int {
	return c.Index
}

// Typed matches when the pair is a T1 and a T2, in either order.
type Typed[T1, T2 geometry.Convex] struct {
	Index int
}

func (c Typed[T1, T2]) Match(c1, c2 geometry.Convex) bool {
	_, a1 := c1.(T1)
	_, b2 := c2.(T2)
	if a1 && b2 {
		return true
	}

	_, a2 := c1.(T2)
	_, b1 := c2.(T1)
	return a2 && b1
}

func (c Typed[T1, T2]) SortIndex() int {
	return c.Index
}

type conditionEntry struct {
	id        uuid.UUID
	condition Condition
	index     int
	sequence  int
}

// Fallback routes each query to a primary or a fallback detector.
//
// Conditions are evaluated in order; the first match sends the query to the
// fallback detector, otherwise the primary answers. Routing depends only on the
// condition list and the shapes, so it is repeatable.
//
// Adding and removing conditions must not run concurrently with queries.
type Fallback struct {
	primary    Detector
	fallback   Detector
	conditions []conditionEntry
	sequence   int
}

// NewFallback creates a router between two detectors with optional initial conditions.
func NewFallback(primary, fallback Detector, conditions ...Condition) (*Fallback, error) {
	if primary == nil {
		return nil, fmt.Errorf("%w: primary detector is nil", ErrInvalidArgument)
	}
	if fallback == nil {
		return nil, fmt.Errorf("%w: fallback detector is nil", ErrInvalidArgument)
	}

	f := &Fallback{primary: primary, fallback: fallback}
	for _, condition := range conditions {
		if _, err := f.AddCondition(condition); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (f *Fallback) Primary() Detector {
	return f.primary
}

func (f *Fallback) FallbackDetector() Detector {
	return f.fallback
}

// AddCondition inserts a condition and returns the handle to remove it with.
func (f *Fallback) AddCondition(condition Condition) (uuid.UUID, error) {
	if condition == nil {
		return uuid.Nil, fmt.Errorf("%w: condition is nil", ErrInvalidArgument)
	}

	index := 0
	if sorted, ok := condition.(Sorted); ok {
		index = sorted.SortIndex()
	}

	id := uuid.New()
	f.conditions = append(f.conditions, conditionEntry{
		id:        id,
		condition: condition,
		index:     index,
		sequence:  f.sequence,
	})
	f.sequence++
	f.reorder()

	return id, nil
}

// RemoveCondition removes the condition added under id.
// It reports whether the condition was present.
func (f *Fallback) RemoveCondition(id uuid.UUID) bool {
	for i, entry := range f.conditions {
		if entry.id == id {
			f.conditions = append(f.conditions[:i], f.conditions[i+1:]...)
			f.reorder()
			return true
		}
	}
	return false
}

// ClearConditions removes every condition.
func (f *Fallback) ClearConditions() {
	f.conditions = f.conditions[:0]
}

// Conditions returns the conditions in evaluation order.
func (f *Fallback) Conditions() []Condition {
	out := make([]Condition, len(f.conditions))
	for i, entry := range f.conditions {
		out[i] = entry.condition
	}
	return out
}

func (f *Fallback) reorder() {
	sort.SliceStable(f.conditions, func(i, j int) bool {
		a, b := f.conditions[i], f.conditions[j]
		if a.index != b.index {
			return a.index < b.index
		}
		return a.sequence < b.sequence
	})
}

// IsFallbackRequired reports whether the pair is routed to the fallback detector.
func (f *Fallback) IsFallbackRequired(c1, c2 geometry.Convex) bool {
	for _, entry := range f.conditions {
		if entry.condition.Match(c1, c2) {
			return true
		}
	}
	return false
}

func (f *Fallback) route(c1, c2 geometry.Convex) Detector {
	geometry.MustConvex(c1, "convex1")
	geometry.MustConvex(c2, "convex2")

	if f.IsFallbackRequired(c1, c2) {
		return f.fallback
	}
	return f.primary
}

func (f *Fallback) Detect(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) bool {
	return f.route(c1, c2).Detect(c1, t1, c2, t2)
}

func (f *Fallback) Penetration(c1 geometry.Convex, t1 geometry.Transform, c2 geometry.Convex, t2 geometry.Transform) (contact.Penetration, bool) {
	return f.route(c1, c2).Penetration(c1, t1, c2, t2)
}
