package geometry

import "math"

// Interval is a closed 1D range, the projection of a shape onto an axis.
type Interval struct {
	Min float64
	Max float64
}

// Overlaps reports whether the intervals share at least one value.
// Touching intervals overlap.
func (i Interval) Overlaps(other Interval) bool {
	return !(i.Min > other.Max || other.Min > i.Max)
}

// Overlap returns the length of the shared range, or 0 if disjoint.
func (i Interval) Overlap(other Interval) float64 {
	if !i.Overlaps(other) {
		return 0
	}
	return math.Min(i.Max, other.Max) - math.Max(i.Min, other.Min)
}

// ContainsExclusive reports whether other lies strictly inside i.
func (i Interval) ContainsExclusive(other Interval) bool {
	return other.Min > i.Min && other.Max < i.Max
}

// Contains reports whether value lies in the interval.
func (i Interval) Contains(value float64) bool {
	return value >= i.Min && value <= i.Max
}

// Length returns Max - Min.
func (i Interval) Length() float64 {
	return i.Max - i.Min
}
