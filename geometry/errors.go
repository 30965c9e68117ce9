package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports a violated precondition: nil shapes, zero
// directions, invalid shape parameters.
var ErrInvalidArgument = errors.New("invalid argument")

// MustConvex panics with ErrInvalidArgument if c is nil.
// name identifies the argument in the message.
func MustConvex(c Convex, name string) {
	if c == nil {
		panic(fmt.Errorf("%w: %s is nil", ErrInvalidArgument, name))
	}
}

// MustMaxLength panics with ErrInvalidArgument if maxLength is negative.
func MustMaxLength(maxLength float64) {
	if maxLength < 0 {
		panic(fmt.Errorf("%w: max length %v is negative", ErrInvalidArgument, maxLength))
	}
}
