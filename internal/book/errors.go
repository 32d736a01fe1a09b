package book

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPattern is returned by operations that need an attached pattern.
	ErrNoPattern = errors.New("no pattern configured")

	// ErrInvalidConfig is returned when the book parameters cannot describe a real book.
	ErrInvalidConfig = errors.New("invalid book configuration")

	// ErrInvalidPattern is returned when a pattern reports an unusable geometry.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInsufficientCapacity marks a pattern that needs more sheets than the book has.
	ErrInsufficientCapacity = errors.New("insufficient sheet capacity")
)

// CapacityWarning reports a pattern wider than the book. It is not fatal:
// the layout clamps its margins and the folding table is truncated.
type CapacityWarning struct {
	Available int
	Required  int
}

func (w CapacityWarning) Error() string {
	return fmt.Sprintf("the book has only %d sheets of paper while the pattern requires %d", w.Available, w.Required)
}

func (w CapacityWarning) Unwrap() error {
	return ErrInsufficientCapacity
}
