package source

import "fmt"

// Located pairs a value with the place it came from. The location is
// provenance only: LocatedEqual compares values, never locations.
type Located[T any] struct {
	Value T
	Loc   Location
}

// WithLocation wraps v with loc.
func WithLocation[T any](v T, loc Location) Located[T] {
	return Located[T]{Value: v, Loc: loc}
}

// Unwrap drops the location.
func (l Located[T]) Unwrap() T {
	return l.Value
}

// Location returns the attached location.
func (l Located[T]) Location() Location {
	return l.Loc
}

// LocatedEqual compares two located values by value only.
func LocatedEqual[T comparable](a, b Located[T]) bool {
	return a.Value == b.Value
}

func (l Located[T]) String() string {
	return fmt.Sprintf("{ %v } @ <%s>", l.Value, l.Loc)
}
