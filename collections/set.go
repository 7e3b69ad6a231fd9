// Package collections provides generic data structures.
package collections

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	zkriter "github.com/zircuit-labs/zkr-go-iter/iter"
)

// Set represents a mathematical set of comparable elements.
type Set[T comparable] map[T]struct{}

// NewSet creates a new set containing the given values.
func NewSet[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	s.Add(vals...)
	return s
}

// Add adds the given values to the set.
func (s Set[T]) Add(vals ...T) {
	s.AddIter(slices.Values(vals))
}

// AddIter adds all values from the sequence to the set.
func (s Set[T]) AddIter(vals iter.Seq[T]) {
	for v := range vals {
		s[v] = struct{}{}
	}
}

// Insert adds v and reports whether it was not already present.
func (s Set[T]) Insert(v T) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Iter returns a sequence over the elements in the set, in no particular order.
func (s Set[T]) Iter() iter.Seq[T] {
	return maps.Keys(s)
}

// Members returns all elements in the set as a slice.
func (s Set[T]) Members() []T {
	return slices.Collect(s.Iter())
}

// String returns a string representation of the set.
func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}

// Contains returns true if the set contains all of the given values.
func (s Set[T]) Contains(vals ...T) bool {
	return zkriter.And(s.has, slices.Values(vals))
}

// ContainsAny returns true if the set contains at least one of the given values.
func (s Set[T]) ContainsAny(vals ...T) bool {
	return zkriter.Or(s.has, slices.Values(vals))
}

func (s Set[T]) has(v T) bool {
	_, ok := s[v]
	return ok
}

// Size returns the number of elements in the set.
func (s Set[T]) Size() int {
	return len(s)
}

// Distinct returns an Iterator over the items of it, skipping any item it has already produced.
// Items are remembered in seen, which may be pre-populated to exclude values up front
// and inspected afterwards. A nil seen is replaced by an empty set.
func Distinct[T comparable](it zkriter.Iterator[T], seen Set[T]) zkriter.Iterator[T] {
	if seen == nil {
		seen = NewSet[T]()
	}
	return zkriter.FilterIter(seen.Insert, it)
}
