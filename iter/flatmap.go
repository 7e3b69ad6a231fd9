package iter

import "iter"

// Expansion maps one outer item to the Iterator of items it expands into.
type Expansion[S, T any] func(S) Iterator[T]

// FlatMapper lazily flattens the expansions of an outer Iterator into one Iterator.
//
// Items come out in order: every item of expand(o1), then every item of expand(o2), and so on.
// expand is called exactly once per outer item, and only when the previous expansion has been drained.
// At most one expansion is held at a time. Outer items that expand to nothing are skipped,
// and so are expansions returned as a nil interface value. A typed nil pointer inside a non-nil
// interface is an ordinary Iterator and is called like any other.
//
// A FlatMapper is not safe for concurrent use.
type FlatMapper[S, T any] struct {
	outer  Iterator[S]
	expand Expansion[S, T]

	// inner is the expansion currently being drained, a nil interface when there is none.
	inner Iterator[T]
}

// NewFlatMapper returns a FlatMapper over outer.
// Neither outer nor expand is touched until the first call to Next.
func NewFlatMapper[S, T any](outer Iterator[S], expand Expansion[S, T]) *FlatMapper[S, T] {
	return &FlatMapper[S, T]{
		outer:  outer,
		expand: expand,
	}
}

// FlatMap expands every item of outer with expand and returns the concatenation of the expansions.
// It is shorthand for NewFlatMapper.
func FlatMap[S, T any](outer Iterator[S], expand Expansion[S, T]) *FlatMapper[S, T] {
	return NewFlatMapper(outer, expand)
}

// FlatMapSlices is FlatMap for expansions that produce slices.
func FlatMapSlices[S, T any](outer Iterator[S], expand func(S) []T) *FlatMapper[S, T] {
	return NewFlatMapper(outer, func(s S) Iterator[T] {
		return FromSlice(expand(s))
	})
}

// Flatten concatenates the Iterators produced by outer.
func Flatten[T any](outer Iterator[Iterator[T]]) *FlatMapper[Iterator[T], T] {
	return NewFlatMapper(outer, func(it Iterator[T]) Iterator[T] {
		return it
	})
}

// Next returns the next flattened item, or false once outer and the last expansion are both drained.
// After returning false it always returns false.
func (f *FlatMapper[S, T]) Next() (T, bool) {
	for {
		if f.inner != nil {
			if v, ok := f.inner.Next(); ok {
				return v, true
			}
			f.inner = nil
		}

		if f.outer == nil {
			var zero T
			return zero, false
		}

		s, ok := f.outer.Next()
		if !ok {
			// release outer and expand so the terminal state no longer depends on them
			f.outer = nil
			f.expand = nil
			var zero T
			return zero, false
		}
		f.inner = f.expand(s)
	}
}

// All returns a push sequence over the remaining items.
// Breaking out of a range loop leaves the FlatMapper paused; a later call to Next or All resumes it.
func (f *FlatMapper[S, T]) All() iter.Seq[T] {
	return Seq[T](f)
}
