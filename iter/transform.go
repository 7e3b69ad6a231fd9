package iter

import "iter"

type Transformation[S, T any] func(S) T

// Transform applies t to each elements of s, returning the sequence of the transformed elements
func Transform[S, T any](t Transformation[S, T], s iter.Seq[S]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if !yield(t(v)) {
				return
			}
		}
	}
}

// FlatTransform applies t to each element of s and yields the elements of every resulting sequence in turn.
// t is only called for elements of s that are reached before the consumer stops.
func FlatTransform[S, T any](t Transformation[S, iter.Seq[T]], s iter.Seq[S]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			inner := t(v)
			if inner == nil {
				continue
			}
			for w := range inner {
				if !yield(w) {
					return
				}
			}
		}
	}
}

// TransformIter is the pull counterpart of Transform.
func TransformIter[S, T any](t Transformation[S, T], it Iterator[S]) Iterator[T] {
	return IteratorFunc[T](func() (T, bool) {
		v, ok := it.Next()
		if !ok {
			var zero T
			return zero, false
		}
		return t(v), true
	})
}
