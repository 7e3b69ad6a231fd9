package iter

import "iter"

type Predicate[V any] func(V) bool

// Not returns a predicate that negates p.
func Not[V any](p Predicate[V]) Predicate[V] {
	return func(v V) bool {
		return !p(v)
	}
}

// Filter returns a sequence that contains the elements of s for which p returns true.
func Filter[V any](p Predicate[V], s iter.Seq[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for v := range s {
			if p(v) {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// FilterIter returns an Iterator over the items of it for which p returns true.
// Rejected items are skipped within a single call to Next.
func FilterIter[V any](p Predicate[V], it Iterator[V]) Iterator[V] {
	return IteratorFunc[V](func() (V, bool) {
		for {
			v, ok := it.Next()
			if !ok || p(v) {
				return v, ok
			}
		}
	})
}
