package iter

import "iter"

// And returns true if the predicate returns true for all elements of s.
func And[V any](p Predicate[V], s iter.Seq[V]) bool {
	for v := range s {
		if !p(v) {
			return false
		}
	}
	return true
}

// Or returns true if the predicate returns true for any element of s.
func Or[V any](p Predicate[V], s iter.Seq[V]) bool {
	return !And(Not(p), s)
}

// Count drains it and returns the number of items it produced.
func Count[T any](it Iterator[T]) int {
	n := 0
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		n++
	}
	return n
}
