// Package iter provides lazy sequence helpers for both push (iter.Seq) and pull (Iterator) styles.
package iter

import (
	"bufio"
	"io"
	"iter"
	"unicode/utf8"
)

//go:generate mockgen -source iterator.go -destination mock_iterator.go -package iter

// Iterator is a single-pass, pull-based sequence.
// Next returns the next item and true, or the zero value and false once the sequence is exhausted.
// An exhausted Iterator must keep returning false.
type Iterator[T any] interface {
	Next() (T, bool)
}

// IteratorFunc adapts a plain function to the Iterator interface.
type IteratorFunc[T any] func() (T, bool)

// Next calls f.
func (f IteratorFunc[T]) Next() (T, bool) {
	return f()
}

// NewIterator returns an Iterator backed by next.
func NewIterator[T any](next func() (T, bool)) Iterator[T] {
	return IteratorFunc[T](next)
}

// Empty returns an Iterator that never yields anything.
func Empty[T any]() Iterator[T] {
	return emptyIterator[T]{}
}

type emptyIterator[T any] struct{}

func (emptyIterator[T]) Next() (T, bool) {
	var zero T
	return zero, false
}

// FromSlice returns an Iterator over the elements of s, starting at index 0.
// The slice is not copied.
func FromSlice[T any](s []T) Iterator[T] {
	return &sliceIterator[T]{s: s}
}

// Of returns an Iterator over the given values.
func Of[T any](vals ...T) Iterator[T] {
	return FromSlice(vals)
}

type sliceIterator[T any] struct {
	s []T
}

func (it *sliceIterator[T]) Next() (T, bool) {
	if len(it.s) == 0 {
		var zero T
		return zero, false
	}
	v := it.s[0]
	it.s = it.s[1:]
	return v, true
}

// Runes returns an Iterator over the characters of s.
// Invalid UTF-8 bytes are returned as utf8.RuneError, one per byte.
func Runes(s string) Iterator[rune] {
	return IteratorFunc[rune](func() (rune, bool) {
		if s == "" {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		return r, true
	})
}

// Pull converts a push sequence into an Iterator.
// The underlying iter.Pull handle is stopped once the sequence is exhausted.
// An Iterator abandoned before exhaustion keeps its coroutine until it is garbage collected,
// so prefer FromSlice or a dedicated Iterator where the sequence may be cut short.
func Pull[T any](s iter.Seq[T]) Iterator[T] {
	next, stop := iter.Pull(s)
	done := false
	return IteratorFunc[T](func() (T, bool) {
		if done {
			var zero T
			return zero, false
		}
		v, ok := next()
		if !ok {
			done = true
			stop()
		}
		return v, ok
	})
}

// DefaultMaxLineSize is the longest line, in bytes, that Lines accepts.
const DefaultMaxLineSize = 1 << 20

// LineIterator yields the lines of a reader without their line endings.
type LineIterator struct {
	scanner *bufio.Scanner
	err     error
	done    bool
}

// Lines returns an Iterator over the lines read from r.
// A read failure ends the iteration; the cause is available from Err.
// A line longer than DefaultMaxLineSize ends the iteration with bufio.ErrTooLong.
func Lines(r io.Reader) *LineIterator {
	return LinesWithMax(r, DefaultMaxLineSize)
}

// LinesWithMax is Lines with a custom line size limit. A non-positive maxSize means DefaultMaxLineSize.
func LinesWithMax(r io.Reader, maxSize int) *LineIterator {
	if maxSize <= 0 {
		maxSize = DefaultMaxLineSize
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(4096, maxSize)), maxSize)
	return &LineIterator{scanner: scanner}
}

// Next returns the next line. A nil *LineIterator is empty.
func (l *LineIterator) Next() (string, bool) {
	if l == nil || l.done {
		return "", false
	}
	if l.scanner.Scan() {
		return l.scanner.Text(), true
	}
	l.done = true
	l.err = l.scanner.Err()
	return "", false
}

// Err returns the first non-EOF error encountered while reading.
func (l *LineIterator) Err() error {
	if l == nil {
		return nil
	}
	return l.err
}

// Collect drains it into a slice.
func Collect[T any](it Iterator[T]) []T {
	var out []T
	for {
		v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Seq exposes it as a push sequence for use with range and the slices/maps packages.
// Ranging over the result consumes it.
func Seq[T any](it Iterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Take returns an Iterator over at most n items of it.
func Take[T any](it Iterator[T], n int) Iterator[T] {
	return IteratorFunc[T](func() (T, bool) {
		if n <= 0 {
			var zero T
			return zero, false
		}
		n--
		return it.Next()
	})
}
