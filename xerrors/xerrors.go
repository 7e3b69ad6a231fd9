// Package xerrors attaches typed data to errors without changing their identity.
package xerrors

import (
	"errors"
	"log/slog"
)

// ExtendedError wraps an error together with a value of any type.
type ExtendedError[T any] struct {
	Data T
	err  error
}

// Error returns the message of the wrapped error.
func (e ExtendedError[T]) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped error.
func (e ExtendedError[T]) Unwrap() error {
	return e.err
}

// LogValue implements slog.LogValuer by logging the attached data.
func (e ExtendedError[T]) LogValue() slog.Value {
	if logValuer, ok := any(e.Data).(slog.LogValuer); ok {
		return logValuer.LogValue()
	}
	return slog.AnyValue(e.Data)
}

// Extend attaches data to err. Extending a nil error returns nil.
func Extend[T any](data T, err error) error {
	if err == nil {
		return nil
	}
	return ExtendedError[T]{Data: data, err: err}
}

// Extract returns the first data of type T found in the chain of err.
func Extract[T any](err error) (T, bool) {
	var extended ExtendedError[T]
	ok := errors.As(err, &extended)
	return extended.Data, ok
}

// Unjoin returns the direct children of an errors.Join error, or err itself otherwise.
func Unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
