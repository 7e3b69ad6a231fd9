// Package errclass provides functions for simple error classification.
package errclass

import (
	"github.com/zircuit-labs/zkr-go-iter/xerrors"
)

// Class is a coarse classification of an error.
type Class int

// The values only matter for their order: a higher value is more severe.
// The class of a joined error is the most severe class among its children.
const (
	Nil     Class = -1
	Unknown Class = 0

	// Transient errors may succeed on retry, eg a cancelled context.
	Transient Class = 100
	// Persistent errors will fail again with the same input, eg invalid configuration.
	Persistent Class = 110

	Panic Class = 900
)

// String implements fmt.Stringer.
func (c Class) String() string {
	switch c {
	case Nil:
		return "nil"
	case Transient:
		return "transient"
	case Persistent:
		return "persistent"
	case Panic:
		return "panic"
	default:
		return "unknown"
	}
}

// WrapAs attaches class to err. Wrapping a nil error returns nil.
func WrapAs(err error, class Class) error {
	if err == nil {
		return nil
	}
	return xerrors.Extend(class, err)
}

// GetClass returns the class of err, Unknown when none was attached and Nil for a nil error.
func GetClass(err error) Class {
	if err == nil {
		return Nil
	}

	maxClass := Nil
	for _, child := range xerrors.Unjoin(err) {
		class, ok := xerrors.Extract[Class](child)
		switch {
		case ok && class > maxClass:
			maxClass = class
		case !ok && maxClass < Unknown:
			maxClass = Unknown
		}
	}
	return maxClass
}
