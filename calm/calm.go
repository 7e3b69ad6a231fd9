// Package calm runs functions and reports their panics as errors with a stack trace.
package calm

import (
	"fmt"

	"github.com/zircuit-labs/zkr-go-iter/xerrors"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/stacktrace"
)

// skips runtime.Callers, GetStack and the deferred recovery function
const panicStackDepth = 3

// Unpanic calls f and returns its error, or an errclass.Panic error carrying the stack of the panic.
// Panics in goroutines started by f are not recovered.
func Unpanic(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr := fmt.Errorf("panic: %v", r)
			perr = xerrors.Extend(stacktrace.GetStack(panicStackDepth, true), perr)
			err = errclass.WrapAs(perr, errclass.Panic)
		}
	}()
	return f()
}
