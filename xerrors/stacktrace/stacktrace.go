// Package stacktrace uses the go runtime to capture stack trace data.
package stacktrace

import (
	"errors"
	"log/slog"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/zircuit-labs/zkr-go-iter/xerrors"
)

const (
	maxFrames     = 50
	runtimePrefix = "runtime."
	testingPrefix = "testing."

	// frames to skip so that a trace taken by Wrap starts at its caller
	wrapStackDepth = 4
)

// match files of the go runtime and testing packages
// eg `/pkg/mod/golang.org/toolchain@v0.0.1-go1.22.4.linux-amd64/src/runtime/panic.go`
var (
	runtimeRegex = regexp.MustCompile(`go[^/]*/src/runtime/[^.]+\.go`)
	testingRegex = regexp.MustCompile(`go[^/]*/src/testing/[^.]+\.go`)
)

// Disabled turns Wrap into a no-op when set.
var Disabled atomic.Bool

// Frame is one human-readable entry of a stack trace.
type Frame struct {
	File       string `json:"source"`
	LineNumber int    `json:"line"`
	Function   string `json:"func"`
}

// StackTrace is a program stack trace, innermost frame first.
type StackTrace []Frame

// LogValue renders the trace as a list of source/line/func maps.
func (st StackTrace) LogValue() slog.Value {
	if len(st) == 0 {
		return slog.Value{}
	}
	out := make([]map[string]string, 0, len(st))
	for _, frame := range st {
		out = append(out, map[string]string{
			"source": frame.File,
			"line":   strconv.Itoa(frame.LineNumber),
			"func":   frame.Function,
		})
	}
	return slog.AnyValue(out)
}

// GetStack captures the current program stack trace.
// skipFrames is passed to runtime.Callers: 1 makes GetStack itself the first frame.
// skipRuntime drops frames belonging to the go runtime and testing packages.
func GetStack(skipFrames int, skipRuntime bool) StackTrace {
	var trace StackTrace

	pc := make([]uintptr, maxFrames)
	n := runtime.Callers(skipFrames, pc)
	frames := runtime.CallersFrames(pc[:n])

	for {
		frame, more := frames.Next()
		if !more {
			break
		}
		if skipRuntime && isRuntimeFrame(frame) {
			continue
		}
		trace = append(trace, Frame{
			File:       frame.File,
			LineNumber: frame.Line,
			Function:   frame.Function,
		})
	}
	return trace
}

func isRuntimeFrame(frame runtime.Frame) bool {
	return (strings.HasPrefix(frame.Function, runtimePrefix) && runtimeRegex.MatchString(frame.File)) ||
		(strings.HasPrefix(frame.Function, testingPrefix) && testingRegex.MatchString(frame.File))
}

// Wrap attaches the caller's stack trace to err unless it already carries one.
// Each child of a joined error is wrapped individually.
func Wrap(err error) error {
	if Disabled.Load() || err == nil {
		return err
	}

	if children := xerrors.Unjoin(err); len(children) > 1 {
		wrapped := make([]error, len(children))
		for i, child := range children {
			wrapped[i] = Wrap(child)
		}
		return errors.Join(wrapped...)
	}

	return wrapSingle(err)
}

func wrapSingle(err error) error {
	if _, ok := xerrors.Extract[StackTrace](err); ok {
		return err
	}
	return xerrors.Extend(GetStack(wrapStackDepth, true), err)
}

// Extract returns the stack trace carried by err, or nil.
func Extract(err error) StackTrace {
	st, ok := xerrors.Extract[StackTrace](err)
	if !ok {
		return nil
	}
	return st
}
