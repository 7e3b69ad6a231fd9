package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	slogcommon "github.com/samber/slog-common"
	slogzerolog "github.com/samber/slog-zerolog/v2"

	"github.com/zircuit-labs/zkr-go-iter/version"
	"github.com/zircuit-labs/zkr-go-iter/xerrors"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/stacktrace"
)

const (
	ErrorKey        = "error"
	ErrorContextKey = "error_context"
	SourceKey       = "source"
	StackTraceKey   = "stacktrace"
	ErrClassKey     = "class"
)

var (
	logLevel   = &slog.LevelVar{}
	instanceID = xid.New().String()
)

// SetLogLevel sets the level of every logger created by NewLogger. An empty level is ignored.
func SetLogLevel(level string) error {
	if level != "" {
		return logLevel.UnmarshalText([]byte(level))
	}
	return nil
}

// ErrAttr is a helper for logging error values.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrorKey, err)
}

// NewTestLogger creates a new logger for testing.
// NOTE: Since this logger uses the testing t.Log method,
// it will only log when the test fails. It panics if used after the test has completed.
func NewTestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slogt.New(t, slogt.JSON()).With(slog.String("test", t.Name()))
}

// NewLogger creates a new slog logger backed by zerolog writing JSON to stdout.
func NewLogger(serviceName string) *slog.Logger {
	return NewLoggerTo(serviceName, os.Stdout)
}

// NewLoggerTo is NewLogger writing to w, for programs whose stdout carries data.
func NewLoggerTo(serviceName string, w io.Writer) *slog.Logger {
	// ms granularity should be sufficient
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	zlogger := zerolog.
		New(w).With().
		Timestamp().
		Str("service", serviceName).
		Str("instance", instanceID).
		Str("version", version.Info.Version).
		Str("git_commit", version.Info.GitCommit).
		Logger()

	return NewZerologLogger(&zlogger)
}

// NewZerologLogger wraps an existing zerolog logger, applying the package log level and error formatting.
func NewZerologLogger(zlogger *zerolog.Logger) *slog.Logger {
	return slog.New(slogzerolog.Option{
		Converter: CustomSlogConverter,
		Level:     logLevel,
		Logger:    zlogger,
	}.NewZerologHandler())
}

// CustomSlogConverter is slogcommon.DefaultConverter with error attributes expanded by expandErrors.
func CustomSlogConverter(addSource bool, replaceAttr func(groups []string, a slog.Attr) slog.Attr, loggerAttr []slog.Attr, groups []string, record *slog.Record) map[string]any {
	attrs := slogcommon.AppendRecordAttrsToAttrs(loggerAttr, groups, record)

	attrs = expandErrors(attrs)
	if addSource {
		attrs = append(attrs, slogcommon.Source(SourceKey, record))
	}
	attrs = slogcommon.ReplaceAttrs(replaceAttr, []string{}, attrs...)

	return slogcommon.AttrsToMap(attrs...)
}

/*
expandErrors rewrites a top level "error" attribute holding an error value.

A single error becomes

	"error": err.Error(),
	"error_context": {"error": ..., "stacktrace": [...], "class": ...}

where error_context is omitted when there is nothing beyond the message.
A joined error becomes

	"error": [child.Error(), ...],
	"error_context": {"error_0": {...}, "error_1": {...}}
*/
func expandErrors(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs)+1)
	for _, a := range attrs {
		err, ok := a.Value.Any().(error)
		if a.Key != ErrorKey || !ok || err == nil {
			out = append(out, a)
			continue
		}

		children := xerrors.Unjoin(err)
		if len(children) == 1 {
			out = append(out, slog.String(ErrorKey, err.Error()))
			if details := errorDetails(err); len(details) > 1 {
				out = append(out, slog.Group(ErrorContextKey, details...))
			}
			continue
		}

		messages := make([]string, len(children))
		groups := make([]any, len(children))
		for i, child := range children {
			messages[i] = child.Error()
			groups[i] = slog.Group(fmt.Sprintf("error_%d", i), errorDetails(child)...)
		}
		out = append(out, slog.Any(ErrorKey, messages), slog.Group(ErrorContextKey, groups...))
	}
	return out
}

func errorDetails(err error) []any {
	details := []any{slog.String(ErrorKey, err.Error())}
	if trace := stacktrace.Extract(err); trace != nil {
		details = append(details, slog.Any(StackTraceKey, trace.LogValue().Any()))
	}
	if class := errclass.GetClass(err); class != errclass.Unknown {
		details = append(details, slog.String(ErrClassKey, class.String()))
	}
	return details
}
