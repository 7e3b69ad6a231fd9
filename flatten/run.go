package flatten

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/zircuit-labs/zkr-go-iter/calm"
	"github.com/zircuit-labs/zkr-go-iter/collections"
	zkriter "github.com/zircuit-labs/zkr-go-iter/iter"
	"github.com/zircuit-labs/zkr-go-iter/log"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/stacktrace"
)

// Stats summarizes a Run.
type Stats struct {
	// Inputs is the number of inputs opened, which is less than given when the run stops early.
	Inputs  int
	Lines   int
	Tokens  int
	Elapsed time.Duration
}

type options struct {
	logger *slog.Logger
	clock  clockwork.Clock
}

// Option is an option func for Run.
type Option func(options *options)

// WithLogger sets the logger to be used.
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithClock sets the clock used to measure Stats.Elapsed.
func WithClock(clock clockwork.Clock) Option {
	return func(options *options) {
		options.clock = clock
	}
}

// Run reads the lines of every input in order, expands each line into tokens according to settings
// and writes the tokens to w.
//
// Inputs are read lazily, one line at a time, and nothing is buffered beyond the tokens of the current line.
// A failing input does not stop the run: the remaining inputs are still processed and the read errors are
// returned joined once the stream is drained. Write errors, cancellation of ctx and panics raised while
// producing tokens stop the run immediately.
func Run(ctx context.Context, settings Settings, inputs []io.Reader, w io.Writer, opts ...Option) (Stats, error) {
	options := options{
		logger: log.NewNilLogger(),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	expand, err := NewExpander(settings)
	if err != nil {
		return Stats{}, err
	}

	var (
		stats   Stats
		sources []*zkriter.LineIterator
		start   = options.clock.Now()
	)

	lines := zkriter.FlatMap(zkriter.FromSlice(inputs), func(r io.Reader) zkriter.Iterator[string] {
		stats.Inputs++
		source := zkriter.LinesWithMax(r, settings.MaxLineSize)
		sources = append(sources, source)
		return source
	})
	counted := zkriter.TransformIter(func(line string) string {
		stats.Lines++
		return line
	}, lines)

	var tokens zkriter.Iterator[string] = zkriter.FlatMap(counted, expand)
	if settings.SkipBlank {
		tokens = zkriter.FilterIter(zkriter.Not(isBlank), tokens)
	}
	if settings.Distinct {
		tokens = collections.Distinct(tokens, nil)
	}

	bw := bufio.NewWriter(w)
	err = calm.Unpanic(func() error {
		return write(ctx, bw, tokens, settings.Output.Separator, &stats)
	})
	if err == nil {
		if ferr := bw.Flush(); ferr != nil {
			err = stacktrace.Wrap(fmt.Errorf("flushing output: %w", ferr))
		}
	}

	readErrs := []error{err}
	for i, source := range sources {
		if rerr := source.Err(); rerr != nil {
			readErrs = append(readErrs, stacktrace.Wrap(fmt.Errorf("reading input %d: %w", i, rerr)))
		}
	}
	err = errors.Join(readErrs...)

	stats.Elapsed = options.clock.Since(start)
	options.logger.Info("flattened inputs",
		slog.Int("inputs", stats.Inputs),
		slog.Int("lines", stats.Lines),
		slog.Int("tokens", stats.Tokens),
		slog.Duration("elapsed", stats.Elapsed),
		slog.String("mode", string(settings.Mode)),
	)

	return stats, err
}

func write(ctx context.Context, w *bufio.Writer, tokens zkriter.Iterator[string], separator string, stats *Stats) error {
	for token := range zkriter.Seq(tokens) {
		if err := ctx.Err(); err != nil {
			return errclass.WrapAs(stacktrace.Wrap(err), errclass.Transient)
		}
		if stats.Tokens > 0 {
			if _, err := w.WriteString(separator); err != nil {
				return stacktrace.Wrap(fmt.Errorf("writing output: %w", err))
			}
		}
		if _, err := w.WriteString(token); err != nil {
			return stacktrace.Wrap(fmt.Errorf("writing output: %w", err))
		}
		stats.Tokens++
	}

	if separator == "\n" && stats.Tokens > 0 {
		if err := w.WriteByte('\n'); err != nil {
			return stacktrace.Wrap(fmt.Errorf("writing output: %w", err))
		}
	}
	return nil
}

func isBlank(token string) bool {
	return strings.TrimSpace(token) == ""
}
