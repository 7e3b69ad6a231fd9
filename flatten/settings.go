// Package flatten streams text inputs as a flat sequence of tokens.
package flatten

import (
	"errors"
	"fmt"

	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/stacktrace"
)

// Mode selects how a line is split into tokens.
type Mode string

const (
	// ModeChars yields every character of a line.
	ModeChars Mode = "chars"
	// ModeWords yields the whitespace separated words of a line.
	ModeWords Mode = "words"
	// ModeSplit yields the pieces of a line between occurrences of Settings.Separator.
	ModeSplit Mode = "split"
	// ModeBytes yields every byte of a line as a one byte string.
	ModeBytes Mode = "bytes"
)

var (
	// ErrUnknownMode is returned for a Mode other than the ones declared above.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrMissingSeparator is returned for ModeSplit without a Separator.
	ErrMissingSeparator = errors.New("split mode requires a separator")
	// ErrNegativeCache is returned for a negative CacheSize.
	ErrNegativeCache = errors.New("cache size must not be negative")
	// ErrNegativeLineSize is returned for a negative MaxLineSize.
	ErrNegativeLineSize = errors.New("max line size must not be negative")
)

// Output configures how tokens are written.
type Output struct {
	// Separator is written between tokens. A newline separator also terminates the last token.
	Separator string `koanf:"separator"`
}

// Log configures the logger of the command line tool.
type Log struct {
	Level string `koanf:"level"`
}

// Settings configures a Run.
type Settings struct {
	Mode      Mode   `koanf:"mode"`
	Separator string `koanf:"separator"`
	// Distinct drops tokens already written.
	Distinct bool `koanf:"distinct"`
	// SkipBlank drops tokens made only of whitespace.
	SkipBlank bool `koanf:"skipblank"`
	// CacheSize is the number of distinct lines whose tokens are memoized. Zero disables the cache.
	CacheSize int `koanf:"cachesize"`
	// MaxLineSize is the longest input line in bytes. Zero means iter.DefaultMaxLineSize.
	// A longer line ends its input with a read error.
	MaxLineSize int    `koanf:"maxlinesize"`
	Output      Output `koanf:"output"`
	Log         Log    `koanf:"log"`
}

// DefaultSettings splits lines into words and writes one token per line.
func DefaultSettings() Settings {
	return Settings{
		Mode:   ModeWords,
		Output: Output{Separator: "\n"},
		Log:    Log{Level: "info"},
	}
}

// Validate reports the first problem with s as a persistent error.
func (s Settings) Validate() error {
	var err error
	switch {
	case s.Mode != ModeChars && s.Mode != ModeWords && s.Mode != ModeSplit && s.Mode != ModeBytes:
		err = fmt.Errorf("%w: %q", ErrUnknownMode, s.Mode)
	case s.Mode == ModeSplit && s.Separator == "":
		err = ErrMissingSeparator
	case s.CacheSize < 0:
		err = fmt.Errorf("%w: %d", ErrNegativeCache, s.CacheSize)
	case s.MaxLineSize < 0:
		err = fmt.Errorf("%w: %d", ErrNegativeLineSize, s.MaxLineSize)
	}
	return errclass.WrapAs(stacktrace.Wrap(err), errclass.Persistent)
}
