package flatten

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	zkriter "github.com/zircuit-labs/zkr-go-iter/iter"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/stacktrace"
)

// NewExpander returns the expansion of one line into its tokens for s.
// With a positive CacheSize the tokens of recently seen lines are reused instead of recomputed.
func NewExpander(s Settings) (zkriter.Expansion[string, string], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	expand := expansion(s.Mode, s.Separator)
	if s.CacheSize == 0 {
		return expand, nil
	}

	cache, err := lru.New[string, []string](s.CacheSize)
	if err != nil {
		return nil, errclass.WrapAs(stacktrace.Wrap(err), errclass.Persistent)
	}

	return func(line string) zkriter.Iterator[string] {
		tokens, ok := cache.Get(line)
		if !ok {
			tokens = zkriter.Collect(expand(line))
			cache.Add(line, tokens)
		}
		return zkriter.FromSlice(tokens)
	}, nil
}

func expansion(mode Mode, separator string) zkriter.Expansion[string, string] {
	switch mode {
	case ModeChars:
		return func(line string) zkriter.Iterator[string] {
			return zkriter.TransformIter(runeString, zkriter.Runes(line))
		}
	case ModeSplit:
		return func(line string) zkriter.Iterator[string] {
			if line == "" {
				return zkriter.Empty[string]()
			}
			return zkriter.FromSlice(strings.Split(line, separator))
		}
	case ModeBytes:
		return byteStrings
	default:
		return func(line string) zkriter.Iterator[string] {
			return zkriter.FromSlice(strings.Fields(line))
		}
	}
}

func runeString(r rune) string {
	return string(r)
}

func byteStrings(line string) zkriter.Iterator[string] {
	i := 0
	return zkriter.NewIterator(func() (string, bool) {
		if i >= len(line) {
			return "", false
		}
		i++
		return line[i-1 : i], true
	})
}
