package flatten_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zircuit-labs/zkr-go-iter/flatten"
	zkriter "github.com/zircuit-labs/zkr-go-iter/iter"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
)

func TestNewExpander(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mode      flatten.Mode
		separator string
		line      string
		expected  []string
	}{
		{
			name:     "chars",
			mode:     flatten.ModeChars,
			line:     "héllo",
			expected: []string{"h", "é", "l", "l", "o"},
		},
		{
			name:     "chars of empty line",
			mode:     flatten.ModeChars,
			line:     "",
			expected: nil,
		},
		{
			name:     "words",
			mode:     flatten.ModeWords,
			line:     "  the quick\tbrown  fox ",
			expected: []string{"the", "quick", "brown", "fox"},
		},
		{
			name:      "split keeps empty fields",
			mode:      flatten.ModeSplit,
			separator: ",",
			line:      "a,,b,",
			expected:  []string{"a", "", "b", ""},
		},
		{
			name:      "split of empty line",
			mode:      flatten.ModeSplit,
			separator: ",",
			line:      "",
			expected:  nil,
		},
		{
			name:     "bytes",
			mode:     flatten.ModeBytes,
			line:     "é!",
			expected: []string{"\xc3", "\xa9", "!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, cacheSize := range []int{0, 4} {
				settings := flatten.Settings{Mode: tt.mode, Separator: tt.separator, CacheSize: cacheSize}
				expand, err := flatten.NewExpander(settings)
				require.NoError(t, err)

				// twice, so the cached path is exercised too
				assert.Equal(t, tt.expected, zkriter.Collect(expand(tt.line)))
				assert.Equal(t, tt.expected, zkriter.Collect(expand(tt.line)))
			}
		})
	}
}

func TestNewExpander_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings flatten.Settings
		expected error
	}{
		{
			name:     "unknown mode",
			settings: flatten.Settings{Mode: "sentences"},
			expected: flatten.ErrUnknownMode,
		},
		{
			name:     "empty mode",
			settings: flatten.Settings{},
			expected: flatten.ErrUnknownMode,
		},
		{
			name:     "split without separator",
			settings: flatten.Settings{Mode: flatten.ModeSplit},
			expected: flatten.ErrMissingSeparator,
		},
		{
			name:     "negative cache",
			settings: flatten.Settings{Mode: flatten.ModeWords, CacheSize: -1},
			expected: flatten.ErrNegativeCache,
		},
		{
			name:     "negative max line size",
			settings: flatten.Settings{Mode: flatten.ModeWords, MaxLineSize: -1},
			expected: flatten.ErrNegativeLineSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := flatten.NewExpander(tt.settings)
			require.ErrorIs(t, err, tt.expected)
			assert.Equal(t, errclass.Persistent, errclass.GetClass(err))
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	settings := flatten.DefaultSettings()
	require.NoError(t, settings.Validate())
	assert.Equal(t, flatten.ModeWords, settings.Mode)
	assert.Equal(t, "\n", settings.Output.Separator)
}
