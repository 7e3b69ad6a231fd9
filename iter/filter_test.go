package iter_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zkriter "github.com/zircuit-labs/zkr-go-iter/iter"
)

func TestFilter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		input     []int
		predicate zkriter.Predicate[int]
		expected  []int
	}{
		{
			name:      "filter even numbers",
			input:     []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			predicate: func(n int) bool { return n%2 == 0 },
			expected:  []int{2, 4, 6, 8, 10},
		},
		{
			name:      "empty sequence",
			input:     []int{},
			predicate: func(n int) bool { return true },
			expected:  nil,
		},
		{
			name:      "all elements filtered out",
			input:     []int{1, 3, 5, 7, 9},
			predicate: func(n int) bool { return n%2 == 0 },
			expected:  nil,
		},
		{
			name:      "greater than threshold",
			input:     []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			predicate: func(n int) bool { return n > 5 },
			expected:  []int{6, 7, 8, 9, 10},
		},
		{
			name:      "single element input fails",
			input:     []int{42},
			predicate: func(n int) bool { return n == 0 },
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pushed := slices.Collect(zkriter.Filter(tt.predicate, slices.Values(tt.input)))
			assert.Equal(t, tt.expected, pushed)

			pulled := zkriter.Collect(zkriter.FilterIter(tt.predicate, zkriter.FromSlice(tt.input)))
			assert.Equal(t, tt.expected, pulled)
		})
	}
}

func TestFilter_Not(t *testing.T) {
	t.Parallel()

	blank := func(s string) bool { return strings.TrimSpace(s) == "" }
	input := []string{"a", " ", "", "b", "\t"}

	assert.Equal(t, []string{"a", "b"}, slices.Collect(zkriter.Filter(zkriter.Not(blank), slices.Values(input))))
	assert.Equal(t, []string{" ", "", "\t"}, slices.Collect(zkriter.Filter(blank, slices.Values(input))))
}

func TestFilterIter_SkipsWithinOneCall(t *testing.T) {
	t.Parallel()

	pulls := 0
	source := zkriter.TransformIter(func(n int) int {
		pulls++
		return n
	}, zkriter.Of(1, 3, 5, 6, 7))

	even := zkriter.FilterIter(func(n int) bool { return n%2 == 0 }, source)

	v, ok := even.Next()
	require.True(t, ok)
	assert.Equal(t, 6, v)
	assert.Equal(t, 4, pulls)

	_, ok = even.Next()
	assert.False(t, ok)
	assert.Equal(t, 5, pulls)
}

func TestFilter_StatefulPredicate(t *testing.T) {
	t.Parallel()

	// keeps every other element
	count := 0
	everyOther := func(int) bool {
		count++
		return count%2 == 1
	}

	result := slices.Collect(zkriter.Filter(everyOther, slices.Values([]int{10, 20, 30, 40, 50})))
	assert.Equal(t, []int{10, 30, 50}, result)
}
