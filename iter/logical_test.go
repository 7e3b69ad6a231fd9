package iter_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	zkriter "github.com/zircuit-labs/zkr-go-iter/iter"
)

func TestAndOr(t *testing.T) {
	t.Parallel()

	even := func(n int) bool { return n%2 == 0 }
	tests := []struct {
		name   string
		values []int
		and    bool
		or     bool
	}{
		{
			name:   "all elements satisfy predicate",
			values: []int{2, 4, 6, 8},
			and:    true,
			or:     true,
		},
		{
			name:   "some elements satisfy predicate",
			values: []int{2, 4, 5, 8},
			and:    false,
			or:     true,
		},
		{
			name:   "no elements satisfy predicate",
			values: []int{1, 3, 5},
			and:    false,
			or:     false,
		},
		{
			name:   "empty sequence",
			values: []int{},
			and:    true, // vacuous truth
			or:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.and, zkriter.And(even, slices.Values(tt.values)))
			assert.Equal(t, tt.or, zkriter.Or(even, slices.Values(tt.values)))
		})
	}
}

func TestAndOr_EarlyTermination(t *testing.T) {
	t.Parallel()

	checked := 0
	positive := func(n int) bool {
		checked++
		return n > 0
	}

	assert.False(t, zkriter.And(positive, slices.Values([]int{1, -1, 2, 3})))
	assert.Equal(t, 2, checked)

	checked = 0
	assert.True(t, zkriter.Or(positive, slices.Values([]int{-1, 1, 2, 3})))
	assert.Equal(t, 2, checked)
}

func TestCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, zkriter.Count(zkriter.Empty[int]()))
	assert.Equal(t, 10, zkriter.Count[rune](zkriter.FlatMap(zkriter.Of("123", "GGG", "AAAA"), zkriter.Runes)))
}
