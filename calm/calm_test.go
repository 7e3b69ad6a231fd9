package calm_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zircuit-labs/zkr-go-iter/calm"
	zkriter "github.com/zircuit-labs/zkr-go-iter/iter"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/stacktrace"
)

func explode(s string) zkriter.Iterator[rune] {
	if s == "boom" {
		panic("cannot expand " + s)
	}
	return zkriter.Runes(s)
}

func TestUnpanic(t *testing.T) {
	t.Parallel()

	flat := zkriter.FlatMap(zkriter.Of("ok", "boom", "never"), explode)

	var drained []rune
	err := calm.Unpanic(func() error {
		drained = zkriter.Collect[rune](flat)
		return nil
	})
	require.Error(t, err)

	assert.Nil(t, drained)
	assert.Equal(t, "panic: cannot expand boom", err.Error())
	assert.Equal(t, errclass.Panic, errclass.GetClass(err))

	trace := stacktrace.Extract(err)
	require.NotEmpty(t, trace)
	assert.True(t, strings.HasSuffix(trace[0].Function, "calm_test.explode"), trace[0].Function)
}

func TestUnpanicPassesErrors(t *testing.T) {
	t.Parallel()

	errTest := errors.New("plain failure")
	err := calm.Unpanic(func() error { return errTest })
	require.ErrorIs(t, err, errTest)
	assert.Equal(t, errclass.Unknown, errclass.GetClass(err))

	assert.NoError(t, calm.Unpanic(func() error { return nil }))
}
