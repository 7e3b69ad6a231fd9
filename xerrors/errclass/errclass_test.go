package errclass_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
)

var (
	errTest    = errors.New("this is a test error")
	errTestToo = errors.New("this is also a test error")
)

func TestGetClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		class errclass.Class
	}{
		{
			name:  "nil error",
			err:   nil,
			class: errclass.Nil,
		},
		{
			name:  "unclassified error",
			err:   errTest,
			class: errclass.Unknown,
		},
		{
			name:  "transient error",
			err:   errclass.WrapAs(errTest, errclass.Transient),
			class: errclass.Transient,
		},
		{
			name:  "persistent error behind fmt wrapping",
			err:   fmt.Errorf("loading: %w", errclass.WrapAs(errTest, errclass.Persistent)),
			class: errclass.Persistent,
		},
		{
			name:  "joined takes most severe",
			err:   errors.Join(errclass.WrapAs(errTest, errclass.Panic), errclass.WrapAs(errTestToo, errclass.Transient)),
			class: errclass.Panic,
		},
		{
			name:  "joined with unclassified",
			err:   errors.Join(errTest, errclass.WrapAs(errTestToo, errclass.Transient)),
			class: errclass.Transient,
		},
		{
			name:  "joined unclassified only",
			err:   errors.Join(errTest, errTestToo),
			class: errclass.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.class, errclass.GetClass(tt.err))
		})
	}
}

func TestWrapAsNil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, errclass.WrapAs(nil, errclass.Persistent))
}

func TestClassString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nil", errclass.Nil.String())
	assert.Equal(t, "unknown", errclass.Unknown.String())
	assert.Equal(t, "transient", errclass.Transient.String())
	assert.Equal(t, "persistent", errclass.Persistent.String())
	assert.Equal(t, "panic", errclass.Panic.String())
	assert.Equal(t, "unknown", errclass.Class(42).String())
}
