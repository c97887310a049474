package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{"no cause", New(ErrCodeNotFound, "restaurant not found"), "[NOT_FOUND] restaurant not found"},
		{"with cause", Wrap(ErrCodeUnavailable, "fetch failed", stderrors.New("eof")), "[UNAVAILABLE] fetch failed: eof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestStructuredError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("loading menus: %w", WrapWithContext(ErrCodeUnavailable, "fetch failed", cause, map[string]any{"id": 6}))

	assert.True(t, stderrors.Is(err, cause))

	var se *StructuredError
	require.True(t, stderrors.As(err, &se))
	assert.Equal(t, 6, se.Context["id"])
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeTimeout, CodeOf(fmt.Errorf("wrapped: %w", New(ErrCodeTimeout, "slow"))))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("plain")))
	assert.True(t, IsCode(New(ErrCodeNotFound, "x"), ErrCodeNotFound))
	assert.False(t, IsCode(stderrors.New("x"), ErrCodeNotFound))
}
