package draken_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/draken"
)

func TestNewErrorCarriesKind(t *testing.T) {
	err := draken.NewError(draken.ErrIndexOutOfRange, "index %d out of range", 7)
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrIndexOutOfRange))
	assert.False(t, draken.Is(err, draken.ErrLengthMismatch))
	assert.Contains(t, err.Error(), "index 7 out of range")
}

func TestWrapErrorPreservesCause(t *testing.T) {
	cause := draken.NewError(draken.ErrOutOfMemory, "allocation failed")
	wrapped := draken.WrapError(draken.ErrUnsupportedType, cause, "while converting column %q", "x")
	require.Error(t, wrapped)
	assert.True(t, draken.Is(wrapped, draken.ErrUnsupportedType))
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsOnPlainError(t *testing.T) {
	assert.False(t, draken.Is(assertPlainError{}, draken.ErrIncomplete))
}

type assertPlainError struct{}

func (assertPlainError) Error() string { return "plain" }

func TestHashBytesIsDeterministic(t *testing.T) {
	a := draken.HashBytes([]byte("hello"))
	b := draken.HashBytes([]byte("hello"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, draken.HashBytes([]byte("world")))
}

func TestTypeIsNumeric(t *testing.T) {
	assert.True(t, draken.Int64.IsNumeric())
	assert.True(t, draken.Float32.IsNumeric())
	assert.False(t, draken.Bool.IsNumeric())
	assert.False(t, draken.String.IsNumeric())
	assert.False(t, draken.Array.IsNumeric())
}

func TestTypeStableCodes(t *testing.T) {
	assert.EqualValues(t, 1, draken.Int8)
	assert.EqualValues(t, 4, draken.Int64)
	assert.EqualValues(t, 20, draken.Float32)
	assert.EqualValues(t, 30, draken.Date32)
	assert.EqualValues(t, 40, draken.Timestamp64)
	assert.EqualValues(t, 50, draken.Bool)
	assert.EqualValues(t, 60, draken.String)
	assert.EqualValues(t, 80, draken.Array)
	assert.EqualValues(t, 100, draken.NonNative)
}
