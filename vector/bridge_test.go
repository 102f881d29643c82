package vector_test

import (
	"testing"

	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/vector"
)

func TestFromArrowInt64(t *testing.T) {
	mem := memory.DefaultAllocator
	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.Append(1)
	b.AppendNull()
	b.Append(3)
	arr := b.NewArray()
	defer arr.Release()

	v, err := vector.FromArrow(mem, arr)
	require.NoError(t, err)
	defer v.Release()

	i64 := v.(*vector.Int64Vec)
	assert.Equal(t, draken.Int64, i64.Type())
	assert.Equal(t, 3, i64.Len())
	assert.Equal(t, 1, i64.NullCount())
	assert.Equal(t, []byte{0, 1, 0}, i64.IsNullMask())
	assert.Equal(t, int64(1), i64.Value(0))
	assert.Equal(t, int64(3), i64.Value(2))
}

func TestFromArrowString(t *testing.T) {
	mem := memory.DefaultAllocator
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.Append("hello")
	b.AppendNull()
	arr := b.NewArray()
	defer arr.Release()

	v, err := vector.FromArrow(mem, arr)
	require.NoError(t, err)
	defer v.Release()

	sv := v.(*vector.StringVec)
	assert.Equal(t, draken.String, sv.Type())
	assert.Equal(t, []byte("hello"), sv.Value(0))
	assert.Equal(t, []byte{0, 1}, sv.IsNullMask())
}

func TestFromArrowUnknownTypeIsForeign(t *testing.T) {
	mem := memory.DefaultAllocator
	b := array.NewFloat16Builder(mem)
	defer b.Release()
	b.AppendNull()
	arr := b.NewArray()
	defer arr.Release()

	v, err := vector.FromArrow(mem, arr)
	require.NoError(t, err)
	defer v.Release()

	assert.Equal(t, draken.NonNative, v.Type())
	_, ok := v.(*vector.ForeignArrowVec)
	assert.True(t, ok)
}
