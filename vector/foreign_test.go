package vector_test

import (
	"testing"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/vector"
)

func buildForeignArray(t *testing.T) arrow.Array {
	t.Helper()
	mem := memory.DefaultAllocator
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.Append("x")
	b.AppendNull()
	b.Append("zz")
	return b.NewArray()
}

func TestForeignArrowVecReportsNonNative(t *testing.T) {
	mem := memory.DefaultAllocator
	arr := buildForeignArray(t)
	defer arr.Release()

	v := vector.NewForeignArrowVector(mem, arr)
	defer v.Release()

	assert.Equal(t, draken.NonNative, v.Type())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 1, v.NullCount())
	assert.Equal(t, []byte{0, 1, 0}, v.IsNullMask())
}

func TestForeignArrowVecHashFallback(t *testing.T) {
	mem := memory.DefaultAllocator
	arr := buildForeignArray(t)
	defer arr.Release()

	v := vector.NewForeignArrowVector(mem, arr)
	defer v.Release()

	hashes := v.Hash()
	require.Len(t, hashes, 3)
	assert.Equal(t, draken.NullHash, hashes[1])
	assert.NotEqual(t, draken.NullHash, hashes[0])
}

func TestForeignArrowVecTakeDelegatesToCompute(t *testing.T) {
	mem := memory.DefaultAllocator
	arr := buildForeignArray(t)
	defer arr.Release()

	v := vector.NewForeignArrowVector(mem, arr)
	defer v.Release()

	out, err := v.Take([]int32{2, 0})
	require.NoError(t, err)
	taken := out.(*vector.ForeignArrowVec)
	defer taken.Release()

	assert.Equal(t, 2, taken.Len())
}

func TestForeignArrowVecTakeOutOfRange(t *testing.T) {
	mem := memory.DefaultAllocator
	arr := buildForeignArray(t)
	defer arr.Release()

	v := vector.NewForeignArrowVector(mem, arr)
	defer v.Release()

	_, err := v.Take([]int32{99})
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrIndexOutOfRange))
}
