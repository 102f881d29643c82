package vector_test

import (
	"testing"

	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/vector"
)

func TestArrayVecRangeAndTake(t *testing.T) {
	mem := memory.DefaultAllocator
	child := vector.NewInt64Vector(mem, []int64{10, 20, 30, 40, 50}, nil)
	// row0 = [10,20], row1 = [], row2 = [30,40,50]
	offsets := []int32{0, 2, 2, 5}
	v := vector.NewArrayVector(mem, offsets, nil, child)
	child.Release() // NewArrayVector retains its own reference
	defer v.Release()

	require.Equal(t, 3, v.Len())
	start, end := v.Range(2)
	assert.Equal(t, int32(2), start)
	assert.Equal(t, int32(5), end)

	out, err := v.Take([]int32{2, 0})
	require.NoError(t, err)
	taken := out.(*vector.ArrayVec)
	defer taken.Release()

	assert.Equal(t, 2, taken.Len())
	s0, e0 := taken.Range(0)
	assert.Equal(t, int32(3), e0-s0)
	s1, e1 := taken.Range(1)
	assert.Equal(t, int32(2), e1-s1)
}

func TestArrayVecHashNullRows(t *testing.T) {
	mem := memory.DefaultAllocator
	child := vector.NewInt64Vector(mem, []int64{1, 2, 3}, nil)
	offsets := []int32{0, 2, 2, 3}
	bitmap := bitmapFromBools(true, false, true)
	v := vector.NewArrayVector(mem, offsets, bitmap, child)
	child.Release()
	defer v.Release()

	hashes := v.Hash()
	require.Len(t, hashes, 3)
	assert.Equal(t, draken.NullHash, hashes[1])
	assert.NotEqual(t, draken.NullHash, hashes[0])
}

func TestArrayVecTakeOutOfRange(t *testing.T) {
	mem := memory.DefaultAllocator
	child := vector.NewInt64Vector(mem, []int64{1, 2}, nil)
	offsets := []int32{0, 1, 2}
	v := vector.NewArrayVector(mem, offsets, nil, child)
	child.Release()
	defer v.Release()

	_, err := v.Take([]int32{5})
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrIndexOutOfRange))
}
