package vector_test

import (
	"testing"

	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/draken/vector"
)

func TestDate32VecComparisons(t *testing.T) {
	mem := memory.DefaultAllocator
	v := vector.NewDate32Vector(mem, []int32{100, 200, 300}, nil)
	defer v.Release()

	assert.Equal(t, []int8{0, 0, 1}, v.GreaterThan(200))

	other := vector.NewDate32Vector(mem, []int32{100, 150, 300}, nil)
	defer other.Release()

	out, err := v.GreaterThanVector(other)
	require.NoError(t, err)
	assert.Equal(t, []int8{0, 1, 0}, out)
}

func TestTimestamp64VecUnitAndReductions(t *testing.T) {
	assert.Equal(t, vector.TimestampUnit.String(), "us")

	mem := memory.DefaultAllocator
	v := vector.NewTimestamp64Vector(mem, []int64{1000, 2000, 3000}, nil)
	defer v.Release()

	assert.Equal(t, int64(6000), v.Sum())
	mn, ok := v.Min()
	require.True(t, ok)
	assert.Equal(t, int64(1000), mn)
}

func TestTimestamp64VecTakePreservesNulls(t *testing.T) {
	mem := memory.DefaultAllocator
	bitmap := bitmapFromBools(true, false)
	v := vector.NewTimestamp64Vector(mem, []int64{1, 2}, bitmap)
	defer v.Release()

	out, err := v.Take([]int32{1, 0})
	require.NoError(t, err)
	taken := out.(*vector.Timestamp64Vec)
	defer taken.Release()

	assert.Equal(t, []byte{1, 0}, taken.IsNullMask())
}
