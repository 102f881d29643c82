package cdata_test

import (
	"testing"
	"unsafe"

	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/cdata"
	"github.com/mabel-dev/draken/vector"
)

func TestFormatForType(t *testing.T) {
	f, ok := cdata.FormatForType(draken.Int64)
	require.True(t, ok)
	assert.Equal(t, "l", f)

	f, ok = cdata.FormatForType(draken.String)
	require.True(t, ok)
	assert.Equal(t, "u", f)

	_, ok = cdata.FormatForType(draken.NonNative)
	assert.False(t, ok)
}

func TestExportImportRoundTrip(t *testing.T) {
	mem := memory.DefaultAllocator
	bitmap := []byte{0b101}
	v := vector.NewInt64Vector(mem, []int64{10, 20, 30}, bitmap)
	defer v.Release()

	arr, schema, err := cdata.Export(mem, v, "col")
	require.NoError(t, err)
	require.Equal(t, "l", schema.Format)
	require.Equal(t, int64(3), arr.Length)

	imported, err := cdata.Import(mem, arr, schema)
	require.NoError(t, err)
	defer imported.Release()

	i64 := imported.(*vector.Int64Vec)
	assert.Equal(t, int64(10), i64.Value(0))
	assert.Equal(t, int64(30), i64.Value(2))
	assert.Equal(t, []byte{0, 1, 0}, i64.IsNullMask())

	arr.Release(arr)
	schema.Release(schema)
}

func TestExportImportArrayVecRoundTrip(t *testing.T) {
	mem := memory.DefaultAllocator
	child := vector.NewInt64Vector(mem, []int64{10, 20, 30, 40, 50}, nil)
	v := vector.NewArrayVector(mem, []int32{0, 2, 2, 5}, nil, child)
	child.Release() // NewArrayVector retains its own reference
	defer v.Release()

	arr, schema, err := cdata.Export(mem, v, "rows")
	require.NoError(t, err)
	assert.Equal(t, "+l", schema.Format)
	require.Len(t, arr.Children, 1)
	require.Len(t, schema.Children, 1)
	assert.Equal(t, "l", schema.Children[0].Format)

	imported, err := cdata.Import(mem, arr, schema)
	require.NoError(t, err)
	defer imported.Release()

	arrVec := imported.(*vector.ArrayVec)
	assert.Equal(t, 3, arrVec.Len())
	start, end := arrVec.Range(2)
	assert.Equal(t, int32(2), start)
	assert.Equal(t, int32(5), end)

	childVec := arrVec.Child().(*vector.Int64Vec)
	assert.Equal(t, int64(10), childVec.Value(0))
	assert.Equal(t, int64(50), childVec.Value(4))

	arr.Release(arr)
	schema.Release(schema)
}

// A same-process NonNative round trip succeeds even though its format is
// the opaque "+u" marker: Import re-wraps the producer's own retained
// Arrow array directly rather than trying to reconstruct a DataType from
// the format string alone.
func TestExportImportForeignArrowVecRoundTrip(t *testing.T) {
	mem := memory.DefaultAllocator
	b := array.NewFloat16Builder(mem)
	defer b.Release()
	b.AppendNull()
	arrowArr := b.NewArray()
	defer arrowArr.Release()

	v := vector.NewForeignArrowVector(mem, arrowArr)
	defer v.Release()

	arr, schema, err := cdata.Export(mem, v, "opaque")
	require.NoError(t, err)
	assert.Equal(t, "+u", schema.Format)

	imported, err := cdata.Import(mem, arr, schema)
	require.NoError(t, err)
	defer imported.Release()

	fv := imported.(*vector.ForeignArrowVec)
	assert.Equal(t, draken.NonNative, fv.Type())
	assert.Equal(t, 1, fv.Len())

	arr.Release(arr)
	schema.Release(schema)
}

func TestImportUnrecognizedFormat(t *testing.T) {
	mem := memory.DefaultAllocator
	_, err := cdata.Import(mem, &cdata.ArrowArray{}, &cdata.ArrowSchema{Format: "???"})
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrUnsupportedType))
}

// Without a privateData handle — the genuine cross-process case this
// descriptor layout exists for — Import reconstructs buffers directly from
// raw pointers, and an opaque "+u" format has no way to recover a DataType
// from the format string alone.
func TestImportOpaqueFormatWithoutPrivateDataFails(t *testing.T) {
	mem := memory.DefaultAllocator
	_, err := cdata.Import(mem, &cdata.ArrowArray{}, &cdata.ArrowSchema{Format: "+u"})
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrUnsupportedType))
}

// Exercises Import's raw-buffer reconstruction path directly (no
// cdata.Export call, so arr carries no privateData), including a nested
// list whose child type is resolved from its own descriptor.
func TestImportReconstructsNestedListWithoutPrivateData(t *testing.T) {
	mem := memory.DefaultAllocator
	childValues := []int64{1, 2, 3, 4}
	offsets := []int32{0, 2, 4}

	childArr := &cdata.ArrowArray{
		Length:     4,
		Buffers:    []unsafe.Pointer{nil, unsafe.Pointer(&childValues[0])},
		BufferLens: []int64{0, int64(len(childValues) * 8)},
	}
	childSchema := &cdata.ArrowSchema{Format: "l"}

	arr := &cdata.ArrowArray{
		Length:     2,
		Buffers:    []unsafe.Pointer{nil, unsafe.Pointer(&offsets[0])},
		BufferLens: []int64{0, int64(len(offsets) * 4)},
		Children:   []*cdata.ArrowArray{childArr},
	}
	schema := &cdata.ArrowSchema{Format: "+l", Children: []*cdata.ArrowSchema{childSchema}}

	imported, err := cdata.Import(mem, arr, schema)
	require.NoError(t, err)
	defer imported.Release()

	arrVec := imported.(*vector.ArrayVec)
	start, end := arrVec.Range(1)
	assert.Equal(t, int32(2), start)
	assert.Equal(t, int32(4), end)

	childVec := arrVec.Child().(*vector.Int64Vec)
	assert.Equal(t, int64(3), childVec.Value(2))
}
