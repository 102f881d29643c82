package vector

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
)

// ArrayVec is a nested list vector: offsets slice a child Vector the same
// way a StringVec's offsets slice raw bytes. The child can be any concrete
// vector, including another ArrayVec.
type ArrayVec struct {
	offsets []int32
	bitmap  []byte // nil means all rows valid
	length  int
	child   Vector

	offsetsBuf *memory.Buffer
	bitmapBuf  *memory.Buffer
	borrowed   arrow.Array
}

// NewArrayVector builds an owned ArrayVec. offsets must have length+1
// entries; child is retained by the new vector.
func NewArrayVector(mem memory.Allocator, offsets []int32, bitmap []byte, child Vector) *ArrayVec {
	length := len(offsets) - 1
	offsetsBuf := memory.NewResizableBuffer(mem)
	offsetsBuf.Resize(len(offsets) * 4)
	copy(bytesAsSlice[int32](offsetsBuf.Bytes(), len(offsets)), offsets)

	v := &ArrayVec{
		offsets:    bytesAsSlice[int32](offsetsBuf.Bytes(), len(offsets)),
		length:     length,
		child:      child,
		offsetsBuf: offsetsBuf,
	}
	if bitmap != nil {
		bmBuf := memory.NewResizableBuffer(mem)
		bmBuf.Resize(bytesForBits(length))
		copy(bmBuf.Bytes(), bitmap)
		v.bitmapBuf = bmBuf
		v.bitmap = bmBuf.Bytes()
	}
	child.Retain()
	return v
}

func newBorrowedArrayVector(arr arrow.Array, offsets []int32, bitmap []byte, length int, child Vector) *ArrayVec {
	arr.Retain()
	return &ArrayVec{offsets: offsets, bitmap: bitmap, length: length, child: child, borrowed: arr}
}

func (v *ArrayVec) Type() draken.Type  { return draken.Array }
func (v *ArrayVec) Len() int           { return v.length }
func (v *ArrayVec) NullCount() int     { return nullCountFromBitmap(v.bitmap, v.length) }
func (v *ArrayVec) IsNullMask() []byte { return isNullMask(v.bitmap, v.length) }

func (v *ArrayVec) Retain() {
	if v.offsetsBuf != nil {
		v.offsetsBuf.Retain()
	}
	if v.bitmapBuf != nil {
		v.bitmapBuf.Retain()
	}
	if v.borrowed != nil {
		v.borrowed.Retain()
	}
	v.child.Retain()
}

func (v *ArrayVec) Release() {
	if v.offsetsBuf != nil {
		v.offsetsBuf.Release()
	}
	if v.bitmapBuf != nil {
		v.bitmapBuf.Release()
	}
	if v.borrowed != nil {
		v.borrowed.Release()
	}
	v.child.Release()
}

func (v *ArrayVec) isValid(i int) bool {
	return v.bitmap == nil || bitGet(v.bitmap, i)
}

// Child returns the underlying vector the offsets slice.
func (v *ArrayVec) Child() Vector { return v.child }

// Range returns the [start, end) child-index bounds of row i.
func (v *ArrayVec) Range(i int) (int32, int32) { return v.offsets[i], v.offsets[i+1] }

func (v *ArrayVec) Hash() []uint64 {
	childHashes := v.child.Hash()
	out := make([]uint64, v.length)
	for i := 0; i < v.length; i++ {
		if !v.isValid(i) {
			out[i] = draken.NullHash
			continue
		}
		h := draken.HashBytes(nil)
		start, end := v.Range(i)
		for _, ch := range childHashes[start:end] {
			h ^= ch
			h *= 0x100000001B3
		}
		out[i] = h
	}
	return out
}

// Take gathers rows at indices, rebuilding offsets and slicing the child
// vector through a single flattened Take call over all selected ranges.
func (v *ArrayVec) Take(indices []int32) (Vector, error) {
	childIndices := make([]int32, 0, len(indices))
	newOffsets := make([]int32, len(indices)+1)
	var outBitmap []byte
	anyNull := false
	pos := int32(0)
	for k, idx := range indices {
		if idx < 0 || int(idx) >= v.length {
			return nil, draken.NewError(draken.ErrIndexOutOfRange, "take index %d out of range [0, %d)", idx, v.length)
		}
		newOffsets[k] = pos
		start, end := v.Range(int(idx))
		for c := start; c < end; c++ {
			childIndices = append(childIndices, c)
		}
		pos += end - start
		if !v.isValid(int(idx)) {
			anyNull = true
		}
	}
	newOffsets[len(indices)] = pos

	newChild, err := v.child.Take(childIndices)
	if err != nil {
		return nil, err
	}

	if anyNull {
		outBitmap = newAllValidBitmap(len(indices))
		for k, idx := range indices {
			if !v.isValid(int(idx)) {
				bitClear(outBitmap, k)
			}
		}
	}

	result := NewArrayVector(memory.DefaultAllocator, newOffsets, outBitmap, newChild)
	newChild.Release() // NewArrayVector retains its own reference
	return result, nil
}

func (v *ArrayVec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	childArr, err := v.child.ToArrow(mem)
	if err != nil {
		return nil, err
	}
	offsetsBuf := v.offsetsBuf
	if offsetsBuf == nil {
		offsetsBuf = memory.NewBufferBytes(typedSliceBytes(v.offsets))
	}
	var bitmapBuf *memory.Buffer
	switch {
	case v.bitmapBuf != nil:
		bitmapBuf = v.bitmapBuf
	case v.bitmap != nil:
		bitmapBuf = memory.NewBufferBytes(v.bitmap)
	}
	buffers := []*memory.Buffer{bitmapBuf, offsetsBuf}
	dtype := arrow.ListOf(childArr.DataType())
	data := array.NewData(dtype, v.length, buffers, []arrow.ArrayData{childArr.Data()}, v.NullCount(), 0)
	defer data.Release()
	return array.MakeFromData(data), nil
}

var _ Vector = (*ArrayVec)(nil)
