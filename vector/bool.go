package vector

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/internal/debug"
)

// BoolVec is a bit-packed vector of booleans: both the data bits and the
// validity bitmap (when present) use the same bit-i-at-byte[i>>3] layout.
// The pattern mirrors the Arrow Go BooleanBuilder's rawData bit-twiddling,
// generalized here into a read/take/compare kernel set instead of an
// append-only builder.
type BoolVec struct {
	data   []byte // bit-packed values
	bitmap []byte // nil means all rows valid
	length int

	dataBuf   *memory.Buffer
	bitmapBuf *memory.Buffer
	borrowed  arrow.Array
}

// NewBoolVector builds an owned BoolVec from a bit-packed data buffer
// (length rows' worth of bits) and an optional validity bitmap.
func NewBoolVector(mem memory.Allocator, data []byte, bitmap []byte, length int) *BoolVec {
	nBytes := bytesForBits(length)
	if bitmap != nil {
		debug.Assert(len(bitmap) >= nBytes, "BoolVec: bitmap shorter than length-derived expectation")
	}
	dataBuf := memory.NewResizableBuffer(mem)
	dataBuf.Resize(nBytes)
	copy(dataBuf.Bytes(), data)

	v := &BoolVec{data: dataBuf.Bytes(), length: length, dataBuf: dataBuf}
	if bitmap != nil {
		bmBuf := memory.NewResizableBuffer(mem)
		bmBuf.Resize(nBytes)
		copy(bmBuf.Bytes(), bitmap)
		v.bitmapBuf = bmBuf
		v.bitmap = bmBuf.Bytes()
	}
	return v
}

func newBorrowedBoolVector(arr arrow.Array, data []byte, bitmap []byte, length int) *BoolVec {
	arr.Retain()
	return &BoolVec{data: data, bitmap: bitmap, length: length, borrowed: arr}
}

func (v *BoolVec) Type() draken.Type  { return draken.Bool }
func (v *BoolVec) Len() int           { return v.length }
func (v *BoolVec) NullCount() int     { return nullCountFromBitmap(v.bitmap, v.length) }
func (v *BoolVec) IsNullMask() []byte { return isNullMask(v.bitmap, v.length) }

func (v *BoolVec) Retain() {
	if v.dataBuf != nil {
		v.dataBuf.Retain()
	}
	if v.bitmapBuf != nil {
		v.bitmapBuf.Retain()
	}
	if v.borrowed != nil {
		v.borrowed.Retain()
	}
}

func (v *BoolVec) Release() {
	if v.dataBuf != nil {
		v.dataBuf.Release()
	}
	if v.bitmapBuf != nil {
		v.bitmapBuf.Release()
	}
	if v.borrowed != nil {
		v.borrowed.Release()
	}
}

func (v *BoolVec) isValid(i int) bool {
	return v.bitmap == nil || bitGet(v.bitmap, i)
}

// Value reports the bit at row i, ignoring validity.
func (v *BoolVec) Value(i int) bool { return bitGet(v.data, i) }

func (v *BoolVec) Hash() []uint64 {
	out := make([]uint64, v.length)
	for i := 0; i < v.length; i++ {
		if !v.isValid(i) {
			out[i] = draken.NullHash
			continue
		}
		if v.Value(i) {
			out[i] = draken.HashBytes([]byte{1})
		} else {
			out[i] = draken.HashBytes([]byte{0})
		}
	}
	return out
}

func (v *BoolVec) Take(indices []int32) (Vector, error) {
	out := make([]byte, bytesForBits(len(indices)))
	var outBitmap []byte
	anyNull := false
	for k, idx := range indices {
		if idx < 0 || int(idx) >= v.length {
			return nil, draken.NewError(draken.ErrIndexOutOfRange, "take index %d out of range [0, %d)", idx, v.length)
		}
		if v.Value(int(idx)) {
			bitSet(out, k)
		}
		if !v.isValid(int(idx)) {
			anyNull = true
		}
	}
	if anyNull {
		outBitmap = newAllValidBitmap(len(indices))
		for k, idx := range indices {
			if !v.isValid(int(idx)) {
				bitClear(outBitmap, k)
			}
		}
	}
	return NewBoolVector(memory.DefaultAllocator, out, outBitmap, len(indices)), nil
}

// Equals returns a byte mask with 1 where a valid row's bit matches value.
func (v *BoolVec) Equals(value bool) []int8 {
	out := make([]int8, v.length)
	for i := 0; i < v.length; i++ {
		if v.isValid(i) && v.Value(i) == value {
			out[i] = 1
		}
	}
	return out
}

// Any reports whether any valid row's bit is set, short-circuiting on the
// first data byte that isn't all-zero.
func (v *BoolVec) Any() bool {
	for byteIdx := 0; byteIdx*8 < v.length; byteIdx++ {
		if v.data[byteIdx] == 0 {
			continue
		}
		limit := min(v.length-byteIdx*8, 8)
		for b := 0; b < limit; b++ {
			i := byteIdx*8 + b
			if v.isValid(i) && v.Value(i) {
				return true
			}
		}
	}
	return false
}

// All reports whether every valid row's bit is set, skipping data bytes that
// are all ones and returning false at the first valid row whose bit is
// clear. It also returns false when no row is valid, including for a
// zero-length vector.
func (v *BoolVec) All() bool {
	seenValid := false
	for i := 0; i < v.length; i++ {
		if !v.isValid(i) {
			continue
		}
		seenValid = true
		byteIdx := i >> 3
		if v.data[byteIdx] == 0xFF {
			// whole byte is set; skip ahead to its last bit
			i = byteIdx*8 + 7
			continue
		}
		if !v.Value(i) {
			return false
		}
	}
	return seenValid
}

func (v *BoolVec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	dataBuf := v.dataBuf
	if dataBuf == nil {
		dataBuf = memory.NewBufferBytes(v.data)
	}
	var bitmapBuf *memory.Buffer
	switch {
	case v.bitmapBuf != nil:
		bitmapBuf = v.bitmapBuf
	case v.bitmap != nil:
		bitmapBuf = memory.NewBufferBytes(v.bitmap)
	}
	buffers := []*memory.Buffer{bitmapBuf, dataBuf}
	data := array.NewData(arrow.FixedWidthTypes.Boolean, v.length, buffers, nil, v.NullCount(), 0)
	defer data.Release()
	return array.MakeFromData(data), nil
}

var _ Vector = (*BoolVec)(nil)
