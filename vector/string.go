package vector

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
)

// StringVec is a variable-width vector of byte strings (UTF-8 by
// convention, compared byte-for-byte). Offsets are int32, Arrow's standard
// (non-large) binary/string layout: value i occupies
// data[offsets[i]:offsets[i+1]).
type StringVec struct {
	data    []byte
	offsets []int32
	bitmap  []byte // nil means all rows valid
	length  int

	dataBuf    *memory.Buffer
	offsetsBuf *memory.Buffer
	bitmapBuf  *memory.Buffer
	borrowed   arrow.Array
}

func newBorrowedStringVector(arr arrow.Array, data []byte, offsets []int32, bitmap []byte, length int) *StringVec {
	arr.Retain()
	return &StringVec{data: data, offsets: offsets, bitmap: bitmap, length: length, borrowed: arr}
}

func (v *StringVec) Type() draken.Type  { return draken.String }
func (v *StringVec) Len() int           { return v.length }
func (v *StringVec) NullCount() int     { return nullCountFromBitmap(v.bitmap, v.length) }
func (v *StringVec) IsNullMask() []byte { return isNullMask(v.bitmap, v.length) }

func (v *StringVec) Retain() {
	if v.dataBuf != nil {
		v.dataBuf.Retain()
	}
	if v.offsetsBuf != nil {
		v.offsetsBuf.Retain()
	}
	if v.bitmapBuf != nil {
		v.bitmapBuf.Retain()
	}
	if v.borrowed != nil {
		v.borrowed.Retain()
	}
}

func (v *StringVec) Release() {
	if v.dataBuf != nil {
		v.dataBuf.Release()
	}
	if v.offsetsBuf != nil {
		v.offsetsBuf.Release()
	}
	if v.bitmapBuf != nil {
		v.bitmapBuf.Release()
	}
	if v.borrowed != nil {
		v.borrowed.Release()
	}
}

func (v *StringVec) isValid(i int) bool {
	return v.bitmap == nil || bitGet(v.bitmap, i)
}

// Value returns the raw bytes stored for row i, regardless of validity.
func (v *StringVec) Value(i int) []byte {
	return v.data[v.offsets[i]:v.offsets[i+1]]
}

func (v *StringVec) Hash() []uint64 {
	out := make([]uint64, v.length)
	for i := 0; i < v.length; i++ {
		if !v.isValid(i) {
			out[i] = draken.NullHash
			continue
		}
		out[i] = draken.HashBytes(v.Value(i))
	}
	return out
}

// Equals compares every row byte-for-byte against value; no encoding
// normalization is performed.
func (v *StringVec) Equals(value []byte) []int8 {
	out := make([]int8, v.length)
	for i := 0; i < v.length; i++ {
		if v.isValid(i) && bytesEqual(v.Value(i), value) {
			out[i] = 1
		}
	}
	return out
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Take performs the two-pass allocation the kernel contract requires: pass
// one sums the selected byte ranges to size the output data buffer exactly,
// pass two copies bytes and rebuilds offsets. Null rows preserve their
// source byte range in the output (rather than collapsing to zero length)
// and carry the null bit forward.
func (v *StringVec) Take(indices []int32) (Vector, error) {
	for _, idx := range indices {
		if idx < 0 || int(idx) >= v.length {
			return nil, draken.NewError(draken.ErrIndexOutOfRange, "take index %d out of range [0, %d)", idx, v.length)
		}
	}

	totalBytes := 0
	for _, idx := range indices {
		totalBytes += len(v.Value(int(idx)))
	}

	mem := memory.DefaultAllocator
	dataBuf := memory.NewResizableBuffer(mem)
	dataBuf.Resize(totalBytes)
	outData := dataBuf.Bytes()

	offsetsBuf := memory.NewResizableBuffer(mem)
	offsetsBuf.Resize((len(indices) + 1) * 4)
	outOffsets := bytesAsSlice[int32](offsetsBuf.Bytes(), len(indices)+1)

	var outBitmap []byte
	anyNull := false
	pos := int32(0)
	for k, idx := range indices {
		outOffsets[k] = pos
		src := v.Value(int(idx))
		copy(outData[pos:], src)
		pos += int32(len(src))
		if !v.isValid(int(idx)) {
			anyNull = true
		}
	}
	outOffsets[len(indices)] = pos

	if anyNull {
		outBitmap = newAllValidBitmap(len(indices))
		for k, idx := range indices {
			if !v.isValid(int(idx)) {
				bitClear(outBitmap, k)
			}
		}
	}

	var bitmapBuf *memory.Buffer
	if outBitmap != nil {
		bitmapBuf = memory.NewResizableBuffer(mem)
		bitmapBuf.Resize(len(outBitmap))
		copy(bitmapBuf.Bytes(), outBitmap)
	}

	return &StringVec{
		data:       outData,
		offsets:    outOffsets,
		bitmap:     bitmapAsBytes(bitmapBuf),
		length:     len(indices),
		dataBuf:    dataBuf,
		offsetsBuf: offsetsBuf,
		bitmapBuf:  bitmapBuf,
	}, nil
}

func bitmapAsBytes(buf *memory.Buffer) []byte {
	if buf == nil {
		return nil
	}
	return buf.Bytes()
}

// Uppercase maps ASCII a..z to A..Z and leaves every other byte unchanged.
// Null rows produce a zero-length range in the output and keep the null bit.
func (v *StringVec) Uppercase() *StringVec {
	mem := memory.DefaultAllocator

	outLen := make([]int, v.length)
	total := 0
	for i := 0; i < v.length; i++ {
		if v.isValid(i) {
			outLen[i] = len(v.Value(i))
		}
		total += outLen[i]
	}

	dataBuf := memory.NewResizableBuffer(mem)
	dataBuf.Resize(total)
	outData := dataBuf.Bytes()

	offsetsBuf := memory.NewResizableBuffer(mem)
	offsetsBuf.Resize((v.length + 1) * 4)
	outOffsets := bytesAsSlice[int32](offsetsBuf.Bytes(), v.length+1)

	pos := int32(0)
	for i := 0; i < v.length; i++ {
		outOffsets[i] = pos
		if v.isValid(i) {
			src := v.Value(i)
			dst := outData[pos : int(pos)+len(src)]
			for j, c := range src {
				if c >= 'a' && c <= 'z' {
					dst[j] = c - 'a' + 'A'
				} else {
					dst[j] = c
				}
			}
			pos += int32(len(src))
		}
	}
	outOffsets[v.length] = pos

	var bitmapBuf *memory.Buffer
	var bitmap []byte
	if v.bitmap != nil {
		bitmapBuf = memory.NewResizableBuffer(mem)
		bitmapBuf.Resize(bytesForBits(v.length))
		copy(bitmapBuf.Bytes(), v.bitmap)
		bitmap = bitmapBuf.Bytes()
	}

	return &StringVec{
		data:       outData,
		offsets:    outOffsets,
		bitmap:     bitmap,
		length:     v.length,
		dataBuf:    dataBuf,
		offsetsBuf: offsetsBuf,
		bitmapBuf:  bitmapBuf,
	}
}

func (v *StringVec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	dataBuf := v.dataBuf
	if dataBuf == nil {
		dataBuf = memory.NewBufferBytes(v.data)
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
	buffers := []*memory.Buffer{bitmapBuf, offsetsBuf, dataBuf}
	data := array.NewData(arrow.BinaryTypes.String, v.length, buffers, nil, v.NullCount(), 0)
	defer data.Release()
	return array.MakeFromData(data), nil
}

var _ Vector = (*StringVec)(nil)
