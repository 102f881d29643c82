package vector

import (
	"unsafe"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/internal/debug"
)

// numericElem is the set of element types the fixed-width numeric vectors
// share a single generic kernel implementation over. Every comparison and
// reduction kernel below relies on Go's native operators (==, <, >) so float
// comparisons keep IEEE-754 NaN semantics (NaN is neither less, greater, nor
// equal to anything, including itself).
type numericElem interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// fixedVector is the shared implementation backing Int8Vec..Float64Vec,
// Date32Vec, and Timestamp64Vec: one generic kernel set templated over the
// element type, with a concrete wrapper type per logical type for the
// "one concrete vector per supported logical type" contract.
type fixedVector[T numericElem] struct {
	tag    draken.Type
	data   []T
	bitmap []byte // nil means all rows valid

	dataBuf   *memory.Buffer // non-nil when owned
	bitmapBuf *memory.Buffer // non-nil when owned and a bitmap was allocated
	borrowed  arrow.Array    // non-nil when this vector borrows an Arrow array's memory
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// bytesAsSlice reinterprets the first n*sizeof(T) bytes of b as a []T,
// aliasing the same memory. It is the mechanism by which owned and borrowed
// numeric vectors both avoid copying: the backing store is always a []byte
// (an arrow/memory.Buffer for owned vectors, an Arrow buffer for borrowed
// ones) and this just reinterprets it.
func bytesAsSlice[T any](b []byte, n int) []T {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

func newOwnedFixedVector[T numericElem](tag draken.Type, mem memory.Allocator, values []T, bitmap []byte) *fixedVector[T] {
	n := len(values)
	dataBuf := memory.NewResizableBuffer(mem)
	dataBuf.Resize(n * elemSize[T]())
	data := bytesAsSlice[T](dataBuf.Bytes(), n)
	copy(data, values)

	if bitmap != nil {
		debug.Assert(len(bitmap) >= bytesForBits(n), "fixedVector: bitmap shorter than length-derived expectation")
	}

	v := &fixedVector[T]{tag: tag, data: data, dataBuf: dataBuf}
	if bitmap != nil {
		bmBuf := memory.NewResizableBuffer(mem)
		bmBuf.Resize(bytesForBits(n))
		copy(bmBuf.Bytes(), bitmap)
		v.bitmapBuf = bmBuf
		v.bitmap = bmBuf.Bytes()
	}
	return v
}

// newBorrowedFixedVector wraps an Arrow array's own buffers with zero
// copying. arr is retained for the lifetime of the returned vector and
// released when it is Released; the vector never frees arr's memory itself.
func newBorrowedFixedVector[T numericElem](tag draken.Type, arr arrow.Array, data []T, bitmap []byte) *fixedVector[T] {
	if bitmap != nil {
		debug.Assert(len(bitmap) >= bytesForBits(len(data)), "fixedVector: borrowed bitmap shorter than length-derived expectation")
	}
	arr.Retain()
	return &fixedVector[T]{tag: tag, data: data, bitmap: bitmap, borrowed: arr}
}

func (v *fixedVector[T]) Type() draken.Type { return v.tag }
func (v *fixedVector[T]) Len() int          { return len(v.data) }
func (v *fixedVector[T]) NullCount() int    { return nullCountFromBitmap(v.bitmap, len(v.data)) }
func (v *fixedVector[T]) IsNullMask() []byte {
	return isNullMask(v.bitmap, len(v.data))
}

func (v *fixedVector[T]) Retain() {
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

func (v *fixedVector[T]) Release() {
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

func (v *fixedVector[T]) isValid(i int) bool {
	return v.bitmap == nil || bitGet(v.bitmap, i)
}

func (v *fixedVector[T]) take(mem memory.Allocator, indices []int32) (*fixedVector[T], error) {
	out := make([]T, len(indices))
	var outBitmap []byte
	anyNull := false
	for k, idx := range indices {
		if idx < 0 || int(idx) >= len(v.data) {
			return nil, draken.NewError(draken.ErrIndexOutOfRange, "take index %d out of range [0, %d)", idx, len(v.data))
		}
		out[k] = v.data[idx]
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
	return newOwnedFixedVector(v.tag, mem, out, outBitmap), nil
}

func (v *fixedVector[T]) hash() []uint64 {
	out := make([]uint64, len(v.data))
	for i, x := range v.data {
		if !v.isValid(i) {
			out[i] = draken.NullHash
			continue
		}
		out[i] = hashElem(x)
	}
	return out
}

// hashElem hashes a single fixed-width element by reinterpreting its raw
// bytes through the same FNV-1a accumulator string vectors use, so integer
// and string columns that happen to encode the same logical key collide the
// same way under FNV when reduced to bytes.
func hashElem[T numericElem](x T) uint64 {
	size := elemSize[T]()
	b := unsafe.Slice((*byte)(unsafe.Pointer(&x)), size)
	return draken.HashBytes(b)
}

func (v *fixedVector[T]) equalsScalar(x T) []int8 {
	out := make([]bool, len(v.data))
	for i := range v.data {
		out[i] = v.isValid(i) && v.data[i] == x
	}
	return byteMaskFromBool(out)
}

func (v *fixedVector[T]) notEqualsScalar(x T) []int8 {
	out := make([]bool, len(v.data))
	for i := range v.data {
		out[i] = v.isValid(i) && v.data[i] != x
	}
	return byteMaskFromBool(out)
}

func (v *fixedVector[T]) gtScalar(x T) []int8 {
	out := make([]bool, len(v.data))
	for i := range v.data {
		out[i] = v.isValid(i) && v.data[i] > x
	}
	return byteMaskFromBool(out)
}

func (v *fixedVector[T]) geScalar(x T) []int8 {
	out := make([]bool, len(v.data))
	for i := range v.data {
		out[i] = v.isValid(i) && v.data[i] >= x
	}
	return byteMaskFromBool(out)
}

func (v *fixedVector[T]) ltScalar(x T) []int8 {
	out := make([]bool, len(v.data))
	for i := range v.data {
		out[i] = v.isValid(i) && v.data[i] < x
	}
	return byteMaskFromBool(out)
}

func (v *fixedVector[T]) leScalar(x T) []int8 {
	out := make([]bool, len(v.data))
	for i := range v.data {
		out[i] = v.isValid(i) && v.data[i] <= x
	}
	return byteMaskFromBool(out)
}

func (v *fixedVector[T]) compareVector(other *fixedVector[T], cmpFn func(a, b T) bool) ([]int8, error) {
	if len(v.data) != len(other.data) {
		return nil, draken.NewError(draken.ErrLengthMismatch, "comparing vectors of length %d and %d", len(v.data), len(other.data))
	}
	out := make([]bool, len(v.data))
	for i := range v.data {
		out[i] = v.isValid(i) && other.isValid(i) && cmpFn(v.data[i], other.data[i])
	}
	return byteMaskFromBool(out), nil
}

// sum adds every valid element as an int64. Overflow wraps, following Go's
// native int64 arithmetic; there is no saturation and no overflow error.
func (v *fixedVector[T]) sum() int64 {
	var s int64
	for i, x := range v.data {
		if v.isValid(i) {
			s += int64(x)
		}
	}
	return s
}

func (v *fixedVector[T]) min() (T, bool) {
	var best T
	found := false
	for i, x := range v.data {
		if !v.isValid(i) {
			continue
		}
		if !found || x < best {
			best = x
			found = true
		}
	}
	return best, found
}

func (v *fixedVector[T]) max() (T, bool) {
	var best T
	found := false
	for i, x := range v.data {
		if !v.isValid(i) {
			continue
		}
		if !found || x > best {
			best = x
			found = true
		}
	}
	return best, found
}

func (v *fixedVector[T]) toArrow(mem memory.Allocator, dtype arrow.DataType) arrow.Array {
	dataBuf := v.dataBuf
	if dataBuf == nil {
		// Re-exporting a borrowed vector: wrap the same bytes it already
		// aliases rather than copying them.
		dataBuf = memory.NewBufferBytes(typedSliceBytes(v.data))
	}
	var bitmapBuf *memory.Buffer
	switch {
	case v.bitmapBuf != nil:
		bitmapBuf = v.bitmapBuf
	case v.bitmap != nil:
		bitmapBuf = memory.NewBufferBytes(v.bitmap)
	}

	buffers := []*memory.Buffer{bitmapBuf, dataBuf}
	data := array.NewData(dtype, len(v.data), buffers, nil, v.NullCount(), 0)
	defer data.Release()
	return array.MakeFromData(data)
}

// typedSliceBytes is the inverse of bytesAsSlice: it reinterprets a []T back
// into the raw bytes it was built from, for re-exporting a borrowed vector's
// memory without copying.
func typedSliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*elemSize[T]())
}
