// Package vector implements Draken's typed columnar vector hierarchy: one
// concrete Go type per supported logical type, each exposing the kernel
// contract comparisons, take, hash, and boolean reductions are built on.
//
// Every concrete vector is either owned (it allocated its own buffers
// through an arrow/memory.Allocator and releases them on Release) or
// borrowed (its buffers alias an external arrow.Array's memory and Release
// only drops a keep-alive reference to that array). The distinction is
// fixed at construction time; nothing converts a vector from one mode to
// the other after the fact.
package vector

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/bitutil"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
)

// Vector is the capability set every concrete column type satisfies. It is
// the interface operator code in a query engine programs against; callers
// never downcast through a base pointer, they type-switch on Type() or on
// the concrete Go type when they need per-type kernels beyond this set.
type Vector interface {
	// Type is the logical type tag, immutable for the vector's lifetime.
	Type() draken.Type

	// Len is the number of logical rows, including nulls.
	Len() int

	// NullCount is the number of null rows, derived from the validity
	// bitmap; zero when no bitmap is present.
	NullCount() int

	// IsNullMask returns one byte per row: 1 if the row is null, 0 otherwise.
	IsNullMask() []byte

	// Take gathers rows at indices into a new owned vector of the same
	// type. Indices outside [0, Len()) fail with draken.ErrIndexOutOfRange.
	Take(indices []int32) (Vector, error)

	// Hash returns one 64-bit hash per row; null rows hash to draken.NullHash.
	Hash() []uint64

	// ToArrow exports the vector as an Arrow array. For an owned vector this
	// is zero-copy: the returned array's buffers alias the vector's own. A
	// ForeignArrowVec returns the array it wraps; the other borrowed vectors
	// build a new Arrow array over the memory they already reference,
	// without copying it.
	ToArrow(mem memory.Allocator) (arrow.Array, error)

	// Retain increments the vector's reference count.
	Retain()

	// Release decrements the reference count, freeing owned buffers or
	// dropping the borrowed keep-alive when it reaches zero.
	Release()
}

// isNullMask turns a validity bitmap (bit=1 valid) into the one-byte-per-row
// mask the Vector contract returns (byte=1 null). A nil bitmap means every
// row is valid.
func isNullMask(bitmap []byte, n int) []byte {
	mask := make([]byte, n)
	if bitmap == nil {
		return mask
	}
	for i := 0; i < n; i++ {
		if !bitGet(bitmap, i) {
			mask[i] = 1
		}
	}
	return mask
}

func bitGet(bitmap []byte, i int) bool {
	return bitutil.BitIsSet(bitmap, i)
}

func bitSet(bitmap []byte, i int) {
	bitutil.SetBit(bitmap, i)
}

func bitClear(bitmap []byte, i int) {
	bitutil.ClearBit(bitmap, i)
}

func bitSetTo(bitmap []byte, i int, v bool) {
	bitutil.SetBitTo(bitmap, i, v)
}

func bytesForBits(n int) int {
	return int(bitutil.BytesForBits(int64(n)))
}

// newAllValidBitmap allocates a bitmap for n rows with every bit set, per the
// buffer layer's policy of initializing produced bitmaps to all-valid before
// individual nulls are stamped.
func newAllValidBitmap(n int) []byte {
	b := make([]byte, bytesForBits(n))
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

func nullCountFromBitmap(bitmap []byte, n int) int {
	if bitmap == nil {
		return 0
	}
	return n - bitutil.CountSetBits(bitmap, 0, n)
}

// byteMaskFromBool converts a []bool comparison result into the []int8
// byte-mask the kernel contract specifies.
func byteMaskFromBool(vals []bool) []int8 {
	out := make([]int8, len(vals))
	for i, v := range vals {
		if v {
			out[i] = 1
		}
	}
	return out
}
