package vector

import (
	"context"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/compute"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
)

// ForeignArrowVec wraps an Arrow array whose type has no native Draken
// vector: any logical type outside the fixed-width numeric, date/timestamp,
// boolean, string, and list families. It always reports draken.NonNative
// and delegates kernels to arrow/compute instead of reimplementing them,
// rather than rejecting the column outright.
type ForeignArrowVec struct {
	mem memory.Allocator
	arr arrow.Array
}

// NewForeignArrowVector wraps arr, retaining a reference to it for the
// vector's lifetime.
func NewForeignArrowVector(mem memory.Allocator, arr arrow.Array) *ForeignArrowVec {
	arr.Retain()
	return &ForeignArrowVec{mem: mem, arr: arr}
}

func (v *ForeignArrowVec) Type() draken.Type  { return draken.NonNative }
func (v *ForeignArrowVec) Len() int           { return v.arr.Len() }
func (v *ForeignArrowVec) NullCount() int     { return v.arr.NullN() }
func (v *ForeignArrowVec) Retain()            { v.arr.Retain() }
func (v *ForeignArrowVec) Release()           { v.arr.Release() }

// DataType exposes the wrapped array's concrete Arrow type, for callers that
// need to know exactly which non-native type they're holding.
func (v *ForeignArrowVec) DataType() arrow.DataType { return v.arr.DataType() }

func (v *ForeignArrowVec) IsNullMask() []byte {
	mask := make([]byte, v.arr.Len())
	for i := 0; i < v.arr.Len(); i++ {
		if v.arr.IsNull(i) {
			mask[i] = 1
		}
	}
	return mask
}

// Hash falls back to hashing each row's string representation: arrow.Array
// guarantees ValueStr for every concrete array type, so this works
// regardless of which foreign type is wrapped, at the cost of being slower
// than a type-specific hash.
func (v *ForeignArrowVec) Hash() []uint64 {
	out := make([]uint64, v.arr.Len())
	for i := 0; i < v.arr.Len(); i++ {
		if v.arr.IsNull(i) {
			out[i] = draken.NullHash
			continue
		}
		out[i] = draken.HashBytes([]byte(v.arr.ValueStr(i)))
	}
	return out
}

// Take delegates to arrow/compute's Take kernel, which knows how to gather
// rows for any Arrow array type, native or not.
func (v *ForeignArrowVec) Take(indices []int32) (Vector, error) {
	idxBuilder := array.NewInt32Builder(v.mem)
	defer idxBuilder.Release()
	idxBuilder.Reserve(len(indices))
	for _, idx := range indices {
		if idx < 0 || int(idx) >= v.arr.Len() {
			return nil, draken.NewError(draken.ErrIndexOutOfRange, "take index %d out of range [0, %d)", idx, v.arr.Len())
		}
		idxBuilder.Append(idx)
	}
	idxArr := idxBuilder.NewArray()
	defer idxArr.Release()

	taken, err := compute.TakeArray(context.Background(), v.arr, idxArr)
	if err != nil {
		return nil, draken.WrapError(draken.ErrUnsupportedType, err, "foreign take failed for %s", v.arr.DataType())
	}
	result := NewForeignArrowVector(v.mem, taken)
	taken.Release() // NewForeignArrowVector retains its own reference
	return result, nil
}

func (v *ForeignArrowVec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	v.arr.Retain()
	return v.arr, nil
}

var _ Vector = (*ForeignArrowVec)(nil)
