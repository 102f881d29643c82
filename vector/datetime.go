package vector

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
)

// Date32Vec is a vector of int32 day offsets since the Unix epoch, Arrow's
// date32 layout.
type Date32Vec struct{ inner *fixedVector[int32] }

func NewDate32Vector(mem memory.Allocator, values []int32, bitmap []byte) *Date32Vec {
	return &Date32Vec{inner: newOwnedFixedVector(draken.Date32, mem, values, bitmap)}
}

func newBorrowedDate32Vector(arr arrow.Array, values []int32, bitmap []byte) *Date32Vec {
	return &Date32Vec{inner: newBorrowedFixedVector(draken.Date32, arr, values, bitmap)}
}

func (v *Date32Vec) Type() draken.Type  { return v.inner.Type() }
func (v *Date32Vec) Len() int           { return v.inner.Len() }
func (v *Date32Vec) NullCount() int     { return v.inner.NullCount() }
func (v *Date32Vec) IsNullMask() []byte { return v.inner.IsNullMask() }
func (v *Date32Vec) Retain()            { v.inner.Retain() }
func (v *Date32Vec) Release()           { v.inner.Release() }
func (v *Date32Vec) Value(i int) int32  { return v.inner.data[i] }
func (v *Date32Vec) Sum() int64         { return v.inner.sum() }
func (v *Date32Vec) Min() (int32, bool) { return v.inner.min() }
func (v *Date32Vec) Max() (int32, bool) { return v.inner.max() }
func (v *Date32Vec) Hash() []uint64     { return v.inner.hash() }
func (v *Date32Vec) Equals(x int32) []int8              { return v.inner.equalsScalar(x) }
func (v *Date32Vec) NotEquals(x int32) []int8            { return v.inner.notEqualsScalar(x) }
func (v *Date32Vec) GreaterThan(x int32) []int8           { return v.inner.gtScalar(x) }
func (v *Date32Vec) GreaterThanOrEquals(x int32) []int8   { return v.inner.geScalar(x) }
func (v *Date32Vec) LessThan(x int32) []int8              { return v.inner.ltScalar(x) }
func (v *Date32Vec) LessThanOrEquals(x int32) []int8      { return v.inner.leScalar(x) }

func (v *Date32Vec) EqualsVector(o *Date32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int32) bool { return a == b })
}
func (v *Date32Vec) NotEqualsVector(o *Date32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int32) bool { return a != b })
}
func (v *Date32Vec) GreaterThanVector(o *Date32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int32) bool { return a > b })
}
func (v *Date32Vec) GreaterThanOrEqualsVector(o *Date32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int32) bool { return a >= b })
}
func (v *Date32Vec) LessThanVector(o *Date32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int32) bool { return a < b })
}
func (v *Date32Vec) LessThanOrEqualsVector(o *Date32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int32) bool { return a <= b })
}

func (v *Date32Vec) Take(indices []int32) (Vector, error) {
	out, err := v.inner.take(memory.DefaultAllocator, indices)
	if err != nil {
		return nil, err
	}
	return &Date32Vec{inner: out}, nil
}

func (v *Date32Vec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	return v.inner.toArrow(mem, arrow.FixedWidthTypes.Date32), nil
}

// TimestampUnit is the canonical unit Draken stores every Timestamp64Vec in,
// regardless of the unit an imported Arrow array used. The source Arrow spec
// leaves the unit to the importer; Draken picks microseconds since the Unix
// epoch and converts at import time so every Timestamp64Vec is directly
// comparable without a side channel carrying per-column unit metadata.
const TimestampUnit = arrow.Microsecond

// Timestamp64Vec is a vector of int64 timestamps in TimestampUnit resolution
// since the Unix epoch.
type Timestamp64Vec struct{ inner *fixedVector[int64] }

func NewTimestamp64Vector(mem memory.Allocator, values []int64, bitmap []byte) *Timestamp64Vec {
	return &Timestamp64Vec{inner: newOwnedFixedVector(draken.Timestamp64, mem, values, bitmap)}
}

func newBorrowedTimestamp64Vector(arr arrow.Array, values []int64, bitmap []byte) *Timestamp64Vec {
	return &Timestamp64Vec{inner: newBorrowedFixedVector(draken.Timestamp64, arr, values, bitmap)}
}

func (v *Timestamp64Vec) Type() draken.Type  { return v.inner.Type() }
func (v *Timestamp64Vec) Len() int           { return v.inner.Len() }
func (v *Timestamp64Vec) NullCount() int     { return v.inner.NullCount() }
func (v *Timestamp64Vec) IsNullMask() []byte { return v.inner.IsNullMask() }
func (v *Timestamp64Vec) Retain()            { v.inner.Retain() }
func (v *Timestamp64Vec) Release()           { v.inner.Release() }
func (v *Timestamp64Vec) Value(i int) int64  { return v.inner.data[i] }
func (v *Timestamp64Vec) Sum() int64         { return v.inner.sum() }
func (v *Timestamp64Vec) Min() (int64, bool) { return v.inner.min() }
func (v *Timestamp64Vec) Max() (int64, bool) { return v.inner.max() }
func (v *Timestamp64Vec) Hash() []uint64     { return v.inner.hash() }
func (v *Timestamp64Vec) Equals(x int64) []int8              { return v.inner.equalsScalar(x) }
func (v *Timestamp64Vec) NotEquals(x int64) []int8            { return v.inner.notEqualsScalar(x) }
func (v *Timestamp64Vec) GreaterThan(x int64) []int8           { return v.inner.gtScalar(x) }
func (v *Timestamp64Vec) GreaterThanOrEquals(x int64) []int8   { return v.inner.geScalar(x) }
func (v *Timestamp64Vec) LessThan(x int64) []int8              { return v.inner.ltScalar(x) }
func (v *Timestamp64Vec) LessThanOrEquals(x int64) []int8      { return v.inner.leScalar(x) }

func (v *Timestamp64Vec) EqualsVector(o *Timestamp64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a == b })
}
func (v *Timestamp64Vec) NotEqualsVector(o *Timestamp64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a != b })
}
func (v *Timestamp64Vec) GreaterThanVector(o *Timestamp64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a > b })
}
func (v *Timestamp64Vec) GreaterThanOrEqualsVector(o *Timestamp64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a >= b })
}
func (v *Timestamp64Vec) LessThanVector(o *Timestamp64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a < b })
}
func (v *Timestamp64Vec) LessThanOrEqualsVector(o *Timestamp64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a <= b })
}

func (v *Timestamp64Vec) Take(indices []int32) (Vector, error) {
	out, err := v.inner.take(memory.DefaultAllocator, indices)
	if err != nil {
		return nil, err
	}
	return &Timestamp64Vec{inner: out}, nil
}

func (v *Timestamp64Vec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	dtype := &arrow.TimestampType{Unit: TimestampUnit}
	return v.inner.toArrow(mem, dtype), nil
}

var (
	_ Vector = (*Date32Vec)(nil)
	_ Vector = (*Timestamp64Vec)(nil)
)
