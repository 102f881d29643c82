package vector

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
)

// Int64Vec is a fixed-width vector of int64 values.
type Int64Vec struct{ inner *fixedVector[int64] }

// NewInt64Vector builds an owned Int64Vec from values and an optional
// validity bitmap (nil means every row is valid).
func NewInt64Vector(mem memory.Allocator, values []int64, bitmap []byte) *Int64Vec {
	return &Int64Vec{inner: newOwnedFixedVector(draken.Int64, mem, values, bitmap)}
}

func newBorrowedInt64Vector(arr arrow.Array, values []int64, bitmap []byte) *Int64Vec {
	return &Int64Vec{inner: newBorrowedFixedVector(draken.Int64, arr, values, bitmap)}
}

func (v *Int64Vec) Type() draken.Type      { return v.inner.Type() }
func (v *Int64Vec) Len() int               { return v.inner.Len() }
func (v *Int64Vec) NullCount() int         { return v.inner.NullCount() }
func (v *Int64Vec) IsNullMask() []byte     { return v.inner.IsNullMask() }
func (v *Int64Vec) Retain()                { v.inner.Retain() }
func (v *Int64Vec) Release()               { v.inner.Release() }
func (v *Int64Vec) Value(i int) int64      { return v.inner.data[i] }
func (v *Int64Vec) Values() []int64        { return v.inner.data }
func (v *Int64Vec) Sum() int64             { return v.inner.sum() }
func (v *Int64Vec) Min() (int64, bool)     { return v.inner.min() }
func (v *Int64Vec) Max() (int64, bool)     { return v.inner.max() }
func (v *Int64Vec) Hash() []uint64         { return v.inner.hash() }
func (v *Int64Vec) Equals(x int64) []int8  { return v.inner.equalsScalar(x) }
func (v *Int64Vec) NotEquals(x int64) []int8 { return v.inner.notEqualsScalar(x) }
func (v *Int64Vec) GreaterThan(x int64) []int8 { return v.inner.gtScalar(x) }
func (v *Int64Vec) GreaterThanOrEquals(x int64) []int8 { return v.inner.geScalar(x) }
func (v *Int64Vec) LessThan(x int64) []int8 { return v.inner.ltScalar(x) }
func (v *Int64Vec) LessThanOrEquals(x int64) []int8 { return v.inner.leScalar(x) }

func (v *Int64Vec) EqualsVector(o *Int64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a == b })
}
func (v *Int64Vec) NotEqualsVector(o *Int64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a != b })
}
func (v *Int64Vec) GreaterThanVector(o *Int64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a > b })
}
func (v *Int64Vec) GreaterThanOrEqualsVector(o *Int64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a >= b })
}
func (v *Int64Vec) LessThanVector(o *Int64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a < b })
}
func (v *Int64Vec) LessThanOrEqualsVector(o *Int64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int64) bool { return a <= b })
}

func (v *Int64Vec) Take(indices []int32) (Vector, error) {
	out, err := v.inner.take(memory.DefaultAllocator, indices)
	if err != nil {
		return nil, err
	}
	return &Int64Vec{inner: out}, nil
}

func (v *Int64Vec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	return v.inner.toArrow(mem, arrow.PrimitiveTypes.Int64), nil
}

// Int32Vec is a fixed-width vector of int32 values.
type Int32Vec struct{ inner *fixedVector[int32] }

func NewInt32Vector(mem memory.Allocator, values []int32, bitmap []byte) *Int32Vec {
	return &Int32Vec{inner: newOwnedFixedVector(draken.Int32, mem, values, bitmap)}
}

func newBorrowedInt32Vector(arr arrow.Array, values []int32, bitmap []byte) *Int32Vec {
	return &Int32Vec{inner: newBorrowedFixedVector(draken.Int32, arr, values, bitmap)}
}

func (v *Int32Vec) Type() draken.Type  { return v.inner.Type() }
func (v *Int32Vec) Len() int           { return v.inner.Len() }
func (v *Int32Vec) NullCount() int     { return v.inner.NullCount() }
func (v *Int32Vec) IsNullMask() []byte { return v.inner.IsNullMask() }
func (v *Int32Vec) Retain()            { v.inner.Retain() }
func (v *Int32Vec) Release()           { v.inner.Release() }
func (v *Int32Vec) Value(i int) int32  { return v.inner.data[i] }
func (v *Int32Vec) Values() []int32    { return v.inner.data }
func (v *Int32Vec) Sum() int64         { return v.inner.sum() }
func (v *Int32Vec) Min() (int32, bool) { return v.inner.min() }
func (v *Int32Vec) Max() (int32, bool) { return v.inner.max() }
func (v *Int32Vec) Hash() []uint64     { return v.inner.hash() }
func (v *Int32Vec) Equals(x int32) []int8              { return v.inner.equalsScalar(x) }
func (v *Int32Vec) NotEquals(x int32) []int8            { return v.inner.notEqualsScalar(x) }
func (v *Int32Vec) GreaterThan(x int32) []int8           { return v.inner.gtScalar(x) }
func (v *Int32Vec) GreaterThanOrEquals(x int32) []int8   { return v.inner.geScalar(x) }
func (v *Int32Vec) LessThan(x int32) []int8              { return v.inner.ltScalar(x) }
func (v *Int32Vec) LessThanOrEquals(x int32) []int8      { return v.inner.leScalar(x) }

func (v *Int32Vec) Take(indices []int32) (Vector, error) {
	out, err := v.inner.take(memory.DefaultAllocator, indices)
	if err != nil {
		return nil, err
	}
	return &Int32Vec{inner: out}, nil
}

func (v *Int32Vec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	return v.inner.toArrow(mem, arrow.PrimitiveTypes.Int32), nil
}

// Int16Vec is a fixed-width vector of int16 values.
type Int16Vec struct{ inner *fixedVector[int16] }

func NewInt16Vector(mem memory.Allocator, values []int16, bitmap []byte) *Int16Vec {
	return &Int16Vec{inner: newOwnedFixedVector(draken.Int16, mem, values, bitmap)}
}

func newBorrowedInt16Vector(arr arrow.Array, values []int16, bitmap []byte) *Int16Vec {
	return &Int16Vec{inner: newBorrowedFixedVector(draken.Int16, arr, values, bitmap)}
}

func (v *Int16Vec) Type() draken.Type  { return v.inner.Type() }
func (v *Int16Vec) Len() int           { return v.inner.Len() }
func (v *Int16Vec) NullCount() int     { return v.inner.NullCount() }
func (v *Int16Vec) IsNullMask() []byte { return v.inner.IsNullMask() }
func (v *Int16Vec) Retain()            { v.inner.Retain() }
func (v *Int16Vec) Release()           { v.inner.Release() }
func (v *Int16Vec) Value(i int) int16  { return v.inner.data[i] }
func (v *Int16Vec) Sum() int64         { return v.inner.sum() }
func (v *Int16Vec) Min() (int16, bool) { return v.inner.min() }
func (v *Int16Vec) Max() (int16, bool) { return v.inner.max() }
func (v *Int16Vec) Hash() []uint64     { return v.inner.hash() }
func (v *Int16Vec) Equals(x int16) []int8            { return v.inner.equalsScalar(x) }
func (v *Int16Vec) NotEquals(x int16) []int8          { return v.inner.notEqualsScalar(x) }
func (v *Int16Vec) GreaterThan(x int16) []int8        { return v.inner.gtScalar(x) }
func (v *Int16Vec) GreaterThanOrEquals(x int16) []int8 { return v.inner.geScalar(x) }
func (v *Int16Vec) LessThan(x int16) []int8           { return v.inner.ltScalar(x) }
func (v *Int16Vec) LessThanOrEquals(x int16) []int8   { return v.inner.leScalar(x) }

func (v *Int16Vec) EqualsVector(o *Int16Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int16) bool { return a == b })
}
func (v *Int16Vec) NotEqualsVector(o *Int16Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int16) bool { return a != b })
}
func (v *Int16Vec) GreaterThanVector(o *Int16Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int16) bool { return a > b })
}
func (v *Int16Vec) GreaterThanOrEqualsVector(o *Int16Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int16) bool { return a >= b })
}
func (v *Int16Vec) LessThanVector(o *Int16Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int16) bool { return a < b })
}
func (v *Int16Vec) LessThanOrEqualsVector(o *Int16Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int16) bool { return a <= b })
}

func (v *Int16Vec) Take(indices []int32) (Vector, error) {
	out, err := v.inner.take(memory.DefaultAllocator, indices)
	if err != nil {
		return nil, err
	}
	return &Int16Vec{inner: out}, nil
}

func (v *Int16Vec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	return v.inner.toArrow(mem, arrow.PrimitiveTypes.Int16), nil
}

// Int8Vec is a fixed-width vector of int8 values.
type Int8Vec struct{ inner *fixedVector[int8] }

func NewInt8Vector(mem memory.Allocator, values []int8, bitmap []byte) *Int8Vec {
	return &Int8Vec{inner: newOwnedFixedVector(draken.Int8, mem, values, bitmap)}
}

func newBorrowedInt8Vector(arr arrow.Array, values []int8, bitmap []byte) *Int8Vec {
	return &Int8Vec{inner: newBorrowedFixedVector(draken.Int8, arr, values, bitmap)}
}

func (v *Int8Vec) Type() draken.Type  { return v.inner.Type() }
func (v *Int8Vec) Len() int           { return v.inner.Len() }
func (v *Int8Vec) NullCount() int     { return v.inner.NullCount() }
func (v *Int8Vec) IsNullMask() []byte { return v.inner.IsNullMask() }
func (v *Int8Vec) Retain()            { v.inner.Retain() }
func (v *Int8Vec) Release()           { v.inner.Release() }
func (v *Int8Vec) Value(i int) int8   { return v.inner.data[i] }
func (v *Int8Vec) Sum() int64         { return v.inner.sum() }
func (v *Int8Vec) Min() (int8, bool)  { return v.inner.min() }
func (v *Int8Vec) Max() (int8, bool)  { return v.inner.max() }
func (v *Int8Vec) Hash() []uint64     { return v.inner.hash() }
func (v *Int8Vec) Equals(x int8) []int8            { return v.inner.equalsScalar(x) }
func (v *Int8Vec) NotEquals(x int8) []int8          { return v.inner.notEqualsScalar(x) }
func (v *Int8Vec) GreaterThan(x int8) []int8        { return v.inner.gtScalar(x) }
func (v *Int8Vec) GreaterThanOrEquals(x int8) []int8 { return v.inner.geScalar(x) }
func (v *Int8Vec) LessThan(x int8) []int8           { return v.inner.ltScalar(x) }
func (v *Int8Vec) LessThanOrEquals(x int8) []int8   { return v.inner.leScalar(x) }

func (v *Int8Vec) EqualsVector(o *Int8Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int8) bool { return a == b })
}
func (v *Int8Vec) NotEqualsVector(o *Int8Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int8) bool { return a != b })
}
func (v *Int8Vec) GreaterThanVector(o *Int8Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int8) bool { return a > b })
}
func (v *Int8Vec) GreaterThanOrEqualsVector(o *Int8Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int8) bool { return a >= b })
}
func (v *Int8Vec) LessThanVector(o *Int8Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int8) bool { return a < b })
}
func (v *Int8Vec) LessThanOrEqualsVector(o *Int8Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b int8) bool { return a <= b })
}

func (v *Int8Vec) Take(indices []int32) (Vector, error) {
	out, err := v.inner.take(memory.DefaultAllocator, indices)
	if err != nil {
		return nil, err
	}
	return &Int8Vec{inner: out}, nil
}

func (v *Int8Vec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	return v.inner.toArrow(mem, arrow.PrimitiveTypes.Int8), nil
}

var (
	_ Vector = (*Int64Vec)(nil)
	_ Vector = (*Int32Vec)(nil)
	_ Vector = (*Int16Vec)(nil)
	_ Vector = (*Int8Vec)(nil)
)
