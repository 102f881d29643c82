package vector

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
)

// Float64Vec is a fixed-width vector of float64 values. Sum is intentionally
// not exposed: the kernel contract reserves sum for integer types.
type Float64Vec struct{ inner *fixedVector[float64] }

func NewFloat64Vector(mem memory.Allocator, values []float64, bitmap []byte) *Float64Vec {
	return &Float64Vec{inner: newOwnedFixedVector(draken.Float64, mem, values, bitmap)}
}

func newBorrowedFloat64Vector(arr arrow.Array, values []float64, bitmap []byte) *Float64Vec {
	return &Float64Vec{inner: newBorrowedFixedVector(draken.Float64, arr, values, bitmap)}
}

func (v *Float64Vec) Type() draken.Type    { return v.inner.Type() }
func (v *Float64Vec) Len() int             { return v.inner.Len() }
func (v *Float64Vec) NullCount() int       { return v.inner.NullCount() }
func (v *Float64Vec) IsNullMask() []byte   { return v.inner.IsNullMask() }
func (v *Float64Vec) Retain()              { v.inner.Retain() }
func (v *Float64Vec) Release()             { v.inner.Release() }
func (v *Float64Vec) Value(i int) float64  { return v.inner.data[i] }
func (v *Float64Vec) Values() []float64    { return v.inner.data }
func (v *Float64Vec) Min() (float64, bool) { return v.inner.min() }
func (v *Float64Vec) Max() (float64, bool) { return v.inner.max() }
func (v *Float64Vec) Hash() []uint64       { return v.inner.hash() }
func (v *Float64Vec) Equals(x float64) []int8              { return v.inner.equalsScalar(x) }
func (v *Float64Vec) NotEquals(x float64) []int8            { return v.inner.notEqualsScalar(x) }
func (v *Float64Vec) GreaterThan(x float64) []int8           { return v.inner.gtScalar(x) }
func (v *Float64Vec) GreaterThanOrEquals(x float64) []int8   { return v.inner.geScalar(x) }
func (v *Float64Vec) LessThan(x float64) []int8              { return v.inner.ltScalar(x) }
func (v *Float64Vec) LessThanOrEquals(x float64) []int8      { return v.inner.leScalar(x) }

func (v *Float64Vec) EqualsVector(o *Float64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float64) bool { return a == b })
}
func (v *Float64Vec) NotEqualsVector(o *Float64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float64) bool { return a != b })
}
func (v *Float64Vec) GreaterThanVector(o *Float64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float64) bool { return a > b })
}
func (v *Float64Vec) GreaterThanOrEqualsVector(o *Float64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float64) bool { return a >= b })
}
func (v *Float64Vec) LessThanVector(o *Float64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float64) bool { return a < b })
}
func (v *Float64Vec) LessThanOrEqualsVector(o *Float64Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float64) bool { return a <= b })
}

func (v *Float64Vec) Take(indices []int32) (Vector, error) {
	out, err := v.inner.take(memory.DefaultAllocator, indices)
	if err != nil {
		return nil, err
	}
	return &Float64Vec{inner: out}, nil
}

func (v *Float64Vec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	return v.inner.toArrow(mem, arrow.PrimitiveTypes.Float64), nil
}

// Float32Vec is a fixed-width vector of float32 values.
type Float32Vec struct{ inner *fixedVector[float32] }

func NewFloat32Vector(mem memory.Allocator, values []float32, bitmap []byte) *Float32Vec {
	return &Float32Vec{inner: newOwnedFixedVector(draken.Float32, mem, values, bitmap)}
}

func newBorrowedFloat32Vector(arr arrow.Array, values []float32, bitmap []byte) *Float32Vec {
	return &Float32Vec{inner: newBorrowedFixedVector(draken.Float32, arr, values, bitmap)}
}

func (v *Float32Vec) Type() draken.Type    { return v.inner.Type() }
func (v *Float32Vec) Len() int             { return v.inner.Len() }
func (v *Float32Vec) NullCount() int       { return v.inner.NullCount() }
func (v *Float32Vec) IsNullMask() []byte   { return v.inner.IsNullMask() }
func (v *Float32Vec) Retain()              { v.inner.Retain() }
func (v *Float32Vec) Release()             { v.inner.Release() }
func (v *Float32Vec) Value(i int) float32  { return v.inner.data[i] }
func (v *Float32Vec) Min() (float32, bool) { return v.inner.min() }
func (v *Float32Vec) Max() (float32, bool) { return v.inner.max() }
func (v *Float32Vec) Hash() []uint64       { return v.inner.hash() }
func (v *Float32Vec) Equals(x float32) []int8            { return v.inner.equalsScalar(x) }
func (v *Float32Vec) NotEquals(x float32) []int8          { return v.inner.notEqualsScalar(x) }
func (v *Float32Vec) GreaterThan(x float32) []int8        { return v.inner.gtScalar(x) }
func (v *Float32Vec) GreaterThanOrEquals(x float32) []int8 { return v.inner.geScalar(x) }
func (v *Float32Vec) LessThan(x float32) []int8           { return v.inner.ltScalar(x) }
func (v *Float32Vec) LessThanOrEquals(x float32) []int8   { return v.inner.leScalar(x) }

func (v *Float32Vec) EqualsVector(o *Float32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float32) bool { return a == b })
}
func (v *Float32Vec) NotEqualsVector(o *Float32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float32) bool { return a != b })
}
func (v *Float32Vec) GreaterThanVector(o *Float32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float32) bool { return a > b })
}
func (v *Float32Vec) GreaterThanOrEqualsVector(o *Float32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float32) bool { return a >= b })
}
func (v *Float32Vec) LessThanVector(o *Float32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float32) bool { return a < b })
}
func (v *Float32Vec) LessThanOrEqualsVector(o *Float32Vec) ([]int8, error) {
	return v.inner.compareVector(o.inner, func(a, b float32) bool { return a <= b })
}

func (v *Float32Vec) Take(indices []int32) (Vector, error) {
	out, err := v.inner.take(memory.DefaultAllocator, indices)
	if err != nil {
		return nil, err
	}
	return &Float32Vec{inner: out}, nil
}

func (v *Float32Vec) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	return v.inner.toArrow(mem, arrow.PrimitiveTypes.Float32), nil
}

var (
	_ Vector = (*Float64Vec)(nil)
	_ Vector = (*Float32Vec)(nil)
)
