package vector

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
)

// FromArrow wraps an Arrow array as a Draken vector, retaining arr for the
// vector's lifetime. Int8..Int64, Float32 and Float64 values alias the
// array's own value buffer with no copy, and List rows alias its int32
// offsets around a recursively imported child. Date32 values, timestamp
// values (rescaled to TimestampUnit) and bool bits are copied into new
// slices, and LargeList offsets are copied down to int32. Validity is
// always a freshly normalized bitmap (see normalizedBitmap). String and
// binary types are reconstructed through StringVectorBuilder instead of
// aliasing Arrow's internal offset and data buffers. Anything else imports
// as ForeignArrowVec, per the authoritative type mapping table.
func FromArrow(mem memory.Allocator, arr arrow.Array) (Vector, error) {
	switch a := arr.(type) {
	case *array.Int8:
		return newBorrowedInt8Vector(arr, a.Int8Values(), normalizedBitmap(arr)), nil
	case *array.Int16:
		return newBorrowedInt16Vector(arr, a.Int16Values(), normalizedBitmap(arr)), nil
	case *array.Int32:
		return newBorrowedInt32Vector(arr, a.Int32Values(), normalizedBitmap(arr)), nil
	case *array.Int64:
		return newBorrowedInt64Vector(arr, a.Int64Values(), normalizedBitmap(arr)), nil
	case *array.Float32:
		return newBorrowedFloat32Vector(arr, a.Float32Values(), normalizedBitmap(arr)), nil
	case *array.Float64:
		return newBorrowedFloat64Vector(arr, a.Float64Values(), normalizedBitmap(arr)), nil
	case *array.Date32:
		values := make([]int32, a.Len())
		for i := range values {
			values[i] = int32(a.Value(i))
		}
		return newBorrowedDate32Vector(arr, values, normalizedBitmap(arr)), nil
	case *array.Timestamp:
		ts, ok := a.DataType().(*arrow.TimestampType)
		unit := arrow.Microsecond
		if ok {
			unit = ts.Unit
		}
		values := make([]int64, a.Len())
		for i := range values {
			values[i] = convertTimestampUnit(int64(a.Value(i)), unit, TimestampUnit)
		}
		return newBorrowedTimestamp64Vector(arr, values, normalizedBitmap(arr)), nil
	case *array.Boolean:
		data := make([]byte, bytesForBits(a.Len()))
		for i := 0; i < a.Len(); i++ {
			if a.Value(i) {
				bitSet(data, i)
			}
		}
		return newBorrowedBoolVector(arr, data, normalizedBitmap(arr), a.Len()), nil
	case *array.String:
		return buildStringVector(mem, a.Len(), func(i int) ([]byte, bool) {
			if a.IsNull(i) {
				return nil, false
			}
			return []byte(a.Value(i)), true
		})
	case *array.LargeString:
		return buildStringVector(mem, a.Len(), func(i int) ([]byte, bool) {
			if a.IsNull(i) {
				return nil, false
			}
			return []byte(a.Value(i)), true
		})
	case *array.Binary:
		return buildStringVector(mem, a.Len(), func(i int) ([]byte, bool) {
			if a.IsNull(i) {
				return nil, false
			}
			return a.Value(i), true
		})
	case *array.LargeBinary:
		return buildStringVector(mem, a.Len(), func(i int) ([]byte, bool) {
			if a.IsNull(i) {
				return nil, false
			}
			return a.Value(i), true
		})
	case *array.List:
		child, err := FromArrow(mem, a.ListValues())
		if err != nil {
			return nil, err
		}
		return newBorrowedArrayVector(arr, a.Offsets(), normalizedBitmap(arr), a.Len(), child), nil
	case *array.LargeList:
		child, err := FromArrow(mem, a.ListValues())
		if err != nil {
			return nil, err
		}
		offs64 := a.Offsets()
		offs32 := make([]int32, len(offs64))
		for i, o := range offs64 {
			offs32[i] = int32(o)
		}
		return newBorrowedArrayVector(arr, offs32, normalizedBitmap(arr), a.Len(), child), nil
	default:
		return NewForeignArrowVector(mem, arr), nil
	}
}

// buildStringVector materializes a StringVec by visiting every row through
// the standard builder rather than aliasing an Arrow array's internal
// offsets/data buffers.
func buildStringVector(mem memory.Allocator, length int, at func(i int) ([]byte, bool)) (Vector, error) {
	total := 0
	for i := 0; i < length; i++ {
		if v, ok := at(i); ok {
			total += len(v)
		}
	}
	b := WithCounts(mem, length, total)
	for i := 0; i < length; i++ {
		v, ok := at(i)
		if !ok {
			if err := b.AppendNull(); err != nil {
				return nil, err
			}
			continue
		}
		if err := b.Append(v); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// normalizedBitmap returns a zero-based validity bitmap (bit i = row i of
// this array) or nil if every row is valid.
func normalizedBitmap(arr arrow.Array) []byte {
	if arr.NullN() == 0 {
		return nil
	}
	n := arr.Len()
	out := newAllValidBitmap(n)
	for i := 0; i < n; i++ {
		if arr.IsNull(i) {
			bitClear(out, i)
		}
	}
	return out
}

// convertTimestampUnit rescales a raw timestamp count between Arrow time
// units; it's the conversion Draken applies at import time so every
// Timestamp64Vec is in TimestampUnit regardless of the source column's unit.
func convertTimestampUnit(v int64, from, to arrow.TimeUnit) int64 {
	if from == to {
		return v
	}
	factors := map[arrow.TimeUnit]int64{
		arrow.Second:      1,
		arrow.Millisecond: 1_000,
		arrow.Microsecond: 1_000_000,
		arrow.Nanosecond:  1_000_000_000,
	}
	fromScale, toScale := factors[from], factors[to]
	if toScale >= fromScale {
		return v * (toScale / fromScale)
	}
	return v / (fromScale / toScale)
}
