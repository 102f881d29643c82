// Package cdata implements the Arrow C Data Interface bridge in pure Go:
// the ArrowArray/ArrowSchema descriptor pair and the release-callback
// discipline that makes it the single freeing authority for the small
// descriptor structures crossing a producer/consumer boundary, without
// ever freeing the vector data they point at. There is no cgo here; these
// structs mirror the documented C layout closely enough to describe the
// same ownership contract, extended with an explicit per-buffer length
// field since a pure-Go consumer has no type-driven pointer arithmetic to
// recover buffer sizes the way a C consumer would.
package cdata

import (
	"unsafe"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/vector"
)

// ArrowFlag bits, matching the C Data Interface's ARROW_FLAG_* constants.
const (
	FlagDictionaryOrdered int64 = 1
	FlagNullable          int64 = 2
	FlagMapKeysSorted     int64 = 4
)

// ArrowSchema mirrors the C Data Interface schema descriptor.
type ArrowSchema struct {
	Format   string
	Name     string
	Metadata map[string]string
	Flags    int64
	Children []*ArrowSchema
	Release  func(*ArrowSchema)

	privateData arrow.Array
}

// ArrowArray mirrors the C Data Interface array descriptor. BufferLens
// records the byte length of each entry in Buffers in parallel, a
// pure-Go-only addition since there's no format-driven pointer arithmetic
// available to recover it the way a C consumer has.
type ArrowArray struct {
	Length     int64
	NullCount  int64
	Offset     int64
	NBuffers   int64
	Buffers    []unsafe.Pointer
	BufferLens []int64
	Children   []*ArrowArray
	Release    func(*ArrowArray)

	privateData arrow.Array
}

// FormatForType returns the Arrow C Data Interface format string for a
// Draken logical type. NonNative and Array have no single fixed format and
// are not handled here; Export falls back to formatForDataType against the
// exported Arrow array's own DataType instead.
func FormatForType(t draken.Type) (string, bool) {
	switch t {
	case draken.Int8:
		return "c", true
	case draken.Int16:
		return "s", true
	case draken.Int32:
		return "i", true
	case draken.Int64:
		return "l", true
	case draken.Float32:
		return "f", true
	case draken.Float64:
		return "g", true
	case draken.Date32:
		return "tdD", true
	case draken.Timestamp64:
		return "tsu:", true
	case draken.Bool:
		return "b", true
	case draken.String:
		return "u", true
	default:
		return "", false
	}
}

// Export builds the pseudo-ABI descriptor pair for v, sharing its buffers
// with no copy, including any nested child arrays (an ArrayVec's list
// values). The returned ArrowArray.Release is the sole freeing authority
// for the descriptors and the Buffers slice; it releases the keep-alive
// reference on the underlying root Arrow array (which in turn keeps the
// whole buffer tree alive for as long as needed, since Arrow's array.Data
// retains its own children) but never touches the vector's data directly.
func Export(mem memory.Allocator, v vector.Vector, name string) (*ArrowArray, *ArrowSchema, error) {
	arr, err := v.ToArrow(mem)
	if err != nil {
		return nil, nil, err
	}

	format, ok := FormatForType(v.Type())
	if !ok {
		format = formatForDataType(arr.DataType())
	}

	out, schema := exportArray(arr, name, format)

	flags := int64(0)
	if v.NullCount() > 0 {
		flags |= FlagNullable
	}
	schema.Flags = flags

	out.privateData = arr
	schema.privateData = arr
	out.Release = func(a *ArrowArray) {
		if a.privateData != nil {
			a.privateData.Release()
			a.privateData = nil
		}
		a.Buffers = nil
		a.BufferLens = nil
		a.Children = nil
	}
	schema.Release = func(s *ArrowSchema) {
		s.Children = nil
	}
	return out, schema, nil
}

// exportArray builds the descriptor pair for a single Arrow array node,
// recursing into data.Children() for nested types (currently just Arrow
// LIST/LARGE_LIST, the shape ArrayVec.ToArrow produces). Only the root
// call's result carries a privateData keep-alive; array.Data retains its
// own children for as long as the root array is retained, so one
// root-level reference is enough to keep the whole tree's buffers alive.
func exportArray(arr arrow.Array, name, format string) (*ArrowArray, *ArrowSchema) {
	data := arr.Data()
	bufs := data.Buffers()
	ptrs := make([]unsafe.Pointer, len(bufs))
	lens := make([]int64, len(bufs))
	for i, b := range bufs {
		if b == nil || b.Len() == 0 {
			continue
		}
		ptrs[i] = unsafe.Pointer(&b.Bytes()[0])
		lens[i] = int64(b.Len())
	}

	childData := data.Children()
	var arrChildren []*ArrowArray
	var schemaChildren []*ArrowSchema
	if len(childData) > 0 {
		arrChildren = make([]*ArrowArray, len(childData))
		schemaChildren = make([]*ArrowSchema, len(childData))
		for i, cd := range childData {
			childArr := array.MakeFromData(cd)
			childFormat := formatForDataType(cd.DataType())
			arrChildren[i], schemaChildren[i] = exportArray(childArr, name+".item", childFormat)
			childArr.Release()
		}
	}

	out := &ArrowArray{
		Length:     int64(arr.Len()),
		NullCount:  int64(arr.NullN()),
		Offset:     0,
		NBuffers:   int64(len(bufs)),
		Buffers:    ptrs,
		BufferLens: lens,
		Children:   arrChildren,
	}
	schema := &ArrowSchema{Format: format, Name: name, Children: schemaChildren}
	return out, schema
}

// Import reconstructs a Draken vector from a descriptor pair previously
// produced by Export (or an equivalent producer).
//
// When arr carries the producer's privateData — true for every descriptor
// Export built in this same process — Import re-wraps that Arrow array
// directly through vector.FromArrow. This is both zero-copy and immune to
// the producer later calling arr.Release(arr): vector.FromArrow's borrowed
// constructors retain privateData for the vector's own lifetime, the same
// keep-alive discipline every other borrowed vector in this package uses,
// and it preserves the vector's concrete Go type instead of hiding it
// behind a wrapper.
//
// Without privateData — the genuine cross-process case this descriptor
// pair's C Data Interface layout is meant to support — Import instead
// reconstructs the array from raw pointers via arr.Buffers/arr.Children,
// with no data copy: the buffers and any nested child arrays are wrapped
// directly from the pointers and lengths the descriptor carries.
func Import(mem memory.Allocator, arr *ArrowArray, schema *ArrowSchema) (vector.Vector, error) {
	if arr.privateData != nil {
		return vector.FromArrow(mem, arr.privateData)
	}

	data, err := importArrayData(arr, schema)
	if err != nil {
		return nil, err
	}
	defer data.Release()
	native := array.MakeFromData(data)
	defer native.Release()

	return vector.FromArrow(mem, native)
}

// importArrayData rebuilds a single array.ArrayData node (and, recursively,
// its children) from a descriptor pair, with no buffer copy.
func importArrayData(arr *ArrowArray, schema *ArrowSchema) (arrow.ArrayData, error) {
	var dtype arrow.DataType
	isList := schema.Format == "+l" || schema.Format == "+L"
	if !isList {
		var err error
		dtype, err = dataTypeForFormat(schema.Format)
		if err != nil {
			return nil, err
		}
	}

	buffers := make([]*memory.Buffer, len(arr.Buffers))
	for i, ptr := range arr.Buffers {
		if ptr == nil {
			continue
		}
		raw := unsafe.Slice((*byte)(ptr), arr.BufferLens[i])
		buffers[i] = memory.NewBufferBytes(raw)
	}

	var children []arrow.ArrayData
	if len(arr.Children) > 0 {
		if len(arr.Children) != len(schema.Children) {
			return nil, draken.NewError(draken.ErrLengthMismatch, "array has %d children, schema has %d", len(arr.Children), len(schema.Children))
		}
		children = make([]arrow.ArrayData, len(arr.Children))
		for i, childArr := range arr.Children {
			childData, err := importArrayData(childArr, schema.Children[i])
			if err != nil {
				return nil, err
			}
			children[i] = childData
		}
	}

	switch schema.Format {
	case "+l":
		if len(children) != 1 {
			return nil, draken.NewError(draken.ErrUnsupportedType, "list format %q requires exactly one child, got %d", schema.Format, len(children))
		}
		dtype = arrow.ListOf(children[0].DataType())
	case "+L":
		if len(children) != 1 {
			return nil, draken.NewError(draken.ErrUnsupportedType, "list format %q requires exactly one child, got %d", schema.Format, len(children))
		}
		dtype = arrow.LargeListOf(children[0].DataType())
	}

	return array.NewData(dtype, int(arr.Length), buffers, children, int(arr.NullCount), int(arr.Offset)), nil
}

func formatForDataType(dt arrow.DataType) string {
	switch dt.ID() {
	case arrow.INT8:
		return "c"
	case arrow.INT16:
		return "s"
	case arrow.INT32:
		return "i"
	case arrow.INT64:
		return "l"
	case arrow.FLOAT32:
		return "f"
	case arrow.FLOAT64:
		return "g"
	case arrow.DATE32:
		return "tdD"
	case arrow.TIMESTAMP:
		return "tsu:"
	case arrow.BOOL:
		return "b"
	case arrow.STRING, arrow.LARGE_STRING:
		return "u"
	case arrow.BINARY, arrow.LARGE_BINARY:
		return "z"
	case arrow.LIST:
		return "+l"
	case arrow.LARGE_LIST:
		return "+L"
	default:
		return "+u" // opaque/unrecognized, surfaced as NonNative on import
	}
}

// dataTypeForFormat is the inverse of formatForDataType for every format
// this bridge can reconstruct without additional child information. List
// formats ("+l"/"+L") are resolved in importArrayData instead, once their
// child's type is known; "+u" marks a genuinely opaque Arrow type (e.g. a
// NonNative column wrapping decimals, structs, or maps) that this pure-Go
// pseudo-ABI has no way to reconstruct from a format string alone, so it
// always fails Import with ErrUnsupportedType rather than guessing.
func dataTypeForFormat(format string) (arrow.DataType, error) {
	switch format {
	case "c":
		return arrow.PrimitiveTypes.Int8, nil
	case "s":
		return arrow.PrimitiveTypes.Int16, nil
	case "i":
		return arrow.PrimitiveTypes.Int32, nil
	case "l":
		return arrow.PrimitiveTypes.Int64, nil
	case "f":
		return arrow.PrimitiveTypes.Float32, nil
	case "g":
		return arrow.PrimitiveTypes.Float64, nil
	case "tdD":
		return arrow.FixedWidthTypes.Date32, nil
	case "tsu:":
		return &arrow.TimestampType{Unit: arrow.Microsecond}, nil
	case "b":
		return arrow.FixedWidthTypes.Boolean, nil
	case "u":
		return arrow.BinaryTypes.String, nil
	case "z":
		return arrow.BinaryTypes.Binary, nil
	case "+l", "+L":
		// Resolved by the caller once the child's DataType is known; reaching
		// here with no child means the descriptor pair is malformed.
		return nil, draken.NewError(draken.ErrUnsupportedType, "list format %q requires a child array", format)
	default:
		return nil, draken.NewError(draken.ErrUnsupportedType, "unrecognized Arrow C Data Interface format %q", format)
	}
}
