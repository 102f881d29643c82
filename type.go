// Package draken is a columnar in-memory data container and kernel library.
//
// It holds one or more morsels of columnar data with Arrow-compatible memory
// layouts, exposes per-type vector kernels, and allows zero-copy exchange
// with the Arrow C Data Interface through the cdata subpackage.
package draken

// Type is the closed enumeration of logical column types Draken understands.
// The numeric codes are stable across releases: they are used for debugging,
// printing, and on-wire type negotiation, so existing values must never be
// renumbered.
type Type uint8

const (
	Int8   Type = 1
	Int16  Type = 2
	Int32  Type = 3
	Int64  Type = 4
	Float32 Type = 20
	Float64 Type = 21

	Date32      Type = 30
	Timestamp64 Type = 40

	Bool Type = 50

	String Type = 60

	Array Type = 80

	// NonNative wraps an Arrow array whose type Draken has no native vector
	// for. Kernels on a NonNative vector delegate to generic Arrow compute.
	NonNative Type = 100
)

func (t Type) String() string {
	switch t {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Date32:
		return "date32"
	case Timestamp64:
		return "timestamp64"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Array:
		return "array"
	case NonNative:
		return "non_native"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether t participates in arithmetic and the numeric
// comparison/reduction kernels.
func (t Type) IsNumeric() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Float32, Float64, Date32, Timestamp64:
		return true
	default:
		return false
	}
}

// NullHash is the constant hash value produced for any null element, for
// every vector kind. Kept distinct from any plausible real hash of a valid
// value so joins and group-bys can treat it as its own bucket.
const NullHash uint64 = 0x9E3779B97F4A7C15

// String vector hashing uses an FNV-1a accumulator with these parameters.
const (
	fnvOffsetBasis uint64 = 0xCBF29CE484222325
	fnvPrime       uint64 = 0x100000001B3
)

// HashBytes computes the per-byte FNV-1a style hash used by StringVec.Hash.
// Exported so callers constructing scalar string comparisons elsewhere in a
// query engine can hash a literal the same way a column would.
func HashBytes(b []byte) uint64 {
	h := fnvOffsetBasis
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime
	}
	return h
}
