package cdata

import "github.com/apache/arrow/go/v14/arrow"

// logicalTypeKey is the Arrow field metadata key Draken uses to round-trip
// its own logical type tag through a plain Arrow schema, which has no
// concept of Timestamp64's canonical unit or of NonNative as distinct from
// "whatever Arrow type this happens to be". Adapted from the teacher's
// single-purpose metadata-tagging convention, generalized from a MAP-only
// marker to carry any Draken type name.
const logicalTypeKey = "DRAKEN_LOGICAL_TYPE"

// WithLogicalType returns metadata with the Draken logical type name
// recorded alongside whatever keys it already carries.
func WithLogicalType(metadata arrow.Metadata, typeName string) arrow.Metadata {
	keys := append(append([]string{}, metadata.Keys()...), logicalTypeKey)
	values := append(append([]string{}, metadata.Values()...), typeName)
	return arrow.NewMetadata(keys, values)
}

// LogicalType reads back the Draken logical type name stamped by
// WithLogicalType, if present.
func LogicalType(metadata arrow.Metadata) (string, bool) {
	idx := metadata.FindKey(logicalTypeKey)
	if idx == -1 {
		return "", false
	}
	return metadata.Values()[idx], true
}
