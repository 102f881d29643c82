package cdata_test

import (
	"testing"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/stretchr/testify/assert"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/cdata"
)

func TestWithLogicalTypeRoundTrip(t *testing.T) {
	meta := arrow.NewMetadata([]string{"existing"}, []string{"value"})
	tagged := cdata.WithLogicalType(meta, draken.NonNative.String())

	got, ok := cdata.LogicalType(tagged)
	assert.True(t, ok)
	assert.Equal(t, "non_native", got)

	idx := tagged.FindKey("existing")
	assert.NotEqual(t, -1, idx)
}

func TestLogicalTypeAbsent(t *testing.T) {
	meta := arrow.NewMetadata(nil, nil)
	_, ok := cdata.LogicalType(meta)
	assert.False(t, ok)
}
