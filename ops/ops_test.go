package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/ops"
)

func TestGetOpArithmeticRequiresMatchingNumericTypes(t *testing.T) {
	h, ok := ops.GetOp(draken.Int64, false, draken.Int64, false, ops.Add)
	assert.True(t, ok)
	assert.Equal(t, ops.Add, h.Op)

	_, ok = ops.GetOp(draken.Int64, false, draken.Int32, false, ops.Add)
	assert.False(t, ok)

	_, ok = ops.GetOp(draken.String, false, draken.String, false, ops.Add)
	assert.False(t, ok)
}

func TestGetOpComparisonRequiresMatchingTypes(t *testing.T) {
	h, ok := ops.GetOp(draken.String, false, draken.String, true, ops.Eq)
	assert.True(t, ok)
	assert.True(t, h.RightScalar)

	_, ok = ops.GetOp(draken.Int64, false, draken.Float64, false, ops.Eq)
	assert.False(t, ok)
}

func TestGetOpBooleanRequiresBothBool(t *testing.T) {
	_, ok := ops.GetOp(draken.Bool, false, draken.Bool, false, ops.And)
	assert.True(t, ok)

	_, ok = ops.GetOp(draken.Bool, false, draken.Int64, false, ops.And)
	assert.False(t, ok)
}

func TestGetOpScalarLeftVectorRightUnsupported(t *testing.T) {
	_, ok := ops.GetOp(draken.Int64, true, draken.Int64, false, ops.Add)
	assert.False(t, ok)
}

func TestGetOpVectorScalarAndScalarScalarSupported(t *testing.T) {
	_, ok := ops.GetOp(draken.Int64, false, draken.Int64, true, ops.Gt)
	assert.True(t, ok)

	_, ok = ops.GetOp(draken.Int64, true, draken.Int64, true, ops.Gt)
	assert.True(t, ok)
}
