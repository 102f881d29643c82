package debug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mabel-dev/draken/internal/debug"
)

func TestAssertPassesOnTrue(t *testing.T) {
	assert.NotPanics(t, func() {
		debug.Assert(true, "should not fire")
	})
}

func TestAssertPanicsOnFalse(t *testing.T) {
	assert.PanicsWithValue(t, "invariant violated", func() {
		debug.Assert(false, "invariant violated")
	})
}
