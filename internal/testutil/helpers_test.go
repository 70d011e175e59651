package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertHelpers_Pass(t *testing.T) {
	s := []float64{0, 0.25, 0.5, 1}

	assert.True(t, AssertNoNaNOrInf(t, s))
	assert.True(t, AssertAllInRange(t, s, 0, 1))
	assert.True(t, AssertInRange(t, 0.5, 0, 1))
	assert.True(t, AssertSlicesInDelta(t, s, []float64{0, 0.25, 0.5, 1 + 1e-13}, DefaultTolerance))
	assert.True(t, AssertRelativeError(t, 100, 100.5, 0.01))
	assert.True(t, AssertRelativeError(t, 0, 1e-13, DefaultTolerance))
}

func TestSignals(t *testing.T) {
	s := Sine(4, 1, 4, 2)
	assert.InDeltaSlice(t, []float64{0, 2, 0, -2}, s, 1e-12)

	assert.Equal(t, []float64{0.5, 0.5, 0.5}, Constant(3, 0.5))
	assert.Equal(t, []float32{7, 7}, Fill[float32](2, 7))
	assert.Equal(t, []float32{1, -0.5}, ToFloat32([]float64{1, -0.5}))
}
