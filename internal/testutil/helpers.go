// Package testutil provides reusable test helpers for the tremolo packages.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-12
	GainTolerance    = 1e-9
	Float32Tolerance = 1e-6
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", append([]any{fmt.Sprintf("s[%d] is NaN", i)}, msgAndArgs...)...)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", append([]any{fmt.Sprintf("s[%d] is Inf", i)}, msgAndArgs...)...)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t,
				fmt.Sprintf("s[%d]=%g is outside range [%g, %g]", i, v, minVal, maxVal),
				msgAndArgs...)
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t,
			fmt.Sprintf("value %g is outside range [%g, %g]", value, minVal, maxVal),
			msgAndArgs...)
	}
	return true
}

// AssertSlicesInDelta verifies that two slices have the same length and
// agree element-wise within tolerance. It stops at the first mismatch.
func AssertSlicesInDelta(t *testing.T, expected, actual []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if math.Abs(expected[i]-actual[i]) > tolerance {
			return assert.Fail(t,
				fmt.Sprintf("index %d: expected %g, actual %g (tolerance %g)", i, expected[i], actual[i], tolerance),
				msgAndArgs...)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance, msgAndArgs...)
}
