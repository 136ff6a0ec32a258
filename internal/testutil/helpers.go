// Package testutil provides shared assertions for the demodulation test suites.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// Default tolerances.
const (
	DefaultTolerance = 1e-10
	WindowTolerance  = 1e-10
	Float32Tolerance = 1e-4
)

// AssertSymmetric verifies that s[i] == s[n-1-i] within tolerance.
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%g != s[%d]=%g", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that every element is finite.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return assert.Fail(t, "non-finite value", "s[%d] = %v", i, v)
		}
	}
	return true
}

// AssertDCGain verifies that the coefficients sum to expectedGain.
func AssertDCGain(t *testing.T, coeffs []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(t, expectedGain, sum, tolerance, "DC gain = %g, want %g", sum, expectedGain)
}

// AssertCenterIsMax verifies that the center element is the largest.
func AssertCenterIsMax(t *testing.T, s []float64) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	c := len(s) / 2
	for i, v := range s {
		if v > s[c] {
			return assert.Fail(t, "center is not max", "s[%d]=%g > center s[%d]=%g", i, v, c, s[c])
		}
	}
	return true
}

// AssertRelativeError verifies |actual-expected|/|expected| <= tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%g, actual=%g)",
		relError, tolerance, expected, actual)
}

// AssertOddLength verifies that a slice has an odd, non-zero length.
func AssertOddLength(t *testing.T, s []float64) bool {
	t.Helper()
	return assert.Equal(t, 1, len(s)%2, "slice length %d is not odd", len(s))
}

// AssertShape verifies the dimensions of a matrix.
func AssertShape(t *testing.T, m mat.Matrix, rows, cols int) bool {
	t.Helper()
	r, c := m.Dims()
	return assert.Equal(t, [2]int{rows, cols}, [2]int{r, c}, "matrix shape mismatch")
}

// AssertMatrixInDelta compares two matrices element by element.
func AssertMatrixInDelta(t *testing.T, expected, actual mat.Matrix, tolerance float64) bool {
	t.Helper()
	er, ec := expected.Dims()
	if !AssertShape(t, actual, er, ec) {
		return false
	}
	for i := range er {
		for j := range ec {
			if !assert.InDelta(t, expected.At(i, j), actual.At(i, j), tolerance, "element (%d,%d)", i, j) {
				return false
			}
		}
	}
	return true
}
