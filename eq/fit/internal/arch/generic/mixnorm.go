// Package generic provides the portable residual evaluation kernel.
package generic

import (
	"gonum.org/v1/gonum/floats"
)

// MixNorm copies residual into dst, adds band, and returns the L1 norm of
// the result.
func MixNorm(dst, residual, band []float64) float64 {
	copy(dst, residual)
	floats.Add(dst, band)

	return floats.Norm(dst, 1)
}
