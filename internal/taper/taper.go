// Package taper generates Hann taper coefficients for spectral analysis of
// finite adjoint source signals.
package taper

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Hann returns symmetric Hann coefficients of the given length.
func Hann(length int) []float64 {
	if length <= 0 {
		return nil
	}
	if length == 1 {
		return []float64{1}
	}

	out := make([]float64, length)
	for i := range out {
		x := float64(i) / float64(length-1)
		out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*x)
	}
	return out
}

// Apply multiplies the signal by the taper coefficients element-wise into a
// new slice. Both slices must have the same length.
func Apply(signal, coeffs []float64) []float64 {
	out := make([]float64, len(signal))
	vecmath.MulBlock(out, signal, coeffs)
	return out
}
