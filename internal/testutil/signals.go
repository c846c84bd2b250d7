package testutil

import "math"

// Sine generates a sine wave with the given period in seconds, sampled at
// delta-second spacing. The phase is zero at the first sample.
func Sine(period, delta float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * delta / period
	for i := range out {
		out[i] = math.Sin(step * float64(i))
	}
	return out
}

// Ramp generates the linear sequence 1, 2, ..., n. Cubic and linear
// interpolators reproduce it exactly away from the edges, which makes it a
// convenient probe for resampling.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}
