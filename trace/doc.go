// Package trace provides a minimal single-channel time series container and
// a Stream collection with SEED-style channel selection. All signal
// processing functions in this module operate on raw []float64 slices held
// by a Trace; the container only tracks identity and time base.
package trace
