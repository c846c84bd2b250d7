// Package rotate converts horizontal seismogram components between the
// sensor-relative (Radial, Transverse) and geographic (North, East) frames.
package rotate

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the rotation functions.
var (
	ErrLengthMismatch = errors.New("rotate: component signals differ in length")
	ErrBadAzimuth     = errors.New("rotate: back azimuth out of range")
)

// RTToNE rotates a (Radial, Transverse) pair into (North, East) using the
// back azimuth in degrees. The radial axis points from the event toward the
// station, so for baz = 0 (event due north) the radial component maps onto
// negative north.
func RTToNE(r, t []float64, backAzimuth float64) (n, e []float64, err error) {
	if len(r) != len(t) {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(r), len(t))
	}
	if backAzimuth < 0 || backAzimuth > 360 || math.IsNaN(backAzimuth) {
		return nil, nil, fmt.Errorf("%w: %g", ErrBadAzimuth, backAzimuth)
	}

	ba := backAzimuth * math.Pi / 180
	cos, sin := math.Cos(ba), math.Sin(ba)

	n = make([]float64, len(r))
	e = make([]float64, len(r))
	for i := range r {
		n[i] = -cos*r[i] + sin*t[i]
		e[i] = -sin*r[i] - cos*t[i]
	}
	return n, e, nil
}

// NEToRT rotates a (North, East) pair into (Radial, Transverse) using the
// back azimuth in degrees. It is the exact inverse of RTToNE.
func NEToRT(n, e []float64, backAzimuth float64) (r, t []float64, err error) {
	if len(n) != len(e) {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(n), len(e))
	}
	if backAzimuth < 0 || backAzimuth > 360 || math.IsNaN(backAzimuth) {
		return nil, nil, fmt.Errorf("%w: %g", ErrBadAzimuth, backAzimuth)
	}

	ba := backAzimuth * math.Pi / 180
	cos, sin := math.Cos(ba), math.Sin(ba)

	r = make([]float64, len(n))
	t = make([]float64, len(n))
	for i := range n {
		r[i] = -cos*n[i] - sin*e[i]
		t[i] = sin*n[i] - cos*e[i]
	}
	return r, t, nil
}
