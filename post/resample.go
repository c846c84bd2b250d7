package post

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/seis-adjoint/trace"
)

// ErrBadTimeBase reports an unusable resampling target.
var ErrBadTimeBase = errors.New("post: resampling target must have positive delta and npts")

// Resample interpolates every trace onto the exact time base given by
// start, delta and npts, so all traces leave with an identical sample grid
// regardless of their native sampling. Sample positions outside a trace are
// clamped to its edge values; the caller is expected to have zero-padded the
// stream first so that does not happen in practice.
func Resample(st trace.Stream, start time.Time, delta float64, npts int) error {
	if delta <= 0 || npts <= 0 {
		return fmt.Errorf("%w: delta=%g npts=%d", ErrBadTimeBase, delta, npts)
	}

	for _, tr := range st {
		resampleTrace(tr, start, delta, npts)
	}
	return nil
}

// resampleTrace interpolates one trace in place (unchecked).
func resampleTrace(tr *trace.Trace, start time.Time, delta float64, npts int) {
	out := make([]float64, npts)
	offset := start.Sub(tr.StartTime).Seconds()

	for i := range out {
		pos := (offset + float64(i)*delta) / tr.Delta
		out[i] = sampleAt(tr.Data, pos)
	}

	tr.Data = out
	tr.StartTime = start
	tr.Delta = delta
}

// sampleAt evaluates the signal at a fractional sample position using cubic
// 4-point interpolation, falling back to linear for very short signals.
// Positions outside the signal clamp to the edge samples.
func sampleAt(data []float64, pos float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	if pos <= 0 {
		return data[0]
	}
	if pos >= float64(n-1) {
		return data[n-1]
	}

	idx := int(pos)
	frac := pos - float64(idx)

	// On-grid positions pass through exactly.
	if frac < timeEps {
		return data[idx]
	}
	if frac > 1-timeEps {
		return data[idx+1]
	}

	if n < 4 {
		return data[idx] + frac*(data[idx+1]-data[idx])
	}

	xm1 := data[maxInt(idx-1, 0)]
	x2 := data[minInt(idx+2, n-1)]
	return hermite4(frac, xm1, data[idx], data[idx+1], x2)
}

// hermite4 computes cubic 4-point interpolation from x0 to x1 using the
// neighbor points xm1 and x2.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
