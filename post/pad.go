package post

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/seis-adjoint/trace"
)

// ErrInvalidRange reports a padding request whose start lies after its end.
var ErrInvalidRange = errors.New("post: start time is after end time")

// timeEps absorbs float fuzz when dividing time spans by the sample
// interval, so exact multiples are not rounded up an extra sample.
const timeEps = 1e-9

// ZeroPad extends every trace with leading and trailing zeros so that it
// covers at least the half-open range [start, end). Existing samples are
// never trimmed: a trace already covering a side gets no padding there, and
// a trace extending beyond the range keeps its extra samples. Each trace's
// start time is recomputed after padding.
func ZeroPad(st trace.Stream, start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("%w: [%s, %s]", ErrInvalidRange, start, end)
	}

	for _, tr := range st {
		padTrace(tr, start, end)
	}
	return nil
}

// padTrace pads one trace in place (unchecked).
func padTrace(tr *trace.Trace, start, end time.Time) {
	dt := tr.Delta
	npts := tr.Npts()

	// Whole samples needed ahead of the first sample to reach start.
	before := 0
	if gap := tr.StartTime.Sub(start).Seconds(); gap > 0 {
		before = int(math.Ceil(gap/dt - timeEps))
	}
	newStart := tr.StartTime.Add(-trace.Seconds(float64(before) * dt))

	// Total samples needed from newStart to cover up to (but excluding) end.
	total := before + npts
	if span := end.Sub(newStart).Seconds(); span > 0 {
		if n := int(math.Ceil(span/dt - timeEps)); n > total {
			total = n
		}
	}

	if before == 0 && total == npts {
		return
	}

	padded := make([]float64, total)
	copy(padded[before:before+npts], tr.Data)
	tr.Data = padded
	tr.StartTime = newStart
}
