package post

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/seis-adjoint/trace"
)

// Errors returned by the component summation step.
var (
	ErrMissingWeights = errors.New("post: summing over components requires a weight specification")
	ErrNegativeWeight = errors.New("post: channel weight must not be negative")
	ErrLengthMismatch = errors.New("post: summed channels differ in length")
	ErrUnknownWeight  = errors.New("post: weight specification names an unknown component")
)

// Weights maps a component letter to the per-channel weights used when
// multiple instruments at one site are collapsed into a single logical
// channel per component. Weights need not sum to one but must not be
// negative, and every referenced channel must exist in the summed stream.
type Weights map[trace.Component]map[string]float64

// sumComponents is box 4 of the pipeline: for each weighted component it
// scales and accumulates the named channels into one combined trace whose
// location code is cleared. Only components named in the weight
// specification survive into the returned stream.
func sumComponents(st trace.Stream, w Weights) (trace.Stream, error) {
	for comp := range w {
		switch comp {
		case trace.ComponentZ, trace.ComponentR, trace.ComponentT:
		default:
			return nil, fmt.Errorf("%w: %c", ErrUnknownWeight, comp)
		}
	}

	out := make(trace.Stream, 0, 3)
	for _, comp := range []trace.Component{trace.ComponentZ, trace.ComponentR, trace.ComponentT} {
		chanWeights := w[comp]
		if len(chanWeights) == 0 {
			continue
		}

		// Sorted channel order keeps the accumulated result deterministic.
		ids := make([]string, 0, len(chanWeights))
		for id := range chanWeights {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var sum *trace.Trace
		for _, id := range ids {
			weight := chanWeights[id]
			if weight < 0 {
				return nil, fmt.Errorf("%w: %s: %g", ErrNegativeWeight, id, weight)
			}

			tr, err := st.Select(id)
			if err != nil {
				return nil, fmt.Errorf("post: weighted channel: %w", err)
			}

			if sum == nil {
				sum = tr.Copy()
				vecmath.ScaleBlockInPlace(sum.Data, weight)
				sum.Location = ""
				continue
			}
			if len(tr.Data) != len(sum.Data) {
				return nil, fmt.Errorf("%w: %s has %d samples, want %d",
					ErrLengthMismatch, id, len(tr.Data), len(sum.Data))
			}

			scaled := make([]float64, len(tr.Data))
			vecmath.ScaleBlock(scaled, tr.Data, weight)
			vecmath.AddBlockInPlace(sum.Data, scaled)
		}
		out = append(out, sum)
	}
	return out, nil
}
