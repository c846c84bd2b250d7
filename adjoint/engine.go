package adjoint

import "github.com/cwbudde/seis-adjoint/trace"

// Span is a measurement window expressed as [start, end] offsets in seconds
// relative to the reference start time of the trace pair.
type Span [2]float64

// Engine computes one adjoint source from an observed/synthetic trace pair
// and the windows selected on that channel. Implementations own the misfit
// mathematics; an engine may combine several windows into one measurement.
//
// When adjointFlag is false the engine only takes the measurement and may
// leave Source.Data empty. Any returned error is treated by the aggregator
// as "no usable measurement for this channel".
type Engine interface {
	Measure(obs, syn *trace.Trace, windows []Span, cfg *Config, kind string, adjointFlag bool) (*Source, error)
}
