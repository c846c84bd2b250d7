package adjoint

import (
	"time"

	"github.com/cwbudde/seis-adjoint/trace"
)

// Source is a per-channel adjoint source: the misfit-derived forcing signal
// for one instrument component plus the scalar measurement metadata that
// produced it.
type Source struct {
	Kind      string  // measurement kind, e.g. "multitaper_misfit"
	Misfit    float64 // scalar misfit value of the measurement
	Delta     float64 // sample interval in seconds
	MinPeriod float64 // lower bound of the measurement period band
	MaxPeriod float64 // upper bound of the measurement period band
	Network   string
	Station   string
	Location  string
	Channel   string // full channel code, e.g. "BHZ"
	Data      []float64
}

// ChannelID returns the 4-part identity "NETWORK.STATION.LOCATION.CHANNEL".
func (s *Source) ChannelID() string {
	return s.Network + "." + s.Station + "." + s.Location + "." + s.Channel
}

// Component returns the orientation letter of the channel code.
func (s *Source) Component() trace.Component {
	if s.Channel == "" {
		return 0
	}
	return trace.Component(s.Channel[len(s.Channel)-1])
}

// ToTrace converts the source into a Trace for time-base manipulation.
// All adjoint sources of one measurement run share a single nominal start
// time, so the caller supplies it.
func (s *Source) ToTrace(start time.Time) *trace.Trace {
	data := make([]float64, len(s.Data))
	copy(data, s.Data)
	return &trace.Trace{
		Network:   s.Network,
		Station:   s.Station,
		Location:  s.Location,
		Channel:   s.Channel,
		StartTime: start,
		Delta:     s.Delta,
		Data:      data,
	}
}

// FromTrace converts a trace back into a Source, carrying the measurement
// metadata (kind and period band) from meta. The misfit is reset to zero:
// after post-processing the signal no longer corresponds to one measurement.
func FromTrace(tr *trace.Trace, meta *Source) *Source {
	data := make([]float64, len(tr.Data))
	copy(data, tr.Data)
	return &Source{
		Kind:      meta.Kind,
		Delta:     tr.Delta,
		MinPeriod: meta.MinPeriod,
		MaxPeriod: meta.MaxPeriod,
		Network:   tr.Network,
		Station:   tr.Station,
		Location:  tr.Location,
		Channel:   tr.Channel,
		Data:      data,
	}
}
