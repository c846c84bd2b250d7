package trace

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Errors returned by trace lookups and constructors.
var (
	ErrMissingData  = errors.New("trace: no matching trace")
	ErrInvalidDelta = errors.New("trace: sample interval must be positive")
)

// Component identifies a seismometer orientation by its channel letter.
type Component byte

// Canonical sensor-relative components. R and T are rotated into N and E by
// the post-processing pipeline.
const (
	ComponentZ Component = 'Z'
	ComponentR Component = 'R'
	ComponentT Component = 'T'
	ComponentN Component = 'N'
	ComponentE Component = 'E'
)

// Trace is a single-channel time-sampled signal. Network, Station, Location
// and Channel follow SEED naming (e.g. "II", "AAK", "00", "BHZ"); the final
// character of Channel encodes the component orientation.
type Trace struct {
	Network   string
	Station   string
	Location  string
	Channel   string
	StartTime time.Time
	Delta     float64 // sample interval in seconds
	Data      []float64
}

// New creates a trace and validates its sample interval.
func New(network, station, location, channel string, start time.Time, delta float64, data []float64) (*Trace, error) {
	if delta <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidDelta, delta)
	}
	return &Trace{
		Network:   network,
		Station:   station,
		Location:  location,
		Channel:   channel,
		StartTime: start,
		Delta:     delta,
		Data:      data,
	}, nil
}

// ID returns the 4-part channel identity "NETWORK.STATION.LOCATION.CHANNEL".
func (t *Trace) ID() string {
	return strings.Join([]string{t.Network, t.Station, t.Location, t.Channel}, ".")
}

// Npts returns the number of samples.
func (t *Trace) Npts() int { return len(t.Data) }

// Component returns the orientation letter (the final channel character),
// or 0 for an empty channel code.
func (t *Trace) Component() Component {
	if t.Channel == "" {
		return 0
	}
	return Component(t.Channel[len(t.Channel)-1])
}

// EndTime returns the time of the last sample. For an empty trace it equals
// StartTime.
func (t *Trace) EndTime() time.Time {
	if len(t.Data) == 0 {
		return t.StartTime
	}
	return t.StartTime.Add(Seconds(float64(len(t.Data)-1) * t.Delta))
}

// Copy returns a deep copy of the trace.
func (t *Trace) Copy() *Trace {
	c := *t
	c.Data = make([]float64, len(t.Data))
	copy(c.Data, t.Data)
	return &c
}

// Seconds converts a duration in fractional seconds to a time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// SplitID splits a 4-part channel identity into network, station, location
// and channel codes. Missing parts come back empty.
func SplitID(id string) (network, station, location, channel string) {
	parts := strings.SplitN(id, ".", 4)
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return get(0), get(1), get(2), get(3)
}
