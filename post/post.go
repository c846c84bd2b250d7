package post

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cwbudde/seis-adjoint/adjoint"
	"github.com/cwbudde/seis-adjoint/geo"
	"github.com/cwbudde/seis-adjoint/rotate"
	"github.com/cwbudde/seis-adjoint/trace"
)

// Errors returned by the pipeline entry point.
var (
	ErrNoSources          = errors.New("post: no adjoint sources to process")
	ErrNoReference        = errors.New("post: reference synthetic stream must not be empty")
	ErrMixedMetadata      = errors.New("post: adjoint sources of one batch must share kind and period band")
	ErrDuplicateComponent = errors.New("post: two traces claim the same component")
	ErrUnknownComponent   = errors.New("post: component outside the canonical Z/R/T set")
)

// Station carries the receiver coordinates taken from the inventory.
type Station struct {
	Latitude  float64
	Longitude float64
}

// Event carries the source coordinates and origin time.
type Event struct {
	Latitude   float64
	Longitude  float64
	OriginTime time.Time
}

// Params configures one pipeline invocation for one station.
type Params struct {
	// StartTime is the shared nominal start time of all adjoint sources.
	StartTime time.Time
	// Synthetic is the raw solver output for this station; its first trace
	// defines the target time base.
	Synthetic trace.Stream
	Station   Station
	Event     Event
	// SumOverComponents collapses co-located instruments into one channel
	// per component. Weights must be supplied when it is set.
	SumOverComponents bool
	Weights           Weights
}

// Result is the simulator-ready output of one pipeline invocation.
type Result struct {
	// Sources holds one adjoint source per component after rotation, all on
	// the reference synthetic's exact time base.
	Sources []*adjoint.Source
	// TimeOffset is the reference synthetic start time minus the event
	// origin time, in seconds.
	TimeOffset float64
	// RotationErr records a failed horizontal rotation. The pipeline result
	// is still valid; the horizontals are simply returned unrotated.
	RotationErr error
}

// Process runs the post-processing pipeline over all adjoint sources of one
// station. See the package documentation for the stage order and the
// failure policy.
func Process(sources map[string]*adjoint.Source, p Params) (*Result, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if len(p.Synthetic) == 0 {
		return nil, ErrNoReference
	}

	meta, err := commonMeta(sources)
	if err != nil {
		return nil, err
	}

	// Stage 1: convert to traces on the shared nominal start time, in
	// sorted channel order so the output ordering is reproducible.
	ids := make([]string, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	st := make(trace.Stream, 0, len(ids))
	for _, id := range ids {
		st = append(st, sources[id].ToTrace(p.StartTime))
	}

	ref := p.Synthetic[0]
	interpStart := ref.StartTime
	interpDelta := ref.Delta
	interpNpts := ref.Npts()
	interpEnd := interpStart.Add(trace.Seconds(interpDelta * float64(interpNpts)))
	timeOffset := interpStart.Sub(p.Event.OriginTime).Seconds()

	// Stage 2: zero-pad onto [interpStart, interpEnd).
	if err := ZeroPad(st, interpStart, interpEnd); err != nil {
		return nil, err
	}

	// Stage 3: resample onto the reference grid.
	if err := Resample(st, interpStart, interpDelta, interpNpts); err != nil {
		return nil, err
	}

	// Stage 4: optional weighted summation over co-located instruments.
	if p.SumOverComponents {
		if p.Weights == nil {
			return nil, ErrMissingWeights
		}
		st, err = sumComponents(st, p.Weights)
		if err != nil {
			return nil, err
		}
	}

	// Horizontal signal recorded before synthesis decides whether a
	// rotation is attempted at all: synthesized zero traces carry nothing
	// worth rotating.
	hasHorizontal := false
	for _, tr := range st {
		if c := tr.Component(); c == trace.ComponentR || c == trace.ComponentT {
			hasHorizontal = true
			break
		}
	}

	// Stage 5: synthesize zero traces for absent components.
	st, err = fillMissing(st)
	if err != nil {
		return nil, err
	}

	res := &Result{TimeOffset: timeOffset}

	// Stage 6: rotate (R, T) to (N, E). A failure here degrades the result
	// instead of aborting it.
	if hasHorizontal {
		baz := geo.BackAzimuth(p.Event.Latitude, p.Event.Longitude,
			p.Station.Latitude, p.Station.Longitude)
		if err := rotateHorizontals(st, baz); err != nil {
			res.RotationErr = err
		}
	}

	// Stage 7: repackage with the batch's common metadata.
	res.Sources = make([]*adjoint.Source, 0, len(st))
	for _, tr := range st {
		res.Sources = append(res.Sources, adjoint.FromTrace(tr, meta))
	}
	return res, nil
}

// commonMeta verifies that every source of the batch shares the same
// measurement kind and period band, and returns that common metadata.
func commonMeta(sources map[string]*adjoint.Source) (*adjoint.Source, error) {
	var meta *adjoint.Source
	for _, src := range sources {
		if meta == nil {
			meta = src
			continue
		}
		if src.Kind != meta.Kind || src.MinPeriod != meta.MinPeriod || src.MaxPeriod != meta.MaxPeriod {
			return nil, fmt.Errorf("%w: %s(%s %g-%g) vs %s(%s %g-%g)",
				ErrMixedMetadata,
				meta.ChannelID(), meta.Kind, meta.MinPeriod, meta.MaxPeriod,
				src.ChannelID(), src.Kind, src.MinPeriod, src.MaxPeriod)
		}
	}
	return meta, nil
}

// fillMissing appends an all-zero clone of the first trace for every
// component of the canonical {Z, R, T} set that is absent, so the solver
// always receives a full 3-component set. Duplicate or non-canonical
// component letters are caller errors and rejected.
func fillMissing(st trace.Stream) (trace.Stream, error) {
	missing := map[trace.Component]bool{
		trace.ComponentZ: true,
		trace.ComponentR: true,
		trace.ComponentT: true,
	}
	for _, tr := range st {
		c := tr.Component()
		pending, known := missing[c]
		if !known {
			return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, tr.ID())
		}
		if !pending {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateComponent, tr.ID())
		}
		missing[c] = false
	}

	template := st[0]
	for _, c := range []trace.Component{trace.ComponentZ, trace.ComponentR, trace.ComponentT} {
		if !missing[c] {
			continue
		}
		zero := template.Copy()
		for i := range zero.Data {
			zero.Data[i] = 0
		}
		zero.Channel = template.Channel[:len(template.Channel)-1] + string(c)
		st = append(st, zero)
	}
	return st, nil
}

// rotateHorizontals rotates the stream's R/T pair into N/E in place and
// renames the channels accordingly.
func rotateHorizontals(st trace.Stream, backAzimuth float64) error {
	r, err := st.SelectComponent(trace.ComponentR)
	if err != nil {
		return err
	}
	t, err := st.SelectComponent(trace.ComponentT)
	if err != nil {
		return err
	}

	n, e, err := rotate.RTToNE(r.Data, t.Data, backAzimuth)
	if err != nil {
		return err
	}

	r.Data = n
	r.Channel = r.Channel[:len(r.Channel)-1] + string(trace.ComponentN)
	t.Data = e
	t.Channel = t.Channel[:len(t.Channel)-1] + string(trace.ComponentE)
	return nil
}
