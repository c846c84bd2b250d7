package adjoint

import (
	"errors"
	"fmt"

	"github.com/cwbudde/seis-adjoint/trace"
)

// Errors returned by the measurement entry points.
var (
	ErrNilEngine   = errors.New("adjoint: engine must not be nil")
	ErrNilConfig   = errors.New("adjoint: config must not be nil")
	ErrNilTrace    = errors.New("adjoint: observed and synthetic traces must not be nil")
	ErrEmptyStream = errors.New("adjoint: stream must not be empty")
	ErrNoWindows   = errors.New("adjoint: no windows supplied")
	ErrMissingData = trace.ErrMissingData
)

// StationResult holds the per-station measurement outcome: the accepted
// adjoint sources, the window count for each accepted channel, and the
// reason every other windowed channel was dropped.
type StationResult struct {
	Sources      map[string]*Source
	WindowCounts map[string]int
	Dropped      map[string]error
}

// MeasureTrace computes the adjoint source for one observed/synthetic pair.
// Unlike the station-level entry points it propagates engine failures to the
// caller, which manages its own channel loop.
func MeasureTrace(eng Engine, obs, syn *trace.Trace, windows []Span, cfg *Config, kind string, adjointFlag bool) (*Source, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	if obs == nil || syn == nil {
		return nil, ErrNilTrace
	}
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if len(windows) == 0 {
		return nil, ErrNoWindows
	}

	src, err := eng.Measure(obs, syn, windows, cfg, kind, adjointFlag)
	if err != nil {
		return nil, fmt.Errorf("adjoint: measure %s: %w", obs.ID(), err)
	}
	return src, nil
}

// MeasureStream runs the engine once per windowed channel of one station.
//
// For each non-empty window group it selects the observed trace by full
// channel identity and the synthetic trace by component letter (synthetics
// may use a different location code). A missing trace aborts the station
// with ErrMissingData. An engine failure drops only that channel; the reason
// is recorded in the returned drop map.
func MeasureStream(eng Engine, observed, synthetic trace.Stream, groups [][]Window, cfg *Config, kind string, adjointFlag bool) (map[string]*Source, map[string]error, error) {
	if eng == nil {
		return nil, nil, ErrNilEngine
	}
	if cfg == nil {
		return nil, nil, ErrNilConfig
	}
	if len(observed) == 0 || len(synthetic) == 0 {
		return nil, nil, ErrEmptyStream
	}

	sources := make(map[string]*Source)
	dropped := make(map[string]error)

	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		chanID := group[0].ChannelID

		obs, err := observed.Select(chanID)
		if err != nil {
			return nil, nil, fmt.Errorf("adjoint: observed trace for window %s: %w", chanID, err)
		}
		syn, err := synthetic.SelectComponent(obs.Component())
		if err != nil {
			return nil, nil, fmt.Errorf("adjoint: synthetic trace matching %s: %w", chanID, err)
		}

		src, err := MeasureTrace(eng, obs, syn, spans(group), cfg, kind, adjointFlag)
		if err != nil {
			dropped[chanID] = err
			continue
		}
		sources[chanID] = src
	}

	return sources, dropped, nil
}

// MeasureStation measures all windowed channels of one station and
// reconciles the accepted sources against the per-channel window counts,
// keeping only channels present on both sides. A nil result with nil error
// means no windows were supplied at all.
func MeasureStation(eng Engine, observed, synthetic trace.Stream, groups [][]Window, cfg *Config, kind string) (*StationResult, error) {
	if len(groups) == 0 {
		return nil, nil
	}

	counts := WindowCounts(groups)

	sources, dropped, err := MeasureStream(eng, observed, synthetic, groups, cfg, kind, true)
	if err != nil {
		return nil, err
	}

	return &StationResult{
		Sources:      sources,
		WindowCounts: reconcile(sources, counts),
		Dropped:      dropped,
	}, nil
}

// reconcile keeps a window count only for channels that also produced an
// accepted source, discarding entries orphaned by dropped measurements.
func reconcile(sources map[string]*Source, counts map[string]int) map[string]int {
	clean := make(map[string]int, len(sources))
	for chanID := range sources {
		if n, ok := counts[chanID]; ok {
			clean[chanID] = n
		}
	}
	return clean
}
