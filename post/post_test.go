package post

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/seis-adjoint/adjoint"
	"github.com/cwbudde/seis-adjoint/trace"
)

const (
	refDelta = 1.0
	refNpts  = 20
)

var refStart = t0.Add(5 * time.Second)

// pipelineSource builds a constant-valued adjoint source on the reference
// time base.
func pipelineSource(loc, cha string, value float64) *adjoint.Source {
	data := make([]float64, refNpts)
	for i := range data {
		data[i] = value
	}
	return &adjoint.Source{
		Kind:      "multitaper_misfit",
		Delta:     refDelta,
		MinPeriod: 40,
		MaxPeriod: 100,
		Network:   "II",
		Station:   "AAK",
		Location:  loc,
		Channel:   cha,
		Data:      data,
	}
}

func refSynthetic() trace.Stream {
	return trace.Stream{{
		Network: "II", Station: "AAK", Location: "S3", Channel: "MXZ",
		StartTime: refStart, Delta: refDelta, Data: make([]float64, refNpts),
	}}
}

// testParams places the station on the equator and the event due north, so
// the back azimuth is exactly 0 and the rotation maps R to -N and T to -E.
func testParams() Params {
	return Params{
		StartTime: refStart,
		Synthetic: refSynthetic(),
		Station:   Station{Latitude: 0, Longitude: 0},
		Event:     Event{Latitude: 10, Longitude: 0, OriginTime: t0},
	}
}

func bySuffix(t *testing.T, sources []*adjoint.Source, c trace.Component) *adjoint.Source {
	t.Helper()
	for _, src := range sources {
		if src.Component() == c {
			return src
		}
	}
	t.Fatalf("no source with component %c", c)
	return nil
}

func TestProcessTimeOffset(t *testing.T) {
	sources := map[string]*adjoint.Source{
		"II.AAK.00.BHZ": pipelineSource("00", "BHZ", 3),
	}

	res, err := Process(sources, testParams())
	if err != nil {
		t.Fatal(err)
	}
	if res.TimeOffset != 5.0 {
		t.Errorf("TimeOffset = %g, want 5.0 exactly", res.TimeOffset)
	}
}

func TestProcessFillsMissingComponentsWithoutRotation(t *testing.T) {
	sources := map[string]*adjoint.Source{
		"II.AAK.00.BHZ": pipelineSource("00", "BHZ", 3),
	}

	res, err := Process(sources, testParams())
	if err != nil {
		t.Fatal(err)
	}
	if res.RotationErr != nil {
		t.Fatalf("RotationErr = %v, want nil", res.RotationErr)
	}
	if len(res.Sources) != 3 {
		t.Fatalf("len(Sources) = %d, want full 3-component set", len(res.Sources))
	}

	// Without genuine horizontal signal no rotation is attempted, so the
	// synthesized components keep their R/T names.
	for _, c := range []trace.Component{trace.ComponentR, trace.ComponentT} {
		src := bySuffix(t, res.Sources, c)
		if len(src.Data) != refNpts {
			t.Errorf("%c: npts = %d, want %d", c, len(src.Data), refNpts)
		}
		if src.Delta != refDelta {
			t.Errorf("%c: delta = %g, want %g", c, src.Delta, refDelta)
		}
		for i, v := range src.Data {
			if v != 0 {
				t.Fatalf("%c: Data[%d] = %g, want 0 (synthesized component)", c, i, v)
			}
		}
	}

	z := bySuffix(t, res.Sources, trace.ComponentZ)
	for i, v := range z.Data {
		if v != 3 {
			t.Fatalf("Z: Data[%d] = %g, want 3", i, v)
		}
	}
}

func TestProcessRotatesHorizontals(t *testing.T) {
	sources := map[string]*adjoint.Source{
		"II.AAK.00.BHZ": pipelineSource("00", "BHZ", 3),
		"II.AAK.00.BHR": pipelineSource("00", "BHR", 1),
		"II.AAK.00.BHT": pipelineSource("00", "BHT", 2),
	}

	res, err := Process(sources, testParams())
	if err != nil {
		t.Fatal(err)
	}
	if res.RotationErr != nil {
		t.Fatalf("RotationErr = %v, want nil", res.RotationErr)
	}

	// Event due north: N = -R, E = -T.
	n := bySuffix(t, res.Sources, trace.ComponentN)
	e := bySuffix(t, res.Sources, trace.ComponentE)
	for i := range n.Data {
		if math.Abs(n.Data[i]-(-1)) > 1e-9 {
			t.Fatalf("N[%d] = %g, want -1", i, n.Data[i])
		}
		if math.Abs(e.Data[i]-(-2)) > 1e-9 {
			t.Fatalf("E[%d] = %g, want -2", i, e.Data[i])
		}
	}

	// Channel codes follow the rotation.
	if n.Channel != "BHN" || e.Channel != "BHE" {
		t.Errorf("channels = %q/%q, want BHN/BHE", n.Channel, e.Channel)
	}

	// Metadata carried from the batch.
	if n.Kind != "multitaper_misfit" || n.MinPeriod != 40 || n.MaxPeriod != 100 {
		t.Errorf("metadata lost: %+v", n)
	}
}

func TestProcessRotationFailureIsDegradedNotFatal(t *testing.T) {
	sources := map[string]*adjoint.Source{
		"II.AAK.00.BHR": pipelineSource("00", "BHR", 1),
		"II.AAK.00.BHT": pipelineSource("00", "BHT", 2),
	}

	p := testParams()
	p.Event.Latitude = math.NaN() // back azimuth becomes unusable

	res, err := Process(sources, p)
	if err != nil {
		t.Fatal(err)
	}
	if res.RotationErr == nil {
		t.Fatal("RotationErr = nil, want reported rotation failure")
	}

	// The unrotated horizontals are still returned.
	r := bySuffix(t, res.Sources, trace.ComponentR)
	if r.Data[0] != 1 {
		t.Errorf("R[0] = %g, want 1 (unrotated)", r.Data[0])
	}
	bySuffix(t, res.Sources, trace.ComponentT)
}

func TestProcessResamplesOntoReferenceBase(t *testing.T) {
	// Native sampling twice as fine as the reference: a ramp passes
	// through interpolation exactly.
	data := make([]float64, 2*refNpts)
	for i := range data {
		data[i] = 0.5 * float64(i)
	}
	src := pipelineSource("00", "BHZ", 0)
	src.Delta = 0.5
	src.Data = data

	res, err := Process(map[string]*adjoint.Source{"II.AAK.00.BHZ": src}, testParams())
	if err != nil {
		t.Fatal(err)
	}

	z := bySuffix(t, res.Sources, trace.ComponentZ)
	if len(z.Data) != refNpts || z.Delta != refDelta {
		t.Fatalf("time base = (%d, %g), want (%d, %g)", len(z.Data), z.Delta, refNpts, refDelta)
	}
	for i, v := range z.Data {
		if math.Abs(v-float64(i)) > 1e-9 {
			t.Fatalf("Z[%d] = %g, want %d", i, v, i)
		}
	}
}

func TestProcessSumOverComponents(t *testing.T) {
	sources := map[string]*adjoint.Source{
		"II.AAK.00.BHZ": pipelineSource("00", "BHZ", 2),
		"II.AAK.10.BHZ": pipelineSource("10", "BHZ", 0),
	}

	p := testParams()
	p.SumOverComponents = true
	p.Weights = Weights{trace.ComponentZ: {
		"II.AAK.00.BHZ": 0.5,
		"II.AAK.10.BHZ": 0.5,
	}}

	res, err := Process(sources, p)
	if err != nil {
		t.Fatal(err)
	}

	z := bySuffix(t, res.Sources, trace.ComponentZ)
	if z.Location != "" {
		t.Errorf("summed location = %q, want cleared", z.Location)
	}
	for i, v := range z.Data {
		if v != 1 {
			t.Fatalf("Z[%d] = %g, want 1", i, v)
		}
	}
}

func TestProcessSumFlagWithoutWeights(t *testing.T) {
	sources := map[string]*adjoint.Source{
		"II.AAK.00.BHZ": pipelineSource("00", "BHZ", 1),
	}
	p := testParams()
	p.SumOverComponents = true

	_, err := Process(sources, p)
	if !errors.Is(err, ErrMissingWeights) {
		t.Fatalf("err = %v, want ErrMissingWeights", err)
	}
}

func TestProcessDuplicateComponent(t *testing.T) {
	sources := map[string]*adjoint.Source{
		"II.AAK.00.BHZ": pipelineSource("00", "BHZ", 1),
		"II.AAK.10.BHZ": pipelineSource("10", "BHZ", 2),
	}

	_, err := Process(sources, testParams())
	if !errors.Is(err, ErrDuplicateComponent) {
		t.Fatalf("err = %v, want ErrDuplicateComponent", err)
	}
}

func TestProcessMixedMetadata(t *testing.T) {
	z := pipelineSource("00", "BHZ", 1)
	r := pipelineSource("00", "BHR", 1)
	r.MinPeriod = 17

	_, err := Process(map[string]*adjoint.Source{
		"II.AAK.00.BHZ": z,
		"II.AAK.00.BHR": r,
	}, testParams())
	if !errors.Is(err, ErrMixedMetadata) {
		t.Fatalf("err = %v, want ErrMixedMetadata", err)
	}
}

func TestProcessInputValidation(t *testing.T) {
	if _, err := Process(nil, testParams()); !errors.Is(err, ErrNoSources) {
		t.Errorf("no sources: err = %v", err)
	}

	p := testParams()
	p.Synthetic = nil
	sources := map[string]*adjoint.Source{"II.AAK.00.BHZ": pipelineSource("00", "BHZ", 1)}
	if _, err := Process(sources, p); !errors.Is(err, ErrNoReference) {
		t.Errorf("no reference: err = %v", err)
	}
}
