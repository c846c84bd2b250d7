// Package diag summarizes adjoint source signals for bookkeeping: basic
// time-domain statistics plus a spectral sketch checked against the
// measurement period band. It never feeds back into processing.
package diag

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/seis-adjoint/adjoint"
	"github.com/cwbudde/seis-adjoint/internal/taper"
)

// Errors returned by Analyze.
var (
	ErrEmptySignal  = errors.New("diag: adjoint source carries no samples")
	ErrInvalidDelta = errors.New("diag: sample interval must be positive")
)

// Report holds the per-channel summary of one adjoint source.
type Report struct {
	Channel  string
	Npts     int
	Delta    float64
	Peak     float64 // max |sample|
	PeakTime float64 // seconds from the first sample
	RMS      float64
	Energy   float64 // sum of squares

	DominantPeriod float64 // period of the strongest spectral bin, seconds
	Centroid       float64 // spectral centroid, Hz
	// InBand is the fraction of spectral energy inside the measurement
	// period band [MinPeriod, MaxPeriod], or -1 when no band is set.
	InBand float64
}

// Analyze computes the report for one adjoint source.
func Analyze(src *adjoint.Source) (Report, error) {
	if len(src.Data) == 0 {
		return Report{}, ErrEmptySignal
	}
	if src.Delta <= 0 {
		return Report{}, ErrInvalidDelta
	}

	rep := Report{
		Channel: src.ChannelID(),
		Npts:    len(src.Data),
		Delta:   src.Delta,
		InBand:  -1,
	}

	rep.Peak = vecmath.MaxAbs(src.Data)
	for i, v := range src.Data {
		if math.Abs(v) == rep.Peak {
			rep.PeakTime = float64(i) * src.Delta
			break
		}
	}
	for _, v := range src.Data {
		rep.Energy += v * v
	}
	rep.RMS = math.Sqrt(rep.Energy / float64(rep.Npts))

	mag, err := magnitudeSpectrum(src.Data)
	if err != nil || len(mag) < 2 {
		// Spectral sketch is best-effort; the time stats stand on their own.
		return rep, nil
	}

	sampleRate := 1 / src.Delta
	fftSize := 2 * (len(mag) - 1)
	binHz := sampleRate / float64(fftSize)

	rep.Centroid = centroid(mag, binHz)
	if peakBin := maxBin(mag); peakBin > 0 {
		rep.DominantPeriod = 1 / (float64(peakBin) * binHz)
	}
	if src.MinPeriod > 0 && src.MaxPeriod >= src.MinPeriod {
		rep.InBand = bandFraction(mag, binHz, 1/src.MaxPeriod, 1/src.MinPeriod)
	}

	return rep, nil
}

// magnitudeSpectrum returns the one-sided magnitude spectrum of the Hann
// tapered signal, zero-padded to the next power of two.
func magnitudeSpectrum(signal []float64) ([]float64, error) {
	fftSize := nextPowerOf2(len(signal))
	if fftSize < 2 {
		return nil, nil
	}

	tapered := taper.Apply(signal, taper.Hann(len(signal)))

	in := make([]complex128, fftSize)
	for i, v := range tapered {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	binCount := fftSize/2 + 1
	re := make([]float64, binCount)
	im := make([]float64, binCount)
	for i := 0; i < binCount; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, binCount)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// centroid returns the magnitude-weighted mean frequency in Hz.
func centroid(mag []float64, binHz float64) float64 {
	sum := vecmath.Sum(mag)
	if sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range mag {
		weighted += float64(i) * binHz * v
	}
	return weighted / sum
}

// maxBin returns the strongest non-DC bin.
func maxBin(mag []float64) int {
	best := 0
	bestVal := 0.0
	for i := 1; i < len(mag); i++ {
		if mag[i] > bestVal {
			bestVal = mag[i]
			best = i
		}
	}
	return best
}

// bandFraction returns the share of spectral energy between loHz and hiHz.
func bandFraction(mag []float64, binHz, loHz, hiHz float64) float64 {
	total := 0.0
	inBand := 0.0
	for i, v := range mag {
		e := v * v
		total += e
		f := float64(i) * binHz
		if f >= loHz && f <= hiHz {
			inBand += e
		}
	}
	if total == 0 {
		return 0
	}
	return inBand / total
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
