// Package adjoint computes per-channel adjoint sources for one station from
// externally picked time windows.
//
// The misfit mathematics themselves (multitaper, cross-correlation or
// waveform kernels) live behind the Engine interface; this package locates
// the observed/synthetic trace pair for each windowed channel, invokes the
// engine once per channel, and reconciles the accepted measurements against
// the per-channel window counts. A failing engine call drops that channel
// only — one bad channel must not abort the station — and the drop reason is
// reported in StationResult.Dropped rather than discarded.
package adjoint
