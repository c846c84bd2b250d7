package adjoint

// Window is a half-open time interval [Start, End) selected by an external
// window-picking algorithm, expressed in seconds relative to the reference
// start time and tied to exactly one channel identity.
type Window struct {
	ChannelID string
	Start     float64
	End       float64
}

// WindowCounts returns the number of windows picked on each channel. The
// input is grouped one list per channel; empty groups are skipped. This is
// bookkeeping only and is independent of whether a measurement succeeded.
func WindowCounts(groups [][]Window) map[string]int {
	counts := make(map[string]int, len(groups))
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		counts[group[0].ChannelID] = len(group)
	}
	return counts
}

// spans converts a channel's windows into the [start, end] pairs the engine
// consumes.
func spans(group []Window) []Span {
	out := make([]Span, len(group))
	for i, w := range group {
		out[i] = Span{w.Start, w.End}
	}
	return out
}
