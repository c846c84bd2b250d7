package trace

import "fmt"

// Stream is an ordered collection of traces, typically all channels recorded
// at one station.
type Stream []*Trace

// Select returns the first trace whose 4-part identity matches id exactly.
func (s Stream) Select(id string) (*Trace, error) {
	for _, tr := range s {
		if tr.ID() == id {
			return tr, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingData, id)
}

// SelectComponent returns the first trace whose channel code ends in the
// given component letter, regardless of network, station or location codes.
func (s Stream) SelectComponent(c Component) (*Trace, error) {
	for _, tr := range s {
		if tr.Component() == c {
			return tr, nil
		}
	}
	return nil, fmt.Errorf("%w: component %c", ErrMissingData, c)
}

// Components returns the component letter of every trace in order.
func (s Stream) Components() []Component {
	out := make([]Component, len(s))
	for i, tr := range s {
		out[i] = tr.Component()
	}
	return out
}

// Copy returns a deep copy of the stream.
func (s Stream) Copy() Stream {
	out := make(Stream, len(s))
	for i, tr := range s {
		out[i] = tr.Copy()
	}
	return out
}
