package logicsim

import "gonum.org/v1/gonum/graph"

// A Wire is a directed, width-checked connection from an output pin of
// one component to an input pin of another. Wires are edges of the
// circuit graph (gonum graph.Line); a wire never outlives either
// endpoint.
//
// Virtual wires are synthesized from tunnel nets at the start of every
// propagation pass and regenerated wholesale each pass; they are
// excluded from the user-visible wire listing and from the fan-in
// uniqueness check.
type Wire struct {
	id       int64
	from, to graph.Node

	srcPin, dstPin int
	width          uint
	value          *Signal
	virtual        bool
}

// From returns the driving component's node. Part of graph.Line.
func (w *Wire) From() graph.Node { return w.from }

// To returns the driven component's node. Part of graph.Line.
func (w *Wire) To() graph.Node { return w.to }

// ID returns the wire's unique edge identifier. Part of graph.Line.
func (w *Wire) ID() int64 { return w.id }

// ReversedLine is required by graph.Line; circuit wires are never
// reversed.
func (w *Wire) ReversedLine() graph.Line {
	return &Wire{
		id: w.id, from: w.to, to: w.from,
		srcPin: w.srcPin, dstPin: w.dstPin,
		width: w.width, value: w.value, virtual: w.virtual,
	}
}

// SrcPin returns the output pin index on the driving component.
func (w *Wire) SrcPin() int { return w.srcPin }

// DstPin returns the input pin index on the driven component.
func (w *Wire) DstPin() int { return w.dstPin }

// Width returns the wire's bit width, fixed at creation time.
func (w *Wire) Width() uint { return w.width }

// Value returns the last signal transmitted across the wire, nil when
// the driver was undriven. The UI reads it for wire coloring.
func (w *Wire) Value() *Signal { return w.value }

// Virtual reports whether the wire was synthesized from a tunnel net.
func (w *Wire) Virtual() bool { return w.virtual }

func (w *Wire) setValue(s *Signal) {
	switch {
	case s == nil:
		w.value = nil
	case w.value != nil && w.value.Width() == s.Width():
		w.value.CopyFrom(s)
	default:
		w.value = s.Clone()
	}
}
