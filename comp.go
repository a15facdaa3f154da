package logicsim

import "gonum.org/v1/gonum/spatial/r2"

// Comp is the behavioral contract shared by every component kind.
//
// Pin, SetPin and PinWidth panic when given a PinIndex outside the
// kind's current shape; the Circuit mutation interface keeps wires
// within range, so such a panic indicates a caller bug.
type Comp interface {
	// Name returns the display name of the kind.
	Name() string
	NumInputs() int
	NumOutputs() int

	// Pin returns the signal currently stored on the given pin, nil
	// when the pin is undriven.
	Pin(PinIndex) *Signal
	// SetPin stores a copy of the signal on the given pin.
	SetPin(PinIndex, *Signal)
	// PinWidth returns the bit width of the given pin.
	PinWidth(PinIndex) uint

	// Eval computes output pins from the currently stored input pins.
	// Clocked kinds no-op here; their outputs only move on Tick.
	Eval()
	// Clocked reports whether the kind participates in clock ticks.
	Clocked() bool
	// Tick advances clocked state. No-op for combinational kinds.
	Tick()
	// Interact applies the kind's click action and reports whether any
	// state changed (and therefore a propagation pass is needed).
	Interact() bool

	// Size returns the component's footprint for layout and hit
	// testing, in canvas units.
	Size() r2.Vec
}

// PinLayouter is implemented by kinds whose pin placement deviates from
// the default layout (inputs spread along the left edge, outputs along
// the right). Offsets are relative to the component position.
type PinLayouter interface {
	InputOffsets() []r2.Vec
	OutputOffsets() []r2.Vec
}

// Boxer is implemented by kinds with custom hit-test regions. Boxes are
// relative to the component position.
type Boxer interface {
	HitBoxes() []r2.Box
}

// TunnelRole tells whether a tunnel drives its net or listens to it.
type TunnelRole uint8

const (
	TunnelSender TunnelRole = iota
	TunnelReceiver
)

func (r TunnelRole) String() string {
	if r == TunnelSender {
		return "sender"
	}
	return "receiver"
}

// TunnelOp enumerates tunnel membership changes.
type TunnelOp uint8

const (
	TunnelAdd TunnelOp = iota
	TunnelRemove
	TunnelRename
	TunnelFlip
)

// A TunnelUpdate describes one tunnel membership change to apply to the
// circuit's TunnelContext. Label and Role always refer to the state
// before the change; NewLabel is only meaningful for TunnelRename.
type TunnelUpdate struct {
	Label    string
	Role     TunnelRole
	Op       TunnelOp
	NewLabel string
}

// Tunneler is implemented by the tunnel kind so the circuit can track
// net membership without depending on the component library.
type Tunneler interface {
	Comp
	TunnelLabel() string
	TunnelRole() TunnelRole
}

// An Update reports the side effects of a component reconfiguration.
type Update struct {
	// Shape is set when pin counts or the footprint changed: geometry
	// must be recomputed and out-of-range wires pruned.
	Shape bool
	// Tunnel holds a tunnel membership change to apply, if any.
	Tunnel *TunnelUpdate
}
