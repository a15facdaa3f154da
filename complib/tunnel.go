package complib

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	sim "github.com/dmallory/logicsim"
)

// labelCharWidth approximates the rendered width of one label
// character; the UI owns actual text metrics.
const labelCharWidth = 7.0

// A Tunnel connects to a named net without a drawn wire. It has a
// single pin that is addressable as both In(0) and Out(0): for a
// sender the pin is fed by an upstream wire, for a receiver it is fed
// by the virtual wire synthesized from the net's sender each
// propagation pass.
//
// Label and role are runtime-mutable; changes are reported to the
// circuit's tunnel context as TunnelUpdate events.
type Tunnel struct {
	base
	role  sim.TunnelRole
	label string
	bits  uint
	value sim.Pin
}

// NewTunnel returns a tunnel with the given role, label and width.
func NewTunnel(role sim.TunnelRole, label string, bits uint) *Tunnel {
	return &Tunnel{role: role, label: label, bits: bits, value: sim.NewPin(bits)}
}

// DefaultTunnel returns the editor default: an unlabeled 1-bit sender.
func DefaultTunnel() *Tunnel { return NewTunnel(sim.TunnelSender, "", 1) }

func (t *Tunnel) Name() string { return "Tunnel" }

func (t *Tunnel) NumInputs() int {
	if t.role == sim.TunnelSender {
		return 1
	}
	return 0
}

func (t *Tunnel) NumOutputs() int {
	if t.role == sim.TunnelSender {
		return 0
	}
	return 1
}

func (t *Tunnel) checkPin(px sim.PinIndex) {
	if px.Index != 0 {
		panic("complib: tunnel has no pin " + px.String())
	}
}

func (t *Tunnel) Pin(px sim.PinIndex) *sim.Signal {
	t.checkPin(px)
	return t.value.Get()
}

func (t *Tunnel) SetPin(px sim.PinIndex, s *sim.Signal) {
	t.checkPin(px)
	t.value.Set(s)
}

func (t *Tunnel) PinWidth(px sim.PinIndex) uint {
	t.checkPin(px)
	return t.value.Width()
}

func (t *Tunnel) Eval() {}

// TunnelLabel returns the net label. Part of logicsim.Tunneler.
func (t *Tunnel) TunnelLabel() string { return t.label }

// TunnelRole returns the current role. Part of logicsim.Tunneler.
func (t *Tunnel) TunnelRole() sim.TunnelRole { return t.role }

// Bits returns the tunnel's width.
func (t *Tunnel) Bits() uint { return t.bits }

// WithBits is a reconfiguration changing the width. Net membership is
// unaffected.
func (t *Tunnel) WithBits(bits uint) (sim.Comp, sim.Update, error) {
	if bits == t.bits {
		return nil, sim.Update{}, nil
	}
	return NewTunnel(t.role, t.label, bits), sim.Update{Shape: true}, nil
}

// Rename is a reconfiguration moving the tunnel to another net. The
// footprint follows the label text, so the shape is dirty too.
func (t *Tunnel) Rename(label string) (sim.Comp, sim.Update, error) {
	if label == t.label {
		return nil, sim.Update{}, nil
	}
	upd := sim.Update{
		Shape: true,
		Tunnel: &sim.TunnelUpdate{
			Label:    t.label,
			Role:     t.role,
			Op:       sim.TunnelRename,
			NewLabel: label,
		},
	}
	t.label = label
	return nil, upd, nil
}

// Flip is a reconfiguration toggling the tunnel between sender and
// receiver, which also swaps which role its pin plays.
func (t *Tunnel) Flip() (sim.Comp, sim.Update, error) {
	upd := sim.Update{
		Shape:  true,
		Tunnel: &sim.TunnelUpdate{Label: t.label, Role: t.role, Op: sim.TunnelFlip},
	}
	if t.role == sim.TunnelSender {
		t.role = sim.TunnelReceiver
	} else {
		t.role = sim.TunnelSender
	}
	return nil, upd, nil
}

// Size widens with the label so the text stays inside the arrow shape.
func (t *Tunnel) Size() r2.Vec {
	text := math.Ceil(float64(len(t.label)) * labelCharWidth)
	w := math.Max(4*sim.TileSize, 2*sim.TileSize+text)
	return r2.Vec{X: w, Y: 2 * sim.TileSize}
}
