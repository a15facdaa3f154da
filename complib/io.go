package complib

import (
	"gonum.org/v1/gonum/spatial/r2"

	sim "github.com/dmallory/logicsim"
)

// An Input is a user-driven source. It has no input pins; its single
// output starts at zero and increments as an unsigned integer, wrapping
// within its bit width, each time the user interacts with it.
type Input struct {
	base
	bits  uint
	value sim.Pin
}

// NewInput returns an input of the given width, driven to zero.
func NewInput(bits uint) *Input {
	return &Input{bits: bits, value: sim.NewPinZero(bits)}
}

func (in *Input) Name() string { return "Input" }

func (in *Input) NumInputs() int  { return 0 }
func (in *Input) NumOutputs() int { return 1 }

func (in *Input) Pin(px sim.PinIndex) *sim.Signal {
	if px == sim.Out(0) {
		return in.value.Get()
	}
	panic("complib: input has no pin " + px.String())
}

func (in *Input) SetPin(px sim.PinIndex, s *sim.Signal) {
	if px == sim.Out(0) {
		in.value.Set(s)
		return
	}
	panic("complib: input has no pin " + px.String())
}

func (in *Input) PinWidth(px sim.PinIndex) uint {
	if px == sim.Out(0) {
		return in.value.Width()
	}
	panic("complib: input has no pin " + px.String())
}

func (in *Input) Eval() {}

// Interact increments the held value modulo 2^width. It always reports
// a change, so a click always triggers a propagation pass.
func (in *Input) Interact() bool {
	if s := in.value.Get(); s != nil {
		in.value.Set(sim.SignalFromUint(in.bits, s.Uint()+1))
	}
	return true
}

// SetValue drives the output to v, truncated to the input's width. It
// is the external-set channel for hosts that script inputs instead of
// clicking them.
func (in *Input) SetValue(v uint64) {
	in.value.Set(sim.SignalFromUint(in.bits, v))
}

// Bits returns the input's width.
func (in *Input) Bits() uint { return in.bits }

// WithBits is a reconfiguration: it returns a fresh zero-driven input
// of the new width.
func (in *Input) WithBits(bits uint) (sim.Comp, sim.Update, error) {
	if bits == in.bits {
		return nil, sim.Update{}, nil
	}
	return NewInput(bits), sim.Update{Shape: true}, nil
}

func (in *Input) Size() r2.Vec { return sim.Tiles(2, 2) }

// An Output is a sink: one input pin, no outputs. The UI renders it
// with whatever value it is driven to.
type Output struct {
	base
	bits  uint
	value sim.Pin
}

// NewOutput returns an output sink of the given width.
func NewOutput(bits uint) *Output {
	return &Output{bits: bits, value: sim.NewPin(bits)}
}

func (o *Output) Name() string { return "Output" }

func (o *Output) NumInputs() int  { return 1 }
func (o *Output) NumOutputs() int { return 0 }

func (o *Output) Pin(px sim.PinIndex) *sim.Signal {
	if px == sim.In(0) {
		return o.value.Get()
	}
	panic("complib: output has no pin " + px.String())
}

func (o *Output) SetPin(px sim.PinIndex, s *sim.Signal) {
	if px == sim.In(0) {
		o.value.Set(s)
		return
	}
	panic("complib: output has no pin " + px.String())
}

func (o *Output) PinWidth(px sim.PinIndex) uint {
	if px == sim.In(0) {
		return o.value.Width()
	}
	panic("complib: output has no pin " + px.String())
}

func (o *Output) Eval() {}

// Value returns the currently driven value, nil when undriven.
func (o *Output) Value() *sim.Signal { return o.value.Get() }

// Bits returns the output's width.
func (o *Output) Bits() uint { return o.bits }

// WithBits is a reconfiguration: it returns a fresh output of the new
// width.
func (o *Output) WithBits(bits uint) (sim.Comp, sim.Update, error) {
	if bits == o.bits {
		return nil, sim.Update{}, nil
	}
	return NewOutput(bits), sim.Update{Shape: true}, nil
}

func (o *Output) Size() r2.Vec { return sim.Tiles(2, 2) }
