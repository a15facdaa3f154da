package complib

import (
	"gonum.org/v1/gonum/spatial/r2"

	sim "github.com/dmallory/logicsim"
)

// A Register is the clocked storage element. Input pin 0 is the 1-bit
// write enable, pin 1 the data input; the single output holds the
// stored value.
//
// Eval is a no-op: the output only moves on Tick, which is what lets
// feedback loops through a register schedule cleanly.
type Register struct {
	dataBits    uint
	writeEnable sim.Pin
	input       sim.Pin
	output      sim.Pin
}

// NewRegister returns a register of the given data width, storing all
// zeros.
func NewRegister(dataBits uint) *Register {
	return &Register{
		dataBits:    dataBits,
		writeEnable: sim.NewPin(1),
		input:       sim.NewPin(dataBits),
		output:      sim.NewPinZero(dataBits),
	}
}

func (r *Register) Name() string { return "Register" }

func (r *Register) NumInputs() int  { return 2 }
func (r *Register) NumOutputs() int { return 1 }

func (r *Register) pin(px sim.PinIndex) *sim.Pin {
	switch px {
	case sim.In(0):
		return &r.writeEnable
	case sim.In(1):
		return &r.input
	case sim.Out(0):
		return &r.output
	}
	panic("complib: register has no pin " + px.String())
}

func (r *Register) Pin(px sim.PinIndex) *sim.Signal       { return r.pin(px).Get() }
func (r *Register) SetPin(px sim.PinIndex, s *sim.Signal) { r.pin(px).Set(s) }
func (r *Register) PinWidth(px sim.PinIndex) uint         { return r.pin(px).Width() }

func (r *Register) Eval() {}

func (r *Register) Clocked() bool { return true }

// Tick latches the data input into the output when the write enable is
// driven with any bit set. An undriven write enable means "do not
// write".
func (r *Register) Tick() {
	if we := r.writeEnable.Get(); we != nil && we.Any() {
		r.output.Set(r.input.Get())
	}
}

func (r *Register) Interact() bool { return false }

// Bits returns the register's data width.
func (r *Register) Bits() uint { return r.dataBits }

// WithBits is a reconfiguration: it returns a fresh register of the new
// width, dropping the stored value.
func (r *Register) WithBits(bits uint) (sim.Comp, sim.Update, error) {
	if bits == r.dataBits {
		return nil, sim.Update{}, nil
	}
	return NewRegister(bits), sim.Update{Shape: true}, nil
}

func (r *Register) Size() r2.Vec { return sim.Tiles(4, 6) }

// InputOffsets places the write enable below the data input, matching
// the D/WE/Q face layout.
func (r *Register) InputOffsets() []r2.Vec {
	return []r2.Vec{sim.Tiles(0, 4), sim.Tiles(0, 2)}
}

func (r *Register) OutputOffsets() []r2.Vec {
	return []r2.Vec{{X: r.Size().X, Y: 2 * sim.TileSize}}
}
