package complib

import (
	"gonum.org/v1/gonum/spatial/r2"

	sim "github.com/dmallory/logicsim"
)

// A Mux routes one of 2^k data inputs to its output, selected by a
// k-bit selector. Input pin 0 is the selector; data inputs follow.
type Mux struct {
	base
	selBits  uint
	dataBits uint
	selector sim.Pin
	inputs   []sim.Pin
	output   sim.Pin
}

// NewMux returns a multiplexer with 2^selBits data inputs of dataBits
// width each.
func NewMux(selBits, dataBits uint) *Mux {
	m := &Mux{
		selBits:  selBits,
		dataBits: dataBits,
		selector: sim.NewPin(selBits),
		inputs:   make([]sim.Pin, 1<<selBits),
		output:   sim.NewPin(dataBits),
	}
	for i := range m.inputs {
		m.inputs[i] = sim.NewPin(dataBits)
	}
	return m
}

// DefaultMux returns the editor default: 1-bit selector, 1-bit data.
func DefaultMux() *Mux { return NewMux(1, 1) }

func (m *Mux) Name() string { return "Multiplexer" }

// NumInputs counts the data inputs plus the selector pin.
func (m *Mux) NumInputs() int  { return len(m.inputs) + 1 }
func (m *Mux) NumOutputs() int { return 1 }

func (m *Mux) pin(px sim.PinIndex) *sim.Pin {
	switch {
	case px == sim.In(0):
		return &m.selector
	case px.Role == sim.RoleInput && px.Index <= len(m.inputs):
		return &m.inputs[px.Index-1]
	case px == sim.Out(0):
		return &m.output
	}
	panic("complib: mux has no pin " + px.String())
}

func (m *Mux) Pin(px sim.PinIndex) *sim.Signal       { return m.pin(px).Get() }
func (m *Mux) SetPin(px sim.PinIndex, s *sim.Signal) { m.pin(px).Set(s) }
func (m *Mux) PinWidth(px sim.PinIndex) uint         { return m.pin(px).Width() }

// Eval routes the selected input to the output. An undriven selector
// makes the output undriven; the selected input may itself be
// undriven and passes through as such.
func (m *Mux) Eval() {
	sel := m.selector.Get()
	if sel == nil {
		m.output.Set(nil)
		return
	}
	m.output.Set(m.inputs[sel.Uint()].Get())
}

// SelBits returns the selector width.
func (m *Mux) SelBits() uint { return m.selBits }

// Bits returns the data width.
func (m *Mux) Bits() uint { return m.dataBits }

// WithBits is a reconfiguration changing the data width.
func (m *Mux) WithBits(bits uint) (sim.Comp, sim.Update, error) {
	if bits == m.dataBits {
		return nil, sim.Update{}, nil
	}
	return NewMux(m.selBits, bits), sim.Update{Shape: true}, nil
}

// WithSelBits is a reconfiguration changing the selector width and
// with it the data input count.
func (m *Mux) WithSelBits(selBits uint) (sim.Comp, sim.Update, error) {
	if selBits < 1 {
		return nil, sim.Update{}, errBadSelBits
	}
	if selBits == m.selBits {
		return nil, sim.Update{}, nil
	}
	return NewMux(selBits, m.dataBits), sim.Update{Shape: true}, nil
}

func (m *Mux) Size() r2.Vec {
	w := 4.0
	if m.selBits == 1 {
		w = 3
	}
	h := len(m.inputs) + 2
	if h < 4 {
		h = 4
	}
	return sim.Tiles(w, float64(h))
}

// InputOffsets puts the selector on the bottom edge and the data
// inputs down the left side.
func (m *Mux) InputOffsets() []r2.Vec {
	if m.selBits == 1 {
		return []r2.Vec{
			{X: sim.TileSize, Y: m.Size().Y},
			sim.Tiles(0, 1),
			sim.Tiles(0, 3),
		}
	}
	out := []r2.Vec{{X: 2 * sim.TileSize, Y: m.Size().Y - sim.TileSize}}
	for i := 1; i <= len(m.inputs); i++ {
		out = append(out, sim.Tiles(0, float64(i)))
	}
	return out
}

func (m *Mux) OutputOffsets() []r2.Vec {
	size := m.Size()
	return []r2.Vec{{X: size.X, Y: size.Y / 2}}
}

// A Demux routes its data input to one of 2^k outputs, selected by a
// k-bit selector. Input pin 0 is the selector, pin 1 the data input.
type Demux struct {
	base
	selBits  uint
	dataBits uint
	selector sim.Pin
	input    sim.Pin
	outputs  []sim.Pin
}

// NewDemux returns a demultiplexer with 2^selBits outputs of dataBits
// width each.
func NewDemux(selBits, dataBits uint) *Demux {
	d := &Demux{
		selBits:  selBits,
		dataBits: dataBits,
		selector: sim.NewPin(selBits),
		input:    sim.NewPin(dataBits),
		outputs:  make([]sim.Pin, 1<<selBits),
	}
	for i := range d.outputs {
		d.outputs[i] = sim.NewPin(dataBits)
	}
	return d
}

// DefaultDemux returns the editor default: 1-bit selector, 1-bit data.
func DefaultDemux() *Demux { return NewDemux(1, 1) }

func (d *Demux) Name() string { return "Demultiplexer" }

func (d *Demux) NumInputs() int  { return 2 }
func (d *Demux) NumOutputs() int { return len(d.outputs) }

func (d *Demux) pin(px sim.PinIndex) *sim.Pin {
	switch {
	case px == sim.In(0):
		return &d.selector
	case px == sim.In(1):
		return &d.input
	case px.Role == sim.RoleOutput && px.Index < len(d.outputs):
		return &d.outputs[px.Index]
	}
	panic("complib: demux has no pin " + px.String())
}

func (d *Demux) Pin(px sim.PinIndex) *sim.Signal       { return d.pin(px).Get() }
func (d *Demux) SetPin(px sim.PinIndex, s *sim.Signal) { d.pin(px).Set(s) }
func (d *Demux) PinWidth(px sim.PinIndex) uint         { return d.pin(px).Width() }

// Eval routes the input to the selected output. When the selector is
// driven, every already-driven output is zeroed first and only the
// selected one receives the input value. When the selector is
// undriven, the outputs are deliberately left exactly as they were:
// stale values persist. Downstream tooling relies on this policy, so
// do not "fix" it to clear the outputs.
func (d *Demux) Eval() {
	sel := d.selector.Get()
	if sel == nil {
		return
	}
	for i := range d.outputs {
		d.outputs[i].Zero()
	}
	d.outputs[sel.Uint()].Set(d.input.Get())
}

// SelBits returns the selector width.
func (d *Demux) SelBits() uint { return d.selBits }

// Bits returns the data width.
func (d *Demux) Bits() uint { return d.dataBits }

// WithBits is a reconfiguration changing the data width.
func (d *Demux) WithBits(bits uint) (sim.Comp, sim.Update, error) {
	if bits == d.dataBits {
		return nil, sim.Update{}, nil
	}
	return NewDemux(d.selBits, bits), sim.Update{Shape: true}, nil
}

// WithSelBits is a reconfiguration changing the selector width and
// with it the output count.
func (d *Demux) WithSelBits(selBits uint) (sim.Comp, sim.Update, error) {
	if selBits < 1 {
		return nil, sim.Update{}, errBadSelBits
	}
	if selBits == d.selBits {
		return nil, sim.Update{}, nil
	}
	return NewDemux(selBits, d.dataBits), sim.Update{Shape: true}, nil
}

func (d *Demux) Size() r2.Vec {
	w := 4.0
	if d.selBits == 1 {
		w = 3
	}
	h := len(d.outputs) + 2
	if h < 4 {
		h = 4
	}
	return sim.Tiles(w, float64(h))
}

// InputOffsets puts the selector on the bottom edge and the data input
// on the left side.
func (d *Demux) InputOffsets() []r2.Vec {
	size := d.Size()
	if d.selBits == 1 {
		return []r2.Vec{
			{X: 2 * sim.TileSize, Y: size.Y},
			{X: 0, Y: size.Y / 2},
		}
	}
	return []r2.Vec{
		{X: 2 * sim.TileSize, Y: size.Y - sim.TileSize},
		{X: 0, Y: size.Y / 2},
	}
}

func (d *Demux) OutputOffsets() []r2.Vec {
	if d.selBits == 1 {
		return []r2.Vec{sim.Tiles(3, 1), sim.Tiles(3, 3)}
	}
	out := make([]r2.Vec, len(d.outputs))
	for i := range out {
		out[i] = sim.Tiles(4, float64(i+1))
	}
	return out
}
