// Package complib provides the built-in component kinds of the
// simulation engine: gates, plexers, a register, I/O pins, the bus
// splitter and tunnels, plus the factory the editor menu is built from.
package complib

import (
	"gonum.org/v1/gonum/spatial/r2"

	sim "github.com/dmallory/logicsim"
)

// base provides the default non-clocked, non-interactive behavior.
type base struct{}

func (base) Clocked() bool  { return false }
func (base) Tick()          {}
func (base) Interact() bool { return false }

// GateOp selects a gate's boolean function.
type GateOp uint8

const (
	OpNot GateOp = iota
	OpOr
	OpAnd
)

// A Gate is an n-input, single-output bitwise logic gate of uniform
// width. The NOT gate is fixed at one input.
//
// AND and OR use a strict undriven policy: if any input is undriven the
// output is undriven, never "treat missing as zero".
type Gate struct {
	base
	op     GateOp
	bits   uint
	inputs []sim.Pin
	output sim.Pin
}

// NewGate returns a gate with the given function, bit width and input
// count.
func NewGate(op GateOp, bits uint, inputs int) *Gate {
	if op == OpNot {
		inputs = 1
	}
	g := &Gate{op: op, bits: bits, inputs: make([]sim.Pin, inputs)}
	for i := range g.inputs {
		g.inputs[i] = sim.NewPin(bits)
	}
	g.output = sim.NewPin(bits)
	return g
}

// Not returns a 1-bit NOT gate.
func Not() *Gate { return NewGate(OpNot, 1, 1) }

// And returns a 1-bit, 2-input AND gate.
func And() *Gate { return NewGate(OpAnd, 1, 2) }

// Or returns a 1-bit, 2-input OR gate.
func Or() *Gate { return NewGate(OpOr, 1, 2) }

func (g *Gate) Name() string {
	switch g.op {
	case OpNot:
		return "Gate: NOT"
	case OpOr:
		return "Gate: OR"
	default:
		return "Gate: AND"
	}
}

func (g *Gate) NumInputs() int  { return len(g.inputs) }
func (g *Gate) NumOutputs() int { return 1 }

func (g *Gate) Pin(px sim.PinIndex) *sim.Signal {
	switch {
	case px.Role == sim.RoleInput && px.Index < len(g.inputs):
		return g.inputs[px.Index].Get()
	case px == sim.Out(0):
		return g.output.Get()
	}
	panic("complib: gate has no pin " + px.String())
}

func (g *Gate) SetPin(px sim.PinIndex, s *sim.Signal) {
	switch {
	case px.Role == sim.RoleInput && px.Index < len(g.inputs):
		g.inputs[px.Index].Set(s)
	case px == sim.Out(0):
		g.output.Set(s)
	default:
		panic("complib: gate has no pin " + px.String())
	}
}

func (g *Gate) PinWidth(px sim.PinIndex) uint {
	switch {
	case px.Role == sim.RoleInput && px.Index < len(g.inputs):
		return g.inputs[px.Index].Width()
	case px == sim.Out(0):
		return g.output.Width()
	}
	panic("complib: gate has no pin " + px.String())
}

func (g *Gate) Eval() {
	switch g.op {
	case OpNot:
		in := g.inputs[0].Get()
		if in == nil {
			g.output.Set(nil)
			return
		}
		g.output.Set(in.Not())
	case OpOr:
		acc := sim.NewSignal(g.bits)
		for i := range g.inputs {
			in := g.inputs[i].Get()
			if in == nil {
				g.output.Set(nil)
				return
			}
			acc = acc.Or(in)
		}
		g.output.Set(acc)
	case OpAnd:
		acc := sim.NewSignal(g.bits).Not()
		for i := range g.inputs {
			in := g.inputs[i].Get()
			if in == nil {
				g.output.Set(nil)
				return
			}
			acc = acc.And(in)
		}
		g.output.Set(acc)
	}
}

// Bits returns the gate's data width.
func (g *Gate) Bits() uint { return g.bits }

// Op returns the gate's boolean function.
func (g *Gate) Op() GateOp { return g.op }

// WithBits is a reconfiguration: it returns a fresh gate of the new
// width, dropping stored pin state.
func (g *Gate) WithBits(bits uint) (sim.Comp, sim.Update, error) {
	if bits == g.bits {
		return nil, sim.Update{}, nil
	}
	return NewGate(g.op, bits, len(g.inputs)), sim.Update{Shape: true}, nil
}

// WithInputs is a reconfiguration changing the input count. NOT gates
// reject it.
func (g *Gate) WithInputs(n int) (sim.Comp, sim.Update, error) {
	if g.op == OpNot {
		return nil, sim.Update{}, errNotFixedInputs
	}
	if n < 1 {
		return nil, sim.Update{}, errBadInputCount
	}
	if n == len(g.inputs) {
		return nil, sim.Update{}, nil
	}
	return NewGate(g.op, g.bits, n), sim.Update{Shape: true}, nil
}

func (g *Gate) Size() r2.Vec {
	if g.op == OpNot {
		return sim.Tiles(3, 2)
	}
	return sim.Tiles(4, 4)
}

// InputOffsets places up to three inputs at fixed tile rows; larger
// gates spread over the extended body line, skipping the center row
// when the count is even.
func (g *Gate) InputOffsets() []r2.Vec {
	n := len(g.inputs)
	switch {
	case n <= 2:
		if g.op == OpNot {
			return []r2.Vec{sim.Tiles(0, 1)}
		}
		return []r2.Vec{sim.Tiles(0, 1), sim.Tiles(0, 3)}
	case n == 3:
		return []r2.Vec{sim.Tiles(0, 0), sim.Tiles(0, 2), sim.Tiles(0, 4)}
	default:
		skipCenter := n%2 == 0
		tiles := n
		if !skipCenter {
			tiles = n - 1
		}
		yOff := (tiles - 4) / 2
		out := make([]r2.Vec, 0, n)
		for i := 0; i <= tiles; i++ {
			if skipCenter && i == tiles/2 {
				continue
			}
			out = append(out, sim.Tiles(0, float64(i-yOff)))
		}
		return out
	}
}

func (g *Gate) OutputOffsets() []r2.Vec {
	size := g.Size()
	return []r2.Vec{{X: size.X, Y: size.Y / 2}}
}

// HitBoxes extends the default box with the input bar drawn for gates
// with more than two inputs.
func (g *Gate) HitBoxes() []r2.Box {
	boxes := []r2.Box{sim.DefaultHitBox(g.Size())}
	if n := len(g.inputs); n > 2 {
		yOff := float64(n-1) / 2 * 2 * sim.TileSize
		mid := g.Size().Y / 2
		boxes = append(boxes, r2.Box{
			Min: r2.Vec{X: -5, Y: mid - yOff},
			Max: r2.Vec{X: 0, Y: mid + yOff},
		})
	}
	return boxes
}
