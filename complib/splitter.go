package complib

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	sim "github.com/dmallory/logicsim"
)

// A Splitter fans a single input bus out into N arms. Every input bit
// is assigned to exactly one arm by the mapping; within an arm, bits
// keep their source order. Arms with no assigned bits carry a
// zero-width signal.
type Splitter struct {
	base
	input   sim.Pin
	outputs []sim.Pin

	inBits  uint
	armBits []uint
	mapping []int // mapping[i] = arm receiving input bit i
}

// NewSplitter builds a splitter. The mapping must cover every input bit
// with a valid arm index, and armBits must agree with the per-arm bit
// counts the mapping implies.
func NewSplitter(inBits uint, armBits []uint, mapping []int) (*Splitter, error) {
	if uint(len(mapping)) != inBits {
		return nil, errors.Errorf("complib: splitter mapping covers %d bits, input has %d", len(mapping), inBits)
	}
	counts := make([]uint, len(armBits))
	for bit, arm := range mapping {
		if arm < 0 || arm >= len(armBits) {
			return nil, errors.Errorf("complib: splitter bit %d mapped to arm %d of %d", bit, arm, len(armBits))
		}
		counts[arm]++
	}
	for arm, want := range armBits {
		if counts[arm] != want {
			return nil, errors.Errorf("complib: splitter arm %d declared %d bits, mapping assigns %d", arm, want, counts[arm])
		}
	}
	s := &Splitter{
		input:   sim.NewPin(inBits),
		outputs: make([]sim.Pin, len(armBits)),
		inBits:  inBits,
		armBits: armBits,
		mapping: mapping,
	}
	for i, w := range armBits {
		s.outputs[i] = sim.NewPin(w)
	}
	return s, nil
}

// DefaultSplitter returns the editor default: a 2-bit input split into
// two 1-bit arms.
func DefaultSplitter() *Splitter {
	s, err := NewSplitter(2, []uint{1, 1}, []int{0, 1})
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Splitter) Name() string { return "Splitter" }

func (s *Splitter) NumInputs() int  { return 1 }
func (s *Splitter) NumOutputs() int { return len(s.outputs) }

func (s *Splitter) pin(px sim.PinIndex) *sim.Pin {
	switch {
	case px == sim.In(0):
		return &s.input
	case px.Role == sim.RoleOutput && px.Index < len(s.outputs):
		return &s.outputs[px.Index]
	}
	panic("complib: splitter has no pin " + px.String())
}

func (s *Splitter) Pin(px sim.PinIndex) *sim.Signal         { return s.pin(px).Get() }
func (s *Splitter) SetPin(px sim.PinIndex, sig *sim.Signal) { s.pin(px).Set(sig) }
func (s *Splitter) PinWidth(px sim.PinIndex) uint           { return s.pin(px).Width() }

// Eval rebuilds every arm from the input: each arm receives its
// assigned source bits in increasing source-bit order. An undriven
// input makes every arm undriven.
func (s *Splitter) Eval() {
	in := s.input.Get()
	if in == nil {
		for i := range s.outputs {
			s.outputs[i].Set(nil)
		}
		return
	}
	arms := make([]*sim.Signal, len(s.outputs))
	for i, w := range s.armBits {
		arms[i] = sim.NewSignal(w)
	}
	next := make([]uint, len(s.outputs))
	for bit, arm := range s.mapping {
		arms[arm].SetBit(next[arm], in.Bit(uint(bit)))
		next[arm]++
	}
	for i := range s.outputs {
		s.outputs[i].Set(arms[i])
	}
}

// InputBits returns the input bus width.
func (s *Splitter) InputBits() uint { return s.inBits }

// ArmBits returns the per-arm widths.
func (s *Splitter) ArmBits() []uint { return s.armBits }

// Mapping returns the bit-to-arm assignment.
func (s *Splitter) Mapping() []int { return s.mapping }

// WithInputBits is a reconfiguration changing the input width. Growing
// widens the last arm and maps the extra bits to it; shrinking
// truncates the mapping and recounts the arm widths.
func (s *Splitter) WithInputBits(inBits uint) (sim.Comp, sim.Update, error) {
	if inBits < 1 {
		return nil, sim.Update{}, errors.New("complib: splitter input width must be at least 1")
	}
	if inBits == s.inBits {
		return nil, sim.Update{}, nil
	}
	var armBits []uint
	var mapping []int
	if inBits > s.inBits {
		last := len(s.outputs) - 1
		armBits = append([]uint(nil), s.armBits...)
		armBits[last] += inBits - s.inBits
		mapping = append([]int(nil), s.mapping...)
		for i := s.inBits; i < inBits; i++ {
			mapping = append(mapping, last)
		}
	} else {
		mapping = append([]int(nil), s.mapping[:inBits]...)
		armBits = countArmBits(mapping, len(s.outputs))
	}
	next, err := NewSplitter(inBits, armBits, mapping)
	if err != nil {
		return nil, sim.Update{}, err
	}
	return next, sim.Update{Shape: true}, nil
}

// WithArms is a reconfiguration changing the arm count. New arms start
// empty; when shrinking, bits mapped to removed arms are reassigned to
// the new last arm and the arm widths recounted.
func (s *Splitter) WithArms(n int) (sim.Comp, sim.Update, error) {
	if n < 1 {
		return nil, sim.Update{}, errors.New("complib: splitter needs at least one arm")
	}
	if n == len(s.outputs) {
		return nil, sim.Update{}, nil
	}
	var armBits []uint
	mapping := append([]int(nil), s.mapping...)
	if n > len(s.outputs) {
		armBits = append([]uint(nil), s.armBits...)
		for len(armBits) < n {
			armBits = append(armBits, 0)
		}
	} else {
		for i, arm := range mapping {
			if arm >= n {
				mapping[i] = n - 1
			}
		}
		armBits = countArmBits(mapping, n)
	}
	next, err := NewSplitter(s.inBits, armBits, mapping)
	if err != nil {
		return nil, sim.Update{}, err
	}
	return next, sim.Update{Shape: true}, nil
}

// WithBitArm is a reconfiguration reassigning one input bit to another
// arm, recounting the arm widths.
func (s *Splitter) WithBitArm(bit uint, arm int) (sim.Comp, sim.Update, error) {
	if bit >= s.inBits {
		return nil, sim.Update{}, errors.Errorf("complib: splitter has no input bit %d", bit)
	}
	if arm < 0 || arm >= len(s.outputs) {
		return nil, sim.Update{}, errors.Errorf("complib: splitter has no arm %d", arm)
	}
	if s.mapping[bit] == arm {
		return nil, sim.Update{}, nil
	}
	mapping := append([]int(nil), s.mapping...)
	mapping[bit] = arm
	next, err := NewSplitter(s.inBits, countArmBits(mapping, len(s.outputs)), mapping)
	if err != nil {
		return nil, sim.Update{}, err
	}
	return next, sim.Update{Shape: true}, nil
}

func countArmBits(mapping []int, arms int) []uint {
	counts := make([]uint, arms)
	for _, arm := range mapping {
		counts[arm]++
	}
	return counts
}

func (s *Splitter) Size() r2.Vec {
	return sim.Tiles(2, float64(len(s.outputs)))
}

func (s *Splitter) InputOffsets() []r2.Vec {
	return []r2.Vec{{X: 0, Y: s.Size().Y}}
}

func (s *Splitter) OutputOffsets() []r2.Vec {
	out := make([]r2.Vec, len(s.outputs))
	for i := range out {
		out[i] = sim.Tiles(2, float64(i))
	}
	return out
}
