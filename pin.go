package logicsim

import "strconv"

// Role distinguishes the two kinds of connection points on a component.
type Role uint8

const (
	RoleInput Role = iota
	RoleOutput
)

func (r Role) String() string {
	if r == RoleInput {
		return "in"
	}
	return "out"
}

// A PinIndex references one pin of a component, independent of how the
// kind stores it.
type PinIndex struct {
	Role  Role
	Index int
}

// In returns the PinIndex of input pin i.
func In(i int) PinIndex { return PinIndex{Role: RoleInput, Index: i} }

// Out returns the PinIndex of output pin i.
func Out(i int) PinIndex { return PinIndex{Role: RoleOutput, Index: i} }

func (p PinIndex) String() string {
	return p.Role.String() + "[" + strconv.Itoa(p.Index) + "]"
}

// A Pin is the owned signal slot for one pin of a component kind. The
// zero value is unusable; create pins with NewPin.
type Pin struct {
	width uint
	sig   *Signal
}

// NewPin returns an undriven pin of the given width.
func NewPin(width uint) Pin { return Pin{width: width} }

// NewPinZero returns a pin of the given width driven to all zeros.
func NewPinZero(width uint) Pin {
	return Pin{width: width, sig: NewSignal(width)}
}

// Width returns the pin's bit width.
func (p *Pin) Width() uint { return p.width }

// Get returns the pin's current signal, nil when undriven.
func (p *Pin) Get() *Signal { return p.sig }

// Set stores a copy of s on the pin. When the pin already holds a value
// of the same width the bits are copied in place, otherwise the slot is
// reallocated. Setting nil marks the pin undriven.
func (p *Pin) Set(s *Signal) {
	switch {
	case s == nil:
		p.sig = nil
	case p.sig != nil && p.sig.width == s.width:
		p.sig.CopyFrom(s)
	default:
		p.sig = s.Clone()
	}
}

// Zero clears the held value in place. An undriven pin stays undriven.
func (p *Pin) Zero() {
	if p.sig != nil {
		p.sig.zero()
	}
}
