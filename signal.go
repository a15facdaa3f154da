package logicsim

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// A Signal is a fixed-width bit vector carried on a pin or wire.
//
// A nil *Signal means the carrier is undriven ("absent"): the value is
// unknown and must be propagated as such, it is not zero. Bit 0 is the
// least significant bit everywhere a Signal is interpreted as an
// unsigned integer.
type Signal struct {
	width uint
	bits  *bitset.BitSet
}

// NewSignal returns an all-zeros signal of the given width.
func NewSignal(width uint) *Signal {
	return &Signal{width: width, bits: bitset.New(width)}
}

// SignalFromUint returns a signal of the given width holding v, truncated
// to width bits.
func SignalFromUint(width uint, v uint64) *Signal {
	s := NewSignal(width)
	for i := uint(0); i < width && i < 64; i++ {
		if v>>i&1 == 1 {
			s.bits.Set(i)
		}
	}
	return s
}

// Width returns the number of bits in the signal.
func (s *Signal) Width() uint { return s.width }

// Bit reports whether bit i is set.
func (s *Signal) Bit(i uint) bool {
	if i >= s.width {
		panic("logicsim: signal bit index out of range")
	}
	return s.bits.Test(i)
}

// SetBit sets bit i to v.
func (s *Signal) SetBit(i uint, v bool) {
	if i >= s.width {
		panic("logicsim: signal bit index out of range")
	}
	s.bits.SetTo(i, v)
}

// Any reports whether any bit is set.
func (s *Signal) Any() bool { return s.bits.Any() }

// Uint returns the unsigned integer interpretation of the signal,
// little-endian bit order. Widths above 64 truncate.
func (s *Signal) Uint() uint64 {
	words := s.bits.Bytes()
	if len(words) == 0 {
		return 0
	}
	v := words[0]
	if s.width < 64 {
		v &= 1<<s.width - 1
	}
	return v
}

// Not returns the bitwise complement of s.
func (s *Signal) Not() *Signal {
	return &Signal{width: s.width, bits: s.bits.Complement()}
}

// And returns the bitwise conjunction of s and o. Operand widths must
// match; connection rules enforce this upstream.
func (s *Signal) And(o *Signal) *Signal {
	s.checkWidth(o)
	return &Signal{width: s.width, bits: s.bits.Intersection(o.bits)}
}

// Or returns the bitwise disjunction of s and o.
func (s *Signal) Or(o *Signal) *Signal {
	s.checkWidth(o)
	return &Signal{width: s.width, bits: s.bits.Union(o.bits)}
}

func (s *Signal) checkWidth(o *Signal) {
	if s.width != o.width {
		panic("logicsim: width mismatch: " + strconv.Itoa(int(s.width)) + " vs " + strconv.Itoa(int(o.width)))
	}
}

// Slice returns the width-bit sub-range of s starting at bit start.
func (s *Signal) Slice(start, width uint) *Signal {
	if start+width > s.width {
		panic("logicsim: signal slice out of range")
	}
	out := NewSignal(width)
	for i := uint(0); i < width; i++ {
		out.bits.SetTo(i, s.bits.Test(start+i))
	}
	return out
}

// Equal reports whether s and o have the same width and bits. Two nil
// signals are equal; nil never equals a present signal.
func (s *Signal) Equal(o *Signal) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	return s.width == o.width && s.bits.Equal(o.bits)
}

// Clone returns an independent copy of s. Cloning nil yields nil.
func (s *Signal) Clone() *Signal {
	if s == nil {
		return nil
	}
	return &Signal{width: s.width, bits: s.bits.Clone()}
}

// CopyFrom overwrites the bits of s with those of o. Widths must match.
func (s *Signal) CopyFrom(o *Signal) {
	s.checkWidth(o)
	o.bits.CopyFull(s.bits)
}

// zero clears all bits in place.
func (s *Signal) zero() {
	s.bits.ClearAll()
}

// String renders the signal most significant bit first, e.g. "0b0101".
func (s *Signal) String() string {
	if s == nil {
		return "x"
	}
	var b strings.Builder
	b.WriteString("0b")
	for i := s.width; i > 0; i-- {
		if s.bits.Test(i - 1) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
