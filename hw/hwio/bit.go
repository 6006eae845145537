package hwio

import "fmt"

// Regs gives read access to register banks. Decoders only read registers
// through this interface, recomputation is thus a function of the bank
// contents alone.
type Regs interface {
	Read8(fn, addr uint8) uint8
}

// Bit selects a single bit in a register.
type Bit struct {
	Fn   uint8 // bank function
	Addr uint8 // register address
	Bit  uint8 // bit number (of window 0 if PerWindow is set)

	// PerWindow makes the selected bit advance with the window index: window
	// i reads bit Bit+i.
	PerWindow bool
	// Invert makes a cleared bit read as set, and a set bit as cleared.
	Invert bool
}

// In reports whether the selected bit is set in v, for window i.
func (b Bit) In(v uint8, i int) bool {
	n := uint(b.Bit)
	if b.PerWindow {
		n += uint(i)
	}
	set := v&(1<<n) != 0
	return set != b.Invert
}

// IsSet reports whether the selected bit is set in the current register
// contents, for window i.
func (b Bit) IsSet(r Regs, i int) bool {
	return b.In(r.Read8(b.Fn, b.Addr), i)
}

func (b Bit) String() string {
	s := fmt.Sprintf("%d:%02x.%d", b.Fn, b.Addr, b.Bit)
	if b.PerWindow {
		s += "+i"
	}
	if b.Invert {
		s = "!" + s
	}
	return s
}

// Field selects a bit-field in a register.
type Field struct {
	Fn    uint8
	Addr  uint8
	Shift uint8
	Mask  uint8 // applied after the shift
}

// Of extracts the field from v.
func (f Field) Of(v uint8) uint8 {
	return (v >> f.Shift) & f.Mask
}

// Get extracts the field from the current register contents.
func (f Field) Get(r Regs) uint8 {
	return f.Of(r.Read8(f.Fn, f.Addr))
}
