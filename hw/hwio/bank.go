package hwio

// Bank holds the raw registers of a device: one 256-byte array per logical
// function. Storage never masks nor validates, bit-field interpretation is up
// to the decoders.
type Bank struct {
	Name string

	fns [][256]uint8
}

func NewBank(name string, nfuncs int) *Bank {
	return &Bank{
		Name: name,
		fns:  make([][256]uint8, nfuncs),
	}
}

// NumFuncs returns the number of functions in the bank.
func (b *Bank) NumFuncs() int { return len(b.fns) }

// Read8 returns the value stored at addr in function fn. It has no side
// effects.
func (b *Bank) Read8(fn, addr uint8) uint8 {
	return b.fns[fn][addr]
}

// Write8 stores val at addr in function fn.
func (b *Bank) Write8(fn, addr, val uint8) {
	b.fns[fn][addr] = val
}

// Dump returns a copy of all the registers of function fn.
func (b *Bank) Dump(fn uint8) [256]uint8 {
	return b.fns[fn]
}

// Reset zeroes all registers.
func (b *Bank) Reset() {
	clear(b.fns)
}
