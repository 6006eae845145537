// Package route derives the peripheral routing of a chipset: PCI interrupt
// line steering and IDE channel enables and base addresses.
package route

import (
	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
)

// Router steers PCI interrupt lines to IRQs.
type Router interface {
	// SetIRQRouting routes line to irq, or disables it if irq is
	// hwdefs.IRQDisabled.
	SetIRQRouting(line hwdefs.Line, irq uint8)
}

// Entry is the routing of one line.
type Entry struct {
	Line hwdefs.Line
	IRQ  uint8
}

// IRQField is a routing sub-field. A zero field value means disabled.
type IRQField struct {
	Line  hwdefs.Line
	Field hwio.Field

	// Gate, if not nil, must be set for the line to be routed.
	Gate *hwio.Bit
	// GateOnPrevious tests Gate against the value the register held before
	// the write being processed, rather than against the current value.
	GateOnPrevious bool
}

// IRQTable is a group of routing fields sharing a register (or a set of
// registers recomputed together).
type IRQTable struct {
	Fields []IRQField
}

// Decode returns the routing of all lines of the table. old is the previous
// value of the register being written, only used by fields gated on the
// previous value.
func (t *IRQTable) Decode(regs hwio.Regs, old uint8) []Entry {
	entries := make([]Entry, len(t.Fields))
	for i, f := range t.Fields {
		irq := f.Field.Get(regs)
		if f.Gate != nil {
			var open bool
			if f.GateOnPrevious {
				open = f.Gate.In(old, 0)
			} else {
				open = f.Gate.IsSet(regs, 0)
			}
			if !open {
				irq = 0
			}
		}
		if irq == 0 {
			irq = hwdefs.IRQDisabled
		}
		entries[i] = Entry{Line: f.Line, IRQ: irq}
	}
	return entries
}

// Apply decodes the table and routes all its lines.
func (t *IRQTable) Apply(r Router, regs hwio.Regs, old uint8) {
	for _, e := range t.Decode(regs, old) {
		log.ModPCI.DebugZ("irq routing").
			Stringer("line", e.Line).
			Hex8("irq", e.IRQ).
			End()
		r.SetIRQRouting(e.Line, e.IRQ)
	}
}
