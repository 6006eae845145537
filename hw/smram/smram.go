// Package smram decodes the SMRAM control registers of a chipset and drives
// the system management memory aperture.
package smram

import (
	"fmt"

	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
)

// Aperture maps Size bytes of backing memory at Backing to the host address
// Host. Overlap tells whether the aperture also overlaps the normal memory
// window at Host, that is whether non-SMM accesses still see it.
type Aperture struct {
	Host    uint32
	Backing uint32
	Size    uint32
	Overlap bool
}

func (a Aperture) String() string {
	return fmt.Sprintf("host=%05x backing=%05x size=%05x overlap=%t", a.Host, a.Backing, a.Size, a.Overlap)
}

// Primitive is the SMRAM mapping primitive of the memory subsystem. A device
// owns one Primitive, Enable replaces any aperture previously enabled through
// it.
type Primitive interface {
	Enable(a Aperture)
	DisableAll()
	Release()
}

// Entry is a legal aperture configuration. Selector codes without a valid
// entry are reserved.
type Entry struct {
	Aperture
	Valid bool
}

// Decoder describes where the SMRAM control bits of a chipset live.
type Decoder struct {
	// Select is the field indexing Table.
	Select hwio.Field
	// Enable, if not nil, is the global SMRAM enable bit. When nil, the
	// aperture selected by Select is always enabled.
	Enable *hwio.Bit
	Table  []Entry

	// Closed, if not nil, gates the table entry at index ClosedEntry: while
	// it is set, that entry cannot be selected.
	Closed      *hwio.Bit
	ClosedEntry int
}

// OpKind is the kind of an operation on the SMRAM state machine.
type OpKind uint8

const (
	// Keep leaves the aperture state unchanged.
	Keep OpKind = iota
	// Disable disables all apertures.
	Disable
	// Enable enables Op.Aperture, replacing the current one.
	Enable
)

// Op is the outcome of decoding the SMRAM control registers.
type Op struct {
	Kind     OpKind
	Aperture Aperture
}

// Decode returns the operation described by the current registers.
func (d *Decoder) Decode(regs hwio.Regs) Op {
	if d.Enable != nil && !d.Enable.IsSet(regs, 0) {
		return Op{Kind: Disable}
	}

	sel := int(d.Select.Get(regs))
	if sel >= len(d.Table) || !d.Table[sel].Valid {
		return Op{Kind: Keep}
	}
	if d.Closed != nil && sel == d.ClosedEntry && d.Closed.IsSet(regs, 0) {
		return Op{Kind: Keep}
	}
	return Op{Kind: Enable, Aperture: d.Table[sel].Aperture}
}

// Controller is the SMRAM state machine of a device. It is either disabled or
// has exactly one enabled aperture.
type Controller struct {
	dec  *Decoder
	prim Primitive

	enabled bool
	active  Aperture
}

func NewController(dec *Decoder, prim Primitive) *Controller {
	return &Controller{dec: dec, prim: prim}
}

// Active returns the enabled aperture, if any.
func (c *Controller) Active() (Aperture, bool) {
	return c.active, c.enabled
}

// DisableAll disables any enabled aperture.
func (c *Controller) DisableAll() {
	log.ModSMRAM.DebugZ("disable all").End()
	c.prim.DisableAll()
	c.enabled = false
	c.active = Aperture{}
}

// Enable enables a, superseding the current aperture.
func (c *Controller) Enable(a Aperture) {
	log.ModSMRAM.DebugZ("enable").Stringer("aperture", a).End()
	c.prim.Enable(a)
	c.enabled = true
	c.active = a
}

// Recompute derives the aperture state from the current registers.
func (c *Controller) Recompute(regs hwio.Regs) {
	op := c.dec.Decode(regs)
	switch op.Kind {
	case Disable:
		c.DisableAll()
	case Enable:
		c.Enable(op.Aperture)
	default:
		log.ModSMRAM.DebugZ("reserved configuration, ignored").
			Hex8("select", c.dec.Select.Get(regs)).
			End()
	}
}

// Close disables the aperture and releases the primitive.
func (c *Controller) Close() {
	c.DisableAll()
	c.prim.Release()
}
