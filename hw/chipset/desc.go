package chipset

import (
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
	"github.com/tiseno100/chipset-reversing/hw/smram"
)

// Desc describes a chipset variant. It is pure data: the same Desc can back
// any number of devices.
type Desc struct {
	Name  string // registry name
	Model string

	// Funcs names the functions of the register bank.
	Funcs []string

	// Cards are the PCI cards the device registers on attach.
	Cards []Card
	// Ports, if not nil, makes the device reachable through index/data I/O
	// ports.
	Ports *Ports

	// Port92 adds the fast A20 port for the whole lifetime of the device,
	// for chipsets that do not control it through a register.
	Port92 bool

	SMRAM *smram.Decoder

	// Triggers maps register addresses to recompute actions.
	Triggers []Trigger
	// Defaults is the canonical reset sequence, replayed in order through
	// the public write path.
	Defaults []Default
}

// Card is a PCI card of the device. Funcs maps the card functions to bank
// functions.
type Card struct {
	Slot  hwdefs.Slot
	Funcs []uint8
}

// PortSet is a set of I/O ports. ID and IDOut are the chip id ports of
// devices with a configuration lock, zero when absent.
type PortSet struct {
	ID    uint16
	Index uint16
	Data  uint16
	IDOut uint16
}

func (ps PortSet) list() []uint16 {
	var ports []uint16
	for _, p := range []uint16{ps.ID, ps.Index, ps.Data, ps.IDOut} {
		if p != 0 {
			ports = append(ports, p)
		}
	}
	return ports
}

// Ports describes the I/O port interface of a device.
type Ports struct {
	Fn   uint8 // bank function behind the ports
	Sets []PortSet

	// Select, if not nil, selects the active port set. The port set is only
	// reconsidered by the relocate action.
	Select *hwio.Field

	// IndexReadsData makes reads of any port but the data port return the
	// selected register.
	IndexReadsData bool

	Lock *Lock
}

// Lock is a multi-chip configuration lock. Recompute only happens while the
// chip id written to the ID port matches the id latched from the registers,
// or while Bypass is set.
type Lock struct {
	Bypass hwio.Bit
	// The expected chip id is Base plus Select, latched by the latch action.
	Base   uint8
	Select hwio.Field
}

// Trigger maps addresses of a bank function to an action.
type Trigger struct {
	Name   string
	Fn     uint8
	Addrs  []uint8
	Action Action
}

// Default is one step of the reset sequence.
type Default struct {
	Fn   uint8
	Addr uint8
	Val  uint8
}

func regs(fn uint8, kv ...uint8) []Default {
	if len(kv)%2 != 0 {
		panic("chipset: odd number of register/value pairs")
	}
	defs := make([]Default, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		defs = append(defs, Default{Fn: fn, Addr: kv[i], Val: kv[i+1]})
	}
	return defs
}
