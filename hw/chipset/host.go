package chipset

import (
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
	"github.com/tiseno100/chipset-reversing/hw/mem"
	"github.com/tiseno100/chipset-reversing/hw/route"
	"github.com/tiseno100/chipset-reversing/hw/smram"
)

// Host is the machine a chipset device is plugged into. It provides every
// collaborator the device drives.
type Host interface {
	mem.Policy
	route.Router
	route.IDE
	FastA20
	CPU
	DRAM
	Bus

	// NewSMRAM allocates an SMRAM primitive owned by the caller.
	NewSMRAM() smram.Primitive
}

// FastA20 is the port 92h fast A20 gate.
type FastA20 interface {
	AddPort92()
	RemovePort92()
}

// CPU is the processor side of the cache and timing controls.
type CPU interface {
	SetExternalCache(enabled bool)
	SetInternalCache(enabled bool)
	UpdateWaitStates()
	FlushMMUCache()
}

// DRAM is the memory controller side of the DRAM row boundary registers.
type DRAM interface {
	// SetRowBoundaries programs the cumulative row boundaries, each one in
	// units of unit MiB.
	SetRowBoundaries(bounds []uint8, unit uint32)
}

// Bus attaches devices to the I/O port space and to the PCI bus.
type Bus interface {
	MapIO(io hwio.PortIO, ports ...uint16)
	UnmapIO(ports ...uint16)
	AddPCI(slot hwdefs.Slot, card PCICard)
	RemovePCI(slot hwdefs.Slot)
}

// PCICard is the configuration space of a PCI card. Functions the card does
// not implement read as 0xff and ignore writes.
type PCICard interface {
	ReadConfig(fn, addr uint8) uint8
	WriteConfig(fn, addr, val uint8)
}
