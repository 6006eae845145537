package emu

import (
	"errors"
	"fmt"

	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/chipset"
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
)

// ErrUnmapped is returned for accesses to I/O ports or PCI slots no device
// answers to.
var ErrUnmapped = errors.New("unmapped")

// PCI configuration mechanism #1 ports.
const (
	ConfigAddress uint16 = 0xcf8
	ConfigData    uint16 = 0xcfc
)

// Bus dispatches I/O port accesses and PCI configuration cycles to the
// devices attached to it.
type Bus struct {
	io  *hwio.Table
	pci map[hwdefs.Slot]chipset.PCICard

	cfg configPorts
}

func NewBus() *Bus {
	b := &Bus{
		io:  hwio.NewTable("io"),
		pci: make(map[hwdefs.Slot]chipset.PCICard),
	}
	b.cfg.bus = b
	b.io.Map(&b.cfg,
		ConfigAddress, ConfigAddress+1, ConfigAddress+2, ConfigAddress+3,
		ConfigData, ConfigData+1, ConfigData+2, ConfigData+3)
	return b
}

func (b *Bus) MapIO(io hwio.PortIO, ports ...uint16) { b.io.Map(io, ports...) }
func (b *Bus) UnmapIO(ports ...uint16)               { b.io.Unmap(ports...) }

func (b *Bus) AddPCI(slot hwdefs.Slot, card chipset.PCICard) {
	log.ModPCI.DebugZ("add card").Stringer("slot", slot).End()
	b.pci[slot] = card
}

func (b *Bus) RemovePCI(slot hwdefs.Slot) {
	log.ModPCI.DebugZ("remove card").Stringer("slot", slot).End()
	delete(b.pci, slot)
}

// Ports returns the mapped I/O ports, configuration ports included.
func (b *Bus) Ports() []uint16 { return b.io.Ports() }

// Out writes val to an I/O port.
func (b *Bus) Out(port uint16, val uint8) error {
	io, ok := b.io.Lookup(port)
	if !ok {
		return fmt.Errorf("out %03xh: %w", port, ErrUnmapped)
	}
	io.Write8(port, val)
	return nil
}

// In reads an I/O port.
func (b *Bus) In(port uint16) (uint8, error) {
	io, ok := b.io.Lookup(port)
	if !ok {
		return 0xff, fmt.Errorf("in %03xh: %w", port, ErrUnmapped)
	}
	return io.Read8(port), nil
}

// ConfigRead reads a configuration register of the card in slot.
func (b *Bus) ConfigRead(slot hwdefs.Slot, fn, addr uint8) (uint8, error) {
	card, ok := b.pci[slot]
	if !ok {
		return 0xff, fmt.Errorf("config read %s: %w", slot, ErrUnmapped)
	}
	return card.ReadConfig(fn, addr), nil
}

// ConfigWrite writes a configuration register of the card in slot.
func (b *Bus) ConfigWrite(slot hwdefs.Slot, fn, addr, val uint8) error {
	card, ok := b.pci[slot]
	if !ok {
		return fmt.Errorf("config write %s: %w", slot, ErrUnmapped)
	}
	card.WriteConfig(fn, addr, val)
	return nil
}

// configPorts implements configuration mechanism #1: a 32-bit address
// register at 0xcf8 and a 32-bit data window at 0xcfc, both byte
// addressable.
type configPorts struct {
	bus  *Bus
	addr uint32
}

// target decodes the address register. Only bus 0 is populated, the device
// number selects the slot.
func (c *configPorts) target(port uint16) (card chipset.PCICard, fn, reg uint8, ok bool) {
	if c.addr&(1<<31) == 0 {
		return nil, 0, 0, false
	}
	if bus := uint8(c.addr >> 16); bus != 0 {
		return nil, 0, 0, false
	}
	dev := uint8(c.addr>>11) & 0x1f
	for slot, sdev := range hwdefs.SlotDevice {
		if sdev != dev {
			continue
		}
		card, ok = c.bus.pci[hwdefs.Slot(slot)]
		break
	}
	if !ok {
		return nil, 0, 0, false
	}
	fn = uint8(c.addr>>8) & 0x07
	reg = uint8(c.addr&0xfc) + uint8(port-ConfigData)
	return card, fn, reg, true
}

func (c *configPorts) Read8(port uint16) uint8 {
	if port < ConfigData {
		return uint8(c.addr >> (8 * (port - ConfigAddress)))
	}
	card, fn, reg, ok := c.target(port)
	if !ok {
		return 0xff
	}
	return card.ReadConfig(fn, reg)
}

func (c *configPorts) Write8(port uint16, val uint8) {
	if port < ConfigData {
		shift := 8 * (port - ConfigAddress)
		c.addr = c.addr&^(0xff<<shift) | uint32(val)<<shift
		return
	}
	card, fn, reg, ok := c.target(port)
	if !ok {
		log.ModPCI.DebugZ("config write to empty slot").Hex32("address", c.addr).Hex8("val", val).End()
		return
	}
	card.WriteConfig(fn, reg, val)
}
