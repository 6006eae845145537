package chipset_test

import (
	"fmt"

	"github.com/tiseno100/chipset-reversing/hw/chipset"
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
	"github.com/tiseno100/chipset-reversing/hw/mem"
	"github.com/tiseno100/chipset-reversing/hw/route"
	"github.com/tiseno100/chipset-reversing/hw/smram"
)

// fakeHost records every call a device makes, in order, and keeps the
// resulting state.
type fakeHost struct {
	calls []string

	mem    map[uint32]mem.State
	irq    map[hwdefs.Line]uint8
	ide    [hwdefs.NumIDEChannel]route.Channel
	ports  map[uint16]hwio.PortIO
	pci    map[hwdefs.Slot]chipset.PCICard
	smram  *fakeSMRAM
	port92 bool

	extCache, intCache bool
	waits, flushes     int
	rows               []uint8
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		mem:   make(map[uint32]mem.State),
		irq:   make(map[hwdefs.Line]uint8),
		ports: make(map[uint16]hwio.PortIO),
		pci:   make(map[hwdefs.Slot]chipset.PCICard),
	}
}

func (h *fakeHost) record(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
}

// reset forgets the calls made so far.
func (h *fakeHost) reset() { h.calls = nil }

func (h *fakeHost) SetMemState(base, size uint32, st mem.State) {
	h.record("mem %06x+%x %s", base, size, st)
	h.mem[base] = st
}

func (h *fakeHost) SetIRQRouting(line hwdefs.Line, irq uint8) {
	h.record("irq %s %02x", line, irq)
	h.irq[line] = irq
}

func (h *fakeHost) EnableChannel(ch hwdefs.Channel) {
	h.record("ide enable %s", ch)
	h.ide[ch].Enabled = true
}

func (h *fakeHost) DisableChannel(ch hwdefs.Channel) {
	h.record("ide disable %s", ch)
	h.ide[ch].Enabled = false
}

func (h *fakeHost) SetBase(ch hwdefs.Channel, port uint16) {
	h.record("ide base %s %03x", ch, port)
	h.ide[ch].Cmd = port
}

func (h *fakeHost) SetSide(ch hwdefs.Channel, port uint16) {
	h.record("ide side %s %03x", ch, port)
	h.ide[ch].Ctl = port
}

func (h *fakeHost) AddPort92() {
	h.record("port92 add")
	h.port92 = true
}

func (h *fakeHost) RemovePort92() {
	h.record("port92 remove")
	h.port92 = false
}

func (h *fakeHost) SetExternalCache(enabled bool) {
	h.record("ext-cache %t", enabled)
	h.extCache = enabled
}

func (h *fakeHost) SetInternalCache(enabled bool) {
	h.record("int-cache %t", enabled)
	h.intCache = enabled
}

func (h *fakeHost) UpdateWaitStates() {
	h.record("waitstates")
	h.waits++
}

func (h *fakeHost) FlushMMUCache() {
	h.record("flush")
	h.flushes++
}

func (h *fakeHost) SetRowBoundaries(bounds []uint8, unit uint32) {
	h.record("dram rows % x unit %d", bounds, unit)
	h.rows = bounds
}

func (h *fakeHost) MapIO(io hwio.PortIO, ports ...uint16) {
	for _, p := range ports {
		h.record("map %03x", p)
		h.ports[p] = io
	}
}

func (h *fakeHost) UnmapIO(ports ...uint16) {
	for _, p := range ports {
		h.record("unmap %03x", p)
		delete(h.ports, p)
	}
}

func (h *fakeHost) AddPCI(slot hwdefs.Slot, card chipset.PCICard) {
	h.record("pci add %s", slot)
	h.pci[slot] = card
}

func (h *fakeHost) RemovePCI(slot hwdefs.Slot) {
	h.record("pci remove %s", slot)
	delete(h.pci, slot)
}

func (h *fakeHost) NewSMRAM() smram.Primitive {
	h.smram = &fakeSMRAM{h: h}
	return h.smram
}

type fakeSMRAM struct {
	h        *fakeHost
	enabled  bool
	active   smram.Aperture
	released bool
}

func (s *fakeSMRAM) Enable(a smram.Aperture) {
	s.h.record("smram enable %s", a)
	s.enabled, s.active = true, a
}

func (s *fakeSMRAM) DisableAll() {
	s.h.record("smram disable")
	s.enabled, s.active = false, smram.Aperture{}
}

func (s *fakeSMRAM) Release() {
	s.h.record("smram release")
	s.released = true
}

// out writes val to port through the I/O ports the device mapped.
func (h *fakeHost) out(port uint16, val uint8) {
	io, ok := h.ports[port]
	if !ok {
		panic(fmt.Sprintf("port %03x is not mapped", port))
	}
	io.Write8(port, val)
}

func (h *fakeHost) in(port uint16) uint8 {
	io, ok := h.ports[port]
	if !ok {
		panic(fmt.Sprintf("port %03x is not mapped", port))
	}
	return io.Read8(port)
}

func newDevice(name string) (*chipset.Device, *fakeHost) {
	desc, err := chipset.Lookup(name)
	if err != nil {
		panic(err)
	}
	h := newFakeHost()
	return chipset.New(desc, h), h
}
