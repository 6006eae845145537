// Package emu puts a chipset in a minimal PC: an I/O and PCI bus, a memory
// map and the processor controls the chipset drives.
package emu

import (
	"fmt"
	"slices"

	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/chipset"
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/mem"
	"github.com/tiseno100/chipset-reversing/hw/route"
	"github.com/tiseno100/chipset-reversing/hw/smram"
	"github.com/tiseno100/chipset-reversing/hw/snapshot"
)

// Machine is a host for a single chipset device. It implements every
// collaborator of chipset.Host and records their state.
type Machine struct {
	*Bus
	Mem     *mem.Map
	Chipset *chipset.Device

	// Calls lists, in order, the calls the chipset made to the machine.
	Calls []string

	irq    map[hwdefs.Line]uint8
	ide    [hwdefs.NumIDEChannel]route.Channel
	smram  *smramSlot
	port92 bool

	extCache, intCache bool
	waits, flushes     int

	rows    []uint8
	rowUnit uint32
}

// NewMachine creates a machine with the chipset registered under name.
func NewMachine(name string) (*Machine, error) {
	desc, err := chipset.Lookup(name)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		Bus: NewBus(),
		Mem: mem.NewMap(),
		irq: make(map[hwdefs.Line]uint8),
	}
	m.Chipset = chipset.New(desc, m)
	return m, nil
}

// Close detaches the chipset.
func (m *Machine) Close() {
	m.Chipset.Close()
}

func (m *Machine) call(format string, args ...any) {
	c := fmt.Sprintf(format, args...)
	m.Calls = append(m.Calls, c)
	log.ModEmu.DebugZ("host call").String("call", c).End()
}

func (m *Machine) SetMemState(base, size uint32, st mem.State) {
	m.call("mem %06x+%x %s", base, size, st)
	m.Mem.SetMemState(base, size, st)
}

func (m *Machine) SetIRQRouting(line hwdefs.Line, irq uint8) {
	m.call("irq %s %02x", line, irq)
	m.irq[line] = irq
}

func (m *Machine) EnableChannel(ch hwdefs.Channel) {
	m.call("ide enable %s", ch)
	m.ide[ch].Enabled = true
}

func (m *Machine) DisableChannel(ch hwdefs.Channel) {
	m.call("ide disable %s", ch)
	m.ide[ch].Enabled = false
}

func (m *Machine) SetBase(ch hwdefs.Channel, port uint16) {
	m.call("ide base %s %03x", ch, port)
	m.ide[ch].Cmd = port
}

func (m *Machine) SetSide(ch hwdefs.Channel, port uint16) {
	m.call("ide side %s %03x", ch, port)
	m.ide[ch].Ctl = port
}

func (m *Machine) AddPort92() {
	m.call("port92 add")
	m.port92 = true
}

func (m *Machine) RemovePort92() {
	m.call("port92 remove")
	m.port92 = false
}

func (m *Machine) SetExternalCache(enabled bool) {
	m.call("ext-cache %t", enabled)
	m.extCache = enabled
}

func (m *Machine) SetInternalCache(enabled bool) {
	m.call("int-cache %t", enabled)
	m.intCache = enabled
}

func (m *Machine) UpdateWaitStates() {
	m.call("waitstates")
	m.waits++
}

func (m *Machine) FlushMMUCache() {
	m.call("flush")
	m.flushes++
}

func (m *Machine) SetRowBoundaries(bounds []uint8, unit uint32) {
	m.call("dram rows % x unit %d", bounds, unit)
	m.rows, m.rowUnit = slices.Clone(bounds), unit
}

// IRQ returns the routing of line, and whether it was ever set.
func (m *Machine) IRQ(line hwdefs.Line) (uint8, bool) {
	irq, ok := m.irq[line]
	return irq, ok
}

// IDE returns the state of an IDE channel.
func (m *Machine) IDE(ch hwdefs.Channel) route.Channel { return m.ide[ch] }

func (m *Machine) Port92() bool { return m.port92 }

func (m *Machine) NewSMRAM() smram.Primitive {
	m.smram = &smramSlot{m: m}
	return m.smram
}

// SMRAM returns the aperture enabled through the machine, if any.
func (m *Machine) SMRAM() (smram.Aperture, bool) {
	if m.smram == nil {
		return smram.Aperture{}, false
	}
	return m.smram.active, m.smram.enabled
}

// smramSlot is the SMRAM mapping primitive of the machine. It holds at most
// one aperture.
type smramSlot struct {
	m        *Machine
	enabled  bool
	active   smram.Aperture
	released bool
}

func (s *smramSlot) Enable(a smram.Aperture) {
	if s.released {
		log.ModSMRAM.WarnZ("enable after release").Stringer("aperture", a).End()
		return
	}
	s.m.call("smram enable %s", a)
	s.enabled, s.active = true, a
}

func (s *smramSlot) DisableAll() {
	s.m.call("smram disable")
	s.enabled, s.active = false, smram.Aperture{}
}

func (s *smramSlot) Release() {
	s.m.call("smram release")
	s.released = true
}

// Snapshot returns the state of the chipset and of the machine.
func (m *Machine) Snapshot() snapshot.Machine {
	s := snapshot.Machine{
		Chipset:       m.Chipset.Snapshot(),
		Ports:         m.Ports(),
		Port92:        m.port92,
		ExternalCache: m.extCache,
		InternalCache: m.intCache,
		WaitStates:    m.waits,
		MMUFlushes:    m.flushes,
	}
	if m.rows != nil {
		s.DRAM = &snapshot.DRAM{UnitMB: m.rowUnit, Rows: slices.Clone(m.rows)}
	}
	for _, r := range m.Mem.Ranges() {
		s.Memory = append(s.Memory, snapshot.Window{
			Base:  r.Base,
			Size:  r.Size,
			Read:  r.State.Read.String(),
			Write: r.State.Write.String(),
		})
	}
	return s
}
