// Package chipset implements legacy chipset devices: a register bank whose
// writes trigger the recompute of the memory, SMRAM, interrupt and IDE
// policy the chipset derives from its registers.
package chipset

import (
	"fmt"
	"maps"
	"slices"

	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
	"github.com/tiseno100/chipset-reversing/hw/mem"
	"github.com/tiseno100/chipset-reversing/hw/route"
	"github.com/tiseno100/chipset-reversing/hw/shadow"
	"github.com/tiseno100/chipset-reversing/hw/smram"
	"github.com/tiseno100/chipset-reversing/hw/snapshot"
)

// Device is a chipset plugged into a host. A device is not safe for
// concurrent use.
type Device struct {
	desc *Desc
	host Host

	bank  *hwio.Bank
	regs  *hwio.Interceptor
	smram *smram.Controller

	port *hwio.IndexPort
	set  PortSet // mapped port set

	chipID    uint8 // last value written to the ID port
	setChipID uint8 // id latched from the registers

	// Last state handed to the host.
	windows map[uint32]shadow.Window
	irq     map[hwdefs.Line]uint8
	ide     map[hwdefs.Channel]*route.Channel

	closed bool
}

// New attaches a device described by desc to host and resets it.
func New(desc *Desc, host Host) *Device {
	d := &Device{
		desc:    desc,
		host:    host,
		bank:    hwio.NewBank(desc.Name, len(desc.Funcs)),
		windows: make(map[uint32]shadow.Window),
		irq:     make(map[hwdefs.Line]uint8),
		ide:     make(map[hwdefs.Channel]*route.Channel),
	}
	d.regs = hwio.NewInterceptor(d.bank)

	for i := range desc.Triggers {
		t := &desc.Triggers[i]
		d.regs.Map(t.Fn, &hwio.Hook{
			Name: t.Name,
			Cb:   func(old, _ uint8) { t.Action(d, old) },
		}, t.Addrs...)
	}

	if desc.SMRAM != nil {
		d.smram = smram.NewController(desc.SMRAM, host.NewSMRAM())
	}

	for _, c := range desc.Cards {
		host.AddPCI(c.Slot, &card{d: d, funcs: c.Funcs})
	}

	if p := desc.Ports; p != nil {
		d.set = p.Sets[0]
		d.port = hwio.NewIndexPort(d.regs, p.Fn, d.set.Index, d.set.Data)
		d.port.IndexReadsData = p.IndexReadsData
		if p.Lock != nil {
			d.regs.Gate = d.unlocked
		}
		host.MapIO(d, d.set.list()...)
	}

	if desc.Port92 {
		host.AddPort92()
	}

	log.ModEmu.InfoZ("chipset attached").
		String("name", desc.Name).
		String("model", desc.Model).
		End()

	d.Reset()
	return d
}

// Name returns the registry name of the device.
func (d *Device) Name() string { return d.desc.Name }

// Desc returns the description of the device.
func (d *Device) Desc() *Desc { return d.desc }

// Write is the public register write path: val is stored at addr of bank
// function fn, then the action mapped at that address, if any, recomputes
// the derived state.
func (d *Device) Write(fn, addr, val uint8) {
	d.regs.Write8(fn, addr, val)
}

// Read returns a register. Reads have no side effects.
func (d *Device) Read(fn, addr uint8) uint8 {
	return d.bank.Read8(fn, addr)
}

// Trigger returns the name of the action mapped at addr of bank function fn,
// or the empty string.
func (d *Device) Trigger(fn, addr uint8) string {
	if h := d.regs.Hook(fn, addr); h != nil {
		return h.Name
	}
	return ""
}

// Out writes val to an I/O port of the device.
func (d *Device) Out(port uint16, val uint8) { d.Write8(port, val) }

// In reads an I/O port of the device.
func (d *Device) In(port uint16) uint8 { return d.Read8(port) }

// Write8 implements hwio.PortIO.
func (d *Device) Write8(port uint16, val uint8) {
	if d.port == nil {
		return
	}
	if d.desc.Ports.Lock != nil {
		switch port {
		case d.set.ID:
			d.chipID = val
			log.ModHwIo.DebugZ("chip id").Hex8("id", val).End()
			return
		case d.set.IDOut:
			// read only
			return
		}
	}
	d.port.Write8(port, val)
}

// Read8 implements hwio.PortIO.
func (d *Device) Read8(port uint16) uint8 {
	if d.port == nil {
		return 0xff
	}
	if d.desc.Ports.Lock != nil && port == d.set.IDOut {
		return d.chipID
	}
	val := d.port.Read8(port)
	log.ModHwIo.DebugZ("port read").
		String("bank", d.desc.Name).
		Port("port", port).
		Hex8("index", d.port.Index).
		Hex8("val", val).
		End()
	return val
}

func (d *Device) unlocked(_, _ uint8) bool {
	lock := d.desc.Ports.Lock
	return lock.Bypass.IsSet(d.regs, 0) || d.setChipID == d.chipID
}

// Reset zeroes the registers and the latches, then replays the canonical
// register values through the public write path. Two resets leave the device
// and its host in the same state.
func (d *Device) Reset() {
	log.ModEmu.InfoZ("chipset reset").String("name", d.desc.Name).End()

	d.bank.Reset()
	d.chipID, d.setChipID = 0, 0
	if d.port != nil {
		d.port.Index = 0
	}
	for _, def := range d.desc.Defaults {
		d.Write(def.Fn, def.Addr, def.Val)
	}

	log.ModHwIo.WithDelayedFields(d.nonZero).Debugf("%s defaults applied", d.desc.Name)
}

// nonZero returns the non-zero registers of every function, keyed fn:addr.
func (d *Device) nonZero() log.Fields {
	f := make(log.Fields)
	for fn := range d.desc.Funcs {
		regs := d.bank.Dump(uint8(fn))
		for addr, v := range regs {
			if v != 0 {
				f[fmt.Sprintf("%d:%02x", fn, addr)] = fmt.Sprintf("%02x", v)
			}
		}
	}
	return f
}

// Close disables and releases the SMRAM aperture, unmaps the I/O ports and
// removes the PCI cards. Close is idempotent.
func (d *Device) Close() {
	if d.closed {
		return
	}
	d.closed = true

	if d.smram != nil {
		d.smram.Close()
	}
	if d.port != nil {
		d.host.UnmapIO(d.set.list()...)
	}
	for _, c := range d.desc.Cards {
		d.host.RemovePCI(c.Slot)
	}
	if d.desc.Port92 {
		d.host.RemovePort92()
	}
	log.ModEmu.InfoZ("chipset closed").String("name", d.desc.Name).End()
}

// Snapshot returns the registers of the device and the state it last handed
// to its host.
func (d *Device) Snapshot() snapshot.Chipset {
	s := snapshot.Chipset{
		Name:  d.desc.Name,
		Model: d.desc.Model,
	}
	for i, name := range d.desc.Funcs {
		s.Funcs = append(s.Funcs, snapshot.Func{Name: name, Regs: d.bank.Dump(uint8(i))})
	}
	if d.port != nil {
		idx := d.port.Index
		s.Index = &idx
	}

	for _, base := range slices.Sorted(maps.Keys(d.windows)) {
		w := d.windows[base]
		s.Windows = append(s.Windows, snapshot.Window{
			Base:  w.Base,
			Size:  w.Size,
			Read:  w.State.Read.String(),
			Write: w.State.Write.String(),
		})
	}
	if d.smram != nil {
		if a, ok := d.smram.Active(); ok {
			s.SMRAM = &snapshot.Aperture{Host: a.Host, Backing: a.Backing, Size: a.Size, Overlap: a.Overlap}
		}
	}
	for _, line := range slices.Sorted(maps.Keys(d.irq)) {
		s.IRQ = append(s.IRQ, snapshot.Route{Line: line.String(), IRQ: d.irq[line]})
	}
	for _, ch := range slices.Sorted(maps.Keys(d.ide)) {
		c := d.ide[ch]
		s.IDE = append(s.IDE, snapshot.IDEChannel{
			Channel: ch.String(),
			Enabled: c.Enabled,
			Cmd:     c.Cmd,
			Ctl:     c.Ctl,
		})
	}
	return s
}

// SMRAM returns the active SMRAM aperture, if any.
func (d *Device) SMRAM() (smram.Aperture, bool) {
	if d.smram == nil {
		return smram.Aperture{}, false
	}
	return d.smram.Active()
}

// SetMemState implements mem.Policy. It records the window then forwards it
// to the host.
func (d *Device) SetMemState(base, size uint32, st mem.State) {
	d.windows[base] = shadow.Window{Base: base, Size: size, State: st}
	d.host.SetMemState(base, size, st)
}

type irqRecorder struct{ *Device }

func (r irqRecorder) SetIRQRouting(line hwdefs.Line, irq uint8) {
	r.irq[line] = irq
	r.host.SetIRQRouting(line, irq)
}

type ideRecorder struct{ *Device }

func (c ideRecorder) channel(ch hwdefs.Channel) *route.Channel {
	if c.Device.ide[ch] == nil {
		c.Device.ide[ch] = &route.Channel{}
	}
	return c.Device.ide[ch]
}

func (c ideRecorder) EnableChannel(ch hwdefs.Channel) {
	c.channel(ch).Enabled = true
	c.host.EnableChannel(ch)
}

func (c ideRecorder) DisableChannel(ch hwdefs.Channel) {
	c.channel(ch).Enabled = false
	c.host.DisableChannel(ch)
}

func (c ideRecorder) SetBase(ch hwdefs.Channel, port uint16) {
	c.channel(ch).Cmd = port
	c.host.SetBase(ch, port)
}

func (c ideRecorder) SetSide(ch hwdefs.Channel, port uint16) {
	c.channel(ch).Ctl = port
	c.host.SetSide(ch, port)
}

// card is the configuration space of one PCI card of a device.
type card struct {
	d     *Device
	funcs []uint8
}

func (c *card) ReadConfig(fn, addr uint8) uint8 {
	if int(fn) >= len(c.funcs) {
		return 0xff
	}
	return c.d.Read(c.funcs[fn], addr)
}

func (c *card) WriteConfig(fn, addr, val uint8) {
	if int(fn) >= len(c.funcs) {
		log.ModPCI.DebugZ("write to absent function").
			String("chipset", c.d.desc.Name).
			Reg("reg", fn, addr).
			End()
		return
	}
	c.d.Write(c.funcs[fn], addr, val)
}
