package chipset

import (
	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
	"github.com/tiseno100/chipset-reversing/hw/route"
	"github.com/tiseno100/chipset-reversing/hw/shadow"
)

// Action recomputes part of the state a device derives from its registers.
// old is the previous value of the register whose write triggered the
// action. Actions read the whole bank: they are idempotent and do not depend
// on the order registers were written in.
type Action func(d *Device, old uint8)

// Shadow applies the memory windows of l.
func Shadow(l *shadow.Layout) Action {
	return func(d *Device, _ uint8) {
		log.ModMem.DebugZ("recompute windows").String("layout", l.Name).End()
		l.Apply(d, d.regs)
	}
}

// SMRAM recomputes the SMRAM aperture.
func SMRAM(d *Device, _ uint8) {
	if d.smram == nil {
		return
	}
	d.smram.Recompute(d.regs)
}

// IRQ routes the lines of t.
func IRQ(t *route.IRQTable) Action {
	return func(d *Device, old uint8) {
		t.Apply(irqRecorder{d}, d.regs, old)
	}
}

// IDE reconfigures both IDE channels.
func IDE(c *route.IDEConfig) Action {
	return func(d *Device, _ uint8) {
		c.Apply(ideRecorder{d}, d.regs)
	}
}

// Port92 adds the fast A20 port when b is set, removes it otherwise.
func Port92(b hwio.Bit) Action {
	return func(d *Device, _ uint8) {
		if b.IsSet(d.regs, 0) {
			d.host.AddPort92()
		} else {
			d.host.RemovePort92()
		}
	}
}

// ExternalCache enables the external cache when b is set.
func ExternalCache(b hwio.Bit) Action {
	return func(d *Device, _ uint8) {
		d.host.SetExternalCache(b.IsSet(d.regs, 0))
	}
}

// InternalCache enables the CPU internal cache when b is set.
func InternalCache(b hwio.Bit) Action {
	return func(d *Device, _ uint8) {
		d.host.SetInternalCache(b.IsSet(d.regs, 0))
	}
}

func WaitStates(d *Device, _ uint8) { d.host.UpdateWaitStates() }

func FlushMMU(d *Device, _ uint8) { d.host.FlushMMUCache() }

// DRAMRows hands the row boundary registers first, first+step, ... up to last
// of function fn to the host. The registers are left untouched.
func DRAMRows(fn, first, last, step uint8, unit uint32) Action {
	return func(d *Device, _ uint8) {
		var bounds []uint8
		for addr := int(first); addr <= int(last); addr += int(step) {
			bounds = append(bounds, d.regs.Read8(fn, uint8(addr)))
		}
		d.host.SetRowBoundaries(bounds, unit)
	}
}

// Relocate maps the port set selected by the registers, after unmapping the
// current one.
func Relocate(d *Device, _ uint8) {
	p := d.desc.Ports
	if p == nil || p.Select == nil {
		return
	}
	sel := int(p.Select.Get(d.regs))
	if sel >= len(p.Sets) {
		sel = 0
	}

	d.host.UnmapIO(d.set.list()...)
	d.set = p.Sets[sel]
	d.port.IndexAddr = d.set.Index
	d.port.DataAddr = d.set.Data
	d.host.MapIO(d, d.set.list()...)

	log.ModHwIo.DebugZ("ports relocated").
		String("chipset", d.desc.Name).
		Port("index", d.set.Index).
		Port("data", d.set.Data).
		End()
}

// LatchChipID latches the chip id the configuration lock expects.
func LatchChipID(d *Device, _ uint8) {
	p := d.desc.Ports
	if p == nil || p.Lock == nil {
		return
	}
	d.setChipID = p.Lock.Base + p.Lock.Select.Get(d.regs)
	log.ModHwIo.DebugZ("chip id latched").Hex8("id", d.setChipID).End()
}

// Seq runs actions in order.
func Seq(actions ...Action) Action {
	return func(d *Device, old uint8) {
		for _, a := range actions {
			a(d, old)
		}
	}
}
