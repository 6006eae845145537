package chipset

import (
	"slices"

	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
	"github.com/tiseno100/chipset-reversing/hw/mem"
	"github.com/tiseno100/chipset-reversing/hw/route"
	"github.com/tiseno100/chipset-reversing/hw/shadow"
	"github.com/tiseno100/chipset-reversing/hw/smram"
)

// Bank functions of the ALi chipsets.
const (
	aliNB  uint8 = 0
	aliSB  uint8 = 1
	aliIDE uint8 = 2
)

// aliTiles returns the 0xc0000-0xfffff windows controlled by 0x4c-0x4f: 8
// windows of 16 KiB per register pair.
func aliTiles(invertWrite bool) []shadow.Tiles {
	tiles := func(name string, start uint32, rd, wr uint8) shadow.Tiles {
		return shadow.Tiles{
			Name:     name,
			Start:    start,
			Size:     0x4000,
			Count:    8,
			Read:     hwio.Bit{Fn: aliNB, Addr: rd, PerWindow: true},
			Write:    hwio.Bit{Fn: aliNB, Addr: wr, PerWindow: true, Invert: invertWrite},
			ReadOff:  mem.External,
			WriteOff: mem.External,
		}
	}
	return []shadow.Tiles{
		tiles("c0000", 0xc0000, 0x4c, 0x4e),
		tiles("e0000", 0xe0000, 0x4d, 0x4f),
	}
}

// aliRouting routes two lines per register, INTx in the low nibble and INTx+1
// in the high nibble.
func aliRouting(addr uint8, lo, hi hwdefs.Line, gated bool) *route.IRQTable {
	t := &route.IRQTable{Fields: []route.IRQField{
		{Line: lo, Field: hwio.Field{Fn: aliSB, Addr: addr, Shift: 0, Mask: 0x0f}},
		{Line: hi, Field: hwio.Field{Fn: aliSB, Addr: addr, Shift: 4, Mask: 0x0f}},
	}}
	if gated {
		t.Fields[0].Gate = &hwio.Bit{Fn: aliSB, Addr: addr, Bit: 3}
		t.Fields[0].GateOnPrevious = true
		t.Fields[1].Gate = &hwio.Bit{Fn: aliSB, Addr: addr, Bit: 7}
		t.Fields[1].GateOnPrevious = true
	}
	return t
}

// ALi ALADDiN (M1511 northbridge, M1513 southbridge).
var aladdin = &Desc{
	Name:  "ali-aladdin",
	Model: "ALi ALADDiN (M1511/M1513)",
	Funcs: []string{"northbridge", "southbridge"},
	Cards: []Card{
		{Slot: hwdefs.NorthBridge, Funcs: []uint8{aliNB}},
		{Slot: hwdefs.SouthBridge, Funcs: []uint8{aliSB}},
	},
	SMRAM: &smram.Decoder{
		Select: hwio.Field{Fn: aliNB, Addr: 0x48, Mask: 0x07},
		Table: []smram.Entry{
			{Valid: true, Aperture: smram.Aperture{Host: 0xd0000, Backing: 0xb0000, Size: 0x10000}},
			{Valid: true, Aperture: smram.Aperture{Host: 0xa0000, Backing: 0xa0000, Size: 0x20000, Overlap: true}},
			{Valid: true, Aperture: smram.Aperture{Host: 0xa0000, Backing: 0xa0000, Size: 0x20000}},
			{Valid: true, Aperture: smram.Aperture{Host: 0xa0000, Backing: 0xa0000, Size: 0x20000, Overlap: true}},
			{Valid: true, Aperture: smram.Aperture{Host: 0x30000, Backing: 0xb0000, Size: 0x10000}},
			{Valid: true, Aperture: smram.Aperture{Host: 0x30000, Backing: 0xb0000, Size: 0x10000, Overlap: true}},
		},
	},
	Triggers: []Trigger{
		{Name: "smram", Fn: aliNB, Addrs: []uint8{0x48}, Action: SMRAM},
		{
			Name:   "shadow",
			Fn:     aliNB,
			Addrs:  []uint8{0x4c, 0x4d, 0x4e, 0x4f},
			Action: Shadow(&shadow.Layout{Name: "aladdin", Tiles: aliTiles(true)}),
		},
		{Name: "port92", Fn: aliSB, Addrs: []uint8{0x43}, Action: Port92(hwio.Bit{Fn: aliSB, Addr: 0x43, Bit: 7})},
		{Name: "irq-ab", Fn: aliSB, Addrs: []uint8{0x48}, Action: IRQ(aliRouting(0x48, hwdefs.INTA, hwdefs.INTB, true))},
		{Name: "irq-cd", Fn: aliSB, Addrs: []uint8{0x49}, Action: IRQ(aliRouting(0x49, hwdefs.INTC, hwdefs.INTD, true))},
	},
	Defaults: slices.Concat(
		regs(aliNB,
			0x00, 0xb9, 0x01, 0x10, 0x02, 0x51, 0x03, 0x14,
			0x07, 0x02, 0x0a, 0x01, 0x0b, 0x06,
			0x48, 0x00, 0x4c, 0x00, 0x4d, 0x00, 0x4e, 0x00, 0x4f, 0x00,
		),
		regs(aliSB,
			0x00, 0xb9, 0x01, 0x10, 0x02, 0x49, 0x03, 0x14,
			0x07, 0x02, 0x0a, 0x01, 0x0b, 0x06,
			0x43, 0x00, 0x48, 0x00, 0x49, 0x00,
		),
	),
}

// ALi ALADDiN III (M1521 northbridge, M1523 southbridge with IDE function).
var aladdin3 = &Desc{
	Name:  "ali-aladdin-iii",
	Model: "ALi ALADDiN III (M1521/M1523)",
	Funcs: []string{"northbridge", "southbridge", "ide"},
	Cards: []Card{
		{Slot: hwdefs.NorthBridge, Funcs: []uint8{aliNB}},
		{Slot: hwdefs.SouthBridge, Funcs: []uint8{aliSB, aliIDE}},
	},
	SMRAM: &smram.Decoder{
		Select: hwio.Field{Fn: aliNB, Addr: 0x48, Shift: 1, Mask: 0x07},
		Enable: &hwio.Bit{Fn: aliNB, Addr: 0x48, Bit: 0},
		Table: []smram.Entry{
			{Valid: true, Aperture: smram.Aperture{Host: 0xd0000, Backing: 0xb0000, Size: 0x10000}},
			{Valid: true, Aperture: smram.Aperture{Host: 0xd0000, Backing: 0xb0000, Size: 0x10000, Overlap: true}},
			{Valid: true, Aperture: smram.Aperture{Host: 0xa0000, Backing: 0xa0000, Size: 0x20000}},
			{Valid: true, Aperture: smram.Aperture{Host: 0xa0000, Backing: 0xa0000, Size: 0x20000, Overlap: true}},
			{Valid: true, Aperture: smram.Aperture{Host: 0x30000, Backing: 0xb0000, Size: 0x20000}},
			{Valid: true, Aperture: smram.Aperture{Host: 0x30000, Backing: 0xb0000, Size: 0x20000, Overlap: true}},
		},
		Closed:      &hwio.Bit{Fn: aliNB, Addr: 0x47, Bit: 2},
		ClosedEntry: 3,
	},
	Triggers: []Trigger{
		{Name: "ext-cache", Fn: aliNB, Addrs: []uint8{0x42}, Action: ExternalCache(hwio.Bit{Fn: aliNB, Addr: 0x42, Bit: 0})},
		{
			Name:  "holes",
			Fn:    aliNB,
			Addrs: []uint8{0x47},
			Action: Seq(
				Shadow(&shadow.Layout{Name: "holes", Regions: []shadow.Region{
					{
						Name: "80000", Base: 0x80000, Size: 0x20000,
						Read:  hwio.Bit{Fn: aliNB, Addr: 0x47, Bit: 1, Invert: true},
						Write: hwio.Bit{Fn: aliNB, Addr: 0x47, Bit: 1, Invert: true},
					},
					{
						Name: "a0000", Base: 0xa0000, Size: 0x20000,
						Read:  hwio.Bit{Fn: aliNB, Addr: 0x47, Bit: 2},
						Write: hwio.Bit{Fn: aliNB, Addr: 0x47, Bit: 2},
					},
					{
						Name: "f00000", Base: 0xf00000, Size: 0x100000,
						Read:  hwio.Bit{Fn: aliNB, Addr: 0x47, Bit: 3},
						Write: hwio.Bit{Fn: aliNB, Addr: 0x47, Bit: 3},
					},
				}}),
				SMRAM,
			),
		},
		{Name: "smram", Fn: aliNB, Addrs: []uint8{0x48}, Action: SMRAM},
		{
			Name:   "shadow",
			Fn:     aliNB,
			Addrs:  []uint8{0x4c, 0x4d, 0x4e, 0x4f},
			Action: Shadow(&shadow.Layout{Name: "aladdin-iii", Tiles: aliTiles(false)}),
		},
		{
			Name:   "dram-rows",
			Fn:     aliNB,
			Addrs:  []uint8{0x60, 0x62, 0x64, 0x66, 0x68, 0x6a, 0x6c, 0x6e},
			Action: DRAMRows(aliNB, 0x60, 0x6e, 2, 2),
		},
		{Name: "port92", Fn: aliSB, Addrs: []uint8{0x43}, Action: Port92(hwio.Bit{Fn: aliSB, Addr: 0x43, Bit: 7})},
		{Name: "irq-ab", Fn: aliSB, Addrs: []uint8{0x48}, Action: IRQ(aliRouting(0x48, hwdefs.INTA, hwdefs.INTB, false))},
		{Name: "irq-cd", Fn: aliSB, Addrs: []uint8{0x49}, Action: IRQ(aliRouting(0x49, hwdefs.INTC, hwdefs.INTD, false))},
		{Name: "mirq-01", Fn: aliSB, Addrs: []uint8{0x50}, Action: IRQ(aliRouting(0x50, hwdefs.MIRQ0, hwdefs.MIRQ1, false))},
		{Name: "mirq-23", Fn: aliSB, Addrs: []uint8{0x51}, Action: IRQ(aliRouting(0x51, hwdefs.MIRQ2, hwdefs.MIRQ3, false))},
		{Name: "ide-gate", Fn: aliSB, Addrs: []uint8{0x46}, Action: IDE(aladdin3IDE)},
		{Name: "ide", Fn: aliIDE, Addrs: []uint8{0x50}, Action: IDE(aladdin3IDE)},
	},
	Defaults: slices.Concat(
		regs(aliNB,
			0x00, 0xb9, 0x01, 0x10, 0x02, 0x21, 0x03, 0x15,
			0x04, 0x06, 0x07, 0x07, 0x08, 0x01, 0x0b, 0x06,
			0x0d, 0x20, 0x5a, 0x20,
			0x42, 0x00, 0x47, 0x00, 0x48, 0x00,
			0x4c, 0x00, 0x4d, 0x00, 0x4e, 0x00, 0x4f, 0x00,
		),
		regs(aliSB,
			0x00, 0xb9, 0x01, 0x10, 0x02, 0x23, 0x03, 0x15,
			0x07, 0x02, 0x0a, 0x01, 0x0b, 0x06, 0x0e, 0x80,
			0x43, 0x00, 0x48, 0x00, 0x49, 0x00, 0x50, 0x00, 0x51, 0x00,
		),
		regs(aliIDE,
			0x00, 0xb9, 0x01, 0x10, 0x02, 0x52, 0x06, 0x02,
			0x07, 0x80, 0x09, 0xfa, 0x0a, 0x01, 0x0b, 0x01,
			0x10, 0xf1, 0x11, 0x01, 0x14, 0xf5, 0x15, 0x03,
			0x18, 0x71, 0x19, 0x01, 0x20, 0x01, 0x21, 0xf0,
			0x3d, 0x01, 0x3e, 0x02, 0x3f, 0x04,
			0x50, 0x00,
		),
	),
}

// The IDE function only responds while southbridge 0x46 bit 4 is set.
var aladdin3IDE = &route.IDEConfig{
	Enable:   hwio.Field{Fn: aliIDE, Addr: 0x50, Mask: 0x01},
	Channels: []route.ChannelPair{{}, {Primary: true, Secondary: true}},
	Gates:    []hwio.Bit{{Fn: aliSB, Addr: 0x46, Bit: 4}},
}
