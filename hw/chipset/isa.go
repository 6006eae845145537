package chipset

import (
	"github.com/tiseno100/chipset-reversing/hw/hwio"
	"github.com/tiseno100/chipset-reversing/hw/mem"
	"github.com/tiseno100/chipset-reversing/hw/route"
	"github.com/tiseno100/chipset-reversing/hw/shadow"
)

// Chipsets configured through the 22h/23h index and data ports.
var isaPorts = []PortSet{{Index: 0x22, Data: 0x23}}

// Macronix MXIC 307.
//
//	3ah  shadow control: bits 0-5 enable c0000-effff (32 KiB each),
//	     bit 7 read, bit 6 write (also for the f0000 BIOS window)
//	3dh  DRAM control
//	3eh  cache control: bit 4 internal cache
var mxic307 = &Desc{
	Name:   "mxic-307",
	Model:  "Macronix MXIC 307",
	Funcs:  []string{"regs"},
	Ports:  &Ports{Sets: isaPorts},
	Port92: true,
	Triggers: []Trigger{
		{
			Name:  "shadow",
			Addrs: []uint8{0x3a},
			Action: Seq(
				Shadow(&shadow.Layout{
					Name: "mxic-307",
					Tiles: []shadow.Tiles{{
						Name:     "c0000",
						Start:    0xc0000,
						Size:     0x8000,
						Count:    6,
						Present:  &hwio.Bit{Addr: 0x3a, PerWindow: true},
						Read:     hwio.Bit{Addr: 0x3a, Bit: 7},
						Write:    hwio.Bit{Addr: 0x3a, Bit: 6},
						ReadOff:  mem.External,
						WriteOff: mem.External,
					}},
					Regions: []shadow.Region{{
						Name:  "bios",
						Base:  0xf0000,
						Size:  0x10000,
						Read:  hwio.Bit{Addr: 0x3a, Bit: 7},
						Write: hwio.Bit{Addr: 0x3a, Bit: 6},
					}},
				}),
				FlushMMU,
			),
		},
		{Name: "waitstates", Addrs: []uint8{0x3d}, Action: WaitStates},
		{Name: "int-cache", Addrs: []uint8{0x3e}, Action: InternalCache(hwio.Bit{Addr: 0x3e, Bit: 4})},
	},
	Defaults: regs(0,
		0x3a, 0x00,
		0x3b, 0x03,
		0x3d, 0x4c,
		0x3e, 0x8e,
	),
}

// Micronics MIC 471. Shadowed windows whose read or write bit is clear are
// disabled rather than external.
//
//	52h  shadow RAM control: one bit per 32 KiB window from c0000
//	57h  memory and cache control: bit 6 read, bit 7 write
var mic471 = &Desc{
	Name:   "mic-471",
	Model:  "Micronics MIC 471",
	Funcs:  []string{"regs"},
	Ports:  &Ports{Sets: isaPorts},
	Port92: true,
	Triggers: []Trigger{{
		Name:  "shadow",
		Addrs: []uint8{0x52, 0x57},
		Action: Shadow(&shadow.Layout{
			Name: "mic-471",
			Tiles: []shadow.Tiles{{
				Name:     "c0000",
				Start:    0xc0000,
				Size:     0x8000,
				Count:    8,
				Present:  &hwio.Bit{Addr: 0x52, PerWindow: true},
				Read:     hwio.Bit{Addr: 0x57, Bit: 6},
				Write:    hwio.Bit{Addr: 0x57, Bit: 7},
				ReadOff:  mem.Disabled,
				WriteOff: mem.Disabled,
			}},
		}),
	}},
	Defaults: regs(0,
		0x50, 0x90,
		0x51, 0x01,
		0x52, 0x00,
		0x57, 0x38,
		0x58, 0x30,
		0x59, 0xc8,
		0x60, 0xc0,
		0x61, 0xe7,
	),
}

// Winbond W8375x VL-IDE controller. Several chips can share the port range,
// each answers once the chip id it latched is written to the ID port.
var w8375x = &Desc{
	Name:  "w8375x",
	Model: "Winbond W8375x VL-IDE",
	Funcs: []string{"regs"},
	Ports: &Ports{
		Sets: []PortSet{
			{ID: 0x130, Index: 0x134, Data: 0x138, IDOut: 0x13c},
			{ID: 0x1b0, Index: 0x1b4, Data: 0x1b8, IDOut: 0x1bc},
		},
		Select:         &hwio.Field{Addr: 0x83, Mask: 0x01},
		IndexReadsData: true,
		Lock: &Lock{
			Bypass: hwio.Bit{Addr: 0x83, Bit: 1},
			Base:   0x60,
			Select: hwio.Field{Addr: 0x83, Shift: 2, Mask: 0x03},
		},
	},
	Triggers: []Trigger{
		{Name: "ide", Addrs: []uint8{0x81, 0x85}, Action: IDE(&route.IDEConfig{
			// Bit 0 enables the primary channel alone, bit 1 both.
			Enable: hwio.Field{Addr: 0x81, Mask: 0x03},
			Channels: []route.ChannelPair{
				{},
				{Primary: true},
				{Primary: true, Secondary: true},
				{Primary: true},
			},
			Gates: []hwio.Bit{{Addr: 0x81, Bit: 7}},
			Swap:  &hwio.Bit{Addr: 0x85, Bit: 0, Invert: true},
		})},
		{Name: "relocate", Addrs: []uint8{0x83}, Action: Seq(Relocate, LatchChipID)},
	},
	Defaults: regs(0,
		0x83, 0xff,
		0x80, 0x8f,
		0x81, 0x8f,
		0x82, 0xff,
		0x84, 0xff,
		0x85, 0xff,
		0x86, 0x80,
		0x87, 0x8a,
	),
}
