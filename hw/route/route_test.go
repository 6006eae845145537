package route

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
)

type fakeRouter map[hwdefs.Line]uint8

func (r fakeRouter) SetIRQRouting(line hwdefs.Line, irq uint8) { r[line] = irq }

type fakeIDE struct {
	ops []string
}

func (f *fakeIDE) EnableChannel(ch hwdefs.Channel)  { f.ops = append(f.ops, "enable "+ch.String()) }
func (f *fakeIDE) DisableChannel(ch hwdefs.Channel) { f.ops = append(f.ops, "disable "+ch.String()) }
func (f *fakeIDE) SetBase(ch hwdefs.Channel, port uint16) {
	f.ops = append(f.ops, fmt.Sprintf("base %s %03x", ch, port))
}
func (f *fakeIDE) SetSide(ch hwdefs.Channel, port uint16) {
	f.ops = append(f.ops, fmt.Sprintf("side %s %03x", ch, port))
}

func nibbles(addr uint8, lo, hi hwdefs.Line) []IRQField {
	return []IRQField{
		{Line: lo, Field: hwio.Field{Addr: addr, Mask: 0x0f}},
		{Line: hi, Field: hwio.Field{Addr: addr, Shift: 4, Mask: 0x0f}},
	}
}

func TestIRQNibbles(t *testing.T) {
	tbl := &IRQTable{Fields: nibbles(0x48, hwdefs.INTA, hwdefs.INTB)}
	regs := hwio.NewBank("test", 1)

	tests := []struct {
		val        uint8
		inta, intb uint8
	}{
		{0x00, hwdefs.IRQDisabled, hwdefs.IRQDisabled},
		{0xb9, 9, 11},
		{0x0a, 10, hwdefs.IRQDisabled},
		{0xf0, hwdefs.IRQDisabled, 15},
	}
	for _, tt := range tests {
		regs.Write8(0, 0x48, tt.val)
		r := fakeRouter{}
		tbl.Apply(r, regs, 0)
		want := fakeRouter{hwdefs.INTA: tt.inta, hwdefs.INTB: tt.intb}
		if diff := cmp.Diff(want, r); diff != "" {
			t.Errorf("routing of %02x mismatch (-want +got):\n%s", tt.val, diff)
		}
	}
}

func TestIRQGate(t *testing.T) {
	fields := nibbles(0x48, hwdefs.INTA, hwdefs.INTB)
	fields[0].Gate = &hwio.Bit{Addr: 0x40, Bit: 0}
	tbl := &IRQTable{Fields: fields}

	regs := hwio.NewBank("test", 1)
	regs.Write8(0, 0x48, 0x55)
	want := []Entry{{hwdefs.INTA, hwdefs.IRQDisabled}, {hwdefs.INTB, 5}}
	if diff := cmp.Diff(want, tbl.Decode(regs, 0)); diff != "" {
		t.Errorf("gate clear mismatch (-want +got):\n%s", diff)
	}

	regs.Write8(0, 0x40, 0x01)
	want = []Entry{{hwdefs.INTA, 5}, {hwdefs.INTB, 5}}
	if diff := cmp.Diff(want, tbl.Decode(regs, 0)); diff != "" {
		t.Errorf("gate set mismatch (-want +got):\n%s", diff)
	}
}

func TestIRQGateOnPrevious(t *testing.T) {
	fields := nibbles(0x48, hwdefs.INTA, hwdefs.INTB)
	fields[0].Gate = &hwio.Bit{Addr: 0x48, Bit: 3}
	fields[0].GateOnPrevious = true
	fields[1].Gate = &hwio.Bit{Addr: 0x48, Bit: 7}
	fields[1].GateOnPrevious = true
	tbl := &IRQTable{Fields: fields}

	regs := hwio.NewBank("test", 1)
	regs.Write8(0, 0x48, 0xaa)

	// The gate bits of the new value don't matter, those of the old one do.
	want := []Entry{{hwdefs.INTA, hwdefs.IRQDisabled}, {hwdefs.INTB, hwdefs.IRQDisabled}}
	if diff := cmp.Diff(want, tbl.Decode(regs, 0x00)); diff != "" {
		t.Errorf("old=00 mismatch (-want +got):\n%s", diff)
	}
	want = []Entry{{hwdefs.INTA, 10}, {hwdefs.INTB, 10}}
	if diff := cmp.Diff(want, tbl.Decode(regs, 0x88)); diff != "" {
		t.Errorf("old=88 mismatch (-want +got):\n%s", diff)
	}
}

var winbondLike = IDEConfig{
	Enable: hwio.Field{Addr: 0x81, Mask: 0x03},
	Channels: []ChannelPair{
		{false, false},
		{true, false},
		{true, true},
		{true, false},
	},
	Gates: []hwio.Bit{{Addr: 0x81, Bit: 7}},
	Swap:  &hwio.Bit{Addr: 0x85, Bit: 0, Invert: true},
}

func TestIDESwap(t *testing.T) {
	regs := hwio.NewBank("test", 1)
	regs.Write8(0, 0x81, 0x82)

	regs.Write8(0, 0x85, 0x01)
	want := [2]Channel{
		{Enabled: true, Cmd: 0x1f0, Ctl: 0x3f6},
		{Enabled: true, Cmd: 0x170, Ctl: 0x376},
	}
	if diff := cmp.Diff(want, winbondLike.Decode(regs)); diff != "" {
		t.Errorf("select=1 mismatch (-want +got):\n%s", diff)
	}

	regs.Write8(0, 0x85, 0x00)
	want = [2]Channel{
		{Enabled: true, Cmd: 0x170, Ctl: 0x376},
		{Enabled: true, Cmd: 0x1f0, Ctl: 0x3f6},
	}
	if diff := cmp.Diff(want, winbondLike.Decode(regs)); diff != "" {
		t.Errorf("select=0 mismatch (-want +got):\n%s", diff)
	}

	// Master enable clear: both disabled whatever the other bits say.
	for _, sel := range []uint8{0x00, 0x01} {
		regs.Write8(0, 0x85, sel)
		regs.Write8(0, 0x81, 0x03)
		for i, ch := range winbondLike.Decode(regs) {
			if ch.Enabled {
				t.Errorf("select=%d: channel %d enabled with master enable clear", sel, i)
			}
		}
	}
}

func TestIDEEnableField(t *testing.T) {
	regs := hwio.NewBank("test", 1)
	tests := []struct {
		val      uint8
		pri, sec bool
	}{
		{0x80, false, false},
		{0x81, true, false},
		{0x82, true, true},
		{0x83, true, false},
		{0x8f, true, false},
	}
	for _, tt := range tests {
		regs.Write8(0, 0x81, tt.val)
		chans := winbondLike.Decode(regs)
		if chans[0].Enabled != tt.pri || chans[1].Enabled != tt.sec {
			t.Errorf("81=%02x: got pri=%t sec=%t, want %t %t",
				tt.val, chans[0].Enabled, chans[1].Enabled, tt.pri, tt.sec)
		}
	}
}

func TestIDEApplyDisablesFirst(t *testing.T) {
	regs := hwio.NewBank("test", 1)
	regs.Write8(0, 0x81, 0x81)
	regs.Write8(0, 0x85, 0x01)

	ide := &fakeIDE{}
	winbondLike.Apply(ide, regs)
	want := []string{
		"disable Primary",
		"disable Secondary",
		"base Primary 1f0",
		"side Primary 3f6",
		"base Secondary 170",
		"side Secondary 376",
		"enable Primary",
	}
	if diff := cmp.Diff(want, ide.ops); diff != "" {
		t.Errorf("ide ops mismatch (-want +got):\n%s", diff)
	}
}
