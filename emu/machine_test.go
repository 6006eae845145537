package emu

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tiseno100/chipset-reversing/hw/chipset"
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/mem"
	"github.com/tiseno100/chipset-reversing/hw/snapshot"
)

func TestNewMachineAllChipsets(t *testing.T) {
	for _, name := range chipset.Names() {
		t.Run(name, func(t *testing.T) {
			m, err := NewMachine(name)
			if err != nil {
				t.Fatal(err)
			}
			s := m.Snapshot()
			if s.Chipset.Name != name {
				t.Errorf("snapshot name = %q, want %q", s.Chipset.Name, name)
			}
			if len(m.Calls) == 0 {
				t.Errorf("reset made no calls to the machine")
			}
			m.Close()
			if _, ok := m.SMRAM(); ok {
				t.Errorf("SMRAM still enabled after close")
			}
			if diff := cmp.Diff([]uint16{0xcf8, 0xcf9, 0xcfa, 0xcfb, 0xcfc, 0xcfd, 0xcfe, 0xcff}, m.Ports()); diff != "" {
				t.Errorf("ports after close (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewMachineUnknown(t *testing.T) {
	if _, err := NewMachine("sis-471"); err == nil {
		t.Errorf("NewMachine should fail for an unknown chipset")
	}
}

func TestMachineMemory(t *testing.T) {
	m, err := NewMachine("ali-aladdin-iii")
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Mem.State(0x90000); got != mem.InternalBoth {
		t.Errorf("90000 = %s, want internal", got)
	}

	if err := m.ConfigWrite(hwdefs.NorthBridge, 0, 0x4c, 0x03); err != nil {
		t.Fatal(err)
	}
	if err := m.ConfigWrite(hwdefs.NorthBridge, 0, 0x4e, 0x01); err != nil {
		t.Fatal(err)
	}

	want := []snapshot.Window{
		{Base: 0x80000, Size: 0x20000, Read: "Internal", Write: "Internal"},
		{Base: 0xc0000, Size: 0x4000, Read: "Internal", Write: "Internal"},
		{Base: 0xc4000, Size: 0x4000, Read: "Internal", Write: "External"},
	}
	if diff := cmp.Diff(want, m.Snapshot().Memory); diff != "" {
		t.Errorf("memory ranges (-want +got):\n%s", diff)
	}
}

func TestMachineCollaborators(t *testing.T) {
	m, err := NewMachine("ali-aladdin")
	if err != nil {
		t.Fatal(err)
	}
	sb := hwdefs.SouthBridge
	for _, w := range [][2]uint8{{0x43, 0x80}, {0x48, 0x9b}, {0x48, 0x9b}} {
		if err := m.ConfigWrite(sb, 0, w[0], w[1]); err != nil {
			t.Fatal(err)
		}
	}
	if !m.Port92() {
		t.Errorf("port 92 not added")
	}
	if irq, _ := m.IRQ(hwdefs.INTA); irq != 0x0b {
		t.Errorf("INTA = %02x, want 0b", irq)
	}
	if irq, _ := m.IRQ(hwdefs.INTB); irq != 0x09 {
		t.Errorf("INTB = %02x, want 09", irq)
	}
}

func TestMachineDRAMRows(t *testing.T) {
	m, err := NewMachine("ali-aladdin-iii")
	if err != nil {
		t.Fatal(err)
	}
	if m.Snapshot().DRAM != nil {
		t.Errorf("DRAM rows programmed by reset")
	}
	if err := m.ConfigWrite(hwdefs.NorthBridge, 0, 0x62, 0x08); err != nil {
		t.Fatal(err)
	}
	want := &snapshot.DRAM{UnitMB: 2, Rows: []uint8{0, 0x08, 0, 0, 0, 0, 0, 0}}
	if diff := cmp.Diff(want, m.Snapshot().DRAM); diff != "" {
		t.Errorf("DRAM rows (-want +got):\n%s", diff)
	}
}

func TestSnapshotJSONAllChipsets(t *testing.T) {
	type jsonState struct {
		Chipset struct {
			Name  string `json:"name"`
			Funcs []struct {
				Name string            `json:"name"`
				Regs map[string]string `json:"regs"`
			} `json:"funcs"`
			SMRAM *struct {
				Host string `json:"host"`
			} `json:"smram"`
			IRQ map[string]uint8 `json:"irq"`
		} `json:"chipset"`
		Ports []string `json:"ports"`
	}

	for _, name := range chipset.Names() {
		t.Run(name, func(t *testing.T) {
			m, err := NewMachine(name)
			if err != nil {
				t.Fatal(err)
			}
			s := m.Snapshot()
			buf, err := s.MarshalJSON()
			if err != nil {
				t.Fatal(err)
			}
			var got jsonState
			if err := json.Unmarshal(buf, &got); err != nil {
				t.Fatalf("invalid JSON %s: %v", buf, err)
			}

			if got.Chipset.Name != name {
				t.Errorf("name = %q, want %q", got.Chipset.Name, name)
			}
			if len(got.Chipset.Funcs) != len(s.Chipset.Funcs) {
				t.Fatalf("%d funcs, want %d", len(got.Chipset.Funcs), len(s.Chipset.Funcs))
			}
			for i, fn := range s.Chipset.Funcs {
				want := make(map[string]string)
				for addr, v := range fn.Regs {
					if v != 0 {
						want[fmt.Sprintf("0x%02x", addr)] = fmt.Sprintf("0x%02x", v)
					}
				}
				if diff := cmp.Diff(want, got.Chipset.Funcs[i].Regs); diff != "" {
					t.Errorf("%s registers (-want +got):\n%s", fn.Name, diff)
				}
			}

			if s.Chipset.SMRAM == nil {
				if got.Chipset.SMRAM != nil || !strings.Contains(string(buf), `"smram":null`) {
					t.Errorf("disabled smram not null: %s", buf)
				}
			} else {
				want := fmt.Sprintf("0x%05x", s.Chipset.SMRAM.Host)
				if got.Chipset.SMRAM == nil || got.Chipset.SMRAM.Host != want {
					t.Errorf("smram = %+v, want host %s", got.Chipset.SMRAM, want)
				}
			}

			wantIRQ := make(map[string]uint8)
			for _, r := range s.Chipset.IRQ {
				wantIRQ[r.Line] = r.IRQ
			}
			if diff := cmp.Diff(wantIRQ, got.Chipset.IRQ); diff != "" {
				t.Errorf("irq (-want +got):\n%s", diff)
			}
			if len(got.Ports) != len(s.Ports) {
				t.Errorf("%d ports, want %d", len(got.Ports), len(s.Ports))
			}
		})
	}
}
