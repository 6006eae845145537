package mem

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapDefaultsToExternal(t *testing.T) {
	m := NewMap()
	for _, addr := range []uint32{0, 0xa0000, 0xc0000, 0xfffff, 0xf00000, Size - 1, Size} {
		if st := m.State(addr); st != ExternalBoth {
			t.Errorf("State(%x) = %v, want %v", addr, st, ExternalBoth)
		}
	}
	if r := m.Ranges(); len(r) != 0 {
		t.Errorf("Ranges() = %v, want none", r)
	}
}

func TestMapSetMemState(t *testing.T) {
	m := NewMap()
	m.SetMemState(0xc0000, 0x4000, InternalBoth)
	m.SetMemState(0xc4000, 0x4000, InternalBoth)
	m.SetMemState(0xc8000, 0x8000, State{Read: Internal, Write: Disabled})
	m.SetMemState(0xf00000, 0x100000, State{Read: External, Write: Internal})
	m.SetMemState(0xff0000, 0x100000, InternalBoth) // clipped at 16MiB

	want := []Range{
		{Base: 0xc0000, Size: 0x8000, State: InternalBoth},
		{Base: 0xc8000, Size: 0x8000, State: State{Read: Internal, Write: Disabled}},
		{Base: 0xf00000, Size: 0xf0000, State: State{Read: External, Write: Internal}},
		{Base: 0xff0000, Size: 0x10000, State: InternalBoth},
	}
	if diff := cmp.Diff(want, m.Ranges()); diff != "" {
		t.Errorf("Ranges mismatch (-want +got):\n%s", diff)
	}

	// Overwrite part of a range.
	m.SetMemState(0xc4000, 0x4000, ExternalBoth)
	if st := m.State(0xc4000); st != ExternalBoth {
		t.Errorf("State(c4000) = %v, want %v", st, ExternalBoth)
	}
	if st := m.State(0xc0000); st != InternalBoth {
		t.Errorf("State(c0000) = %v, want %v", st, InternalBoth)
	}

	m.Reset()
	if r := m.Ranges(); len(r) != 0 {
		t.Errorf("Ranges() after Reset = %v, want none", r)
	}
}

func TestStateString(t *testing.T) {
	st := State{Read: Internal, Write: Disabled}
	if got, want := st.String(), "r:Internal/w:Disabled"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Access(7).String(), "Access(7)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
