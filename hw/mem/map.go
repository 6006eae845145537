package mem

import (
	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
)

const (
	// Size of the memory space tracked by Map.
	Size = 16 << 20
	// Granule is the smallest range whose state Map tracks.
	Granule = 4 << 10

	numGranules = Size / Granule
)

// Map is a Policy keeping track of the state of every 4KiB granule of the
// first 16MiB of physical memory. By default all memory is external.
type Map struct {
	rdInternal *hwio.Bitset
	rdDisabled *hwio.Bitset
	wrInternal *hwio.Bitset
	wrDisabled *hwio.Bitset
}

func NewMap() *Map {
	return &Map{
		rdInternal: hwio.NewBitset(numGranules),
		rdDisabled: hwio.NewBitset(numGranules),
		wrInternal: hwio.NewBitset(numGranules),
		wrDisabled: hwio.NewBitset(numGranules),
	}
}

// Reset makes all memory external.
func (m *Map) Reset() {
	m.rdInternal.Reset()
	m.rdDisabled.Reset()
	m.wrInternal.Reset()
	m.wrDisabled.Reset()
}

// SetMemState implements Policy. The range is widened to whole granules and
// clipped to the tracked space.
func (m *Map) SetMemState(base, size uint32, st State) {
	log.ModMem.DebugZ("set mem state").
		Range("range", base, size).
		Stringer("state", st).
		End()

	if size == 0 || base >= Size {
		return
	}
	end := uint64(base) + uint64(size)
	if end > Size {
		end = Size
	}
	first := uint(base / Granule)
	last := uint((end + Granule - 1) / Granule)

	set(m.rdInternal, m.rdDisabled, first, last, st.Read)
	set(m.wrInternal, m.wrDisabled, first, last, st.Write)
}

func set(internal, disabled *hwio.Bitset, first, last uint, a Access) {
	internal.ClearRange(first, last)
	disabled.ClearRange(first, last)
	switch a {
	case Internal:
		internal.SetRange(first, last)
	case Disabled:
		disabled.SetRange(first, last)
	}
}

func get(internal, disabled *hwio.Bitset, g uint) Access {
	switch {
	case internal.Test(g):
		return Internal
	case disabled.Test(g):
		return Disabled
	}
	return External
}

// State returns the state of the granule containing addr.
func (m *Map) State(addr uint32) State {
	if addr >= Size {
		return ExternalBoth
	}
	g := uint(addr / Granule)
	return State{
		Read:  get(m.rdInternal, m.rdDisabled, g),
		Write: get(m.wrInternal, m.wrDisabled, g),
	}
}

// Range is a contiguous range of memory sharing the same state.
type Range struct {
	Base  uint32
	Size  uint32
	State State
}

// Ranges returns the ranges of memory whose state is not ExternalBoth, in
// ascending address order. Adjacent granules with the same state are merged.
func (m *Map) Ranges() []Range {
	var ranges []Range
	for g := uint32(0); g < numGranules; g++ {
		st := m.State(g * Granule)
		if st == ExternalBoth {
			continue
		}
		if n := len(ranges); n > 0 {
			last := &ranges[n-1]
			if last.State == st && last.Base+last.Size == g*Granule {
				last.Size += Granule
				continue
			}
		}
		ranges = append(ranges, Range{Base: g * Granule, Size: Granule, State: st})
	}
	return ranges
}
