// Package shadow computes the memory access policy of the shadow RAM windows
// of a chipset from its registers.
//
// Two kinds of windows are supported. Tiles split a region into equally sized
// windows, each with its own control bits. Regions are fixed windows
// controlled by single enable bits. In both cases the policy is a function of
// the current register contents only: recomputing twice with the same
// registers issues the same memory policy calls, in the same order.
package shadow

import (
	"fmt"

	"github.com/tiseno100/chipset-reversing/hw/hwio"
	"github.com/tiseno100/chipset-reversing/hw/mem"
)

// Window is a memory range and its access policy.
type Window struct {
	Base  uint32
	Size  uint32
	State mem.State
}

func (w Window) String() string {
	return fmt.Sprintf("%06x-%06x %s", w.Base, w.Base+w.Size-1, w.State)
}

// Tiles describes Count consecutive windows of Size bytes starting at Start.
type Tiles struct {
	Name  string
	Start uint32
	Size  uint32
	Count int

	// Present, if not nil, enables shadowing of a window. When clear, the
	// window is external for both reads and writes whatever Read and Write
	// say.
	Present *hwio.Bit

	// Read and Write select internal reads and writes. When the bit is clear,
	// ReadOff (resp. WriteOff) applies.
	Read     hwio.Bit
	Write    hwio.Bit
	ReadOff  mem.Access
	WriteOff mem.Access
}

// Windows returns the windows and their state given the current registers.
func (t *Tiles) Windows(regs hwio.Regs) []Window {
	wins := make([]Window, t.Count)
	for i := range wins {
		wins[i] = Window{
			Base:  t.Start + uint32(i)*t.Size,
			Size:  t.Size,
			State: t.state(regs, i),
		}
	}
	return wins
}

func (t *Tiles) state(regs hwio.Regs, i int) mem.State {
	if t.Present != nil && !t.Present.IsSet(regs, i) {
		return mem.ExternalBoth
	}
	st := mem.State{Read: t.ReadOff, Write: t.WriteOff}
	if t.Read.IsSet(regs, i) {
		st.Read = mem.Internal
	}
	if t.Write.IsSet(regs, i) {
		st.Write = mem.Internal
	}
	return st
}

// Region is a fixed window. A set Read (resp. Write) bit makes reads (resp.
// writes) internal, otherwise they are external.
type Region struct {
	Name  string
	Base  uint32
	Size  uint32
	Read  hwio.Bit
	Write hwio.Bit
}

func (r *Region) Window(regs hwio.Regs) Window {
	st := mem.ExternalBoth
	if r.Read.IsSet(regs, 0) {
		st.Read = mem.Internal
	}
	if r.Write.IsSet(regs, 0) {
		st.Write = mem.Internal
	}
	return Window{Base: r.Base, Size: r.Size, State: st}
}

// Layout is a group of tiles and regions recomputed together.
type Layout struct {
	Name    string
	Tiles   []Tiles
	Regions []Region
}

// Windows returns the state of all the windows of the layout: tiles first, in
// order, then regions.
func (l *Layout) Windows(regs hwio.Regs) []Window {
	var wins []Window
	for i := range l.Tiles {
		wins = append(wins, l.Tiles[i].Windows(regs)...)
	}
	for i := range l.Regions {
		wins = append(wins, l.Regions[i].Window(regs))
	}
	return wins
}

// Apply recomputes all the windows of the layout and applies them to p.
func (l *Layout) Apply(p mem.Policy, regs hwio.Regs) {
	for _, w := range l.Windows(regs) {
		p.SetMemState(w.Base, w.Size, w.State)
	}
}
