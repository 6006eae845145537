package mem

import (
	"fmt"
)

//go:generate go tool stringer -type=Access

// Access says where the accesses to a memory range go.
type Access uint8

const (
	// External accesses go to the bus (ROM, video memory, ISA cards...).
	External Access = iota
	// Internal accesses are served by the system DRAM.
	Internal
	// Disabled accesses are dropped.
	Disabled
)

// State is the read and write policy of a memory range.
type State struct {
	Read  Access
	Write Access
}

var (
	ExternalBoth = State{Read: External, Write: External}
	InternalBoth = State{Read: Internal, Write: Internal}
)

func (st State) String() string {
	return fmt.Sprintf("r:%s/w:%s", st.Read, st.Write)
}

// Policy is implemented by the memory subsystem, it decides how the accesses
// to physical memory ranges are served.
type Policy interface {
	SetMemState(base, size uint32, st State)
}
