package snapshot

// Chipset is the state of a chipset device: its registers and the policy it
// derived from them.
type Chipset struct {
	Name  string
	Model string

	Funcs []Func
	Index *uint8 // selected register of index/data port devices

	Windows []Window
	SMRAM   *Aperture // nil when disabled
	IRQ     []Route
	IDE     []IDEChannel
}

type Func struct {
	Name string
	Regs [256]uint8
}

type Window struct {
	Base  uint32
	Size  uint32
	Read  string
	Write string
}

type Aperture struct {
	Host    uint32
	Backing uint32
	Size    uint32
	Overlap bool
}

type Route struct {
	Line string
	IRQ  uint8
}

type IDEChannel struct {
	Channel string
	Enabled bool
	Cmd     uint16
	Ctl     uint16
}

// Machine is the state of the collaborators a chipset drives.
type Machine struct {
	Chipset Chipset

	Memory []Window // ranges not external for both reads and writes
	Ports  []uint16 // mapped I/O ports

	Port92        bool
	ExternalCache bool
	InternalCache bool
	WaitStates    int // number of wait state updates
	MMUFlushes    int

	DRAM *DRAM // nil until the row boundaries are programmed
}

// DRAM holds the cumulative DRAM row boundaries, in units of UnitMB.
type DRAM struct {
	UnitMB uint32
	Rows   []uint8
}
