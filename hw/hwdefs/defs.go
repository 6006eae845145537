package hwdefs

//go:generate go tool stringer -type=Line,Channel,Slot -output=defs_string.go

// Line is a logical PCI interrupt line.
type Line uint8

const (
	INTA Line = iota + 1
	INTB
	INTC
	INTD
	// Additional steerable lines (motherboard IRQs) of southbridges with more
	// than four routing entries.
	MIRQ0
	MIRQ1
	MIRQ2
	MIRQ3
)

// IRQDisabled is the routing target of a line that is not steered to any IRQ.
const IRQDisabled uint8 = 0xff

// Channel is an IDE channel.
type Channel uint8

const (
	Primary Channel = iota
	Secondary
)

// Legacy IDE command block and control block ports.
const (
	PrimaryCmd    uint16 = 0x1f0
	PrimaryCtl    uint16 = 0x3f6
	SecondaryCmd  uint16 = 0x170
	SecondaryCtl  uint16 = 0x376
	NumIDEChannel        = 2
)

// Slot identifies a PCI card position on the host bus.
type Slot uint8

const (
	NorthBridge Slot = iota
	SouthBridge
)

// PCI device numbers of the slots as seen by configuration mechanism #1.
var SlotDevice = [...]uint8{
	NorthBridge: 0,
	SouthBridge: 7,
}
