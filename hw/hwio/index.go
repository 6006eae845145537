package hwio

// IndexPort exposes one function of a register bank through a pair of I/O
// ports: writing the index port selects a register, the data port then reads
// or writes the selected register.
type IndexPort struct {
	IndexAddr uint16
	DataAddr  uint16
	Fn        uint8

	// IndexReadsData makes reads of the index port return the selected
	// register instead of the index itself.
	IndexReadsData bool

	Index uint8 // currently selected register

	regs *Interceptor
}

func NewIndexPort(regs *Interceptor, fn uint8, index, data uint16) *IndexPort {
	return &IndexPort{
		IndexAddr: index,
		DataAddr:  data,
		Fn:        fn,
		regs:      regs,
	}
}

// Read8 never modifies the selected index nor the registers.
func (p *IndexPort) Read8(port uint16) uint8 {
	if port == p.DataAddr || p.IndexReadsData {
		return p.regs.Read8(p.Fn, p.Index)
	}
	return p.Index
}

// Write8 ignores ports other than the index and data ports.
func (p *IndexPort) Write8(port uint16, val uint8) {
	switch port {
	case p.IndexAddr:
		p.Index = val
	case p.DataAddr:
		p.regs.Write8(p.Fn, p.Index, val)
	}
}
