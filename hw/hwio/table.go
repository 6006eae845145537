package hwio

import (
	"fmt"
	"slices"

	"github.com/tiseno100/chipset-reversing/emu/log"
)

// PortIO is implemented by devices mapped in the I/O space.
type PortIO interface {
	Read8(port uint16) uint8
	Write8(port uint16, val uint8)
}

// Table maps 16-bit I/O ports to devices.
type Table struct {
	Name string

	ports map[uint16]PortIO
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

func (t *Table) Reset() {
	t.ports = make(map[uint16]PortIO)
}

// Map maps io at the given ports. Mapping a port already owned by another
// device panics.
func (t *Table) Map(io PortIO, ports ...uint16) {
	for _, port := range ports {
		if cur, ok := t.ports[port]; ok && cur != io {
			panic(fmt.Errorf("%s: port %04x already mapped", t.Name, port))
		}
		t.ports[port] = io

		log.ModHwIo.DebugZ("mapping port").
			String("bus", t.Name).
			Port("port", port).
			End()
	}
}

func (t *Table) Unmap(ports ...uint16) {
	for _, port := range ports {
		delete(t.ports, port)
	}
}

// Lookup returns the device mapped at port.
func (t *Table) Lookup(port uint16) (PortIO, bool) {
	io, ok := t.ports[port]
	return io, ok
}

// Ports returns all mapped ports, in ascending order.
func (t *Table) Ports() []uint16 {
	ports := make([]uint16, 0, len(t.ports))
	for port := range t.ports {
		ports = append(ports, port)
	}
	slices.Sort(ports)
	return ports
}
