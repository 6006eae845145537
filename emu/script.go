package emu

import (
	"context"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
)

var slots = map[string]hwdefs.Slot{
	"nb": hwdefs.NorthBridge,
	"sb": hwdefs.SouthBridge,
}

// RunScript runs a Lua program driving the machine. The program sees:
//
//	outb(port, val)            write an I/O port
//	inb(port) -> val           read an I/O port
//	pciw(slot, fn, addr, val)  write a configuration register ("nb" or "sb")
//	pcir(slot, fn, addr) -> val
//	reset()                    reset the chipset
//	log(msg)
//
// Accesses to unmapped ports or empty slots raise a Lua error.
func (m *Machine) RunScript(ctx context.Context, name, src string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	for fname, fn := range map[string]lua.LGFunction{
		"outb":  m.luaOutb,
		"inb":   m.luaInb,
		"pciw":  m.luaPciw,
		"pcir":  m.luaPcir,
		"reset": m.luaReset,
		"log":   luaLog(name),
	} {
		L.SetGlobal(fname, L.NewFunction(fn))
	}

	log.ModScript.InfoZ("running script").String("name", name).End()
	if err := L.DoString(src); err != nil {
		log.ModScript.WithField("name", name).Warnf("script failed: %v", err)
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// RunScriptFile runs the Lua program at path.
func (m *Machine) RunScriptFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.RunScript(ctx, path, string(src))
}

// checkUint checks that argument n is an integer in [0, max].
func checkUint(L *lua.LState, n int, max int) int {
	v := L.CheckInt(n)
	if v < 0 || v > max {
		L.ArgError(n, fmt.Sprintf("%d out of range [0, %#x]", v, max))
	}
	return v
}

func checkSlot(L *lua.LState, n int) hwdefs.Slot {
	s := L.CheckString(n)
	slot, ok := slots[s]
	if !ok {
		L.ArgError(n, fmt.Sprintf("unknown slot %q, want \"nb\" or \"sb\"", s))
	}
	return slot
}

func (m *Machine) luaOutb(L *lua.LState) int {
	port := checkUint(L, 1, 0xffff)
	val := checkUint(L, 2, 0xff)
	if err := m.Out(uint16(port), uint8(val)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (m *Machine) luaInb(L *lua.LState) int {
	port := checkUint(L, 1, 0xffff)
	val, err := m.In(uint16(port))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(val))
	return 1
}

func (m *Machine) luaPciw(L *lua.LState) int {
	slot := checkSlot(L, 1)
	fn := checkUint(L, 2, 7)
	addr := checkUint(L, 3, 0xff)
	val := checkUint(L, 4, 0xff)
	if err := m.ConfigWrite(slot, uint8(fn), uint8(addr), uint8(val)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (m *Machine) luaPcir(L *lua.LState) int {
	slot := checkSlot(L, 1)
	fn := checkUint(L, 2, 7)
	addr := checkUint(L, 3, 0xff)
	val, err := m.ConfigRead(slot, uint8(fn), uint8(addr))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(val))
	return 1
}

func (m *Machine) luaReset(L *lua.LState) int {
	m.Chipset.Reset()
	return 0
}

func luaLog(script string) lua.LGFunction {
	return func(L *lua.LState) int {
		log.ModScript.InfoZ(L.CheckString(1)).String("script", script).End()
		return 0
	}
}
