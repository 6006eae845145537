package hwio

import (
	"fmt"

	"github.com/tiseno100/chipset-reversing/emu/log"
)

// WriteCb is called once a register write has landed. old is the value the
// register held before the write, val the value now stored.
type WriteCb func(old, val uint8)

// Hook is a named recompute action. The same hook can be mapped at several
// addresses.
type Hook struct {
	Name string
	Cb   WriteCb
}

// Interceptor is the write path of a register bank. Every write is stored
// first, then the hook mapped at the written address, if any, is called.
type Interceptor struct {
	*Bank

	hooks [][256]*Hook

	// Gate, when set, is consulted after the value has been stored. If it
	// returns false the hook is not called.
	Gate func(fn, addr uint8) bool
}

func NewInterceptor(bank *Bank) *Interceptor {
	return &Interceptor{
		Bank:  bank,
		hooks: make([][256]*Hook, bank.NumFuncs()),
	}
}

// Map maps h at the given addresses of function fn. An address maps to at most
// one hook, mapping a second one panics.
func (ic *Interceptor) Map(fn uint8, h *Hook, addrs ...uint8) {
	for _, addr := range addrs {
		if prev := ic.hooks[fn][addr]; prev != nil && prev != h {
			panic(fmt.Sprintf("%s: %d:%02x already mapped to %q", ic.Name, fn, addr, prev.Name))
		}
		ic.hooks[fn][addr] = h
	}
}

// Hook returns the hook mapped at addr of function fn, or nil.
func (ic *Interceptor) Hook(fn, addr uint8) *Hook {
	return ic.hooks[fn][addr]
}

// Write8 stores val at addr of function fn and triggers the mapped hook.
func (ic *Interceptor) Write8(fn, addr, val uint8) {
	old := ic.Bank.Read8(fn, addr)
	ic.Bank.Write8(fn, addr, val)

	log.ModHwIo.DebugZ("register write").
		String("bank", ic.Name).
		Reg("reg", fn, addr).
		Hex8("old", old).
		Hex8("val", val).
		End()

	h := ic.hooks[fn][addr]
	if h == nil {
		return
	}
	if ic.Gate != nil && !ic.Gate(fn, addr) {
		log.ModHwIo.DebugZ("recompute gated").
			String("bank", ic.Name).
			String("hook", h.Name).
			Hex8("addr", addr).
			End()
		return
	}
	h.Cb(old, val)
}
