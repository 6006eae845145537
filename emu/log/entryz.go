package log

import (
	"fmt"
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a log entry built with typed fields. A nil *EntryZ is valid and
// does nothing, so that disabled log statements cost a single nil check per
// field.
type EntryZ struct {
	mod Module
	lvl Level
	msg string

	zfbuf [maxZFields]ZField
	zfidx int
}

var entryPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	z := entryPool.Get().(*EntryZ)
	z.zfidx = 0
	return z
}

func (z *EntryZ) add(f ZField) *EntryZ {
	if z != nil && z.zfidx < maxZFields {
		z.zfbuf[z.zfidx] = f
		z.zfidx++
	}
	return z
}

func (z *EntryZ) Bool(key string, v bool) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeBool, Key: key, Boolean: v})
}

func (z *EntryZ) String(key string, v string) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeString, Key: key, String: v})
}

func (z *EntryZ) Hex8(key string, v uint8) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(v)})
}

func (z *EntryZ) Hex16(key string, v uint16) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(v)})
}

func (z *EntryZ) Hex32(key string, v uint32) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(v)})
}

func (z *EntryZ) Int(key string, v int) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(v)})
}

func (z *EntryZ) Uint(key string, v uint) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (z *EntryZ) Error(key string, err error) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (z *EntryZ) Stringer(key string, s fmt.Stringer) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeStringer, Key: key, Interface: s})
}

// Port adds an I/O port address.
func (z *EntryZ) Port(key string, port uint16) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypePort, Key: key, Integer: uint64(port)})
}

// Reg adds a configuration register, as function and offset.
func (z *EntryZ) Reg(key string, fn, addr uint8) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeReg, Key: key, Integer: uint64(fn), Extra: uint64(addr)})
}

// Range adds a memory range, printed as its first and last byte.
func (z *EntryZ) Range(key string, base, size uint32) *EntryZ {
	if z == nil {
		return nil
	}
	return z.add(ZField{Type: FieldTypeRange, Key: key, Integer: uint64(base), Extra: uint64(size)})
}

// End emits the entry and recycles it.
func (z *EntryZ) End() {
	if z == nil {
		return
	}

	fields := make(logrus.Fields, z.zfidx+1)
	fields["_mod"] = z.mod.String()
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	entry := logrus.StandardLogger().WithFields(fields)

	switch z.lvl {
	case DebugLevel:
		entry.Debug(z.msg)
	case InfoLevel:
		entry.Info(z.msg)
	case WarnLevel:
		entry.Warn(z.msg)
	case ErrorLevel:
		entry.Error(z.msg)
	case FatalLevel:
		entry.Fatal(z.msg)
	default:
		entry.Panic(z.msg)
	}

	*z = EntryZ{}
	entryPool.Put(z)
}
