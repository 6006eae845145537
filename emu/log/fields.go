package log

import (
	"fmt"
	"strconv"
)

type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeHex32
	FieldTypeInt
	FieldTypeUint
	FieldTypeError
	FieldTypeStringer

	// Chipset specific.
	FieldTypePort  // ISA port, 3 hex digits
	FieldTypeReg   // function and register offset
	FieldTypeRange // base and size of a memory range
)

type ZField struct {
	Type FieldType
	Key  string

	// Only the members matching Type are populated. Reg and Range use both
	// Integer and Extra.
	String    string
	Integer   uint64
	Extra     uint64
	Error     error
	Interface any
	Boolean   bool
}

func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeBool:
		return strconv.FormatBool(f.Boolean)
	case FieldTypeString:
		return f.String
	case FieldTypeUint:
		return strconv.FormatUint(f.Integer, 10)
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeHex8:
		return fmt.Sprintf("%02x", uint(f.Integer))
	case FieldTypeHex16:
		return fmt.Sprintf("%04x", uint(f.Integer))
	case FieldTypeHex32:
		return fmt.Sprintf("%08x", uint(f.Integer))
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	case FieldTypeStringer:
		return f.Interface.(fmt.Stringer).String()
	case FieldTypePort:
		return fmt.Sprintf("%03xh", uint(f.Integer))
	case FieldTypeReg:
		return fmt.Sprintf("%d:%02xh", uint(f.Integer), uint(f.Extra))
	case FieldTypeRange:
		if f.Extra == 0 {
			return fmt.Sprintf("%06x+0", uint(f.Integer))
		}
		return fmt.Sprintf("%06x-%06x", uint(f.Integer), uint(f.Integer+f.Extra-1))
	}
	return ""
}
