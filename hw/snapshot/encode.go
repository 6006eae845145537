package snapshot

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/jx"
)

func hex(v uint32, width int) string {
	return fmt.Sprintf("0x%0*x", width, v)
}

func encodeWindows(e *jx.Encoder, wins []Window) {
	e.Arr(func(e *jx.Encoder) {
		for _, w := range wins {
			e.Obj(func(e *jx.Encoder) {
				e.Field("base", func(e *jx.Encoder) { e.Str(hex(w.Base, 6)) })
				e.Field("size", func(e *jx.Encoder) { e.Str(hex(w.Size, 5)) })
				e.Field("read", func(e *jx.Encoder) { e.Str(w.Read) })
				e.Field("write", func(e *jx.Encoder) { e.Str(w.Write) })
			})
		}
	})
}

// Encode writes c as a JSON object. Only non-zero registers are written.
func (c *Chipset) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
		e.Field("model", func(e *jx.Encoder) { e.Str(c.Model) })
		e.Field("funcs", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, fn := range c.Funcs {
					e.Obj(func(e *jx.Encoder) {
						e.Field("name", func(e *jx.Encoder) { e.Str(fn.Name) })
						e.Field("regs", func(e *jx.Encoder) {
							e.Obj(func(e *jx.Encoder) {
								for addr, v := range fn.Regs {
									if v != 0 {
										e.Field(hex(uint32(addr), 2), func(e *jx.Encoder) { e.Str(hex(uint32(v), 2)) })
									}
								}
							})
						})
					})
				}
			})
		})
		if c.Index != nil {
			e.Field("index", func(e *jx.Encoder) { e.Str(hex(uint32(*c.Index), 2)) })
		}
		e.Field("windows", func(e *jx.Encoder) { encodeWindows(e, c.Windows) })
		e.Field("smram", func(e *jx.Encoder) {
			if c.SMRAM == nil {
				e.Null()
				return
			}
			e.Obj(func(e *jx.Encoder) {
				e.Field("host", func(e *jx.Encoder) { e.Str(hex(c.SMRAM.Host, 5)) })
				e.Field("backing", func(e *jx.Encoder) { e.Str(hex(c.SMRAM.Backing, 5)) })
				e.Field("size", func(e *jx.Encoder) { e.Str(hex(c.SMRAM.Size, 5)) })
				e.Field("overlap", func(e *jx.Encoder) { e.Bool(c.SMRAM.Overlap) })
			})
		})
		e.Field("irq", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				for _, r := range c.IRQ {
					e.Field(r.Line, func(e *jx.Encoder) { e.UInt32(uint32(r.IRQ)) })
				}
			})
		})
		e.Field("ide", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, ch := range c.IDE {
					e.Obj(func(e *jx.Encoder) {
						e.Field("channel", func(e *jx.Encoder) { e.Str(ch.Channel) })
						e.Field("enabled", func(e *jx.Encoder) { e.Bool(ch.Enabled) })
						e.Field("cmd", func(e *jx.Encoder) { e.Str(hex(uint32(ch.Cmd), 3)) })
						e.Field("ctl", func(e *jx.Encoder) { e.Str(hex(uint32(ch.Ctl), 3)) })
					})
				}
			})
		})
	})
}

func (m *Machine) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("chipset", func(e *jx.Encoder) { m.Chipset.Encode(e) })
		e.Field("memory", func(e *jx.Encoder) { encodeWindows(e, m.Memory) })
		e.Field("ports", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, p := range m.Ports {
					e.Str(hex(uint32(p), 3))
				}
			})
		})
		e.Field("port92", func(e *jx.Encoder) { e.Bool(m.Port92) })
		e.Field("external_cache", func(e *jx.Encoder) { e.Bool(m.ExternalCache) })
		e.Field("internal_cache", func(e *jx.Encoder) { e.Bool(m.InternalCache) })
		e.Field("wait_states", func(e *jx.Encoder) { e.Int(m.WaitStates) })
		e.Field("mmu_flushes", func(e *jx.Encoder) { e.Int(m.MMUFlushes) })
		e.Field("dram", func(e *jx.Encoder) {
			if m.DRAM == nil {
				e.Null()
				return
			}
			e.Obj(func(e *jx.Encoder) {
				e.Field("unit_mb", func(e *jx.Encoder) { e.UInt32(m.DRAM.UnitMB) })
				e.Field("rows", func(e *jx.Encoder) {
					e.Arr(func(e *jx.Encoder) {
						for _, r := range m.DRAM.Rows {
							e.Str(hex(uint32(r), 2))
						}
					})
				})
			})
		})
	})
}

// MarshalJSON implements json.Marshaler.
func (m *Machine) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	m.Encode(&e)
	return e.Bytes(), nil
}

// WriteText writes a human readable dump of m to w.
func (m *Machine) WriteText(w io.Writer) error {
	var sb strings.Builder
	c := &m.Chipset

	fmt.Fprintf(&sb, "%s (%s)\n", c.Model, c.Name)
	for _, fn := range c.Funcs {
		fmt.Fprintf(&sb, "\n%s registers:\n", fn.Name)
		for row := 0; row < 256; row += 16 {
			fmt.Fprintf(&sb, "  %02x:", row)
			for _, v := range fn.Regs[row : row+16] {
				fmt.Fprintf(&sb, " %02x", v)
			}
			sb.WriteByte('\n')
		}
	}
	if c.Index != nil {
		fmt.Fprintf(&sb, "\nindex: %02x\n", *c.Index)
	}

	if len(c.Windows) > 0 {
		sb.WriteString("\nwindows:\n")
		for _, win := range c.Windows {
			fmt.Fprintf(&sb, "  %06x-%06x read:%-8s write:%s\n", win.Base, win.Base+win.Size-1, win.Read, win.Write)
		}
	}
	if c.SMRAM != nil {
		fmt.Fprintf(&sb, "\nsmram: host=%05x backing=%05x size=%05x overlap=%t\n",
			c.SMRAM.Host, c.SMRAM.Backing, c.SMRAM.Size, c.SMRAM.Overlap)
	} else {
		sb.WriteString("\nsmram: disabled\n")
	}
	if len(c.IRQ) > 0 {
		sb.WriteString("\nirq routing:\n")
		for _, r := range c.IRQ {
			if r.IRQ == 0xff {
				fmt.Fprintf(&sb, "  %-6s disabled\n", r.Line)
			} else {
				fmt.Fprintf(&sb, "  %-6s irq %d\n", r.Line, r.IRQ)
			}
		}
	}
	if len(c.IDE) > 0 {
		sb.WriteString("\nide:\n")
		for _, ch := range c.IDE {
			fmt.Fprintf(&sb, "  %-9s enabled:%-5t cmd:%03x ctl:%03x\n", ch.Channel, ch.Enabled, ch.Cmd, ch.Ctl)
		}
	}

	sb.WriteString("\nmemory:\n")
	for _, win := range m.Memory {
		fmt.Fprintf(&sb, "  %06x-%06x read:%-8s write:%s\n", win.Base, win.Base+win.Size-1, win.Read, win.Write)
	}
	fmt.Fprintf(&sb, "\nports:")
	for _, p := range m.Ports {
		fmt.Fprintf(&sb, " %03x", p)
	}
	fmt.Fprintf(&sb, "\nport92:%t external_cache:%t internal_cache:%t wait_states:%d mmu_flushes:%d\n",
		m.Port92, m.ExternalCache, m.InternalCache, m.WaitStates, m.MMUFlushes)
	if m.DRAM != nil {
		fmt.Fprintf(&sb, "dram rows (%dM units):", m.DRAM.UnitMB)
		for _, r := range m.DRAM.Rows {
			fmt.Fprintf(&sb, " %02x", r)
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
