package main

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/go-faster/jx"
	"golang.org/x/sync/errgroup"

	"github.com/tiseno100/chipset-reversing/emu"
	"github.com/tiseno100/chipset-reversing/hw/snapshot"
)

// result is the state of a machine after a script ran.
type result struct {
	script string
	state  snapshot.Machine
}

// runMain runs each script on its own machine, in parallel, then prints the
// resulting states in the order the scripts were given.
func runMain(args Run, cfg emu.Config) {
	scripts := args.Scripts
	if len(scripts) == 0 {
		scripts = []string{""}
	}
	results := make([]result, len(scripts))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i, path := range scripts {
		g.Go(func() error {
			m, err := emu.NewMachine(args.Chipset)
			if err != nil {
				return err
			}
			defer m.Close()

			if path != "" {
				if err := m.RunScriptFile(ctx, path); err != nil {
					return err
				}
			}
			results[i] = result{script: path, state: m.Snapshot()}
			return nil
		})
	}
	checkf(g.Wait(), "failed to run %s", args.Chipset)

	w, closefn := output(args.Out)
	defer closefn()
	checkf(writeResults(w, results, args.JSON || cfg.Output.JSON), "failed to write output")
}

// dumpMain prints the state of a chipset right after reset.
func dumpMain(args Dump, cfg emu.Config) {
	name := args.Chipset
	if name == "" {
		name = cfg.General.Chipset
	}
	m, err := emu.NewMachine(name)
	checkf(err, "failed to create machine")
	state := m.Snapshot()
	m.Close()

	w, closefn := output(args.Out)
	defer closefn()

	if args.JSON || cfg.Output.JSON {
		var e jx.Encoder
		state.Encode(&e)
		_, err = e.WriteTo(w)
		checkf(err, "failed to write output")
		return
	}
	checkf(state.WriteText(w), "failed to write output")
}

func output(f *outfile) (io.Writer, func()) {
	if f == nil {
		return os.Stdout, func() {}
	}
	return f, func() { f.Close() }
}

func writeResults(w io.Writer, results []result, asJSON bool) error {
	if asJSON {
		var e jx.Encoder
		e.SetIdent(2)
		e.Arr(func(e *jx.Encoder) {
			for i := range results {
				r := &results[i]
				e.Obj(func(e *jx.Encoder) {
					e.Field("script", func(e *jx.Encoder) { e.Str(r.script) })
					e.Field("state", r.state.Encode)
				})
			}
		})
		_, err := e.WriteTo(w)
		return err
	}

	for i, r := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if r.script != "" {
			if _, err := io.WriteString(w, "== "+r.script+" ==\n"); err != nil {
				return err
			}
		}
		if err := r.state.WriteText(w); err != nil {
			return err
		}
	}
	return nil
}
