package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tiseno100/chipset-reversing/emu/log"
)

type mode byte

const (
	listMode    mode = iota // List chipsets
	runMode                 // Run scripts against a chipset
	dumpMode                // Dump chipset state after reset
	initConfigMode          // Write the configuration file
	versionMode             // Show version
)

type (
	CLI struct {
		List    List    `cmd:"" help:"List supported chipsets."`
		Run     Run     `cmd:"" help:"Run register scripts against a chipset and print its state."`
		Dump    Dump    `cmd:"" help:"Print the state of a chipset after reset."`
		Init    Init    `cmd:"" name:"init-config" help:"Write the configuration file, with default values for missing keys."`
		Version Version `cmd:"" help:"Show version."`

		Config string     `help:"Configuration file (default: user config directory)." type:"path" placeholder:"FILE"`
		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	List struct{}

	Run struct {
		Chipset string   `arg:"" name:"chipset" help:"${chipset_help}"`
		Scripts []string `arg:"" name:"script" help:"${scripts_help}" optional:"" type:"existingfile"`

		JSON bool     `name:"json" help:"Print the state as JSON."`
		Out  *outfile `name:"out" help:"Write the state to file." placeholder:"FILE|stdout|stderr"`
	}

	Dump struct {
		Chipset string `arg:"" name:"chipset" help:"${chipset_help} (default: from config)" optional:""`

		JSON bool     `name:"json" help:"Print the state as JSON."`
		Out  *outfile `name:"out" help:"Write the state to file." placeholder:"FILE|stdout|stderr"`
	}

	Init struct {
		Chipset string `name:"chipset" help:"Default chipset, see 'list'." placeholder:"NAME"`
		Force   bool   `name:"force" short:"f" help:"Overwrite an existing configuration file."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"chipset_help": "Chipset name, see 'list'.",
	"scripts_help": "Lua scripts, each one runs on its own freshly reset machine.",
	"log_help":     "Enable debug logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("chipset"),
		kong.Description("Legacy PC chipset register models. github.com/tiseno100/chipset-reversing"),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch {
	case ctx.Command() == "list":
		cfg.mode = listMode
	case strings.HasPrefix(ctx.Command(), "dump"):
		cfg.mode = dumpMode
	case ctx.Command() == "init-config":
		cfg.mode = initConfigMode
	case ctx.Command() == "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") || strings.HasPrefix(ctx.Command(), "dump") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s
  
  As a special case, the following values are accepted: 
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
