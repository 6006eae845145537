package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tiseno100/chipset-reversing/emu"
	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/chipset"
)

var version = "devel"

func main() {
	cli := parseArgs(os.Args[1:])

	cfgpath := cli.Config
	if cfgpath == "" {
		cfgpath = emu.ConfigPath()
	}
	cfg, err := emu.LoadConfig(cfgpath)
	checkf(err, "failed to load configuration %s", cfgpath)
	enableLogModules(cfg.Log.Modules)

	switch cli.mode {
	case listMode:
		listMain()
	case runMode:
		runMain(cli.Run, cfg)
	case dumpMode:
		dumpMain(cli.Dump, cfg)
	case initConfigMode:
		initConfigMain(cli.Init, cfgpath, cfg)
	case versionMode:
		fmt.Println("chipset", version)
	}
}

// enableLogModules enables the debug logs of the modules listed in the
// configuration, on top of those given on the command line.
func enableLogModules(names []string) {
	for _, name := range names {
		mod, ok := log.ModuleByName(name)
		if !ok {
			log.ModEmu.WarnZ("unknown log module in configuration").String("name", name).End()
			continue
		}
		log.EnableDebugModules(mod.Mask())
	}
}

func listMain() {
	for _, name := range chipset.Names() {
		desc, err := chipset.Lookup(name)
		checkf(err, "chipset registry")
		fmt.Printf("%-16s %s\n", name, desc.Model)
	}
}

func initConfigMain(args Init, path string, cfg emu.Config) {
	if args.Chipset != "" {
		_, err := chipset.Lookup(args.Chipset)
		checkf(err, "invalid default chipset")
		cfg.General.Chipset = args.Chipset
	}
	if !args.Force {
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			fatalf("configuration file %s already exists, use --force to overwrite it", path)
		}
	}
	checkf(emu.SaveConfig(path, cfg), "failed to write configuration %s", path)
	fmt.Println("configuration written to", path)
}
