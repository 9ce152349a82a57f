package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/runios/internal/cli"
	"github.com/vburojevic/runios/internal/config"
	"github.com/vburojevic/runios/internal/logging"
)

func main() {
	// Load configuration from .env, config files and environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags still win
	vars := kong.Vars{
		"config_format":        cfg.Format,
		"config_simulator":     cfg.Simulator.Name,
		"config_scheme":        cfg.Project.Scheme,
		"config_project_path":  cfg.Project.Path,
		"config_configuration": cfg.Project.Configuration,
		"config_port":          strconv.Itoa(cfg.Packager.Port),
		"config_terminal":      cfg.Terminal.App,
		"config_wait":          cfg.Packager.Wait,
		"config_boot_with":     cfg.Simulator.BootWith,
		"config_list_format":   cfg.Simulator.ListFormat,
		"config_plist_reader":  cfg.Project.PlistReader,
	}

	ctx := kong.Parse(&c,
		kong.Name("runios"),
		kong.Description("Build a React Native iOS app and run it on a simulator\n\nSTART HERE: runios -s \"iPhone 15\""),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	// Record which flags were explicitly provided so commands can distinguish
	// CLI overrides from config defaults.
	flagsSet := map[string]bool{}
	for _, p := range ctx.Path {
		if p.Flag != nil {
			flagsSet[p.Flag.Name] = true
		}
	}
	globals.FlagsSet = flagsSet
	globals.ConfigFile = config.ConfigFile()
	globals.Log = logging.New(os.Stderr, globals.Verbose, globals.Quiet)

	err = ctx.Run(globals)
	_ = globals.Log.Sync()
	if err != nil {
		os.Exit(1)
	}
}
