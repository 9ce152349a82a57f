package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/runios/internal/config"
	"github.com/vburojevic/runios/internal/orchestrator"
	"github.com/vburojevic/runios/internal/packager"
	"github.com/vburojevic/runios/internal/simulator"
	"github.com/vburojevic/runios/internal/terminal"
	"github.com/vburojevic/runios/internal/tmux"
	"github.com/vburojevic/runios/internal/xcode"
)

// RunCmd builds the app, boots a simulator, installs and launches the app
type RunCmd struct {
	Simulator     string `short:"s" default:"${config_simulator}" help:"Simulator name (last match in the device list wins)"`
	UDID          string `help:"Simulator UDID; wins over --simulator"`
	Scheme        string `default:"${config_scheme}" help:"Xcode scheme (default: project name)"`
	Root          string `default:"." help:"Project root holding the iOS folder and node_modules"`
	ProjectPath   string `default:"${config_project_path}" help:"Path of the iOS folder relative to --root"`
	Configuration string `default:"${config_configuration}" help:"Build configuration"`
	Port          int    `default:"${config_port}" help:"Packager port (RCT_METRO_PORT)"`
	Terminal      string `default:"${config_terminal}" help:"App to open the packager window with (REACT_TERMINAL)"`
	NoPackager    bool   `help:"Do not check for or start the packager"`
	WaitPackager  string `default:"${config_wait}" help:"Wait this long for a started packager to answer (e.g. 30s)"`
	BootWith      string `default:"${config_boot_with}" enum:"instruments,simctl" help:"How to boot a shut down simulator"`
	DeviceList    string `default:"${config_list_format}" enum:"text,json" help:"simctl device list format to parse"`
	PlistReader   string `default:"${config_plist_reader}" enum:"auto,plistbuddy,native" help:"How to read the bundle identifier"`
	Pick          bool   `help:"Choose the simulator interactively"`
}

// applyDefaults fills fields left empty (when built without kong) from cfg
func (c *RunCmd) applyDefaults(cfg *config.Config) {
	if c.Simulator == "" {
		c.Simulator = cfg.Simulator.Name
	}
	if c.Scheme == "" {
		c.Scheme = cfg.Project.Scheme
	}
	if c.Root == "" {
		c.Root = "."
	}
	if c.ProjectPath == "" {
		c.ProjectPath = cfg.Project.Path
	}
	if c.Configuration == "" {
		c.Configuration = cfg.Project.Configuration
	}
	if c.Port <= 0 {
		c.Port = cfg.Packager.Port
	}
	if c.Terminal == "" {
		c.Terminal = cfg.Terminal.App
	}
	if !c.NoPackager && cfg.Packager.Disabled {
		c.NoPackager = true
	}
	if c.WaitPackager == "" {
		c.WaitPackager = cfg.Packager.Wait
	}
	if c.BootWith == "" {
		c.BootWith = cfg.Simulator.BootWith
	}
	if c.DeviceList == "" {
		c.DeviceList = cfg.Simulator.ListFormat
	}
	if c.PlistReader == "" {
		c.PlistReader = cfg.Project.PlistReader
	}
}

// Run executes the run command
func (c *RunCmd) Run(globals *Globals) error {
	cfg := globals.config()
	c.applyDefaults(cfg)

	if c.UDID != "" && c.Pick {
		return outputErrorCommon(globals, CodeInvalidFlags, "--udid and --pick are mutually exclusive")
	}
	wait, err := parseOptionalDuration(c.WaitPackager)
	if err != nil {
		return outputErrorCommon(globals, CodeInvalidFlags, "invalid --wait-packager: "+err.Error(), "Use a Go duration such as 30s or 2m")
	}

	runner := globals.runner()
	reader, err := xcode.NewBundleIDReader(c.PlistReader, runner)
	if err != nil {
		return outputErrorCommon(globals, CodeInvalidFlags, err.Error())
	}

	root, err := filepath.Abs(c.Root)
	if err != nil {
		return outputErrorCommon(globals, CodeInvalidFlags, err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := globals.logger()
	pipe := &orchestrator.Pipeline{
		Simulators: simulator.NewManager(runner, log).WithOutput(globals.toolStdout(), globals.Stderr),
		Builder:    xcode.NewBuilder(runner, globals.toolStdout(), globals.Stderr),
		Bundle:     reader,
		Packager:   packager.NewProber(c.Port),
		Terminal: terminal.ForPlatform(runtime.GOOS, terminal.Options{
			App:         c.Terminal,
			PreferTmux:  preferTmux(globals, cfg),
			InTmux:      tmux.InsideTmux(),
			SessionName: tmux.GenerateSessionName(filepath.Base(root)),
		}, runner),
		Emitter: globals.emitter(),
		Log:     log,
		Clock:   clock.New(),
	}

	opts := orchestrator.Options{
		ProjectRoot:    root,
		ProjectPath:    c.ProjectPath,
		Scheme:         c.Scheme,
		Simulator:      c.Simulator,
		UDID:           c.UDID,
		Configuration:  c.Configuration,
		ListFormat:     simulator.ListFormat(c.DeviceList),
		BootWith:       simulator.BootStrategy(c.BootWith),
		NoPackager:     c.NoPackager,
		PackagerScript: cfg.Packager.Script,
		WaitPackager:   wait,
	}
	if c.Pick {
		if !stdinIsTerminal() {
			return outputErrorCommon(globals, CodeNotInteractive,
				"--pick requires an interactive terminal", "Pass --simulator or --udid instead")
		}
		opts.Pick = pickSimulator
	}

	if _, err := pipe.Run(ctx, opts); err != nil {
		return outputError(globals, err)
	}
	return nil
}

// preferTmux is off when --terminal names an app explicitly
func preferTmux(globals *Globals, cfg *config.Config) bool {
	return cfg.Terminal.PreferTmux && !globals.FlagProvided("terminal")
}

func parseOptionalDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
