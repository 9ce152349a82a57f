package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vburojevic/runios/internal/config"
	"github.com/vburojevic/runios/internal/execx"
	"github.com/vburojevic/runios/internal/output"
)

// CLI is the root command structure for runios
type CLI struct {
	// Global flags
	Format  string     `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Output format"`
	Quiet   bool       `short:"q" help:"Suppress progress output (errors are still reported)"`
	Verbose bool       `short:"v" help:"Log every external command"`
	Version VersionCmd `cmd:"" help:"Show version information"`
	Update  UpdateCmd  `cmd:"" help:"Show how to upgrade runios"`

	// Commands
	Run        RunCmd        `cmd:"" default:"withargs" help:"Build the app and run it on a simulator"`
	List       ListCmd       `cmd:"" help:"List available simulators"`
	Pick       PickCmd       `cmd:"" help:"Interactively pick a simulator"`
	Status     StatusCmd     `cmd:"" help:"Show whether the packager is running"`
	Doctor     DoctorCmd     `cmd:"" help:"Check system requirements and configuration"`
	Config     ConfigCmd     `cmd:"" help:"Show or manage configuration"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format     string
	Quiet      bool
	Verbose    bool
	Stdout     io.Writer
	Stderr     io.Writer
	Config     *config.Config
	ConfigFile string
	// FlagsSet records flags given explicitly on the command line
	FlagsSet map[string]bool
	Log      *zap.Logger
	// Runner overrides the external command runner
	Runner execx.Runner
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}

	// Apply config values if CLI flags weren't explicitly set
	if g.Format == "" {
		g.Format = cfg.Format
	}
	if !cli.Quiet && cfg.Quiet {
		g.Quiet = true
	}
	if !cli.Verbose && cfg.Verbose {
		g.Verbose = true
	}

	return g
}

// FlagProvided reports whether name was passed on the command line
func (g *Globals) FlagProvided(name string) bool {
	return g.FlagsSet[name]
}

func (g *Globals) logger() *zap.Logger {
	if g.Log == nil {
		return zap.NewNop()
	}
	return g.Log
}

func (g *Globals) runner() execx.Runner {
	if g.Runner != nil {
		return g.Runner
	}
	return execx.NewRunner(g.logger())
}

func (g *Globals) config() *config.Config {
	if g.Config == nil {
		return config.Default()
	}
	return g.Config
}

func (g *Globals) emitter() *output.Emitter {
	return output.NewEmitter(g.Format, g.Stdout, g.Stderr).WithQuiet(g.Quiet)
}

// toolStdout is where external tool output is streamed. NDJSON stdout stays
// machine-readable, so tools write to stderr in that mode.
func (g *Globals) toolStdout() io.Writer {
	if g.Format == "ndjson" {
		return g.Stderr
	}
	return g.Stdout
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	return globals.emitter().Version(Version, Commit)
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
