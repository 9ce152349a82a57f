package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/runios/internal/config"
	"github.com/vburojevic/runios/internal/output"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.config()

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type":          "config",
			"schemaVersion": output.SchemaVersion,
			"format":        cfg.Format,
			"quiet":         cfg.Quiet,
			"verbose":       cfg.Verbose,
			"project":       cfg.Project,
			"simulator":     cfg.Simulator,
			"packager":      cfg.Packager,
			"terminal":      cfg.Terminal,
			"file":          globals.ConfigFile,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(out)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Project:")
	fmt.Fprintf(globals.Stdout, "  path:          %s\n", cfg.Project.Path)
	fmt.Fprintf(globals.Stdout, "  scheme:        %s\n", orDefault(cfg.Project.Scheme, "(project name)"))
	fmt.Fprintf(globals.Stdout, "  configuration: %s\n", cfg.Project.Configuration)
	fmt.Fprintf(globals.Stdout, "  plist_reader:  %s\n", cfg.Project.PlistReader)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Simulator:")
	fmt.Fprintf(globals.Stdout, "  name:        %s\n", cfg.Simulator.Name)
	fmt.Fprintf(globals.Stdout, "  list_format: %s\n", cfg.Simulator.ListFormat)
	fmt.Fprintf(globals.Stdout, "  boot_with:   %s\n", cfg.Simulator.BootWith)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Packager:")
	fmt.Fprintf(globals.Stdout, "  port:     %d\n", cfg.Packager.Port)
	fmt.Fprintf(globals.Stdout, "  script:   %s\n", cfg.Packager.Script)
	fmt.Fprintf(globals.Stdout, "  disabled: %v\n", cfg.Packager.Disabled)
	if cfg.Packager.Wait != "" {
		fmt.Fprintf(globals.Stdout, "  wait:     %s\n", cfg.Packager.Wait)
	}
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Terminal:")
	fmt.Fprintf(globals.Stdout, "  app:         %s\n", orDefault(cfg.Terminal.App, "(platform default)"))
	fmt.Fprintf(globals.Stdout, "  prefer_tmux: %v\n", cfg.Terminal.PreferTmux)

	if globals.ConfigFile != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", globals.ConfigFile)
	}

	return nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := globals.ConfigFile
	if path == "" {
		path = config.ConfigFile()
	}

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type":          "config_path",
			"schemaVersion": output.SchemaVersion,
			"path":          path,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(out)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.runios.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.runios.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/runios/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	sampleConfig := `# runios configuration file
# Place this file at ./.runios.yaml, ~/.runios.yaml or ~/.config/runios/config.yaml
# Environment variables (and a .env file next to it) override these values.

# Output format: "text" (default) or "ndjson"
format: text

# Suppress progress output
quiet: false

# Log every external command
verbose: false

project:
  # Folder holding the Xcode project, relative to the project root (RUNIOS_PROJECT_PATH)
  path: ios
  # Scheme to build; defaults to the project name (RUNIOS_SCHEME)
  # scheme: MyApp
  # Build configuration (RUNIOS_CONFIGURATION)
  configuration: Debug
  # How to read CFBundleIdentifier: auto, plistbuddy or native
  plist_reader: auto

simulator:
  # Simulator name; the newest runtime wins when several match (RUNIOS_SIMULATOR)
  name: iPhone 6
  # simctl listing to parse: text or json
  list_format: text
  # How to boot: instruments or simctl
  boot_with: instruments

packager:
  # Port the packager listens on (RCT_METRO_PORT)
  port: 8081
  # Script opened in a new terminal, relative to the project root
  script: node_modules/react-native/scripts/launchPackager.command
  # Never check for or start the packager
  disabled: false
  # Wait for a started packager to answer
  # wait: 30s

terminal:
  # App used to open the packager window (REACT_TERMINAL)
  # app: iTerm
  # Open the packager in a tmux session when running inside tmux
  prefer_tmux: false
`

	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
