package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/vburojevic/runios/internal/config"
	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/execx"
	"github.com/vburojevic/runios/internal/output"
	"github.com/vburojevic/runios/internal/packager"
	"github.com/vburojevic/runios/internal/simulator"
	"github.com/vburojevic/runios/internal/tmux"
	"github.com/vburojevic/runios/internal/xcode"
)

// DoctorCmd checks system requirements and configuration
type DoctorCmd struct {
	Root        string `default:"." help:"Project root holding the iOS folder"`
	ProjectPath string `default:"${config_project_path}" help:"Path of the iOS folder relative to --root"`
}

// checkResult represents a single diagnostic check
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// doctorReport is the complete diagnostic report
type doctorReport struct {
	Type          string        `json:"type"`
	SchemaVersion int           `json:"schemaVersion"`
	Timestamp     string        `json:"timestamp"`
	Checks        []checkResult `json:"checks"`
	AllPassed     bool          `json:"all_passed"`
	ErrorCount    int           `json:"error_count"`
	WarnCount     int           `json:"warn_count"`
}

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if c.ProjectPath == "" {
		c.ProjectPath = globals.config().Project.Path
	}
	if c.Root == "" {
		c.Root = "."
	}
	runner := globals.runner()

	checks := []checkResult{
		c.checkXcrun(ctx, runner),
		c.checkXcodebuild(ctx, runner),
		c.checkSimulators(ctx, globals),
		c.checkPlistBuddy(),
		c.checkTerminal(globals.config()),
		c.checkTmux(),
		c.checkConfig(globals),
		c.checkProject(),
		c.checkPackager(ctx, globals.config()),
	}

	errorCount := 0
	warnCount := 0
	for _, check := range checks {
		if check.Status == "error" {
			errorCount++
		} else if check.Status == "warning" {
			warnCount++
		}
	}

	report := doctorReport{
		Type:          "doctor",
		SchemaVersion: output.SchemaVersion,
		Timestamp:     time.Now().Format(time.RFC3339),
		Checks:        checks,
		AllPassed:     errorCount == 0,
		ErrorCount:    errorCount,
		WarnCount:     warnCount,
	}

	if globals.Format == "ndjson" {
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(report)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "runios Doctor")
	fmt.Fprintln(globals.Stdout, "=============")
	fmt.Fprintln(globals.Stdout)

	styled := output.IsTerminal(globals.Stdout)
	for _, check := range checks {
		icon := plainIcon(check.Status)
		if styled {
			icon = output.CheckIcon(check.Status)
		}

		fmt.Fprintf(globals.Stdout, "%s %s\n", icon, check.Name)
		if check.Message != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", check.Message)
		}
		if check.Details != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", check.Details)
		}
	}

	fmt.Fprintln(globals.Stdout)
	if errorCount == 0 && warnCount == 0 {
		fmt.Fprintln(globals.Stdout, "All checks passed!")
	} else {
		fmt.Fprintf(globals.Stdout, "Errors: %d, Warnings: %d\n", errorCount, warnCount)
	}

	return nil
}

func plainIcon(status string) string {
	switch status {
	case "ok":
		return "✓"
	case "warning":
		return "⚠"
	default:
		return "✗"
	}
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (c *DoctorCmd) checkXcrun(ctx context.Context, runner execx.Runner) checkResult {
	out, err := runner.Output(ctx, execx.Command{Name: "xcrun", Args: []string{"--version"}})
	if err != nil {
		return checkResult{
			Name:    "xcrun",
			Status:  "error",
			Message: "xcrun not found or not working",
			Details: "Install Xcode Command Line Tools: xcode-select --install",
		}
	}

	return checkResult{
		Name:    "xcrun",
		Status:  "ok",
		Message: firstLine(out),
	}
}

func (c *DoctorCmd) checkXcodebuild(ctx context.Context, runner execx.Runner) checkResult {
	out, err := runner.Output(ctx, execx.Command{Name: "xcodebuild", Args: []string{"-version"}})
	if err != nil {
		details := "Install Xcode from the App Store and select it with xcode-select"
		if hint := hintForTooling(err); hint != "" {
			details = hint
		}
		return checkResult{
			Name:    "xcodebuild",
			Status:  "error",
			Message: "xcodebuild not usable",
			Details: details,
		}
	}

	return checkResult{
		Name:    "xcodebuild",
		Status:  "ok",
		Message: firstLine(out),
	}
}

func (c *DoctorCmd) checkSimulators(ctx context.Context, globals *Globals) checkResult {
	sims, err := listSimulators(ctx, globals, "")
	if err != nil {
		return checkResult{
			Name:    "Simulators",
			Status:  "error",
			Message: "Failed to list simulators",
			Details: err.Error(),
		}
	}

	if len(sims) == 0 {
		return checkResult{
			Name:    "Simulators",
			Status:  "warning",
			Message: "No simulators found",
			Details: "Create simulators in Xcode > Window > Devices and Simulators",
		}
	}

	booted := 0
	for _, s := range sims {
		if s.IsBooted() {
			booted++
		}
	}

	details := ""
	name := globals.config().Simulator.Name
	if _, ok := simulator.Select(sims, name); !ok {
		details = fmt.Sprintf("Default simulator %q is not installed; set simulator.name or pass --simulator", name)
	}

	return checkResult{
		Name:    "Simulators",
		Status:  "ok",
		Message: fmt.Sprintf("%d available, %d booted", len(sims), booted),
		Details: details,
	}
}

func (c *DoctorCmd) checkPlistBuddy() checkResult {
	if _, err := os.Stat(xcode.PlistBuddyPath); err != nil {
		return checkResult{
			Name:    "PlistBuddy",
			Status:  "warning",
			Message: xcode.PlistBuddyPath + " not found",
			Details: "Bundle identifiers will be read with the built-in plist decoder",
		}
	}
	return checkResult{
		Name:    "PlistBuddy",
		Status:  "ok",
		Message: xcode.PlistBuddyPath,
	}
}

func (c *DoctorCmd) checkTerminal(cfg *config.Config) checkResult {
	switch runtime.GOOS {
	case "darwin":
		msg := "Packager opens in Terminal"
		if cfg.Terminal.App != "" {
			msg = "Packager opens in " + cfg.Terminal.App
		}
		return checkResult{Name: "Terminal", Status: "ok", Message: msg}
	case "linux", "freebsd", "openbsd", "netbsd":
		term := cfg.Terminal.App
		if term == "" {
			term = "xterm"
		}
		path, err := exec.LookPath(term)
		if err != nil {
			return checkResult{
				Name:    "Terminal",
				Status:  "warning",
				Message: term + " not found",
				Details: "Set REACT_TERMINAL to your terminal emulator or start the packager yourself",
			}
		}
		return checkResult{Name: "Terminal", Status: "ok", Message: "Packager opens in " + term, Details: path}
	default:
		return checkResult{
			Name:    "Terminal",
			Status:  "warning",
			Message: "Opening a packager window is not supported on " + runtime.GOOS,
			Details: "Start the packager yourself before running",
		}
	}
}

func (c *DoctorCmd) checkTmux() checkResult {
	path, err := exec.LookPath("tmux")
	if err != nil || !tmux.IsTmuxAvailable() {
		return checkResult{
			Name:    "tmux",
			Status:  "ok",
			Message: "tmux not found (optional, used with terminal.prefer_tmux)",
		}
	}

	version, _ := exec.Command("tmux", "-V").Output()
	return checkResult{
		Name:    "tmux",
		Status:  "ok",
		Message: firstLine(version),
		Details: path,
	}
}

func (c *DoctorCmd) checkConfig(globals *Globals) checkResult {
	configPath := globals.ConfigFile
	if configPath == "" {
		configPath = config.ConfigFile()
	}
	if configPath == "" {
		return checkResult{
			Name:    "Config",
			Status:  "ok",
			Message: "Using defaults (no config file)",
			Details: "Create with: runios config generate > .runios.yaml",
		}
	}

	if _, err := config.LoadFromFile(configPath); err != nil {
		return checkResult{
			Name:    "Config",
			Status:  "error",
			Message: "Config file has errors",
			Details: err.Error(),
		}
	}

	absPath, _ := filepath.Abs(configPath)
	return checkResult{
		Name:    "Config",
		Status:  "ok",
		Message: fmt.Sprintf("Loaded from: %s", absPath),
	}
}

func (c *DoctorCmd) checkProject() checkResult {
	dir := filepath.Join(c.Root, c.ProjectPath)
	project, err := xcode.DiscoverProject(dir)
	if err != nil {
		return checkResult{
			Name:    "Project",
			Status:  "error",
			Message: err.Error(),
			Details: hintForProject(),
		}
	}
	return checkResult{
		Name:    "Project",
		Status:  "ok",
		Message: fmt.Sprintf("Xcode %s %s", project.Kind(), project.Name),
		Details: "Scheme: " + xcode.InferScheme(project),
	}
}

func (c *DoctorCmd) checkPackager(ctx context.Context, cfg *config.Config) checkResult {
	prober := packager.NewProber(cfg.Packager.Port)
	switch prober.Status(ctx) {
	case domain.PackagerRunning:
		return checkResult{Name: "Packager", Status: "ok", Message: "Running at " + prober.StatusURL()}
	case domain.PackagerUnrecognized:
		return checkResult{
			Name:    "Packager",
			Status:  "warning",
			Message: fmt.Sprintf("Port %d is held by something that is not the packager", cfg.Packager.Port),
			Details: "Run `runios status` to see which process",
		}
	default:
		return checkResult{
			Name:    "Packager",
			Status:  "ok",
			Message: "Not running; `runios run` will start it",
		}
	}
}
