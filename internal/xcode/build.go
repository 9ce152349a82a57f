package xcode

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/execx"
)

const (
	// DefaultConfiguration is the build configuration used when none is given
	DefaultConfiguration = "Debug"
	// DefaultDerivedDataPath is relative to the project directory
	DefaultDerivedDataPath = "build"

	simulatorPlatformSuffix = "-iphonesimulator"
)

// BuildParams describes one xcodebuild invocation
type BuildParams struct {
	Dir             string
	Project         domain.XcodeProject
	Scheme          string
	DestinationUDID string
	Configuration   string
	DerivedDataPath string
}

func (p BuildParams) configuration() string {
	if p.Configuration == "" {
		return DefaultConfiguration
	}
	return p.Configuration
}

func (p BuildParams) derivedDataPath() string {
	if p.DerivedDataPath == "" {
		return DefaultDerivedDataPath
	}
	return p.DerivedDataPath
}

// Args returns the xcodebuild arguments for p
func (p BuildParams) Args() []string {
	projectFlag := "-project"
	if p.Project.IsWorkspace {
		projectFlag = "-workspace"
	}
	return []string{
		projectFlag, p.Project.Name,
		"-scheme", p.Scheme,
		"-destination", "id=" + p.DestinationUDID,
		"-configuration", p.configuration(),
		"-derivedDataPath", p.derivedDataPath(),
	}
}

// AppPath returns where xcodebuild leaves the .app for p, relative to p.Dir
func (p BuildParams) AppPath() string {
	return AppBundlePath(p.derivedDataPath(), p.configuration(), p.Scheme)
}

// AppBundlePath builds "<derived>/Build/Products/<cfg>-iphonesimulator/<scheme>.app"
func AppBundlePath(derivedDataPath, configuration, scheme string) string {
	return filepath.Join(derivedDataPath, "Build", "Products", configuration+simulatorPlatformSuffix, scheme+".app")
}

// Builder runs xcodebuild
type Builder struct {
	runner         execx.Runner
	xcodebuildPath string
	stdout         io.Writer
	stderr         io.Writer
}

// NewBuilder creates a Builder whose output goes to stdout/stderr
func NewBuilder(runner execx.Runner, stdout, stderr io.Writer) *Builder {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Builder{
		runner:         runner,
		xcodebuildPath: "xcodebuild",
		stdout:         stdout,
		stderr:         stderr,
	}
}

// CommandLine renders the invocation for progress messages
func (b *Builder) CommandLine(p BuildParams) string {
	return b.xcodebuildPath + " " + strings.Join(p.Args(), " ")
}

// Build runs xcodebuild; a non-zero exit is returned as an ExternalToolFailure
func (b *Builder) Build(ctx context.Context, p BuildParams) error {
	err := b.runner.Run(ctx, execx.Command{
		Name:   b.xcodebuildPath,
		Args:   p.Args(),
		Dir:    p.Dir,
		Stdout: b.stdout,
		Stderr: b.stderr,
	})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}
