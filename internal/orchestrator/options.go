package orchestrator

import (
	"context"
	"time"

	"github.com/vburojevic/runios/internal/config"
	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/simulator"
	"github.com/vburojevic/runios/internal/xcode"
)

const (
	// DefaultSimulator is selected when no name or UDID is requested
	DefaultSimulator = "iPhone 6"
	// DefaultProjectPath is the project subdirectory holding the Xcode project
	DefaultProjectPath = "ios"
	// DefaultWaitInterval is how often the packager is polled with WaitPackager
	DefaultWaitInterval = 500 * time.Millisecond
)

// PickFunc lets the user choose a simulator interactively
type PickFunc func(ctx context.Context, sims []domain.Simulator) (domain.Simulator, error)

// Options describe one run
type Options struct {
	// ProjectRoot is the directory holding the project subdirectory and the
	// packager script. Defaults to the working directory.
	ProjectRoot    string
	ProjectPath    string
	Scheme         string
	Simulator      string
	UDID           string
	Configuration  string
	ListFormat     simulator.ListFormat
	BootWith       simulator.BootStrategy
	NoPackager     bool
	PackagerScript string
	WaitPackager   time.Duration
	Pick           PickFunc
}

func (o Options) withDefaults() Options {
	if o.ProjectRoot == "" {
		o.ProjectRoot = "."
	}
	if o.ProjectPath == "" {
		o.ProjectPath = DefaultProjectPath
	}
	if o.Simulator == "" {
		o.Simulator = DefaultSimulator
	}
	if o.Configuration == "" {
		o.Configuration = xcode.DefaultConfiguration
	}
	if o.ListFormat == "" {
		o.ListFormat = simulator.ListFormatText
	}
	if o.BootWith == "" {
		o.BootWith = simulator.BootInstruments
	}
	if o.PackagerScript == "" {
		o.PackagerScript = config.DefaultPackagerScript
	}
	return o
}
