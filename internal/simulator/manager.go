package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/execx"
	"go.uber.org/zap"
)

// ListFormat selects which simctl listing is requested and parsed
type ListFormat string

const (
	ListFormatText ListFormat = "text"
	ListFormatJSON ListFormat = "json"
)

// BootStrategy selects how a shut down simulator is brought up
type BootStrategy string

const (
	// BootInstruments launches the instruments harness against the device,
	// which boots it as a side effect.
	BootInstruments BootStrategy = "instruments"
	// BootSimctl uses `simctl boot`, for Xcode releases without instruments.
	BootSimctl BootStrategy = "simctl"
)

// Manager handles simulator discovery and lifecycle operations via xcrun
type Manager struct {
	runner    execx.Runner
	xcrunPath string
	log       *zap.Logger
	stdout    io.Writer
	stderr    io.Writer
}

// NewManager creates a new simulator manager
func NewManager(runner execx.Runner, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		runner:    runner,
		xcrunPath: "xcrun",
		log:       log,
		stdout:    io.Discard,
		stderr:    io.Discard,
	}
}

// WithOutput sets where install/launch output is streamed
func (m *Manager) WithOutput(stdout, stderr io.Writer) *Manager {
	m.stdout = stdout
	m.stderr = stderr
	return m
}

// ListSimulators runs the simctl device listing and parses it
func (m *Manager) ListSimulators(ctx context.Context, format ListFormat) (ParseResult, error) {
	args := []string{"simctl", "list", "devices"}
	if format == ListFormatJSON {
		args = append(args, "--json")
	}

	out, err := m.runner.Output(ctx, execx.Command{Name: m.xcrunPath, Args: args})
	if err != nil {
		return ParseResult{}, fmt.Errorf("simctl list failed: %w", err)
	}

	var res ParseResult
	if format == ListFormatJSON {
		res = ParseDeviceListJSON(out)
	} else {
		res = ParseDeviceList(string(out))
	}
	if res.Skipped > 0 {
		m.log.Debug("skipped unparsed device list lines", zap.Int("count", res.Skipped))
	}
	return res, nil
}

// ForceBoot boots sim if it is not running yet.
//
// With BootInstruments every failure is ignored: instruments always exits with
// status 255 because it expects more arguments, but the simulator is booted by
// then.
func (m *Manager) ForceBoot(ctx context.Context, sim domain.Simulator, strategy BootStrategy) error {
	if sim.IsBooted() {
		return nil
	}

	switch strategy {
	case BootSimctl:
		_, err := m.runner.Output(ctx, execx.Command{
			Name: m.xcrunPath,
			Args: []string{"simctl", "boot", sim.UDID},
		})
		if err == nil || alreadyBooted(err) {
			return nil
		}
		return fmt.Errorf("failed to boot %s: %w", sim.FullName(), err)
	default:
		_, err := m.runner.Output(ctx, execx.Command{
			Name: m.xcrunPath,
			Args: []string{"instruments", "-w", sim.FullName()},
		})
		if err != nil {
			m.log.Debug("instruments boot exited non-zero (expected)",
				zap.String("simulator", sim.FullName()),
				zap.Int("exit_code", execx.ExitCode(err)))
		}
		return nil
	}
}

func alreadyBooted(err error) bool {
	var tf *domain.ExternalToolFailure
	if errors.As(err, &tf) {
		return strings.Contains(tf.Stderr, "current state: Booted")
	}
	return false
}

// Install installs the app bundle at appPath on the device
func (m *Manager) Install(ctx context.Context, udid, appPath string) error {
	err := m.runner.Run(ctx, execx.Command{
		Name:   m.xcrunPath,
		Args:   []string{"simctl", "install", udid, appPath},
		Stdout: m.stdout,
		Stderr: m.stderr,
	})
	if err != nil {
		return fmt.Errorf("install failed: %w", err)
	}
	return nil
}

// Launch starts the installed app with the given bundle identifier
func (m *Manager) Launch(ctx context.Context, udid, bundleID string) error {
	err := m.runner.Run(ctx, execx.Command{
		Name:   m.xcrunPath,
		Args:   []string{"simctl", "launch", udid, bundleID},
		Stdout: m.stdout,
		Stderr: m.stderr,
	})
	if err != nil {
		return fmt.Errorf("launch failed: %w", err)
	}
	return nil
}
