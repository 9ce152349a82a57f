package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/execx"
	"github.com/vburojevic/runios/internal/output"
	"github.com/vburojevic/runios/internal/simulator"
	"github.com/vburojevic/runios/internal/terminal"
	"github.com/vburojevic/runios/internal/xcode"
)

const deviceList = `== Devices ==
-- iOS 9.3 --
    iPhone 6 (ABCD-1) (Booted)
-- iOS 10.0 --
    iPhone 6 (EFGH-2) (Shutdown)
    iPad Pro (IJKL-3) (Shutdown)
`

type fakeProber struct {
	statuses []domain.PackagerStatus
	calls    atomic.Int32
}

func (f *fakeProber) Status(context.Context) domain.PackagerStatus {
	n := int(f.calls.Add(1)) - 1
	if n >= len(f.statuses) {
		n = len(f.statuses) - 1
	}
	return f.statuses[n]
}

func (f *fakeProber) StatusURL() string { return "http://localhost:8081/status" }

// xcodeTools answers like a working Xcode install. instruments exits 255 as
// it does in practice.
func xcodeTools(c execx.Call) ([]byte, error) {
	switch {
	case c.Name == "xcrun" && strings.HasPrefix(c.Line(), "xcrun simctl list devices"):
		return []byte(deviceList), nil
	case c.Name == "xcrun" && len(c.Args) > 0 && c.Args[0] == "instruments":
		return nil, execx.Exit(c, 255, "instruments: unexpected arguments")
	case c.Name == xcode.PlistBuddyPath:
		return []byte("org.reactjs.native.example.App\n"), nil
	}
	return nil, nil
}

type harness struct {
	root    string
	fake    *execx.Fake
	prober  *fakeProber
	out     *bytes.Buffer
	pipe    *Pipeline
	options Options
}

func newHarness(t *testing.T, handler func(execx.Call) ([]byte, error), statuses ...domain.PackagerStatus) *harness {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ios", "App.xcworkspace"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ios", "App.xcodeproj"), 0755))

	if len(statuses) == 0 {
		statuses = []domain.PackagerStatus{domain.PackagerRunning}
	}
	h := &harness{
		root:   root,
		fake:   &execx.Fake{Handler: handler},
		prober: &fakeProber{statuses: statuses},
		out:    &bytes.Buffer{},
	}
	h.pipe = &Pipeline{
		Simulators: simulator.NewManager(h.fake, zap.NewNop()),
		Builder:    xcode.NewBuilder(h.fake, io.Discard, io.Discard),
		Bundle:     xcode.NewPlistBuddyReader(h.fake),
		Packager:   h.prober,
		Terminal:   terminal.ForPlatform("darwin", terminal.Options{}, h.fake),
		Emitter:    output.NewEmitter("ndjson", h.out, h.out),
		Log:        zap.NewNop(),
	}
	h.options = Options{ProjectRoot: root}
	return h
}

func (h *harness) lines() []string {
	var lines []string
	for _, c := range h.fake.Calls() {
		lines = append(lines, c.Line())
	}
	return lines
}

func TestRun_FullSequence(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarness(t, xcodeTools, domain.PackagerNotRunning)
	res, err := h.pipe.Run(context.Background(), h.options)
	require.NoError(t, err)

	iosDir := filepath.Join(h.root, "ios")
	appPath := filepath.Join(iosDir, "build/Build/Products/Debug-iphonesimulator/App.app")

	assert.Equal(t, domain.XcodeProject{Name: "App.xcworkspace", IsWorkspace: true}, res.Project)
	assert.Equal(t, "App", res.Scheme)
	assert.Equal(t, "EFGH-2", res.Simulator.UDID)
	assert.Equal(t, "10.0", res.Simulator.Version)
	assert.Equal(t, domain.PackagerNotRunning, res.PackagerStatus)
	assert.True(t, res.PackagerLaunched)
	assert.Equal(t, appPath, res.AppPath)
	assert.Equal(t, "org.reactjs.native.example.App", res.BundleID)

	assert.Equal(t, []string{
		"xcrun simctl list devices",
		"xcrun instruments -w iPhone 6 (10.0)",
		"open " + filepath.Join(h.root, "node_modules/react-native/scripts/launchPackager.command"),
		"xcodebuild -workspace App.xcworkspace -scheme App -destination id=EFGH-2 -configuration Debug -derivedDataPath build",
		"xcrun simctl install EFGH-2 " + appPath,
		xcode.PlistBuddyPath + " -c Print:CFBundleIdentifier " + filepath.Join(appPath, "Info.plist"),
		"xcrun simctl launch EFGH-2 org.reactjs.native.example.App",
	}, h.lines())

	calls := h.fake.Calls()
	assert.Equal(t, iosDir, calls[3].Dir, "xcodebuild runs inside the project directory")
	assert.Equal(t, execx.ModeStart, calls[2].Mode)

	assert.Contains(t, h.out.String(), `"message":"Found Xcode workspace App.xcworkspace"`)
	assert.Contains(t, h.out.String(), `"step":"scheme","message":"Using scheme App"`)
	assert.Contains(t, h.out.String(), `"type":"launched"`)
}

func TestRun_PackagerAlreadyRunning(t *testing.T) {
	h := newHarness(t, xcodeTools, domain.PackagerRunning)
	res, err := h.pipe.Run(context.Background(), h.options)
	require.NoError(t, err)

	assert.False(t, res.PackagerLaunched)
	for _, line := range h.lines() {
		assert.NotContains(t, line, "launchPackager")
	}
	assert.Contains(t, h.out.String(), "JS server already running.")
}

func TestRun_UnrecognizedPackagerWarnsAndLaunches(t *testing.T) {
	h := newHarness(t, xcodeTools, domain.PackagerUnrecognized)
	res, err := h.pipe.Run(context.Background(), h.options)
	require.NoError(t, err)

	assert.True(t, res.PackagerLaunched)
	assert.Contains(t, h.out.String(), `"type":"warning"`)
}

func TestRun_NoPackager(t *testing.T) {
	h := newHarness(t, xcodeTools, domain.PackagerNotRunning)
	h.options.NoPackager = true

	res, err := h.pipe.Run(context.Background(), h.options)
	require.NoError(t, err)
	assert.False(t, res.PackagerLaunched)
	assert.Equal(t, int32(0), h.prober.calls.Load())
}

func TestRun_BootedSimulatorSkipsBoot(t *testing.T) {
	h := newHarness(t, func(c execx.Call) ([]byte, error) {
		if strings.HasPrefix(c.Line(), "xcrun simctl list devices") {
			return []byte("-- iOS 10.0 --\n    iPhone 6 (EFGH-2) (Booted)\n"), nil
		}
		return xcodeTools(c)
	})

	_, err := h.pipe.Run(context.Background(), h.options)
	require.NoError(t, err)
	for _, line := range h.lines() {
		assert.NotContains(t, line, "instruments")
	}
}

func TestRun_SimctlBootStrategy(t *testing.T) {
	h := newHarness(t, xcodeTools)
	h.options.BootWith = simulator.BootSimctl

	_, err := h.pipe.Run(context.Background(), h.options)
	require.NoError(t, err)
	assert.Contains(t, h.lines(), "xcrun simctl boot EFGH-2")
}

func TestRun_SelectionByUDIDAndScheme(t *testing.T) {
	h := newHarness(t, xcodeTools)
	h.options.UDID = "ABCD-1"
	h.options.Scheme = "AppDev"
	h.options.Configuration = "Release"

	res, err := h.pipe.Run(context.Background(), h.options)
	require.NoError(t, err)
	assert.Equal(t, "9.3", res.Simulator.Version)
	assert.Contains(t, h.lines(), "xcodebuild -workspace App.xcworkspace -scheme AppDev -destination id=ABCD-1 -configuration Release -derivedDataPath build")
	assert.True(t, strings.HasSuffix(res.AppPath, filepath.Join("Release-iphonesimulator", "AppDev.app")))
}

func TestRun_Pick(t *testing.T) {
	h := newHarness(t, xcodeTools)
	h.options.Pick = func(_ context.Context, sims []domain.Simulator) (domain.Simulator, error) {
		require.Len(t, sims, 3)
		return sims[2], nil
	}

	res, err := h.pipe.Run(context.Background(), h.options)
	require.NoError(t, err)
	assert.Equal(t, "iPad Pro", res.Simulator.Name)
}

func TestRun_Failures(t *testing.T) {
	t.Run("no project", func(t *testing.T) {
		h := newHarness(t, xcodeTools)
		h.options.ProjectPath = "missing"

		_, err := h.pipe.Run(context.Background(), h.options)
		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assertStep(t, err, StepProject)
		assert.Empty(t, h.fake.Calls())
	})

	t.Run("unknown simulator", func(t *testing.T) {
		h := newHarness(t, xcodeTools)
		h.options.Simulator = "iPad Air"

		_, err := h.pipe.Run(context.Background(), h.options)
		var selErr *domain.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, "could not find iPad Air simulator", err.Error())
		assertStep(t, err, StepSelect)
	})

	t.Run("unknown udid", func(t *testing.T) {
		h := newHarness(t, xcodeTools)
		h.options.UDID = "NOPE"

		_, err := h.pipe.Run(context.Background(), h.options)
		var selErr *domain.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.True(t, selErr.ByUDID)
	})

	t.Run("listing fails", func(t *testing.T) {
		h := newHarness(t, func(c execx.Call) ([]byte, error) {
			if strings.HasPrefix(c.Line(), "xcrun simctl list") {
				return nil, execx.Exit(c, 72, "xcrun: error: unable to find utility \"simctl\"")
			}
			return xcodeTools(c)
		})

		_, err := h.pipe.Run(context.Background(), h.options)
		require.Error(t, err)
		assertStep(t, err, StepList)
	})

	t.Run("build exit 1 aborts before install", func(t *testing.T) {
		h := newHarness(t, func(c execx.Call) ([]byte, error) {
			if c.Name == "xcodebuild" {
				return nil, execx.Exit(c, 1, "** BUILD FAILED **")
			}
			return xcodeTools(c)
		})

		_, err := h.pipe.Run(context.Background(), h.options)
		var tf *domain.ExternalToolFailure
		require.ErrorAs(t, err, &tf)
		assert.Equal(t, 1, tf.ExitCode)
		assertStep(t, err, StepBuild)
		assert.Contains(t, err.Error(), "** BUILD FAILED **")

		for _, line := range h.lines() {
			assert.NotContains(t, line, "simctl install")
		}
	})

	t.Run("launch failure", func(t *testing.T) {
		h := newHarness(t, func(c execx.Call) ([]byte, error) {
			if strings.HasPrefix(c.Line(), "xcrun simctl launch") {
				return nil, execx.Exit(c, 4, "")
			}
			return xcodeTools(c)
		})

		_, err := h.pipe.Run(context.Background(), h.options)
		assertStep(t, err, StepLaunch)
	})

	t.Run("terminal failure", func(t *testing.T) {
		h := newHarness(t, func(c execx.Call) ([]byte, error) {
			if c.Name == "open" {
				return nil, errors.New("no window server")
			}
			return xcodeTools(c)
		}, domain.PackagerNotRunning)

		_, err := h.pipe.Run(context.Background(), h.options)
		assertStep(t, err, StepPackager)
	})
}

func TestRun_UnsupportedPlatformContinues(t *testing.T) {
	h := newHarness(t, xcodeTools, domain.PackagerNotRunning)
	h.pipe.Terminal = terminal.ForPlatform("plan9", terminal.Options{}, h.fake)

	res, err := h.pipe.Run(context.Background(), h.options)
	require.NoError(t, err)
	assert.False(t, res.PackagerLaunched)
	assert.Contains(t, h.out.String(), "Start the packager yourself with: sh ")
}

func TestRun_WaitPackager(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("ready", func(t *testing.T) {
		h := newHarness(t, xcodeTools, domain.PackagerNotRunning, domain.PackagerNotRunning, domain.PackagerRunning)
		mock := clock.NewMock()
		h.pipe.Clock = mock
		h.pipe.WaitInterval = time.Second
		h.options.WaitPackager = time.Minute

		done := make(chan error, 1)
		go func() {
			_, err := h.pipe.Run(context.Background(), h.options)
			done <- err
		}()
		require.NoError(t, drive(t, mock, done))
		assert.Contains(t, h.out.String(), "Packager is ready.")
	})

	t.Run("timeout is a warning", func(t *testing.T) {
		h := newHarness(t, xcodeTools, domain.PackagerNotRunning)
		mock := clock.NewMock()
		h.pipe.Clock = mock
		h.pipe.WaitInterval = time.Second
		h.options.WaitPackager = 5 * time.Second

		done := make(chan error, 1)
		go func() {
			_, err := h.pipe.Run(context.Background(), h.options)
			done <- err
		}()
		require.NoError(t, drive(t, mock, done))
		assert.Contains(t, h.out.String(), "Packager not ready after 5s; continuing")
	})
}

// drive advances the mock clock until the run returns
func drive(t *testing.T, mock *clock.Mock, done <-chan error) error {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-done:
			return err
		case <-deadline:
			t.Fatal("run did not finish")
			return nil
		default:
			mock.Add(time.Second)
			time.Sleep(time.Millisecond)
		}
	}
}

func assertStep(t *testing.T, err error, step string) {
	t.Helper()
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, step, se.Step)
}
