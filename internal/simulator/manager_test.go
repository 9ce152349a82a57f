package simulator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/execx"
)

func TestNewManager(t *testing.T) {
	mgr := NewManager(&execx.Fake{}, nil)
	assert.NotNil(t, mgr)
	assert.Equal(t, "xcrun", mgr.xcrunPath)
}

func TestManager_ListSimulators(t *testing.T) {
	t.Run("text listing", func(t *testing.T) {
		fake := &execx.Fake{Handler: func(c execx.Call) ([]byte, error) {
			return []byte(scenarioList), nil
		}}
		res, err := NewManager(fake, nil).ListSimulators(context.Background(), ListFormatText)
		require.NoError(t, err)
		assert.Len(t, res.Simulators, 2)

		calls := fake.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "xcrun simctl list devices", calls[0].Line())
	})

	t.Run("json listing", func(t *testing.T) {
		fake := &execx.Fake{Handler: func(c execx.Call) ([]byte, error) {
			return []byte(`{"devices":{"com.apple.CoreSimulator.SimRuntime.iOS-17-0":[{"name":"iPhone 15","udid":"U-1","state":"Booted"}]}}`), nil
		}}
		res, err := NewManager(fake, nil).ListSimulators(context.Background(), ListFormatJSON)
		require.NoError(t, err)
		require.Len(t, res.Simulators, 1)
		assert.Equal(t, "xcrun simctl list devices --json", fake.Calls()[0].Line())
	})

	t.Run("tool failure is returned", func(t *testing.T) {
		fake := &execx.Fake{Handler: func(c execx.Call) ([]byte, error) {
			return nil, execx.Exit(c, 72, "xcrun: error: unable to find utility \"simctl\"")
		}}
		_, err := NewManager(fake, nil).ListSimulators(context.Background(), ListFormatText)
		require.Error(t, err)
		var tf *domain.ExternalToolFailure
		assert.True(t, errors.As(err, &tf))
		assert.Contains(t, err.Error(), "simctl list failed")
	})
}

func TestManager_ForceBoot(t *testing.T) {
	shutdown := domain.Simulator{Name: "iPhone 6", Version: "10.0", UDID: "EFGH-2", State: domain.DeviceStateShutdown}

	t.Run("instruments exit 255 is swallowed", func(t *testing.T) {
		fake := &execx.Fake{Handler: func(c execx.Call) ([]byte, error) {
			return nil, execx.Exit(c, 255, "Usage: instruments ...")
		}}
		err := NewManager(fake, nil).ForceBoot(context.Background(), shutdown, BootInstruments)
		require.NoError(t, err)

		calls := fake.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"instruments", "-w", "iPhone 6 (10.0)"}, calls[0].Args)
	})

	t.Run("instruments swallows any failure", func(t *testing.T) {
		fake := &execx.Fake{Handler: func(c execx.Call) ([]byte, error) {
			return nil, errors.New("instruments not found")
		}}
		assert.NoError(t, NewManager(fake, nil).ForceBoot(context.Background(), shutdown, BootInstruments))
	})

	t.Run("booted device is left alone", func(t *testing.T) {
		fake := &execx.Fake{}
		booted := shutdown
		booted.State = domain.DeviceStateBooted
		require.NoError(t, NewManager(fake, nil).ForceBoot(context.Background(), booted, BootInstruments))
		assert.Empty(t, fake.Calls())
	})

	t.Run("simctl boot already booted", func(t *testing.T) {
		fake := &execx.Fake{Handler: func(c execx.Call) ([]byte, error) {
			return nil, execx.Exit(c, 149, "Unable to boot device in current state: Booted")
		}}
		err := NewManager(fake, nil).ForceBoot(context.Background(), shutdown, BootSimctl)
		require.NoError(t, err)
		assert.Equal(t, "xcrun simctl boot EFGH-2", fake.Calls()[0].Line())
	})

	t.Run("simctl boot failure is fatal", func(t *testing.T) {
		fake := &execx.Fake{Handler: func(c execx.Call) ([]byte, error) {
			return nil, execx.Exit(c, 1, "Invalid device")
		}}
		err := NewManager(fake, nil).ForceBoot(context.Background(), shutdown, BootSimctl)
		require.Error(t, err)
		assert.Equal(t, 1, execx.ExitCode(err))
	})
}

func TestManager_InstallAndLaunch(t *testing.T) {
	fake := &execx.Fake{}
	mgr := NewManager(fake, nil)

	require.NoError(t, mgr.Install(context.Background(), "EFGH-2", "/tmp/build/MyApp.app"))
	require.NoError(t, mgr.Launch(context.Background(), "EFGH-2", "org.example.MyApp"))

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, execx.ModeRun, calls[0].Mode)
	assert.Equal(t, "xcrun simctl install EFGH-2 /tmp/build/MyApp.app", calls[0].Line())
	assert.Equal(t, "xcrun simctl launch EFGH-2 org.example.MyApp", calls[1].Line())

	failing := &execx.Fake{Handler: func(c execx.Call) ([]byte, error) {
		return nil, execx.Exit(c, 1, "")
	}}
	err := NewManager(failing, nil).Launch(context.Background(), "EFGH-2", "org.example.MyApp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launch failed")
}
