package simulator

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeviceListJSON_Fixture(t *testing.T) {
	data, err := os.ReadFile("testdata/list_devices.json")
	require.NoError(t, err)

	res := ParseDeviceListJSON(data)
	require.Len(t, res.Simulators, 4)

	// runtimes come out oldest first regardless of document order
	assert.Equal(t, "9.3", res.Simulators[0].Version)
	assert.False(t, res.Simulators[0].IsAvailable)
	assert.Equal(t, "16.4", res.Simulators[1].Version)
	assert.Equal(t, "17.2", res.Simulators[2].Version)
	assert.Equal(t, "iOS", res.Simulators[2].Platform)

	sim, ok := Select(res.Simulators, "iPhone 14")
	require.True(t, ok)
	assert.Equal(t, "7B2C9D11-2222-4A11-8C0D-1E2F3A4B0003", sim.UDID)
	assert.True(t, sim.IsBooted())
}

func TestParseDeviceListJSON_Lenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not json", "-- iOS 9.3 --"},
		{"no devices key", `{"runtimes":[]}`},
		{"devices not an object", `{"devices":[1,2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseDeviceListJSON([]byte(tt.input))
			assert.Empty(t, res.Simulators)
		})
	}
}

func TestParseDeviceListJSON_SkipsIncompleteEntries(t *testing.T) {
	input := `{"devices":{"com.apple.CoreSimulator.SimRuntime.iOS-17-0":[{"name":"iPhone 15"},{"name":"iPhone 15 Pro","udid":"U-1"}]}}`
	res := ParseDeviceListJSON([]byte(input))
	require.Len(t, res.Simulators, 1)
	assert.Equal(t, 1, res.Skipped)
	assert.True(t, res.Simulators[0].IsAvailable, "missing isAvailable defaults to available")
}

func TestParseRuntimeIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		platform string
		version  string
	}{
		{"com.apple.CoreSimulator.SimRuntime.iOS-17-0", "iOS", "17.0"},
		{"com.apple.CoreSimulator.SimRuntime.iOS-17-2", "iOS", "17.2"},
		{"com.apple.CoreSimulator.SimRuntime.watchOS-10-0", "watchOS", "10.0"},
		{"com.apple.CoreSimulator.SimRuntime.tvOS-17-0", "tvOS", "17.0"},
		{"iOS-17-0", "iOS", "17.0"},
		{"simple", "simple", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			platform, version := parseRuntimeIdentifier(tt.input)
			assert.Equal(t, tt.platform, platform)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, -1, compareVersions("9.3", "10.0"))
	assert.Equal(t, 1, compareVersions("17.2", "17.0"))
	assert.Equal(t, 0, compareVersions("17", "17.0"))
}
