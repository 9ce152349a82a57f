package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/runios/internal/domain"
)

func TestTextWriter_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	require.NoError(t, w.WriteInfo("boot", "Launching iPhone 6 (10.0)..."))
	require.NoError(t, w.WriteError("TOOL_FAILED", "xcodebuild exited with status 65", "open the workspace in Xcode"))

	assert.Equal(t,
		"Launching iPhone 6 (10.0)...\n"+
			"Error [TOOL_FAILED]: xcodebuild exited with status 65\n"+
			"Hint: open the workspace in Xcode\n",
		buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestTextWriter_WriteSimulator(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	require.NoError(t, w.WriteSimulator(domain.Simulator{Name: "iPhone 6", Version: "10.0", UDID: "EFGH-2", State: domain.DeviceStateBooted}))
	require.NoError(t, w.WriteSimulator(domain.Simulator{Name: "iPad Air", Version: "10.0", UDID: "IJKL-3"}))

	assert.Equal(t, "iPhone 6 (10.0) EFGH-2 (Booted)\niPad Air (10.0) IJKL-3\n", buf.String())
}

func TestTextWriter_WritePackager(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	require.NoError(t, w.WritePackager(&PackagerOutput{Status: "unrecognized", URL: "http://localhost:8081/status", PID: 7, Process: "python3"}))
	assert.Equal(t, "Packager http://localhost:8081/status: unrecognized (port held by python3, pid 7)\n", buf.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
