package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter(t *testing.T) {
	t.Run("ndjson writes everything to stdout", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		e := NewEmitter("ndjson", &stdout, &stderr)

		require.NoError(t, e.Info("scheme", "Using scheme App"))
		require.NoError(t, e.Error("NO_PROJECT", "missing", ""))

		items := decodeAll(t, &stdout)
		require.Len(t, items, 2)
		assert.Equal(t, "info", items[0]["type"])
		assert.Equal(t, "error", items[1]["type"])
		assert.Empty(t, stderr.String())
	})

	t.Run("text sends errors and warnings to stderr", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		e := NewEmitter("text", &stdout, &stderr)

		require.NoError(t, e.Info("scheme", "Using scheme App"))
		require.NoError(t, e.Warning("slow packager"))
		require.NoError(t, e.Error("NO_PROJECT", "missing", ""))

		assert.Equal(t, "Using scheme App\n", stdout.String())
		assert.Equal(t, "Warning: slow packager\nError [NO_PROJECT]: missing\n", stderr.String())
	})

	t.Run("quiet drops info and warnings but keeps errors", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		e := NewEmitter("text", &stdout, &stderr).WithQuiet(true)

		require.NoError(t, e.Info("scheme", "Using scheme App"))
		require.NoError(t, e.Warning("slow packager"))
		require.NoError(t, e.Error("NO_PROJECT", "missing", ""))

		assert.Empty(t, stdout.String())
		assert.Equal(t, "Error [NO_PROJECT]: missing\n", stderr.String())
	})
}
