package xcode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/runios/internal/domain"
)

func TestFindProject(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  domain.XcodeProject
		found bool
	}{
		{"project only", []string{"AppDelegate.m", "MyApp.xcodeproj", "Podfile"}, domain.XcodeProject{Name: "MyApp.xcodeproj"}, true},
		{"workspace wins", []string{"MyApp.xcodeproj", "MyApp.xcworkspace", "Pods"}, domain.XcodeProject{Name: "MyApp.xcworkspace", IsWorkspace: true}, true},
		{"workspace wins regardless of order", []string{"Zeta.xcworkspace", "Alpha.xcodeproj"}, domain.XcodeProject{Name: "Zeta.xcworkspace", IsWorkspace: true}, true},
		{"first project in sorted order", []string{"Zed.xcodeproj", "Alpha.xcodeproj"}, domain.XcodeProject{Name: "Alpha.xcodeproj"}, true},
		{"nothing", []string{"README.md", "main.m"}, domain.XcodeProject{}, false},
		{"empty", nil, domain.XcodeProject{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindProject(tt.names)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverProject(t *testing.T) {
	t.Run("finds project directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "MyApp.xcodeproj"), 0o755))

		project, err := DiscoverProject(dir)
		require.NoError(t, err)
		assert.Equal(t, "MyApp.xcodeproj", project.Name)
		assert.False(t, project.IsWorkspace)
		assert.Equal(t, "project", project.Kind())
	})

	t.Run("no project is a configuration error", func(t *testing.T) {
		dir := t.TempDir()
		_, err := DiscoverProject(dir)

		var cfgErr *domain.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, dir, cfgErr.Dir)
	})

	t.Run("missing directory is a configuration error", func(t *testing.T) {
		_, err := DiscoverProject(filepath.Join(t.TempDir(), "ios"))
		var cfgErr *domain.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})
}

func TestInferScheme(t *testing.T) {
	assert.Equal(t, "MyApp", InferScheme(domain.XcodeProject{Name: "MyApp.xcodeproj"}))
	assert.Equal(t, "My.App", InferScheme(domain.XcodeProject{Name: "My.App.xcworkspace", IsWorkspace: true}))
}
