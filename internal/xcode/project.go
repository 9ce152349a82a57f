// Package xcode finds the Xcode project, builds it with xcodebuild and reads
// metadata from the built app bundle.
package xcode

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vburojevic/runios/internal/domain"
)

const (
	workspaceExt = ".xcworkspace"
	projectExt   = ".xcodeproj"
)

// FindProject picks the project from a directory listing. A workspace wins
// over a project; among several of the same kind the first name in sorted
// order is used.
func FindProject(names []string) (domain.XcodeProject, bool) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	var project domain.XcodeProject
	found := false
	for _, name := range sorted {
		switch filepath.Ext(name) {
		case workspaceExt:
			return domain.XcodeProject{Name: name, IsWorkspace: true}, true
		case projectExt:
			if !found {
				project = domain.XcodeProject{Name: name}
				found = true
			}
		}
	}
	return project, found
}

// DiscoverProject lists dir and finds the project in it
func DiscoverProject(dir string) (domain.XcodeProject, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.XcodeProject{}, &domain.ConfigurationError{Dir: dir}
		}
		return domain.XcodeProject{}, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	project, ok := FindProject(names)
	if !ok {
		return domain.XcodeProject{}, &domain.ConfigurationError{Dir: dir}
	}
	return project, nil
}

// InferScheme returns the project file name without its extension
func InferScheme(project domain.XcodeProject) string {
	return strings.TrimSuffix(project.Name, filepath.Ext(project.Name))
}
