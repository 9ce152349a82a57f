package xcode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vburojevic/runios/internal/execx"
	"howett.net/plist"
)

// PlistBuddyPath is where macOS ships its property list tool
const PlistBuddyPath = "/usr/libexec/PlistBuddy"

// Reader modes for NewBundleIDReader
const (
	ReaderAuto       = "auto"
	ReaderPlistBuddy = "plistbuddy"
	ReaderNative     = "native"
)

// BundleIDReader extracts CFBundleIdentifier from a built .app
type BundleIDReader interface {
	BundleID(ctx context.Context, appPath string) (string, error)
}

// InfoPlist holds the Info.plist keys we care about
type InfoPlist struct {
	CFBundleIdentifier string `plist:"CFBundleIdentifier"`
	CFBundleName       string `plist:"CFBundleName"`
	CFBundleExecutable string `plist:"CFBundleExecutable"`
}

// PlistBuddyReader shells out to PlistBuddy
type PlistBuddyReader struct {
	runner execx.Runner
	path   string
}

func NewPlistBuddyReader(runner execx.Runner) *PlistBuddyReader {
	return &PlistBuddyReader{runner: runner, path: PlistBuddyPath}
}

func (r *PlistBuddyReader) BundleID(ctx context.Context, appPath string) (string, error) {
	out, err := r.runner.Output(ctx, execx.Command{
		Name: r.path,
		Args: []string{"-c", "Print:CFBundleIdentifier", filepath.Join(appPath, "Info.plist")},
	})
	if err != nil {
		return "", fmt.Errorf("failed to read bundle identifier: %w", err)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf("empty CFBundleIdentifier in %s", appPath)
	}
	return id, nil
}

// NativeReader decodes Info.plist in-process
type NativeReader struct{}

func (NativeReader) BundleID(_ context.Context, appPath string) (string, error) {
	info, err := ReadInfoPlist(filepath.Join(appPath, "Info.plist"))
	if err != nil {
		return "", err
	}
	if info.CFBundleIdentifier == "" {
		return "", fmt.Errorf("empty CFBundleIdentifier in %s", appPath)
	}
	return info.CFBundleIdentifier, nil
}

// ReadInfoPlist decodes an XML, binary or OpenStep Info.plist
func ReadInfoPlist(path string) (*InfoPlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var info InfoPlist
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &info, nil
}

// NewBundleIDReader returns the reader for mode. In auto mode PlistBuddy is
// used when it exists and the native decoder otherwise.
func NewBundleIDReader(mode string, runner execx.Runner) (BundleIDReader, error) {
	switch mode {
	case ReaderPlistBuddy:
		return NewPlistBuddyReader(runner), nil
	case ReaderNative:
		return NativeReader{}, nil
	case ReaderAuto, "":
		if _, err := os.Stat(PlistBuddyPath); err == nil {
			return NewPlistBuddyReader(runner), nil
		}
		return NativeReader{}, nil
	default:
		return nil, errors.New("unknown plist reader: " + mode)
	}
}
