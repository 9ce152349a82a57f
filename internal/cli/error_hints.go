package cli

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/vburojevic/runios/internal/domain"
)

func hintForProject() string {
	return "Run from the directory that contains your ios/ folder, or pass --project-path (or --root)"
}

func hintForSelection(err *domain.SelectionError) string {
	if err != nil && err.ByUDID {
		return "Check the UDID with `runios list`"
	}
	return "Pass --simulator with a name from `runios list`, or use --pick"
}

func hintForTooling(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// Common xcrun/Xcode-select problems.
	if strings.Contains(msg, "invalid active developer path") {
		return "Xcode CLI tools not configured; run `xcode-select --install` or `sudo xcode-select -s /Applications/Xcode.app/Contents/Developer` (then `runios doctor`)"
	}
	if strings.Contains(strings.ToLower(msg), "license") && strings.Contains(strings.ToLower(msg), "xcodebuild") {
		return "Xcode license may not be accepted; try `sudo xcodebuild -license accept` (then `runios doctor`)"
	}

	if isCommandNotFound(err, "xcrun") {
		return "xcrun not found; install Xcode Command Line Tools with `xcode-select --install` (then `runios doctor`)"
	}
	if isCommandNotFound(err, "xcodebuild") {
		return "xcodebuild not found; install Xcode and select it with `xcode-select` (then `runios doctor`)"
	}
	if strings.Contains(msg, "unable to find utility \"instruments\"") {
		return "instruments is not shipped with this Xcode; pass --boot-with simctl"
	}
	if strings.Contains(msg, "PlistBuddy") {
		return "Pass --plist-reader native to read Info.plist without PlistBuddy"
	}

	return ""
}

func isCommandNotFound(err error, name string) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, exec.ErrNotFound) && name == "" {
		return true
	}

	var ee *exec.Error
	if errors.As(err, &ee) && strings.EqualFold(ee.Name, name) && errors.Is(ee.Err, exec.ErrNotFound) {
		return true
	}

	var pe *os.PathError
	if errors.As(err, &pe) && errors.Is(pe.Err, exec.ErrNotFound) {
		if strings.EqualFold(pe.Path, name) || strings.HasSuffix(pe.Path, string(os.PathSeparator)+name) {
			return true
		}
	}

	// Fallback to string matching for wrapped errors.
	msg := err.Error()
	if strings.Contains(msg, "executable file not found") && strings.Contains(msg, name) {
		return true
	}

	return false
}
