package domain

import (
	"fmt"
	"strings"
)

// ConfigurationError means no Xcode project or workspace was found.
type ConfigurationError struct {
	Dir string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("could not find Xcode project files in %s folder", e.Dir)
}

// SelectionError means no simulator matched the request.
type SelectionError struct {
	Requested string
	ByUDID    bool
}

func (e *SelectionError) Error() string {
	if e.ByUDID {
		return fmt.Sprintf("could not find simulator with udid %s", e.Requested)
	}
	return fmt.Sprintf("could not find %s simulator", e.Requested)
}

// ExternalToolFailure is returned when an external process exits with an
// unexpected status or cannot be started at all. ExitCode is -1 when the
// process never ran.
type ExternalToolFailure struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalToolFailure) Error() string {
	cmdline := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	var b strings.Builder
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, "%s exited with status %d", cmdline, e.ExitCode)
	} else {
		fmt.Fprintf(&b, "%s failed: %v", cmdline, e.Err)
	}
	if tail := lastLine(e.Stderr); tail != "" {
		b.WriteString(": ")
		b.WriteString(tail)
	}
	return b.String()
}

func (e *ExternalToolFailure) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
