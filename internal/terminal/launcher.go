// Package terminal opens a new terminal window running a script, with one
// implementation per supported platform.
package terminal

import (
	"context"
	"errors"

	"github.com/vburojevic/runios/internal/execx"
)

// ErrUnsupportedPlatform is returned by launchers that cannot open a window
var ErrUnsupportedPlatform = errors.New("opening a terminal window is not supported on this platform")

// Launcher opens script in a new terminal window with dir as working directory
type Launcher interface {
	Name() string
	Open(ctx context.Context, script, dir string) error
}

// Options tune launcher selection
type Options struct {
	// App overrides the terminal application (REACT_TERMINAL, --terminal)
	App string
	// PreferTmux opens the script in a tmux session when running inside tmux
	PreferTmux bool
	// InTmux reports whether the current process is inside tmux
	InTmux bool
	// SessionName names the tmux session
	SessionName string
}

// ForPlatform returns the launcher for goos
func ForPlatform(goos string, opts Options, runner execx.Runner) Launcher {
	if opts.PreferTmux && opts.InTmux {
		return NewTmuxLauncher(opts.SessionName)
	}

	switch goos {
	case "darwin":
		return &MacLauncher{runner: runner, app: opts.App}
	case "linux", "freebsd", "openbsd", "netbsd":
		return &XTermLauncher{runner: runner, terminal: opts.App}
	default:
		return Unsupported{GOOS: goos}
	}
}
