package terminal

import (
	"context"
	"fmt"

	"github.com/vburojevic/runios/internal/execx"
)

const defaultXTerminal = "xterm"

// XTermLauncher starts `<terminal> -e sh <script>`
type XTermLauncher struct {
	runner   execx.Runner
	terminal string
}

func (l *XTermLauncher) Name() string {
	if l.terminal != "" {
		return l.terminal
	}
	return defaultXTerminal
}

func (l *XTermLauncher) Open(ctx context.Context, script, dir string) error {
	err := l.runner.Start(ctx, execx.Command{
		Name: l.Name(),
		Args: []string{"-e", "sh", script},
		Dir:  dir,
	})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", l.Name(), err)
	}
	return nil
}
