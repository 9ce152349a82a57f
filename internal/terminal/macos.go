package terminal

import (
	"context"
	"fmt"

	"github.com/vburojevic/runios/internal/execx"
)

// MacLauncher uses `open`, which runs .command files in Terminal.app or in
// the app given with -a
type MacLauncher struct {
	runner execx.Runner
	app    string
}

func (l *MacLauncher) Name() string {
	if l.app != "" {
		return l.app
	}
	return "Terminal"
}

func (l *MacLauncher) Open(ctx context.Context, script, dir string) error {
	args := []string{script}
	if l.app != "" {
		args = []string{"-a", l.app, script}
	}
	if err := l.runner.Start(ctx, execx.Command{Name: "open", Args: args, Dir: dir}); err != nil {
		return fmt.Errorf("failed to open %s: %w", l.Name(), err)
	}
	return nil
}
