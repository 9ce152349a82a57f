package terminal

import (
	"context"

	"github.com/vburojevic/runios/internal/tmux"
)

// TmuxLauncher runs the script in a detached tmux session
type TmuxLauncher struct {
	sessionName string
}

func NewTmuxLauncher(sessionName string) *TmuxLauncher {
	if sessionName == "" {
		sessionName = tmux.GenerateSessionName("")
	}
	return &TmuxLauncher{sessionName: sessionName}
}

func (l *TmuxLauncher) Name() string {
	return "tmux session " + l.sessionName + " (" + tmux.AttachCommand(l.sessionName) + ")"
}

func (l *TmuxLauncher) Open(_ context.Context, script, dir string) error {
	mgr, err := tmux.NewManager(&tmux.Config{SessionName: l.sessionName, StartDirectory: dir})
	if err != nil {
		return err
	}
	if err := mgr.GetOrCreateSession(); err != nil {
		return err
	}
	return mgr.SendCommand("sh " + tmux.ShellQuote(script))
}
