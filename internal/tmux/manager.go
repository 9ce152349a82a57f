package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// Config holds tmux session configuration
type Config struct {
	SessionName    string // e.g., "runios-myapp"
	StartDirectory string // Working directory for new sessions
}

// Manager handles all tmux session operations
type Manager struct {
	tmux    *gotmux.Tmux
	session *gotmux.Session
	pane    *gotmux.Pane
	config  *Config
	mu      sync.Mutex
}

// Errors
var (
	ErrTmuxNotInstalled   = fmt.Errorf("tmux is not installed")
	ErrNoSessionAvailable = fmt.Errorf("no tmux session available")
	ErrNoPaneAvailable    = fmt.Errorf("no tmux pane available")
)

var sessionNameRe = regexp.MustCompile(`[^a-z0-9]+`)

// IsTmuxAvailable checks if tmux is installed
func IsTmuxAvailable() bool {
	_, err := exec.LookPath("tmux")
	return err == nil
}

// InsideTmux reports whether this process runs inside a tmux client
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// NewManager creates a new tmux manager instance
func NewManager(cfg *Config) (*Manager, error) {
	if !IsTmuxAvailable() {
		return nil, ErrTmuxNotInstalled
	}

	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tmux: %w", err)
	}

	return &Manager{
		tmux:   tmux,
		config: cfg,
	}, nil
}

// GetOrCreateSession finds existing session or creates new one
func (m *Manager) GetOrCreateSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions, err := m.tmux.ListSessions()
	if err == nil {
		for _, s := range sessions {
			if s.Name == m.config.SessionName {
				m.session = s
				return m.selectFirstPane()
			}
		}
	}

	session, err := m.tmux.NewSession(&gotmux.SessionOptions{
		Name:           m.config.SessionName,
		StartDirectory: m.config.StartDirectory,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	m.session = session
	return m.selectFirstPane()
}

func (m *Manager) selectFirstPane() error {
	windows, err := m.session.ListWindows()
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}

	if len(windows) > 0 {
		panes, err := windows[0].ListPanes()
		if err != nil {
			return fmt.Errorf("failed to list panes: %w", err)
		}
		if len(panes) > 0 {
			m.pane = panes[0]
		}
	}
	return nil
}

// SendCommand types line into the session's first pane and presses Enter
func (m *Manager) SendCommand(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return ErrNoSessionAvailable
	}
	if m.pane == nil {
		return ErrNoPaneAvailable
	}

	if _, err := m.tmux.Command(sendKeysArgs(m.pane.Id, line)...); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}

// sendKeysArgs targets the pane by its unique id ("%3"), which does not
// depend on base-index or pane-base-index
func sendKeysArgs(paneID, line string) []string {
	return []string{"send-keys", "-t", paneID, line, "Enter"}
}

// AttachCommand returns the command string for attaching to session
func AttachCommand(session string) string {
	return fmt.Sprintf("tmux attach -t %s", session)
}

// GenerateSessionName creates a tmux-safe session name for a project
func GenerateSessionName(project string) string {
	name := strings.ToLower(project)
	name = sessionNameRe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return "runios-packager"
	}
	return fmt.Sprintf("runios-%s-packager", name)
}

// ShellQuote single-quotes s for the shell running in the pane
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
