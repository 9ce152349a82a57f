package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vburojevic/runios/internal/domain"
)

// TextWriter writes run events as human-readable lines. Styles are applied
// only when the destination is a terminal.
type TextWriter struct {
	w      io.Writer
	styled bool
}

// NewTextWriter creates a new text writer
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w, styled: IsTerminal(w)}
}

// IsTerminal reports whether w is a terminal file descriptor
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (w *TextWriter) render(style lipgloss.Style, s string) string {
	if !w.styled {
		return s
	}
	return style.Render(s)
}

func (w *TextWriter) line(s string) error {
	_, err := io.WriteString(w.w, s+"\n")
	return err
}

// WriteInfo outputs a progress line
func (w *TextWriter) WriteInfo(_ string, message string) error {
	return w.line(w.render(Styles.Info, message))
}

// WriteWarning outputs a styled warning
func (w *TextWriter) WriteWarning(message string) error {
	return w.line(w.render(Styles.Warning, "Warning:") + " " + message)
}

// WriteError outputs a styled error and its hint
func (w *TextWriter) WriteError(code, message string, hint ...string) error {
	line := w.render(Styles.Danger, "Error") + " " + w.render(Styles.Warning, "["+code+"]") + ": " + message
	if len(hint) > 0 && hint[0] != "" {
		line += "\n" + w.render(Styles.Label, "Hint: ") + hint[0]
	}
	return w.line(line)
}

// WriteSimulator outputs one simulator as a single line
func (w *TextWriter) WriteSimulator(sim domain.Simulator) error {
	line := sim.FullName() + " " + w.render(Styles.Label, sim.UDID)
	if sim.State != "" {
		style := Styles.Label
		if sim.IsBooted() {
			style = Styles.Success
		}
		line += " " + w.render(style, "("+string(sim.State)+")")
	}
	return w.line(line)
}

// WritePackager outputs a packager status line
func (w *TextWriter) WritePackager(p *PackagerOutput) error {
	line := w.render(Styles.Label, "Packager "+p.URL+": ") + w.render(PackagerStyle(p.Status), p.Status)
	if p.PID > 0 {
		line += fmt.Sprintf(" (port held by %s, pid %d)", p.Process, p.PID)
	}
	return w.line(line)
}

// WriteLaunched outputs the final run result
func (w *TextWriter) WriteLaunched(l *LaunchedOutput) error {
	return w.line(w.render(Styles.Success, "Launched "+l.BundleID) + " on " + l.Simulator)
}

// WriteVersion outputs build metadata
func (w *TextWriter) WriteVersion(version, commit string) error {
	return w.line("runios version " + version + " (" + commit + ")")
}
