package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/runios/internal/domain"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	Info    lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	// Picker styles
	Title    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}{
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

	Title: lipgloss.NewStyle().Background(lipgloss.Color("39")).Foreground(lipgloss.Color("0")).Padding(0, 1),
	Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

	Selected: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Foreground(lipgloss.Color("39")).
		Padding(0, 0, 0, 1),
}

// PackagerStyle returns the style for a packager status string
func PackagerStyle(status string) lipgloss.Style {
	switch domain.PackagerStatus(status) {
	case domain.PackagerRunning:
		return Styles.Success
	case domain.PackagerNotRunning:
		return Styles.Warning
	default:
		return Styles.Danger
	}
}

// CheckIcon returns the doctor icon for a check status
func CheckIcon(status string) string {
	switch status {
	case "ok":
		return Styles.Success.Render("✓")
	case "warning":
		return Styles.Warning.Render("⚠")
	default:
		return Styles.Danger.Render("✗")
	}
}
