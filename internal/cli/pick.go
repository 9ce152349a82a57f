package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/output"
	"github.com/vburojevic/runios/internal/simulator"
)

var errPickCanceled = errors.New("selection canceled")

// PickCmd interactively picks a simulator
type PickCmd struct {
	BootedOnly bool   `short:"b" help:"Offer only booted simulators"`
	DeviceList string `default:"${config_list_format}" enum:"text,json" help:"simctl device list format to parse"`
}

// pickItem implements list.Item for the picker
type pickItem struct {
	sim domain.Simulator
}

func (i pickItem) Title() string {
	if i.sim.IsBooted() {
		return i.sim.Name + " (booted)"
	}
	return i.sim.Name
}

func (i pickItem) Description() string {
	platform := i.sim.Platform
	if platform == "" {
		platform = "iOS"
	}
	return platform + " " + i.sim.Version + " • " + i.sim.UDID
}

func (i pickItem) FilterValue() string { return i.sim.FullName() + " " + i.sim.UDID }

// pickModel is the bubbletea model for the picker
type pickModel struct {
	list     list.Model
	selected pickItem
	quitting bool
	canceled bool
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Let the list handle keys while the filter input is focused
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(pickItem); ok {
				m.selected = item
				m.quitting = true
				return m, tea.Quit
			}
		case "q", "esc", "ctrl+c":
			m.canceled = true
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// newPickModel builds the picker; the newest runtime is listed first since
// the device list is ordered oldest to newest
func newPickModel(sims []domain.Simulator) pickModel {
	items := make([]list.Item, 0, len(sims))
	for i := len(sims) - 1; i >= 0; i-- {
		items = append(items, pickItem{sim: sims[i]})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = output.Styles.Selected
	delegate.Styles.SelectedDesc = output.Styles.Selected.Foreground(output.Styles.Muted.GetForeground())

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Simulator"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = output.Styles.Title

	return pickModel{list: l}
}

// pickSimulator runs the picker on the terminal
func pickSimulator(_ context.Context, sims []domain.Simulator) (domain.Simulator, error) {
	if len(sims) == 0 {
		return domain.Simulator{}, errors.New("no simulators available")
	}

	p := tea.NewProgram(newPickModel(sims), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return domain.Simulator{}, fmt.Errorf("picker error: %w", err)
	}

	result := finalModel.(pickModel)
	if result.canceled {
		return domain.Simulator{}, errPickCanceled
	}
	return result.selected.sim, nil
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Run executes the pick command
func (c *PickCmd) Run(globals *Globals) error {
	// Require interactive terminal
	if !stdinIsTerminal() {
		return outputErrorCommon(globals, CodeNotInteractive,
			"runios pick requires an interactive terminal",
			"Use `runios list` for scripting and pass --udid to `runios run`")
	}

	ctx := context.Background()
	sims, err := listSimulators(ctx, globals, c.DeviceList)
	if err != nil {
		return outputErrorCommon(globals, CodeListFailed, err.Error(), hintForTooling(err))
	}
	if c.BootedOnly {
		sims = filterSimulators(sims, true, "")
	}
	if len(sims) == 0 {
		return outputErrorCommon(globals, CodeNoSimulators, "No simulators available")
	}

	sim, err := pickSimulator(ctx, sims)
	if err != nil {
		return outputError(globals, err)
	}
	return c.outputResult(globals, sim)
}

func (c *PickCmd) outputResult(globals *Globals, sim domain.Simulator) error {
	if globals.Format == "ndjson" {
		result := map[string]interface{}{
			"type":          "pick",
			"schemaVersion": output.SchemaVersion,
			"name":          sim.Name,
			"version":       sim.Version,
			"udid":          sim.UDID,
		}
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(result)
	}

	// Text format: output just the ID and name for piping
	_, err := io.WriteString(globals.Stdout, sim.UDID+"\t"+sim.Name+"\n")
	return err
}

func listSimulators(ctx context.Context, globals *Globals, format string) ([]domain.Simulator, error) {
	if format == "" {
		format = globals.config().Simulator.ListFormat
	}
	mgr := simulator.NewManager(globals.runner(), globals.logger())
	res, err := mgr.ListSimulators(ctx, simulator.ListFormat(format))
	if err != nil {
		return nil, err
	}
	return res.Simulators, nil
}
