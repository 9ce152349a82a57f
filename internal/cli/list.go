package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/runios/internal/domain"
)

// ListCmd lists available simulators
type ListCmd struct {
	BootedOnly bool   `short:"b" help:"Show only booted simulators"`
	Platform   string `help:"Filter by platform (e.g. 'iOS', 'watchOS')"`
	DeviceList string `default:"${config_list_format}" enum:"text,json" help:"simctl device list format to parse"`
}

// Run executes the list command
func (c *ListCmd) Run(globals *Globals) error {
	sims, err := listSimulators(context.Background(), globals, c.DeviceList)
	if err != nil {
		return outputErrorCommon(globals, CodeListFailed, err.Error(), hintForTooling(err))
	}
	sims = filterSimulators(sims, c.BootedOnly, c.Platform)

	if globals.Format == "ndjson" {
		emitter := globals.emitter()
		for _, s := range sims {
			if err := emitter.Simulator(s); err != nil {
				return err
			}
		}
		return nil
	}
	return c.outputText(globals, sims)
}

func (c *ListCmd) outputText(globals *Globals, sims []domain.Simulator) error {
	if len(sims) == 0 {
		fmt.Fprintln(globals.Stdout, "No simulators found")
		return nil
	}

	rows := make([][]string, 0, len(sims))
	booted := 0
	for _, s := range sims {
		state := string(s.State)
		if s.IsBooted() {
			booted++
			state = "* " + state
		}
		runtime := strings.TrimSpace(s.Platform + " " + s.Version)
		rows = append(rows, []string{s.Name, runtime, state, s.UDID})
	}

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("NAME", "RUNTIME", "STATE", "UDID")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(globals.Stdout, "\n%d simulator(s), %d booted\n", len(sims), booted)
	return nil
}

// filterSimulators keeps booted devices when bootedOnly is set and devices
// whose platform matches platform (case-insensitive) when it is non-empty
func filterSimulators(sims []domain.Simulator, bootedOnly bool, platform string) []domain.Simulator {
	var filtered []domain.Simulator
	for _, s := range sims {
		if bootedOnly && !s.IsBooted() {
			continue
		}
		if platform != "" && !strings.EqualFold(s.Platform, platform) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}
