package cli

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/output"
	"github.com/vburojevic/runios/internal/packager"
)

// StatusCmd reports whether the packager answers on its port
type StatusCmd struct {
	Port int    `default:"${config_port}" help:"Packager port (RCT_METRO_PORT)"`
	Wait string `help:"Poll until the packager is running or this duration passes (e.g. 30s)"`
}

// Run executes the status command
func (c *StatusCmd) Run(globals *Globals) error {
	if c.Port <= 0 {
		c.Port = globals.config().Packager.Port
	}
	wait, err := parseOptionalDuration(c.Wait)
	if err != nil {
		return outputErrorCommon(globals, CodeInvalidFlags, "invalid --wait: "+err.Error(), "Use a Go duration such as 30s or 2m")
	}

	ctx := context.Background()
	prober := packager.NewProber(c.Port)

	if wait > 0 {
		err := packager.WaitRunning(ctx, clock.New(), prober.Status, time.Second, wait)
		if errors.Is(err, packager.ErrWaitTimeout) {
			_ = globals.emitter().Warning("packager not running after " + wait.String())
		}
	}

	status := prober.Status(ctx)
	report := &output.PackagerOutput{
		Status: string(status),
		URL:    prober.StatusURL(),
		Port:   c.Port,
	}

	// Whoever holds the port is interesting only when it is not a packager
	if status != domain.PackagerRunning {
		listener, err := packager.FindListener(ctx, c.Port)
		if err != nil {
			globals.logger().Debug("listener lookup failed", zap.Error(err))
		} else if listener != nil {
			report.PID = listener.PID
			report.Process = listener.Name
		}
	}

	return globals.emitter().Packager(report)
}
