package packager

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/vburojevic/runios/internal/domain"
)

// ErrWaitTimeout is returned when the packager did not come up in time
var ErrWaitTimeout = errors.New("timed out waiting for packager")

// StatusFunc reports the current packager status
type StatusFunc func(ctx context.Context) domain.PackagerStatus

// WaitRunning polls status every interval until it reports running, the
// timeout elapses on clk, or ctx is done.
func WaitRunning(ctx context.Context, clk clock.Clock, status StatusFunc, interval, timeout time.Duration) error {
	if status(ctx) == domain.PackagerRunning {
		return nil
	}

	ticker := clk.Ticker(interval)
	defer ticker.Stop()
	deadline := clk.Timer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return ErrWaitTimeout
		case <-ticker.C:
			if status(ctx) == domain.PackagerRunning {
				return nil
			}
		}
	}
}
