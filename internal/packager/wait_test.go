package packager

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/runios/internal/domain"
	"go.uber.org/goleak"
)

// drive advances mock until WaitRunning returns
func drive(t *testing.T, mock *clock.Mock, step time.Duration, done <-chan error) error {
	t.Helper()
	for i := 0; i < 1000; i++ {
		select {
		case err := <-done:
			return err
		default:
			mock.Add(step)
		}
	}
	t.Fatal("WaitRunning did not return")
	return nil
}

func TestWaitRunning_ImmediatelyRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	calls := 0
	status := func(ctx context.Context) domain.PackagerStatus {
		calls++
		return domain.PackagerRunning
	}
	err := WaitRunning(context.Background(), clock.NewMock(), status, time.Second, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWaitRunning_BecomesRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	status := func(ctx context.Context) domain.PackagerStatus {
		if calls.Add(1) >= 3 {
			return domain.PackagerRunning
		}
		return domain.PackagerNotRunning
	}

	mock := clock.NewMock()
	done := make(chan error, 1)
	go func() {
		done <- WaitRunning(context.Background(), mock, status, time.Second, time.Hour)
	}()

	require.NoError(t, drive(t, mock, time.Second, done))
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestWaitRunning_Timeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	status := func(ctx context.Context) domain.PackagerStatus {
		return domain.PackagerUnrecognized
	}

	mock := clock.NewMock()
	done := make(chan error, 1)
	go func() {
		done <- WaitRunning(context.Background(), mock, status, time.Second, 5*time.Second)
	}()

	assert.ErrorIs(t, drive(t, mock, time.Second, done), ErrWaitTimeout)
}

func TestWaitRunning_ContextCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	status := func(ctx context.Context) domain.PackagerStatus {
		return domain.PackagerNotRunning
	}
	err := WaitRunning(ctx, clock.NewMock(), status, time.Second, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}
