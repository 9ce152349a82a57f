// Package packager checks whether the JS development server is up.
package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/vburojevic/runios/internal/domain"
)

const (
	// DefaultPort is the port the packager listens on unless overridden
	DefaultPort = 8081

	runningBody    = "packager-status:running"
	defaultTimeout = 2 * time.Second
	maxBody        = 4096
)

// Prober asks a packager's /status endpoint what it is
type Prober struct {
	Host   string
	Port   int
	client *http.Client
}

// NewProber creates a prober for localhost:port
func NewProber(port int) *Prober {
	if port <= 0 {
		port = DefaultPort
	}
	return &Prober{
		Host: "localhost",
		Port: port,
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: &http.Transport{DisableKeepAlives: true},
		},
	}
}

// StatusURL is the endpoint probed by Status
func (p *Prober) StatusURL() string {
	return fmt.Sprintf("http://%s/status", net.JoinHostPort(p.Host, fmt.Sprint(p.Port)))
}

// Status probes the packager once. Nothing listening reads as not_running; a
// listener that answers with anything other than the packager banner reads as
// unrecognized.
func (p *Prober) Status(ctx context.Context) domain.PackagerStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.StatusURL(), nil)
	if err != nil {
		return domain.PackagerUnrecognized
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if isNotListening(err) {
			return domain.PackagerNotRunning
		}
		return domain.PackagerUnrecognized
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil || resp.StatusCode != http.StatusOK {
		return domain.PackagerUnrecognized
	}
	if strings.TrimSpace(string(body)) == runningBody {
		return domain.PackagerRunning
	}
	return domain.PackagerUnrecognized
}

func isNotListening(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return false
}
