package packager

import (
	"context"
	"fmt"

	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// Listener is a process bound to the packager port
type Listener struct {
	PID  int32  `json:"pid"`
	Name string `json:"name,omitempty"`
}

// FindListener returns the process listening on TCP port, if any
func FindListener(ctx context.Context, port int) (*Listener, error) {
	conns, err := gnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	for _, c := range conns {
		if c.Status != "LISTEN" || c.Laddr.Port != uint32(port) {
			continue
		}
		l := &Listener{PID: c.Pid}
		if c.Pid > 0 {
			if p, err := process.NewProcessWithContext(ctx, c.Pid); err == nil {
				if name, err := p.NameWithContext(ctx); err == nil {
					l.Name = name
				}
			}
		}
		return l, nil
	}
	return nil, nil
}
