package terminal

import "context"

// Unsupported is the launcher for platforms without a terminal integration
type Unsupported struct {
	GOOS string
}

func (u Unsupported) Name() string { return "none (" + u.GOOS + ")" }

func (u Unsupported) Open(context.Context, string, string) error {
	return ErrUnsupportedPlatform
}
