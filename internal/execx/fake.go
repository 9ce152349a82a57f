package execx

import (
	"context"
	"strings"
	"sync"

	"github.com/vburojevic/runios/internal/domain"
)

// Mode tells a Fake handler which Runner method was called
type Mode string

const (
	ModeOutput Mode = "output"
	ModeRun    Mode = "run"
	ModeStart  Mode = "start"
)

// Call is one recorded invocation
type Call struct {
	Mode Mode
	Name string
	Args []string
	Dir  string
}

// Line renders the call as a shell-ish command line
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Fake is a Runner for tests. Handler decides stdout and error per call;
// a nil Handler succeeds with empty output.
type Fake struct {
	Handler func(c Call) ([]byte, error)

	mu    sync.Mutex
	calls []Call
}

func (f *Fake) Output(ctx context.Context, c Command) ([]byte, error) {
	return f.handle(ModeOutput, c)
}

func (f *Fake) Run(ctx context.Context, c Command) error {
	out, err := f.handle(ModeRun, c)
	if c.Stdout != nil && len(out) > 0 {
		c.Stdout.Write(out)
	}
	return err
}

func (f *Fake) Start(ctx context.Context, c Command) error {
	_, err := f.handle(ModeStart, c)
	return err
}

// Calls returns a copy of the recorded calls
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *Fake) handle(mode Mode, c Command) ([]byte, error) {
	call := Call{Mode: mode, Name: c.Name, Args: append([]string(nil), c.Args...), Dir: c.Dir}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if f.Handler == nil {
		return nil, nil
	}
	return f.Handler(call)
}

// Exit builds the failure a real process exiting with code would produce
func Exit(c Call, code int, stderr string) error {
	return &domain.ExternalToolFailure{
		Tool:     c.Name,
		Args:     c.Args,
		ExitCode: code,
		Stderr:   stderr,
	}
}
