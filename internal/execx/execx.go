// Package execx runs external developer tools and turns their failures into
// domain.ExternalToolFailure values.
package execx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/vburojevic/runios/internal/domain"
	"go.uber.org/zap"
)

// Command describes one external process invocation
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes external commands.
//
// Output captures stdout, Run streams to the writers set on the command and
// Start launches a process without waiting for it.
type Runner interface {
	Output(ctx context.Context, c Command) ([]byte, error)
	Run(ctx context.Context, c Command) error
	Start(ctx context.Context, c Command) error
}

// ExecRunner is the os/exec backed Runner
type ExecRunner struct {
	log *zap.Logger
}

// NewRunner creates a Runner that logs every invocation at debug level
func NewRunner(log *zap.Logger) *ExecRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecRunner{log: log}
}

// Output runs the command and returns its stdout
func (r *ExecRunner) Output(ctx context.Context, c Command) ([]byte, error) {
	r.log.Debug("exec", zap.String("cmd", c.Name), zap.Strings("args", c.Args), zap.String("dir", c.Dir))

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if c.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, c.Stderr)
	}

	out, err := cmd.Output()
	if err != nil {
		return out, toolFailure(c, err, stderr.String())
	}
	return out, nil
}

// Run runs the command with stdio attached to the writers on c
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	r.log.Debug("exec", zap.String("cmd", c.Name), zap.Strings("args", c.Args), zap.String("dir", c.Dir))

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return toolFailure(c, err, "")
	}
	return nil
}

// Start launches the command and releases it. The process is not tied to ctx
// so it outlives this one.
func (r *ExecRunner) Start(_ context.Context, c Command) error {
	r.log.Debug("exec start", zap.String("cmd", c.Name), zap.Strings("args", c.Args), zap.String("dir", c.Dir))

	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Start(); err != nil {
		return toolFailure(c, err, "")
	}
	return cmd.Process.Release()
}

func toolFailure(c Command, err error, stderr string) error {
	code := -1
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code = ee.ExitCode()
		if stderr == "" {
			stderr = string(ee.Stderr)
		}
	}
	return &domain.ExternalToolFailure{
		Tool:     c.Name,
		Args:     c.Args,
		ExitCode: code,
		Stderr:   stderr,
		Err:      err,
	}
}

// ExitCode reports the exit status carried by err, or -1 if there is none
func ExitCode(err error) int {
	var tf *domain.ExternalToolFailure
	if errors.As(err, &tf) {
		return tf.ExitCode
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
