package output

import (
	"io"

	"github.com/vburojevic/runios/internal/domain"
)

// EventWriter is implemented by the NDJSON and text writers
type EventWriter interface {
	WriteInfo(step, message string) error
	WriteWarning(message string) error
	WriteError(code, message string, hint ...string) error
	WriteSimulator(sim domain.Simulator) error
	WritePackager(p *PackagerOutput) error
	WriteLaunched(l *LaunchedOutput) error
	WriteVersion(version, commit string) error
}

// Emitter routes events to the writer matching the output format. In text
// mode errors go to stderr. Quiet drops info and warning events.
type Emitter struct {
	out   EventWriter
	err   EventWriter
	quiet bool
}

// NewEmitter builds an emitter for format ("ndjson" or "text")
func NewEmitter(format string, stdout, stderr io.Writer) *Emitter {
	if format == "ndjson" {
		w := NewNDJSONWriter(stdout)
		return &Emitter{out: w, err: w}
	}
	return &Emitter{out: NewTextWriter(stdout), err: NewTextWriter(stderr)}
}

// WithQuiet toggles suppression of info and warning events
func (e *Emitter) WithQuiet(quiet bool) *Emitter {
	e.quiet = quiet
	return e
}

func (e *Emitter) Info(step, msg string) error {
	if e.quiet {
		return nil
	}
	return e.out.WriteInfo(step, msg)
}

func (e *Emitter) Warning(msg string) error {
	if e.quiet {
		return nil
	}
	return e.err.WriteWarning(msg)
}

func (e *Emitter) Error(code, msg, hint string) error { return e.err.WriteError(code, msg, hint) }
func (e *Emitter) Simulator(s domain.Simulator) error { return e.out.WriteSimulator(s) }
func (e *Emitter) Packager(p *PackagerOutput) error   { return e.out.WritePackager(p) }
func (e *Emitter) Launched(l *LaunchedOutput) error   { return e.out.WriteLaunched(l) }
func (e *Emitter) Version(version, commit string) error {
	return e.out.WriteVersion(version, commit)
}
