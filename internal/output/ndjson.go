package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/runios/internal/domain"
)

// NDJSONWriter writes run events as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// InfoOutput is a progress message from one step of a run
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Step          string `json:"step,omitempty"`
	Message       string `json:"message"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// ErrorOutput is the machine-readable form of a failure
type ErrorOutput struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// SimulatorOutput is one parsed simulator record
type SimulatorOutput struct {
	Type          string `json:"type"` // Always "simulator"
	SchemaVersion int    `json:"schemaVersion"`
	domain.Simulator
	Booted bool `json:"booted"`
}

// PackagerOutput reports the packager state on a port
type PackagerOutput struct {
	Type          string `json:"type"` // Always "packager"
	SchemaVersion int    `json:"schemaVersion"`
	Status        string `json:"status"`
	URL           string `json:"url"`
	Port          int    `json:"port"`
	PID           int32  `json:"pid,omitempty"`
	Process       string `json:"process,omitempty"`
}

// LaunchedOutput is emitted once the app has been launched
type LaunchedOutput struct {
	Type          string `json:"type"` // Always "launched"
	SchemaVersion int    `json:"schemaVersion"`
	Simulator     string `json:"simulator"`
	UDID          string `json:"udid"`
	Scheme        string `json:"scheme"`
	Configuration string `json:"configuration"`
	AppPath       string `json:"app_path"`
	BundleID      string `json:"bundle_id"`
}

// VersionOutput carries build metadata
type VersionOutput struct {
	Type          string `json:"type"` // Always "version"
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
}

// WriteInfo outputs an informational message
func (w *NDJSONWriter) WriteInfo(step, message string) error {
	return w.encoder.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Step:          step,
		Message:       message,
	})
}

// WriteWarning outputs a warning message
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.encoder.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	out := &ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		out.Hint = hint[0]
	}
	return w.encoder.Encode(out)
}

// WriteSimulator outputs one simulator record
func (w *NDJSONWriter) WriteSimulator(sim domain.Simulator) error {
	return w.encoder.Encode(&SimulatorOutput{
		Type:          "simulator",
		SchemaVersion: SchemaVersion,
		Simulator:     sim,
		Booted:        sim.IsBooted(),
	})
}

// WritePackager outputs a packager status report
func (w *NDJSONWriter) WritePackager(p *PackagerOutput) error {
	p.Type = "packager"
	p.SchemaVersion = SchemaVersion
	return w.encoder.Encode(p)
}

// WriteLaunched outputs the final run result
func (w *NDJSONWriter) WriteLaunched(l *LaunchedOutput) error {
	l.Type = "launched"
	l.SchemaVersion = SchemaVersion
	return w.encoder.Encode(l)
}

// WriteVersion outputs build metadata
func (w *NDJSONWriter) WriteVersion(version, commit string) error {
	return w.encoder.Encode(&VersionOutput{
		Type:          "version",
		SchemaVersion: SchemaVersion,
		Version:       version,
		Commit:        commit,
	})
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}
