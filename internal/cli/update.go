package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/runios/internal/output"
)

// UpdateCmd shows how to upgrade runios
type UpdateCmd struct{}

// UpdateOutput represents the NDJSON output for update instructions
type UpdateOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"current_version"`
	Commit        string `json:"commit"`
	GoInstall     string `json:"go_install"`
	ReleasesURL   string `json:"releases_url"`
}

const (
	goInstallCmd = "go install github.com/vburojevic/runios/cmd/runios@latest"
	releasesURL  = "https://github.com/vburojevic/runios/releases"
)

// Run executes the update command
func (c *UpdateCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(UpdateOutput{
			Type:          "update",
			SchemaVersion: output.SchemaVersion,
			Version:       Version,
			Commit:        Commit,
			GoInstall:     goInstallCmd,
			ReleasesURL:   releasesURL,
		})
	}

	_, err := fmt.Fprintf(globals.Stdout,
		"runios update instructions\n\nCurrent version: %s (%s)\n\nTo upgrade via Go:\n  %s\n\nFor release notes, see:\n  %s\n",
		Version, Commit, goInstallCmd, releasesURL)
	return err
}
