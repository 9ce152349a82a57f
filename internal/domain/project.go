package domain

// XcodeProject is the project or workspace found in the iOS directory
type XcodeProject struct {
	Name        string `json:"name"`
	IsWorkspace bool   `json:"isWorkspace"`
}

// Kind returns "workspace" or "project"
func (p XcodeProject) Kind() string {
	if p.IsWorkspace {
		return "workspace"
	}
	return "project"
}

// PackagerStatus is the result of probing the development server
type PackagerStatus string

const (
	PackagerRunning      PackagerStatus = "running"
	PackagerNotRunning   PackagerStatus = "not_running"
	PackagerUnrecognized PackagerStatus = "unrecognized"
)
