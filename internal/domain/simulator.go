package domain

// DeviceState is the runtime marker simctl prints after a device's UDID
type DeviceState string

const (
	DeviceStateShutdown     DeviceState = "Shutdown"
	DeviceStateBooted       DeviceState = "Booted"
	DeviceStateBooting      DeviceState = "Booting"
	DeviceStateCreating     DeviceState = "Creating"
	DeviceStateShuttingDown DeviceState = "Shutting Down"
)

// Simulator is one device entry from the simctl device listing
type Simulator struct {
	Name        string      `json:"name"`
	Platform    string      `json:"platform,omitempty"`
	Version     string      `json:"version"`
	UDID        string      `json:"udid"`
	State       DeviceState `json:"state,omitempty"`
	IsAvailable bool        `json:"isAvailable"`
}

// IsBooted returns true if the device is currently booted
func (s Simulator) IsBooted() bool {
	return s.State == DeviceStateBooted
}

// FullName returns "<name> (<version>)", the form instruments -w accepts
func (s Simulator) FullName() string {
	if s.Version == "" {
		return s.Name
	}
	return s.Name + " (" + s.Version + ")"
}
