package simulator

import "github.com/vburojevic/runios/internal/domain"

// Select returns the last simulator whose name equals name exactly.
//
// Scanning from the end is the tie-break when several runtimes share a device
// name: simctl lists runtimes oldest first, so the newest one wins.
func Select(sims []domain.Simulator, name string) (domain.Simulator, bool) {
	for i := len(sims) - 1; i >= 0; i-- {
		if sims[i].Name == name {
			return sims[i], true
		}
	}
	return domain.Simulator{}, false
}

// SelectByUDID returns the simulator with the given UDID.
func SelectByUDID(sims []domain.Simulator, udid string) (domain.Simulator, bool) {
	for i := len(sims) - 1; i >= 0; i-- {
		if sims[i].UDID == udid {
			return sims[i], true
		}
	}
	return domain.Simulator{}, false
}
