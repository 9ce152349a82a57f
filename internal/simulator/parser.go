package simulator

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/vburojevic/runios/internal/domain"
)

var (
	// "-- iOS 17.0 --", "-- watchOS 10.0 --", "-- Unavailable: com.apple... --"
	sectionHeaderRe = regexp.MustCompile(`^--\s+(.+?)\s+--$`)
	// "iOS 9.3:" as printed by older simctl releases. Only a label with a
	// version token counts, so a stray "Note:" line does not end a section.
	colonHeaderRe = regexp.MustCompile(`^([^()]+?):$`)
	// "== Devices =="
	bannerRe = regexp.MustCompile(`^==\s+.+\s+==$`)
	// "iOS 17.0", "watchOS 10.2"
	runtimeLabelRe = regexp.MustCompile(`^(\S+)\s+(\d+(?:\.\d+)*)$`)
	// "    iPhone 15 Pro (9E6A...) (Booted)". The name is lazy and the line is
	// anchored at the end so names that contain parentheses keep them.
	deviceLineRe = regexp.MustCompile(`^\s*(.+?) \(([A-Za-z0-9-]+)\)(?: \(([^()]*)\))?\s*$`)
)

// ParseResult is the outcome of parsing a simctl device listing.
type ParseResult struct {
	Simulators []domain.Simulator
	// Skipped counts non-blank lines that were neither section headers nor
	// accepted device lines.
	Skipped int
}

// ParseDeviceList parses the text printed by `xcrun simctl list devices`.
//
// It never fails: lines it does not understand are counted in Skipped and
// otherwise ignored, so format drift in simctl degrades to fewer records.
// Every device is tagged with the version of the nearest preceding section
// header; devices under a header without a version token (for example the
// "Unavailable: ..." section) or before any header are skipped.
func ParseDeviceList(text string) ParseResult {
	var res ParseResult
	currentPlatform, currentVersion := "", ""

	// bufio.Reader has no line length limit, unlike bufio.Scanner
	r := bufio.NewReader(strings.NewReader(text))
	for {
		raw, err := r.ReadString('\n')
		if raw == "" && err == io.EOF {
			break
		}
		line := strings.TrimRight(raw, "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if bannerRe.MatchString(trimmed) {
			continue
		}

		if label, ok := sectionLabel(trimmed); ok {
			currentPlatform, currentVersion = "", ""
			if v := runtimeLabelRe.FindStringSubmatch(label); v != nil {
				currentPlatform, currentVersion = v[1], v[2]
			}
			continue
		}

		m := deviceLineRe.FindStringSubmatch(line)
		if m == nil || currentVersion == "" {
			res.Skipped++
			continue
		}

		sim := domain.Simulator{
			Name:        strings.TrimSpace(m[1]),
			UDID:        m[2],
			Platform:    currentPlatform,
			Version:     currentVersion,
			IsAvailable: true,
		}
		applyMarker(&sim, m[3])
		res.Simulators = append(res.Simulators, sim)
	}

	return res
}

// sectionLabel reports whether line is a section header and returns its label
func sectionLabel(line string) (string, bool) {
	if m := sectionHeaderRe.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := colonHeaderRe.FindStringSubmatch(line); m != nil {
		label := strings.TrimSpace(m[1])
		if runtimeLabelRe.MatchString(label) {
			return label, true
		}
	}
	return "", false
}

// applyMarker interprets the optional trailing "(...)" of a device line.
// Unknown markers leave the device available with no state.
func applyMarker(sim *domain.Simulator, marker string) {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return
	}

	switch domain.DeviceState(marker) {
	case domain.DeviceStateBooted, domain.DeviceStateShutdown, domain.DeviceStateBooting,
		domain.DeviceStateCreating, domain.DeviceStateShuttingDown:
		sim.State = domain.DeviceState(marker)
		return
	}

	if strings.HasPrefix(strings.ToLower(marker), "unavailable") {
		sim.IsAvailable = false
	}
}
