package simulator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/vburojevic/runios/internal/domain"
)

type runtimeGroup struct {
	platform string
	version  string
	sims     []domain.Simulator
}

// ParseDeviceListJSON parses `xcrun simctl list devices --json`.
//
// Runtimes are emitted grouped by platform, oldest version first, so Select
// keeps preferring the newest runtime. Like ParseDeviceList it never fails; malformed
// input gives an empty result.
func ParseDeviceListJSON(data []byte) ParseResult {
	var res ParseResult
	if !gjson.ValidBytes(data) {
		return res
	}
	devices := gjson.GetBytes(data, "devices")
	if !devices.IsObject() {
		return res
	}

	var groups []runtimeGroup
	devices.ForEach(func(key, value gjson.Result) bool {
		platform, version := parseRuntimeIdentifier(key.String())
		if version == "" || !value.IsArray() {
			res.Skipped += len(value.Array())
			return true
		}

		g := runtimeGroup{platform: platform, version: version}
		value.ForEach(func(_, d gjson.Result) bool {
			udid := d.Get("udid").String()
			name := d.Get("name").String()
			if udid == "" || name == "" {
				res.Skipped++
				return true
			}
			available := true
			if a := d.Get("isAvailable"); a.Exists() {
				available = a.Bool()
			}
			g.sims = append(g.sims, domain.Simulator{
				Name:        name,
				Platform:    platform,
				Version:     version,
				UDID:        udid,
				State:       domain.DeviceState(d.Get("state").String()),
				IsAvailable: available,
			})
			return true
		})
		groups = append(groups, g)
		return true
	})

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].platform != groups[j].platform {
			return groups[i].platform < groups[j].platform
		}
		return compareVersions(groups[i].version, groups[j].version) < 0
	})
	for _, g := range groups {
		res.Simulators = append(res.Simulators, g.sims...)
	}
	return res
}

// parseRuntimeIdentifier splits a runtime identifier into platform and version
// e.g., "com.apple.CoreSimulator.SimRuntime.iOS-17-0" -> ("iOS", "17.0")
func parseRuntimeIdentifier(runtime string) (string, string) {
	parts := strings.Split(runtime, ".")
	lastPart := parts[len(parts)-1]

	segments := strings.Split(lastPart, "-")
	if len(segments) < 2 {
		return lastPart, ""
	}
	return segments[0], strings.Join(segments[1:], ".")
}

// compareVersions compares dotted numeric versions; non-numeric parts compare as 0
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var x, y int
		if i < len(as) {
			x, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			y, _ = strconv.Atoi(bs[i])
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}
