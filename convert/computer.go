package convert

import (
	"strings"

	"github.com/zero-day-ai/jamfgraph/graph"
	"github.com/zero-day-ai/jamfgraph/jamf"
	"github.com/zero-day-ai/jamfgraph/profile"
)

// Gatekeeper reports one of "App Store", "App Store and identified
// developers", or "Anywhere"; the first two mean gatekeeper is on.
const gatekeeperAppStorePrefix = "App Store"

// ComputerEntities converts the computer collection, pairing each list
// record with its detail record by general ID when one is available.
func ComputerEntities(computers []jamf.Computer, details []jamf.ComputerDetail, profilesByID map[int]*profile.Parsed) []*graph.Entity {
	entities := make([]*graph.Entity, 0, len(computers))
	for _, c := range computers {
		var detail *jamf.ComputerDetail
		for i := range details {
			if details[i].General.ID == c.ID {
				detail = &details[i]
				break
			}
		}
		entities = append(entities, ComputerEntity(c, profilesByID, detail))
	}
	return entities
}

// ComputerEntity converts one computer list record, overlaying the detail
// record when present. profilesByID is the parsed configuration-profile map
// produced by the configuration-profiles step; profile IDs without an entry
// are skipped and do not block conversion.
func ComputerEntity(c jamf.Computer, profilesByID map[int]*profile.Parsed, detail *jamf.ComputerDetail) *graph.Entity {
	e := graph.NewEntity(ComputerEntityType, ComputerEntityClass, c.ID).
		WithRawData(rawDataDefault, c).
		WithProperty("id", c.UDID).
		WithProperty("displayName", c.Name).
		WithProperty("name", c.Name).
		WithProperty("managed", c.Managed).
		WithProperty("deviceType", deviceType(c.Model)).
		WithOptionalString("username", c.Username).
		WithOptionalString("model", c.Model).
		WithOptionalString("serial", c.SerialNumber).
		WithOptionalString("department", c.Department).
		WithOptionalString("building", c.Building).
		WithOptionalString("macAddress", strings.ToLower(c.MACAddress)).
		WithOptionalString("udid", c.UDID)

	if c.ReportDateEpoch != 0 {
		e.WithProperty("lastReportedOn", c.ReportDateEpoch)
	}

	if detail == nil {
		return e
	}

	e.WithRawData(rawDataDetail, *detail)

	general := detail.General
	hardware := detail.Hardware

	// Zero epochs mean the vendor never recorded the event, not 1970.
	if general.InitialEntryDateEpoch != 0 {
		e.WithProperty("createdOn", general.InitialEntryDateEpoch)
	}
	if general.LastEnrolledDateEpoch != 0 {
		e.WithProperty("enrolledOn", general.LastEnrolledDateEpoch)
	}
	if general.LastContactTimeEpoch != 0 {
		e.WithProperty("lastSeenOn", general.LastContactTimeEpoch)
	}

	e.WithOptionalString("macAddress", strings.ToLower(general.MACAddress)).
		WithOptionalString("altMacAddress", strings.ToLower(general.AltMACAddress)).
		WithOptionalString("udid", general.UDID).
		WithOptionalString("serial", general.SerialNumber)

	if general.Platform == "Mac" {
		e.WithProperty("platform", "darwin")
		e.WithProperty("osName", "macOS")
	} else {
		e.WithOptionalString("platform", strings.ToLower(general.Platform))
		e.WithOptionalString("osName", hardware.OSName)
	}

	e.WithOptionalString("make", hardware.Make).
		WithOptionalString("osVersion", hardware.OSVersion).
		WithOptionalString("osBuild", hardware.OSBuild)

	if c.Username == "" {
		e.WithOptionalString("username", detail.Location.Username)
	}
	e.WithOptionalString("email", detail.Location.EmailAddress)

	e.WithProperty("encrypted", encrypted(detail)).
		WithOptionalString("gatekeeperStatus", hardware.GatekeeperStatus).
		WithProperty("gatekeeperEnabled", strings.HasPrefix(hardware.GatekeeperStatus, gatekeeperAppStorePrefix)).
		WithProperty("systemIntegrityProtectionEnabled", hardware.SIPStatus == "Enabled")

	applyProfilePosture(e, detail, profilesByID)

	return e
}

// deviceType classifies a computer by model: any MacBook variant is a laptop,
// everything else a desktop.
func deviceType(model string) string {
	if strings.Contains(strings.ToLower(model), "macbook") {
		return "laptop"
	}
	return "desktop"
}

// applyProfilePosture collapses the security settings of every parsed profile
// applied to the computer onto the entity. Profile IDs without a parsed
// detail are silently skipped; when none remain the posture properties stay
// absent.
func applyProfilePosture(e *graph.Entity, detail *jamf.ComputerDetail, profilesByID map[int]*profile.Parsed) {
	var profiles []*profile.Parsed
	for _, ref := range detail.ConfigurationProfiles {
		if p, ok := profilesByID[ref.ID]; ok && p != nil {
			profiles = append(profiles, p)
		}
	}
	if len(profiles) == 0 {
		return
	}

	e.WithProperty("firewallEnabled",
		collapseBool(profiles, profile.PayloadTypeFirewall, profile.PropertyEnableFirewall))
	e.WithProperty("firewallStealthModeEnabled",
		collapseBool(profiles, profile.PayloadTypeFirewall, profile.PropertyEnableStealthMode))
	e.WithProperty("firewallBlockAllIncoming",
		collapseBool(profiles, profile.PayloadTypeFirewall, profile.PropertyBlockAllIncoming))
	e.WithProperty("screensaverLockEnabled",
		collapseBool(profiles, profile.PayloadTypeScreensaver, profile.PropertyPayloadEnabled))

	if idle, ok := collapseMin(profiles, profile.PayloadTypeScreensaver, profile.PropertyLoginWindowIdleTime); ok {
		e.WithProperty("screensaverIdleTime", int(idle))
	}
}

// encrypted reports whether the computer's primary boot partition is fully
// FileVault encrypted, accepting either the legacy or the current field pair.
func encrypted(detail *jamf.ComputerDetail) bool {
	p := primaryBootPartition(detail.Hardware.Storage)
	if p == nil {
		return false
	}
	return (partitionString(p, "filevault_status") == "Encrypted" && partitionNumber(p, "filevault_percent") == 100) ||
		(partitionString(p, "filevault2_status") == "Encrypted" && partitionNumber(p, "filevault2_percent") == 100)
}

// primaryBootPartition selects the partition that holds the operating system.
// With exactly one storage device carrying exactly one partition, that
// partition is primary regardless of its type; otherwise the first partition
// of type "boot" across all devices wins, and nil means no primary exists.
func primaryBootPartition(storage any) map[string]any {
	storageList := jamf.Sequence(storage)

	for _, raw := range storageList {
		device, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if inner, ok := device["device"].(map[string]any); ok {
			device = inner
		}

		partitions := jamf.Sequence(device["partition"])

		if len(storageList) == 1 && len(partitions) == 1 {
			p, _ := partitions[0].(map[string]any)
			return p
		}

		for _, rawPartition := range partitions {
			p, ok := rawPartition.(map[string]any)
			if !ok {
				continue
			}
			if partitionString(p, "type") == "boot" {
				return p
			}
		}
	}

	return nil
}

func partitionString(p map[string]any, field string) string {
	s, _ := p[field].(string)
	return s
}

// partitionNumber tolerates the numeric types JSON and plist decoding produce.
func partitionNumber(p map[string]any, field string) float64 {
	switch n := p[field].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return 0
	}
}
