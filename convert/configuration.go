package convert

import (
	"github.com/zero-day-ai/jamfgraph/graph"
	"github.com/zero-day-ai/jamfgraph/jamf"
	"github.com/zero-day-ai/jamfgraph/profile"
)

// ConfigurationProfileEntity converts one configuration profile detail
// record. parsed may be nil when the embedded payload failed to parse; the
// entity is still created from the general section, without payload-derived
// properties.
func ConfigurationProfileEntity(detail jamf.ConfigurationProfileDetail, parsed *profile.Parsed) *graph.Entity {
	general := detail.General

	e := graph.NewEntity(ConfigurationProfileEntityType, ConfigurationProfileEntityClass, general.ID).
		WithRawData(rawDataDefault, detail).
		WithProperty("id", general.ID).
		WithProperty("name", general.Name).
		WithProperty("displayName", general.Name).
		WithProperty("userRemovable", general.UserRemovable).
		WithOptionalString("description", general.Description).
		WithOptionalString("distributionMethod", general.DistributionMethod).
		WithOptionalString("level", general.Level).
		WithOptionalString("uuid", general.UUID).
		WithOptionalString("redeployOnUpdate", general.RedeployOnUpdate)

	if parsed == nil {
		return e
	}

	// The profile's own security settings, so the profile entity is
	// queryable without traversing to the computers it applies to.
	single := []*profile.Parsed{parsed}
	e.WithProperty("payloadCount", len(parsed.Items)).
		WithProperty("firewallEnabled",
			collapseBool(single, profile.PayloadTypeFirewall, profile.PropertyEnableFirewall)).
		WithProperty("screensaverLockEnabled",
			collapseBool(single, profile.PayloadTypeScreensaver, profile.PropertyPayloadEnabled))

	if idle, ok := collapseMin(single, profile.PayloadTypeScreensaver, profile.PropertyLoginWindowIdleTime); ok {
		e.WithProperty("screensaverIdleTime", int(idle))
	}

	return e
}
