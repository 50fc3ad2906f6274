package convert

import (
	"strings"

	"github.com/zero-day-ai/jamfgraph/graph"
	"github.com/zero-day-ai/jamfgraph/jamf"
)

// MobileDeviceEntities converts the mobile device collection, preserving input order.
func MobileDeviceEntities(devices []jamf.MobileDevice) []*graph.Entity {
	entities := make([]*graph.Entity, 0, len(devices))
	for _, d := range devices {
		entities = append(entities, MobileDeviceEntity(d))
	}
	return entities
}

// MobileDeviceEntity converts one mobile device record.
func MobileDeviceEntity(d jamf.MobileDevice) *graph.Entity {
	name := d.DeviceName
	if name == "" {
		name = d.Name
	}

	return graph.NewEntity(MobileDeviceEntityType, MobileDeviceEntityClass, d.ID).
		WithRawData(rawDataDefault, d).
		WithProperty("id", d.UDID).
		WithProperty("displayName", name).
		WithProperty("name", name).
		WithProperty("managed", d.Managed).
		WithProperty("supervised", d.Supervised).
		WithOptionalString("udid", d.UDID).
		WithOptionalString("serial", d.SerialNumber).
		WithOptionalString("model", d.Model).
		WithOptionalString("modelIdentifier", d.ModelIdentifier).
		WithOptionalString("modelDisplay", d.ModelDisplay).
		WithOptionalString("phoneNumber", d.PhoneNumber).
		WithOptionalString("wifiMacAddress", strings.ToLower(d.WifiMACAddress)).
		WithOptionalString("username", d.Username)
}
