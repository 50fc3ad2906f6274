package convert

import (
	"encoding/json"

	"github.com/zero-day-ai/jamfgraph/graph"
	"github.com/zero-day-ai/jamfgraph/jamf"
)

// UserEntities converts the user collection, preserving input order.
func UserEntities(users []jamf.User) []*graph.Entity {
	entities := make([]*graph.Entity, 0, len(users))
	for _, u := range users {
		entities = append(entities, UserEntity(u))
	}
	return entities
}

// UserEntity converts one user record. The linked resource lists are carried
// as opaque serialized strings rather than structured sub-entities; only the
// presence of computer and mobile device links feeds the derived os list.
func UserEntity(u jamf.User) *graph.Entity {
	e := graph.NewEntity(UserEntityType, UserEntityClass, u.ID).
		WithRawData(rawDataDefault, u).
		WithProperty("id", u.ID).
		WithProperty("username", u.Name).
		WithProperty("displayName", u.Name).
		WithProperty("fullName", u.FullName).
		WithProperty("email", u.Email).
		WithProperty("emailAddress", u.EmailAddress).
		WithProperty("phoneNumber", u.PhoneNumber).
		WithProperty("position", u.Position).
		WithProperty("enableCustomPhotoUrl", u.EnableCustomPhotoURL).
		WithProperty("customPhotoUrl", u.CustomPhotoURL).
		WithProperty("os", userOS(u.Links))

	if u.LDAPServer != nil {
		e.WithProperty("ldapServer", u.LDAPServer.Name)
	}

	if u.Links != nil {
		e.WithOptionalString("computer", jsonBlob(u.Links.Computers)).
			WithOptionalString("mobileDevice", jsonBlob(u.Links.MobileDevices)).
			WithOptionalString("peripheral", jsonBlob(u.Links.Peripherals)).
			WithOptionalString("vppAssignment", jsonBlob(u.Links.VPPAssignments)).
			WithProperty("totalVppCodeCount", u.Links.TotalVPPCodeCount)
	}

	return e
}

// userOS derives the operating systems a user touches from their device
// links: mobile devices contribute iOS, computers contribute macOS. A
// missing links object contributes nothing.
func userOS(links *jamf.UserLinks) []string {
	os := []string{}
	if links == nil {
		return os
	}
	if len(links.MobileDevices) > 0 {
		os = append(os, "iOS")
	}
	if len(links.Computers) > 0 {
		os = append(os, "macOS")
	}
	return os
}

// jsonBlob serializes a link list to its opaque string form, or "" when the
// list is empty or unserializable.
func jsonBlob(links []jamf.BasicRecord) string {
	if len(links) == 0 {
		return ""
	}
	b, err := json.Marshal(links)
	if err != nil {
		return ""
	}
	return string(b)
}
