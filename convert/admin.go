package convert

import (
	"github.com/zero-day-ai/jamfgraph/graph"
	"github.com/zero-day-ai/jamfgraph/jamf"
)

// AdminEntities converts the administrator user collection, preserving input order.
func AdminEntities(admins []jamf.AccountUser) []*graph.Entity {
	entities := make([]*graph.Entity, 0, len(admins))
	for _, a := range admins {
		entities = append(entities, AdminEntity(a))
	}
	return entities
}

// AdminEntity converts one administrator user detail record.
func AdminEntity(a jamf.AccountUser) *graph.Entity {
	return graph.NewEntity(AdminEntityType, AdminEntityClass, a.ID).
		WithRawData(rawDataDefault, a).
		WithProperty("id", a.ID).
		WithProperty("username", a.Name).
		WithProperty("displayName", a.Name).
		WithOptionalString("fullName", a.FullName).
		WithOptionalString("email", a.Email).
		WithOptionalString("enabled", a.Enabled).
		WithOptionalString("accessLevel", a.AccessLevel).
		WithOptionalString("privilegeSet", a.PrivilegeSet)
}

// GroupEntities converts the administrator group collection, preserving input order.
func GroupEntities(groups []jamf.AccountGroup) []*graph.Entity {
	entities := make([]*graph.Entity, 0, len(groups))
	for _, g := range groups {
		entities = append(entities, GroupEntity(g))
	}
	return entities
}

// GroupEntity converts one administrator group detail record. Membership is
// expressed as relationships, not as a property.
func GroupEntity(g jamf.AccountGroup) *graph.Entity {
	return graph.NewEntity(GroupEntityType, GroupEntityClass, g.ID).
		WithRawData(rawDataDefault, g).
		WithProperty("id", g.ID).
		WithProperty("name", g.Name).
		WithProperty("displayName", g.Name).
		WithOptionalString("accessLevel", g.AccessLevel).
		WithOptionalString("privilegeSet", g.PrivilegeSet)
}
