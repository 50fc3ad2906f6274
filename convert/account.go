package convert

import "github.com/zero-day-ai/jamfgraph/graph"

// Account identifies the ingestion target: one Jamf Pro server. It is the
// root of the graph and comes from configuration, not from an API fetch.
type Account struct {
	ID   string
	Name string
}

// AccountEntity converts the ingestion target into the root account entity.
func AccountEntity(a Account) *graph.Entity {
	return graph.NewEntity(AccountEntityType, AccountEntityClass, a.ID).
		WithRawData(rawDataDefault, a).
		WithProperty("id", a.ID).
		WithProperty("name", a.Name).
		WithProperty("displayName", a.Name)
}
