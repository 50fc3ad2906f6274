package convert

import (
	"fmt"
	"strings"

	"github.com/zero-day-ai/jamfgraph/graph"
	"github.com/zero-day-ai/jamfgraph/jamf"
)

// RelationshipSet suppresses duplicate relationships within one ingestion
// pass. Add reports whether the relationship was first seen; duplicates are
// recorded for logging, never treated as errors.
type RelationshipSet struct {
	seen       map[string]struct{}
	duplicates []string
}

// NewRelationshipSet creates an empty duplicate-suppression set.
func NewRelationshipSet() *RelationshipSet {
	return &RelationshipSet{seen: make(map[string]struct{})}
}

// Add records the relationship key and reports true when it was not seen
// before. A repeated key is counted as a duplicate and Add returns false.
func (s *RelationshipSet) Add(r *graph.Relationship) bool {
	if _, ok := s.seen[r.Key]; ok {
		s.duplicates = append(s.duplicates, r.Key)
		return false
	}
	s.seen[r.Key] = struct{}{}
	return true
}

// Duplicates returns the keys that were suppressed, in encounter order.
func (s *RelationshipSet) Duplicates() []string {
	return s.duplicates
}

// DirectRelationship builds an edge of the given class between two persisted
// entities. The relationship type is derived from the endpoint types so the
// vocabulary stays uniform (e.g., "jamf_account_has_device_user").
func DirectRelationship(class string, from, to *graph.Entity) *graph.Relationship {
	relType := fmt.Sprintf("%s_%s_%s", from.Type, strings.ToLower(class), to.Type)
	return graph.NewRelationship(class, relType, from.Key, to.Key).WithScope(relType)
}

// UserComputerRelationships builds User-HAS-Computer edges from a user's
// computer links. Target entities are addressed by key; the computers step
// creates them independently.
func UserComputerRelationships(u jamf.User) []*graph.Relationship {
	if u.Links == nil {
		return nil
	}

	userKey := graph.EntityKey(UserEntityType, u.ID)
	relType := fmt.Sprintf("%s_has_%s", UserEntityType, ComputerEntityType)

	rels := make([]*graph.Relationship, 0, len(u.Links.Computers))
	for _, link := range u.Links.Computers {
		computerKey := graph.EntityKey(ComputerEntityType, link.ID)
		rels = append(rels, graph.NewRelationship(graph.ClassHas, relType, userKey, computerKey).WithScope(relType))
	}
	return rels
}

// GroupAdminRelationships builds Group-HAS-Admin membership edges and
// Account-MANAGES-Admin edges for every admin reachable through the group.
func GroupAdminRelationships(accountEntity, groupEntity *graph.Entity, g jamf.AccountGroup) []*graph.Relationship {
	hasType := fmt.Sprintf("%s_has_%s", GroupEntityType, AdminEntityType)
	managesType := fmt.Sprintf("%s_manages_%s", AccountEntityType, AdminEntityType)

	rels := make([]*graph.Relationship, 0, len(g.Members)*2)
	for _, member := range g.Members {
		adminKey := graph.EntityKey(AdminEntityType, member.ID)
		rels = append(rels,
			graph.NewRelationship(graph.ClassHas, hasType, groupEntity.Key, adminKey).WithScope(hasType),
			graph.NewRelationship(graph.ClassManages, managesType, accountEntity.Key, adminKey).WithScope(managesType),
		)
	}
	return rels
}

// ComputerProfileIDs returns the unique configuration-profile IDs referenced
// by a computer detail record, preserving first-seen order, together with the
// IDs that appeared more than once. Vendors do report the same profile ID
// twice on one computer; duplicates produce one USES edge and a log line.
func ComputerProfileIDs(detail *jamf.ComputerDetail) (unique, duplicates []int) {
	seen := make(map[int]struct{}, len(detail.ConfigurationProfiles))
	for _, ref := range detail.ConfigurationProfiles {
		if _, ok := seen[ref.ID]; ok {
			duplicates = append(duplicates, ref.ID)
			continue
		}
		seen[ref.ID] = struct{}{}
		unique = append(unique, ref.ID)
	}
	return unique, duplicates
}

// ApplicationRelationships synthesizes application entities from the software
// inventory of a computer detail record and links the computer to each with
// an INSTALLED edge. Applications are keyed by name and version, not fetched
// separately; two computers reporting the same application converge on one
// entity. Duplicate edges within the record are suppressed by the set.
func ApplicationRelationships(computerEntity *graph.Entity, detail *jamf.ComputerDetail, set *RelationshipSet) ([]*graph.Entity, []*graph.Relationship) {
	relType := fmt.Sprintf("%s_installed_%s", ComputerEntityType, ApplicationEntityType)

	var entities []*graph.Entity
	var rels []*graph.Relationship

	for _, app := range detail.Software.Applications {
		appID := fmt.Sprintf("%s_%s", app.Name, app.Version)
		appEntity := graph.NewEntity(ApplicationEntityType, ApplicationEntityClass, appID).
			WithProperty("name", app.Name).
			WithProperty("displayName", app.Name).
			WithOptionalString("version", app.Version).
			WithOptionalString("path", app.Path)

		rel := graph.NewRelationship(graph.ClassInstalled, relType, computerEntity.Key, appEntity.Key).
			WithScope(relType).
			WithProperty("version", app.Version).
			WithProperty("path", app.Path)

		if !set.Add(rel) {
			continue
		}

		entities = append(entities, appEntity)
		rels = append(rels, rel)
	}

	return entities, rels
}
