package graph

import (
	"fmt"
	"strings"
)

// EntityKey creates the deterministic key for an entity of the given type and
// vendor-assigned ID. The format is "{type}_{id}" and is stable for any
// string or numeric ID.
//
// Example:
//
//	EntityKey("device_user", 5) // "device_user_5"
func EntityKey(entityType string, id any) string {
	return fmt.Sprintf("%s_%v", entityType, id)
}

// RelationKey creates the deterministic key for a relationship between two
// entity keys. The class is lower-cased so keys read uniformly regardless of
// the relationship class vocabulary. Any change to the inputs or their order
// changes the result; identical triples always collide.
//
// Example:
//
//	RelationKey("jamf_account_1", "HAS", "device_user_5")
//	// "jamf_account_1_has_device_user_5"
func RelationKey(fromKey, class, toKey string) string {
	return fmt.Sprintf("%s_%s_%s", fromKey, strings.ToLower(class), toKey)
}
