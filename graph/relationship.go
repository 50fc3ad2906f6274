package graph

import "fmt"

// Relationship classes used by this integration. The class is the verb of the
// edge; the set is fixed by the mapping tables of the conversion layer.
const (
	ClassHas       = "HAS"
	ClassManages   = "MANAGES"
	ClassUses      = "USES"
	ClassInstalled = "INSTALLED"
)

// Relationship represents a canonical directed, typed edge between two
// entities, addressed by a key derived from (fromKey, class, toKey).
type Relationship struct {
	// Key is the unique relationship identifier, derived with RelationKey.
	Key string `json:"_key"`

	// Type names the specific edge kind (e.g., "jamf_account_has_device_user").
	Type string `json:"_type"`

	// Class is the relationship verb (HAS, MANAGES, USES, INSTALLED).
	Class string `json:"_class"`

	// FromKey is the source entity key.
	FromKey string `json:"_fromEntityKey"`

	// ToKey is the target entity key.
	ToKey string `json:"_toEntityKey"`

	// Scope optionally namespaces the relationship for downstream consumers.
	Scope string `json:"_scope,omitempty"`

	// Properties contains optional edge metadata (e.g., installed application
	// path and version).
	Properties map[string]any `json:"properties,omitempty"`
}

// NewRelationship creates a Relationship of the given class and type between
// two entity keys, with the key derived from the triple.
func NewRelationship(class, relType, fromKey, toKey string) *Relationship {
	return &Relationship{
		Key:     RelationKey(fromKey, class, toKey),
		Type:    relType,
		Class:   class,
		FromKey: fromKey,
		ToKey:   toKey,
	}
}

// WithScope sets the scope and returns the relationship for method chaining.
func (r *Relationship) WithScope(scope string) *Relationship {
	r.Scope = scope
	return r
}

// WithProperty sets a single property and returns the relationship for method chaining.
func (r *Relationship) WithProperty(key string, value any) *Relationship {
	if r.Properties == nil {
		r.Properties = make(map[string]any)
	}
	r.Properties[key] = value
	return r
}

// Validate checks that the relationship has all required fields populated.
func (r *Relationship) Validate() error {
	if r.FromKey == "" {
		return fmt.Errorf("relationship FromKey cannot be empty")
	}
	if r.ToKey == "" {
		return fmt.Errorf("relationship ToKey cannot be empty")
	}
	if r.Class == "" {
		return fmt.Errorf("relationship Class cannot be empty")
	}
	return nil
}
