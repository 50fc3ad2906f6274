package graph

import "errors"

// RawData is one raw source payload retained on an entity for audit and
// debugging. Name tags the logical origin of the payload ("default" for the
// list record, "detail" for the richer per-resource record).
type RawData struct {
	// Name is the logical name of the payload source.
	Name string `json:"name"`

	// Data is the raw vendor record as decoded from the API response.
	Data any `json:"rawData"`
}

// Entity represents a canonical node record in the output graph, one per
// real-world resource (user, computer, device, profile, application).
type Entity struct {
	// Key is the unique entity identifier, derived with EntityKey.
	Key string `json:"_key"`

	// Type is the entity type from the fixed per-kind vocabulary
	// (e.g., "device_user", "user_endpoint").
	Type string `json:"_type"`

	// Class is the semantic category of the entity (e.g., "User", "Device").
	Class string `json:"_class"`

	// Properties contains the canonical domain fields for the entity.
	// Absent vendor fields are omitted rather than set to zero values.
	Properties map[string]any `json:"properties,omitempty"`

	// RawData is the ordered sequence of raw source payloads used to build
	// this entity, tagged by logical name.
	RawData []RawData `json:"_rawData,omitempty"`
}

// NewEntity creates an Entity of the given type and class keyed by the
// vendor-assigned ID, with an initialized Properties map.
func NewEntity(entityType, class string, id any) *Entity {
	return &Entity{
		Key:        EntityKey(entityType, id),
		Type:       entityType,
		Class:      class,
		Properties: make(map[string]any),
	}
}

// WithProperty sets a single property and returns the entity for method chaining.
func (e *Entity) WithProperty(key string, value any) *Entity {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	e.Properties[key] = value
	return e
}

// WithOptionalString sets the property only when the value is non-empty.
// Empty vendor strings map to an absent canonical value.
func (e *Entity) WithOptionalString(key, value string) *Entity {
	if value != "" {
		e.WithProperty(key, value)
	}
	return e
}

// WithRawData appends a raw source payload tagged with the given logical name
// and returns the entity for method chaining.
func (e *Entity) WithRawData(name string, data any) *Entity {
	e.RawData = append(e.RawData, RawData{Name: name, Data: data})
	return e
}

// Property returns the named property value, or nil if absent.
func (e *Entity) Property(key string) any {
	if e.Properties == nil {
		return nil
	}
	return e.Properties[key]
}

// Validate checks that the entity has all required fields set correctly.
func (e *Entity) Validate() error {
	if e.Key == "" {
		return errors.New("entity key is required")
	}
	if e.Type == "" {
		return errors.New("entity type is required")
	}
	if e.Class == "" {
		return errors.New("entity class is required")
	}
	return nil
}
