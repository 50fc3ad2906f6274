package state

import (
	"context"
	"errors"

	"github.com/zero-day-ai/jamfgraph/graph"
)

// Common errors returned by job state operations.
var (
	// ErrEntityNotFound is returned when a requested entity does not exist.
	ErrEntityNotFound = errors.New("state: entity not found")

	// ErrDataNotFound is returned when a requested data key does not exist.
	ErrDataNotFound = errors.New("state: data key not found")

	// ErrInvalidKey is returned when a key is empty or otherwise invalid.
	ErrInvalidKey = errors.New("state: invalid key")

	// ErrInvalidRecord is returned when a record fails validation.
	ErrInvalidRecord = errors.New("state: invalid record")
)

// JobState is the persistence collaborator of an ingestion run. Entities and
// relationships are upserted by their deterministic keys; SetData/GetData
// carry cross-step handoff values (such as the parsed-profile-by-ID map).
type JobState interface {
	// AddEntity validates and persists an entity, replacing any previous
	// record with the same key, and returns the persisted entity.
	AddEntity(ctx context.Context, e *graph.Entity) (*graph.Entity, error)

	// AddRelationship validates and persists a relationship, replacing any
	// previous record with the same key.
	AddRelationship(ctx context.Context, r *graph.Relationship) error

	// FindEntity returns the entity with the given key.
	// Returns ErrEntityNotFound if no such entity has been added.
	FindEntity(ctx context.Context, key string) (*graph.Entity, error)

	// SetData stores a handoff value under the given key. The value must be
	// JSON-serializable.
	SetData(ctx context.Context, key string, value any) error

	// GetData retrieves a handoff value into target, which must be a pointer.
	// Returns ErrDataNotFound if the key has not been set.
	GetData(ctx context.Context, key string, target any) error
}
