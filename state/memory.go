package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/zero-day-ai/jamfgraph/graph"
)

// MemoryJobState is an in-process JobState for tests and dry runs.
// It is safe for concurrent use, although an ingestion run writes from a
// single goroutine.
type MemoryJobState struct {
	mu            sync.RWMutex
	entities      map[string]*graph.Entity
	entityOrder   []string
	relationships map[string]*graph.Relationship
	relationOrder []string
	data          map[string]json.RawMessage
}

// NewMemoryJobState creates an empty in-memory job state.
func NewMemoryJobState() *MemoryJobState {
	return &MemoryJobState{
		entities:      make(map[string]*graph.Entity),
		relationships: make(map[string]*graph.Relationship),
		data:          make(map[string]json.RawMessage),
	}
}

// AddEntity validates and stores the entity, replacing any previous record
// with the same key.
func (s *MemoryJobState) AddEntity(ctx context.Context, e *graph.Entity) (*graph.Entity, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[e.Key]; !ok {
		s.entityOrder = append(s.entityOrder, e.Key)
	}
	s.entities[e.Key] = e
	return e, nil
}

// AddRelationship validates and stores the relationship, replacing any
// previous record with the same key.
func (s *MemoryJobState) AddRelationship(ctx context.Context, r *graph.Relationship) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.relationships[r.Key]; !ok {
		s.relationOrder = append(s.relationOrder, r.Key)
	}
	s.relationships[r.Key] = r
	return nil
}

// FindEntity returns the entity with the given key, or ErrEntityNotFound.
func (s *MemoryJobState) FindEntity(ctx context.Context, key string) (*graph.Entity, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, key)
	}
	return e, nil
}

// SetData stores a handoff value under the given key. Values round-trip
// through JSON so the in-memory store has the same serialization semantics
// as the Redis-backed one.
func (s *MemoryJobState) SetData(ctx context.Context, key string, value any) error {
	if key == "" {
		return ErrInvalidKey
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

// GetData retrieves a handoff value into target, or ErrDataNotFound.
func (s *MemoryJobState) GetData(ctx context.Context, key string, target any) error {
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrDataNotFound, key)
	}
	return json.Unmarshal(raw, target)
}

// Entities returns all stored entities in insertion order.
func (s *MemoryJobState) Entities() []*graph.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*graph.Entity, 0, len(s.entityOrder))
	for _, key := range s.entityOrder {
		out = append(out, s.entities[key])
	}
	return out
}

// Relationships returns all stored relationships in insertion order.
func (s *MemoryJobState) Relationships() []*graph.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*graph.Relationship, 0, len(s.relationOrder))
	for _, key := range s.relationOrder {
		out = append(out, s.relationships[key])
	}
	return out
}
