package state

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zero-day-ai/jamfgraph/graph"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// Namespace prefixes every key so multiple ingestion targets can share
	// one Redis instance. Defaults to "jamfgraph".
	Namespace string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// RedisJobState implements JobState using go-redis/v9. Entities,
// relationships, and handoff values are stored as JSON strings under
// namespaced keys.
type RedisJobState struct {
	client    *redis.Client
	namespace string
}

// NewRedisJobState creates a Redis-backed job state with the given options.
func NewRedisJobState(opts RedisOptions) (*RedisJobState, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Namespace == "" {
		opts.Namespace = "jamfgraph"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisJobState{client: client, namespace: opts.Namespace}, nil
}

// AddEntity validates and stores the entity as JSON, replacing any previous
// record with the same key, and registers the key in the entity index set.
func (s *RedisJobState) AddEntity(ctx context.Context, e *graph.Entity) (*graph.Entity, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity %s: %w", e.Key, err)
	}

	if err := s.client.Set(ctx, s.key("entity", e.Key), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to store entity %s: %w", e.Key, err)
	}
	if err := s.client.SAdd(ctx, s.key("entities", ""), e.Key).Err(); err != nil {
		return nil, fmt.Errorf("failed to index entity %s: %w", e.Key, err)
	}

	return e, nil
}

// AddRelationship validates and stores the relationship as JSON.
func (s *RedisJobState) AddRelationship(ctx context.Context, r *graph.Relationship) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal relationship %s: %w", r.Key, err)
	}

	if err := s.client.Set(ctx, s.key("relationship", r.Key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store relationship %s: %w", r.Key, err)
	}
	if err := s.client.SAdd(ctx, s.key("relationships", ""), r.Key).Err(); err != nil {
		return fmt.Errorf("failed to index relationship %s: %w", r.Key, err)
	}

	return nil
}

// FindEntity returns the entity with the given key, or ErrEntityNotFound.
func (s *RedisJobState) FindEntity(ctx context.Context, key string) (*graph.Entity, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	data, err := s.client.Get(ctx, s.key("entity", key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, key)
		}
		return nil, fmt.Errorf("failed to fetch entity %s: %w", key, err)
	}

	var e graph.Entity
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity %s: %w", key, err)
	}
	return &e, nil
}

// SetData stores a handoff value as JSON under the given key.
func (s *RedisJobState) SetData(ctx context.Context, key string, value any) error {
	if key == "" {
		return ErrInvalidKey
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	if err := s.client.Set(ctx, s.key("data", key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store data %s: %w", key, err)
	}
	return nil
}

// GetData retrieves a handoff value into target, or ErrDataNotFound.
func (s *RedisJobState) GetData(ctx context.Context, key string, target any) error {
	if key == "" {
		return ErrInvalidKey
	}

	data, err := s.client.Get(ctx, s.key("data", key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s", ErrDataNotFound, key)
		}
		return fmt.Errorf("failed to fetch data %s: %w", key, err)
	}

	return json.Unmarshal([]byte(data), target)
}

// EntityKeys returns every stored entity key, unordered.
func (s *RedisJobState) EntityKeys(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.key("entities", "")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list entity keys: %w", err)
	}
	return keys, nil
}

// RelationshipKeys returns every stored relationship key, unordered.
func (s *RedisJobState) RelationshipKeys(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.key("relationships", "")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list relationship keys: %w", err)
	}
	return keys, nil
}

// Close closes the Redis connection.
func (s *RedisJobState) Close() error {
	return s.client.Close()
}

func (s *RedisJobState) key(kind, name string) string {
	if name == "" {
		return fmt.Sprintf("%s:%s", s.namespace, kind)
	}
	return fmt.Sprintf("%s:%s:%s", s.namespace, kind, name)
}
