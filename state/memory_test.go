package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/jamfgraph/graph"
)

// exerciseJobState runs the behavior shared by every JobState implementation.
func exerciseJobState(t *testing.T, s JobState) {
	t.Helper()
	ctx := context.Background()

	t.Run("add and find entity", func(t *testing.T) {
		e := graph.NewEntity("device_user", "User", 42).
			WithProperty("username", "amalia.enciso")

		stored, err := s.AddEntity(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, "device_user_42", stored.Key)

		found, err := s.FindEntity(ctx, "device_user_42")
		require.NoError(t, err)
		assert.Equal(t, "device_user", found.Type)
		assert.Equal(t, "User", found.Class)
		assert.Equal(t, "amalia.enciso", found.Property("username"))
	})

	t.Run("add entity replaces same key", func(t *testing.T) {
		first := graph.NewEntity("user_endpoint", "Device", 7).
			WithProperty("name", "old-name")
		_, err := s.AddEntity(ctx, first)
		require.NoError(t, err)

		second := graph.NewEntity("user_endpoint", "Device", 7).
			WithProperty("name", "new-name")
		_, err = s.AddEntity(ctx, second)
		require.NoError(t, err)

		found, err := s.FindEntity(ctx, "user_endpoint_7")
		require.NoError(t, err)
		assert.Equal(t, "new-name", found.Property("name"))
	})

	t.Run("find missing entity", func(t *testing.T) {
		_, err := s.FindEntity(ctx, "device_user_9999")
		assert.ErrorIs(t, err, ErrEntityNotFound)
	})

	t.Run("find with empty key", func(t *testing.T) {
		_, err := s.FindEntity(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("add invalid entity", func(t *testing.T) {
		_, err := s.AddEntity(ctx, &graph.Entity{Key: "x"})
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})

	t.Run("add relationship", func(t *testing.T) {
		r := graph.NewRelationship(graph.ClassHas, "jamf_account_has_device_user",
			"jamf_account_1", "device_user_42")
		require.NoError(t, s.AddRelationship(ctx, r))
	})

	t.Run("add invalid relationship", func(t *testing.T) {
		err := s.AddRelationship(ctx, &graph.Relationship{FromKey: "a"})
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})

	t.Run("data round trip", func(t *testing.T) {
		in := map[string]int{"alpha": 1, "beta": 2}
		require.NoError(t, s.SetData(ctx, "counts", in))

		var out map[string]int
		require.NoError(t, s.GetData(ctx, "counts", &out))
		assert.Equal(t, in, out)
	})

	t.Run("data with integer-keyed map", func(t *testing.T) {
		in := map[int]string{3: "three", 5: "five"}
		require.NoError(t, s.SetData(ctx, "by-id", in))

		var out map[int]string
		require.NoError(t, s.GetData(ctx, "by-id", &out))
		assert.Equal(t, in, out)
	})

	t.Run("missing data key", func(t *testing.T) {
		var out map[string]int
		err := s.GetData(ctx, "never-set", &out)
		assert.ErrorIs(t, err, ErrDataNotFound)
	})

	t.Run("data with empty key", func(t *testing.T) {
		assert.ErrorIs(t, s.SetData(ctx, "", 1), ErrInvalidKey)
		var out int
		assert.ErrorIs(t, s.GetData(ctx, "", &out), ErrInvalidKey)
	})
}

func TestMemoryJobState(t *testing.T) {
	exerciseJobState(t, NewMemoryJobState())
}

func TestMemoryJobStateOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryJobState()

	for _, id := range []int{3, 1, 2} {
		_, err := s.AddEntity(ctx, graph.NewEntity("device_user", "User", id))
		require.NoError(t, err)
	}
	// Re-adding an existing key must not change its position.
	_, err := s.AddEntity(ctx, graph.NewEntity("device_user", "User", 1))
	require.NoError(t, err)

	entities := s.Entities()
	require.Len(t, entities, 3)
	assert.Equal(t, "device_user_3", entities[0].Key)
	assert.Equal(t, "device_user_1", entities[1].Key)
	assert.Equal(t, "device_user_2", entities[2].Key)

	require.NoError(t, s.AddRelationship(ctx, graph.NewRelationship(
		graph.ClassHas, "jamf_account_has_device_user", "jamf_account_1", "device_user_3")))
	require.NoError(t, s.AddRelationship(ctx, graph.NewRelationship(
		graph.ClassHas, "jamf_account_has_device_user", "jamf_account_1", "device_user_1")))

	rels := s.Relationships()
	require.Len(t, rels, 2)
	assert.Equal(t, "device_user_3", rels[0].ToKey)
	assert.Equal(t, "device_user_1", rels[1].ToKey)
}
