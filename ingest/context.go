package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zero-day-ai/jamfgraph"
	"github.com/zero-day-ai/jamfgraph/convert"
	"github.com/zero-day-ai/jamfgraph/graph"
	"github.com/zero-day-ai/jamfgraph/jamf"
	"github.com/zero-day-ai/jamfgraph/state"
)

// DataKeyParsedProfiles is the job state key under which the
// configuration-profiles step hands the parsed profile map to the computers
// step. The map holds one profile.Parsed per profile ID that parsed cleanly.
const DataKeyParsedProfiles = "parsed_configuration_profiles"

// Context carries the collaborators of one ingestion run. The runner injects
// Logger and Metrics before executing the first step.
type Context struct {
	// Client is the Jamf API client steps fetch from.
	Client jamf.Client

	// State is the job state steps persist to.
	State state.JobState

	// Account identifies the ingestion target and roots the graph.
	Account convert.Account

	// Logger is the run-scoped structured logger.
	Logger *slog.Logger

	// Metrics records run counters. Nil-safe; a run without a meter records
	// nothing.
	Metrics *Metrics
}

// AddEntity persists an entity and counts it.
func (c *Context) AddEntity(ctx context.Context, e *graph.Entity) error {
	if _, err := c.State.AddEntity(ctx, e); err != nil {
		return err
	}
	c.Metrics.AddEntities(ctx, 1)
	return nil
}

// AddRelationship persists a relationship and counts it.
func (c *Context) AddRelationship(ctx context.Context, r *graph.Relationship) error {
	if err := c.State.AddRelationship(ctx, r); err != nil {
		return err
	}
	c.Metrics.AddRelationships(ctx, 1)
	return nil
}

// accountEntity returns the root account entity created by the account step.
func (c *Context) accountEntity(ctx context.Context, op string) (*graph.Entity, error) {
	key := graph.EntityKey(convert.AccountEntityType, c.Account.ID)
	e, err := c.State.FindEntity(ctx, key)
	if err != nil {
		return nil, jamfgraph.NewInternalError(op,
			fmt.Errorf("%w: account entity %s: %v", jamfgraph.ErrMissingDependency, key, err))
	}
	return e, nil
}
