package ingest

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the OpenTelemetry instruments of the ingestion runner. All
// record methods are safe on a nil receiver so steps never have to check
// whether a meter was configured.
type Metrics struct {
	// entities counts entities written to job state
	entities metric.Int64Counter

	// relationships counts relationships written to job state
	relationships metric.Int64Counter

	// duplicates counts relationships suppressed as duplicates
	duplicates metric.Int64Counter

	// detailFailures counts per-computer detail fetches that failed
	detailFailures metric.Int64Counter

	// steps counts step completions, tagged with step ID and status
	steps metric.Int64Counter
}

// NewMetrics creates the runner's metric instruments from the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.entities, err = meter.Int64Counter(
		"ingest.entities",
		metric.WithDescription("Entities written to job state"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create entities counter: %w", err)
	}

	m.relationships, err = meter.Int64Counter(
		"ingest.relationships",
		metric.WithDescription("Relationships written to job state"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create relationships counter: %w", err)
	}

	m.duplicates, err = meter.Int64Counter(
		"ingest.duplicate_relationships",
		metric.WithDescription("Relationships suppressed as duplicates"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duplicates counter: %w", err)
	}

	m.detailFailures, err = meter.Int64Counter(
		"ingest.detail_fetch_failures",
		metric.WithDescription("Per-computer detail fetches that failed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create detail failures counter: %w", err)
	}

	m.steps, err = meter.Int64Counter(
		"ingest.steps",
		metric.WithDescription("Step completions by status"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create steps counter: %w", err)
	}

	return m, nil
}

// AddEntities records n entities written.
func (m *Metrics) AddEntities(ctx context.Context, n int64) {
	if m == nil || m.entities == nil {
		return
	}
	m.entities.Add(ctx, n)
}

// AddRelationships records n relationships written.
func (m *Metrics) AddRelationships(ctx context.Context, n int64) {
	if m == nil || m.relationships == nil {
		return
	}
	m.relationships.Add(ctx, n)
}

// AddDuplicates records n suppressed duplicate relationships.
func (m *Metrics) AddDuplicates(ctx context.Context, n int64) {
	if m == nil || m.duplicates == nil {
		return
	}
	m.duplicates.Add(ctx, n)
}

// AddDetailFailures records n failed per-computer detail fetches.
func (m *Metrics) AddDetailFailures(ctx context.Context, n int64) {
	if m == nil || m.detailFailures == nil {
		return
	}
	m.detailFailures.Add(ctx, n)
}

// RecordStep records one step completion with its terminal status
// ("succeeded", "failed", or "skipped").
func (m *Metrics) RecordStep(ctx context.Context, stepID, status string) {
	if m == nil || m.steps == nil {
		return
	}
	m.steps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("step.id", stepID),
		attribute.String("step.status", status),
	))
}
