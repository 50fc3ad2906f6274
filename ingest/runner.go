package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/jamfgraph"
)

// Step statuses recorded per completed step.
const (
	StepSucceeded = "succeeded"
	StepFailed    = "failed"
	StepSkipped   = "skipped"
)

// Step is one unit of an ingestion run. Execute fetches, converts, and
// persists one vendor collection. DependsOn names the steps whose output this
// step reads; the runner skips a step when any dependency failed.
type Step struct {
	// ID is the stable step identifier used in dependency declarations.
	ID string

	// Name is the human-readable step name used in logs.
	Name string

	// DependsOn lists the IDs of steps that must succeed before this one runs.
	DependsOn []string

	// Execute performs the step.
	Execute func(ctx context.Context, ic *Context) error
}

// Runner executes steps in dependency order with per-step tracing, metrics,
// and failure isolation.
type Runner struct {
	steps   []Step
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// WithLogger sets the runner's structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) error {
		r.logger = logger
		return nil
	}
}

// WithTracerProvider enables per-run and per-step spans.
func WithTracerProvider(tp trace.TracerProvider) RunnerOption {
	return func(r *Runner) error {
		r.tracer = tp.Tracer("jamfgraph/ingest")
		return nil
	}
}

// WithMeterProvider enables run counters.
func WithMeterProvider(mp metric.MeterProvider) RunnerOption {
	return func(r *Runner) error {
		m, err := NewMetrics(mp.Meter("jamfgraph/ingest"))
		if err != nil {
			return err
		}
		r.metrics = m
		return nil
	}
}

// NewRunner creates a runner for the given steps. The step set is validated
// eagerly: duplicate IDs, unknown dependencies, and dependency cycles are
// rejected here rather than at run time.
func NewRunner(steps []Step, opts ...RunnerOption) (*Runner, error) {
	ordered, err := resolveOrder(steps)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		steps:  ordered,
		logger: slog.Default(),
		tracer: tracenoop.NewTracerProvider().Tracer("jamfgraph/ingest"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.metrics == nil {
		m, err := NewMetrics(metricnoop.NewMeterProvider().Meter("jamfgraph/ingest"))
		if err != nil {
			return nil, err
		}
		r.metrics = m
	}
	return r, nil
}

// Run executes every step. Steps whose dependencies all succeeded run even
// when unrelated steps have failed; dependents of a failed or skipped step
// are skipped. The returned error joins the individual step errors, or is
// nil when every step succeeded.
func (r *Runner) Run(ctx context.Context, ic *Context) error {
	runID := uuid.NewString()

	logger := r.logger.With("run_id", runID, "account_id", ic.Account.ID)
	ic.Logger = logger
	ic.Metrics = r.metrics

	ctx, span := r.tracer.Start(ctx, "ingest.run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("account.id", ic.Account.ID),
		attribute.Int("run.steps", len(r.steps)),
	))
	defer span.End()

	logger.Info("ingestion run started", "steps", len(r.steps))
	start := time.Now()

	unmet := make(map[string]bool, len(r.steps))
	var errs []error

	for _, step := range r.steps {
		if dep := blockedBy(step, unmet); dep != "" {
			logger.Warn("step skipped", "step", step.ID, "blocked_by", dep)
			r.metrics.RecordStep(ctx, step.ID, StepSkipped)
			unmet[step.ID] = true
			continue
		}

		stepCtx, stepSpan := r.tracer.Start(ctx, "ingest.step", trace.WithAttributes(
			attribute.String("step.id", step.ID),
		))
		stepStart := time.Now()

		err := step.Execute(stepCtx, ic)
		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			logger.Error("step failed",
				"step", step.ID,
				"error", err,
				"code", jamfgraph.ErrorCode(err),
				"duration", time.Since(stepStart))
			r.metrics.RecordStep(ctx, step.ID, StepFailed)
			unmet[step.ID] = true
			errs = append(errs, fmt.Errorf("step %s: %w", step.ID, err))
			continue
		}

		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Info("step completed", "step", step.ID, "duration", time.Since(stepStart))
		r.metrics.RecordStep(ctx, step.ID, StepSucceeded)
	}

	if len(errs) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d steps failed", len(errs), len(r.steps)))
		logger.Error("ingestion run finished with failures",
			"failed_steps", len(errs),
			"duration", time.Since(start))
		return errors.Join(errs...)
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("ingestion run finished", "duration", time.Since(start))
	return nil
}

// blockedBy returns the first dependency of step that did not succeed, or "".
func blockedBy(step Step, unmet map[string]bool) string {
	for _, dep := range step.DependsOn {
		if unmet[dep] {
			return dep
		}
	}
	return ""
}

// resolveOrder validates the step set and returns it in an order where every
// step follows all of its dependencies.
func resolveOrder(steps []Step) ([]Step, error) {
	const op = "ingest.resolveOrder"

	known := make(map[string]bool, len(steps))
	for _, step := range steps {
		if step.ID == "" {
			return nil, jamfgraph.NewValidationError(op, errors.New("step ID cannot be empty"))
		}
		if step.Execute == nil {
			return nil, jamfgraph.NewValidationError(op,
				fmt.Errorf("step %s has no Execute function", step.ID))
		}
		if known[step.ID] {
			return nil, jamfgraph.NewValidationError(op,
				fmt.Errorf("duplicate step ID %s", step.ID))
		}
		known[step.ID] = true
	}

	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if !known[dep] {
				return nil, jamfgraph.NewExecutionError(op, jamfgraph.CodeStepDependency,
					fmt.Errorf("step %s depends on unknown step %s", step.ID, dep))
			}
		}
	}

	placed := make(map[string]bool, len(steps))
	ordered := make([]Step, 0, len(steps))
	remaining := steps

	for len(remaining) > 0 {
		var next []Step
		progress := false
		for _, step := range remaining {
			ready := true
			for _, dep := range step.DependsOn {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if !ready {
				next = append(next, step)
				continue
			}
			placed[step.ID] = true
			ordered = append(ordered, step)
			progress = true
		}
		if !progress {
			return nil, jamfgraph.NewExecutionError(op, jamfgraph.CodeStepDependency,
				fmt.Errorf("dependency cycle involving step %s", next[0].ID))
		}
		remaining = next
	}

	return ordered, nil
}
