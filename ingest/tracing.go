package ingest

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// LogSpanExporter implements the OpenTelemetry SpanExporter interface and
// writes completed spans to a structured logger. It is the default exporter
// of the ingestion command, where a run's spans are operator diagnostics
// rather than input to a tracing backend.
//
// Export errors never propagate: a broken log sink must not break the run.
type LogSpanExporter struct {
	logger *slog.Logger
}

// NewLogSpanExporter creates an exporter that records spans through logger.
func NewLogSpanExporter(logger *slog.Logger) *LogSpanExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSpanExporter{logger: logger}
}

// ExportSpans logs one line per completed span.
func (e *LogSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		attrs := make([]any, 0, 8+2*len(span.Attributes()))
		attrs = append(attrs,
			"span", span.Name(),
			"trace_id", span.SpanContext().TraceID().String(),
			"duration", span.EndTime().Sub(span.StartTime()),
			"status", span.Status().Code.String(),
		)
		for _, attr := range span.Attributes() {
			attrs = append(attrs, string(attr.Key), attr.Value.Emit())
		}
		e.logger.Debug("span completed", attrs...)
	}
	return nil
}

// Shutdown implements the SpanExporter interface. The exporter holds no
// resources.
func (e *LogSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// NewTracerProvider creates a TracerProvider that exports every completed
// span through the given logger.
//
// Spans are processed with a SimpleSpanProcessor so they appear in the log
// as soon as they complete, which keeps step timings readable during a run.
func NewTracerProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	exporter := NewLogSpanExporter(logger)
	processor := sdktrace.NewSimpleSpanProcessor(exporter)

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String("jamfgraph"),
		),
	)
	if err != nil {
		logger.Warn("failed to create resource, using default", "error", err)
		res = resource.Default()
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithResource(res),
	)
}
