package ingest

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestLogSpanExporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tp := NewTracerProvider(logger)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := tp.Tracer("test")
	_, span := tracer.Start(context.Background(), "ingest.step",
		trace.WithAttributes(attribute.String("step.id", "computers")))
	span.End()

	out := buf.String()
	assert.Contains(t, out, "span completed")
	assert.Contains(t, out, "ingest.step")
	assert.Contains(t, out, "computers")
}

func TestLogSpanExporter_NilLogger(t *testing.T) {
	e := NewLogSpanExporter(nil)
	require.NotNil(t, e)
	assert.NoError(t, e.ExportSpans(context.Background(), nil))
	assert.NoError(t, e.Shutdown(context.Background()))
}

func TestRunnerEmitsSpans(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tp := NewTracerProvider(logger)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var log []string
	runner, err := NewRunner([]Step{recordingStep("only", &log)},
		WithLogger(discardLogger()),
		WithTracerProvider(tp))
	require.NoError(t, err)

	require.NoError(t, runner.Run(context.Background(), runContext()))
	assert.Contains(t, buf.String(), "ingest.run")
}
