package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("weekendbets/internal/usecase")

// startUsecaseSpan only opens a child span when ctx already carries a sampled
// parent, so library calls from tests stay span-free.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finishDateSpan records the per-date outcome on span and ends it.
func finishDateSpan(span trace.Span, report DateReport, err error) {
	span.SetAttributes(
		attribute.String("pipeline.status", string(report.Status)),
		attribute.Int("pipeline.records", report.Records),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
