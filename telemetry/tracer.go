package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer opens spans around coordinator operations. NewOtelTracer wraps the
// global OTEL TracerProvider, scoped to this module's instrumentation name.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is a single traced operation. End must be called exactly once.
type Span interface {
	RecordError(err error)
	End()
}

type otelTracer struct {
	tracer trace.Tracer
}

// NewOtelTracer constructs a Tracer backed by the global OTEL TracerProvider.
// Configure the provider via otel.SetTracerProvider before invoking coordinator
// methods (typically done via clue.ConfigureOpenTelemetry or environment
// variables).
func NewOtelTracer() Tracer {
	return otelTracer{tracer: otel.Tracer("goa.design/subagent")}
}

func (t otelTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, otelSpan{span: span}
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s otelSpan) End() { s.span.End() }

// NoopTracer discards every span. It is the coordinator's default Tracer
// when none is configured.
type NoopTracer struct{}

// NewNoopTracer constructs a Tracer that creates no-op spans.
func NewNoopTracer() Tracer { return NoopTracer{} }

func (NoopTracer) Start(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) RecordError(error) {}
func (noopSpan) End()              {}
