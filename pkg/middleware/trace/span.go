package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentation = "github.com/scienceol/osfarm"

func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	return otel.Tracer(instrumentation).Start(ctx, name, oteltrace.WithAttributes(attrs...))
}

// End records err on the span before ending it.
func End(span oteltrace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Counter returns a counter from the global meter. A broken instrument
// falls back to a no-op so callers never check errors.
func Counter(name, desc string) metric.Int64Counter {
	c, err := otel.Meter(instrumentation).Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		otel.Handle(err)
		c, _ = noopMeter().Int64Counter(name)
	}
	return c
}
