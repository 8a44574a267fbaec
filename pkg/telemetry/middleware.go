package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PriceFunc is one pricing call over graphCount vessel-class graphs for the
// given problem reference. It is defined here with plain parameters, rather
// than in terms of PricingService's request/response types, to avoid a
// telemetry->pricing dependency cycle.
type PriceFunc func(ctx context.Context, problemReference string, graphCount int) (accepted bool, err error)

// TracePrice wraps one Price call in a span, mirroring the span/attribute/
// status conventions used across this package's instrumentation.
func TracePrice(ctx context.Context, problemReference string, graphCount int, fn PriceFunc) (bool, error) {
	ctx, span := StartSpan(ctx, "pricing.Price",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrProblemReference, problemReference),
			attribute.Int(AttrGraphNodes, graphCount),
		),
	)
	defer span.End()

	accepted, err := fn(ctx, problemReference, graphCount)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return accepted, err
	}

	span.SetAttributes(attribute.Bool("pricing.accepted", accepted))
	span.SetStatus(codes.Ok, "")
	return accepted, nil
}
