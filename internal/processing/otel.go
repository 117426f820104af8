package processing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName identifies this package's spans and metrics.
	TracerName = "sigproc.processing"
)

// tracer provides OpenTelemetry instrumentation for processing calls.
// Without an SDK installed all calls are no-ops.
type tracer struct {
	tracer    trace.Tracer
	calls     metric.Int64Counter
	errors    metric.Int64Counter
	durations metric.Float64Histogram
}

func newTracer() *tracer {
	meter := otel.Meter(TracerName)
	calls, _ := meter.Int64Counter("processing.calls",
		metric.WithDescription("Processing calls routed to an engine"))
	errs, _ := meter.Int64Counter("processing.errors",
		metric.WithDescription("Processing calls that failed"))
	durations, _ := meter.Float64Histogram("processing.duration",
		metric.WithDescription("Engine execution time"),
		metric.WithUnit("s"))

	return &tracer{
		tracer:    otel.Tracer(TracerName),
		calls:     calls,
		errors:    errs,
		durations: durations,
	}
}

// start opens a span for one processing call.
func (t *tracer) start(ctx context.Context, op Operation, opID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "processing."+string(op),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", opID),
			attribute.String("operation.kind", string(op)),
		))
}

// record closes out the call's metrics and span status.
func (t *tracer) record(ctx context.Context, span trace.Span, op Operation, err error, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("operation", string(op)))

	if t.calls != nil {
		t.calls.Add(ctx, 1, attrs)
	}
	if t.durations != nil {
		t.durations.Record(ctx, duration.Seconds(), attrs)
	}

	if err != nil {
		if t.errors != nil {
			t.errors.Add(ctx, 1, attrs)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
