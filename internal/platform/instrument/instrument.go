// Package instrument wraps store operations in a trace span and the store
// metrics, so every backend reports the same shape of telemetry.
package instrument

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/phrazzld/quill-api/internal/platform/metrics"
	"github.com/phrazzld/quill-api/internal/store"
)

const tracerName = "github.com/phrazzld/quill-api/internal/platform/instrument"

// StoreOp is one in-flight store operation.
type StoreOp struct {
	span    trace.Span
	start   time.Time
	backend string
	entity  string
	name    string
}

// StartStoreOp opens a client span named "<backend>.<entity>.<name>".
func StartStoreOp(ctx context.Context, backend, entity, name string) (context.Context, *StoreOp) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, backend+"."+entity+"."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", backend),
			attribute.String("db.operation", name),
			attribute.String("store.entity", entity),
		))
	return ctx, &StoreOp{span: span, start: time.Now(), backend: backend, entity: entity, name: name}
}

// End records metrics and closes the span. Only opaque failures mark the
// span as errored; not-found and conflicts are ordinary outcomes.
func (o *StoreOp) End(err error) {
	metrics.ObserveStore(o.backend, o.entity, o.name, o.start, err)
	if err != nil {
		o.span.SetAttributes(attribute.String("store.outcome", metrics.ErrorKind(err)))
		if store.IsStoreError(err) {
			o.span.RecordError(err)
			o.span.SetStatus(codes.Error, "store failure")
		}
	}
	o.span.End()
}
