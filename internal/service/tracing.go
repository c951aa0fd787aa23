package service

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/phrazzld/quill-api/internal/store"
)

const tracerName = "github.com/phrazzld/quill-api/internal/service"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// recordFailure marks span as errored for opaque store failures only.
func recordFailure(span trace.Span, err error) {
	if store.IsStoreError(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failure")
	}
}
