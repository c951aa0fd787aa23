package instrument

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/phrazzld/quill-api/internal/platform/metrics"
	"github.com/phrazzld/quill-api/internal/store"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestStoreOp(t *testing.T) {
	recorder := withRecorder(t)

	_, op := StartStoreOp(context.Background(), "unit", "user", "find")
	op.End(nil)

	_, op = StartStoreOp(context.Background(), "unit", "user", "find")
	op.End(store.ErrUserNotFound)

	_, op = StartStoreOp(context.Background(), "unit", "user", "save")
	op.End(store.NewStoreError("user", "save", "query failed", errors.New("reset")))

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "unit.user.find", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Unset, spans[1].Status().Code, "not found is not a span error")
	assert.Equal(t, codes.Error, spans[2].Status().Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.StoreErrors.WithLabelValues("unit", "user", "find", metrics.KindNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.StoreErrors.WithLabelValues("unit", "user", "save", metrics.KindOther)))
}
