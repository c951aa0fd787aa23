package metrics

import (
	"errors"
	"time"

	"github.com/phrazzld/quill-api/internal/store"
)

// Error kinds used as the "kind" label of StoreErrors.
const (
	KindNotFound = "not_found"
	KindConflict = "conflict"
	KindOther    = "other"
)

// ErrorKind classifies a store error for labelling.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return KindNotFound
	case errors.Is(err, store.ErrDuplicate):
		return KindConflict
	default:
		return KindOther
	}
}

// ObserveStore records the duration of a store operation that started at
// start and, when err is non-nil, counts it by kind.
func ObserveStore(backend, entity, operation string, start time.Time, err error) {
	StoreQueryDurationSeconds.WithLabelValues(backend, entity, operation).
		Observe(time.Since(start).Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(backend, entity, operation, ErrorKind(err)).Inc()
	}
}
