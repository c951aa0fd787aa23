package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// UnmatchedRoute labels requests that no route handled.
const UnmatchedRoute = "unmatched"

// OtherMethod labels requests with a non-standard HTTP method.
const OtherMethod = "OTHER"

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests and records their latency by status class.
// Requests are labelled with the chi route pattern rather than the raw
// path, so label cardinality is bounded by the routes the router defines.
// It must be installed on a chi router.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		method := methodLabel(r.Method)
		route := routeLabel(r)
		statusClass := fmt.Sprintf("%dxx", rec.status/100)

		HTTPRequestsTotal.WithLabelValues(method, route).Inc()
		HTTPRequestDurationSeconds.WithLabelValues(method, route, statusClass).
			Observe(time.Since(start).Seconds())
	})
}

// routeLabel reads the pattern chi matched. It is only complete once the
// handler has run.
func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return UnmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return UnmatchedRoute
}

func methodLabel(method string) string {
	if _, ok := knownMethods[method]; ok {
		return method
	}
	return OtherMethod
}
