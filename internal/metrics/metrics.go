// Package metrics declares this service's Prometheus instruments,
// grounded on the teacher pack's shared/metrics/prometheus.go
// promauto-vars-plus-record-helpers pattern, scaled down to the
// counters the HTTP front end and the projection worker actually emit.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dely_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dely_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	syncEventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dely_sync_events_processed_total",
			Help: "Total number of event-store records processed by the projection worker",
		},
		[]string{"entity", "event_type", "outcome"},
	)

	syncCheckpointPosition = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dely_sync_checkpoint_position",
			Help: "Commit position of the last checkpoint saved by the projection worker",
		},
	)

	syncIndexErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dely_sync_index_errors_total",
			Help: "Total number of search index operations that failed during projection",
		},
		[]string{"entity", "event_type"},
	)
)

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency for every HTTP request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RecordEventProcessed records a projection record's terminal outcome:
// "applied", "skipped" (no dispatch entry or undecodable) or "failed"
// (index operation error, checkpoint withheld).
func RecordEventProcessed(entityKind, eventType, outcome string) {
	syncEventsProcessed.WithLabelValues(entityKind, eventType, outcome).Inc()
}

// RecordCheckpointPosition records the commit position of the most
// recently saved checkpoint.
func RecordCheckpointPosition(commit uint64) {
	syncCheckpointPosition.Set(float64(commit))
}

// RecordIndexError records a failed search index operation during
// projection dispatch.
func RecordIndexError(entityKind, eventType string) {
	syncIndexErrors.WithLabelValues(entityKind, eventType).Inc()
}
