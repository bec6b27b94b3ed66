// Package httpapi exposes this service's minimal operational HTTP
// surface: liveness, readiness and Prometheus metrics. It carries no
// business routes of its own; grounded on the teacher's chi-based
// cmd/platform/main.go router wiring, trimmed to just the
// operational endpoints and their dependency checks.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kuraya-dely/dely/internal/kurrentdb"
	"github.com/kuraya-dely/dely/internal/metrics"
	"github.com/kuraya-dely/dely/internal/searchindex"
)

// Dependencies holds the clients the readiness check probes.
type Dependencies struct {
	EventStore  *kurrentdb.Client
	Meilisearch *searchindex.Client
}

// NewRouter builds the chi router serving /healthz, /readyz and
// /metrics.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(metrics.Middleware)

	r.Get("/healthz", healthHandler)
	r.Get("/readyz", readyHandler(deps))
	r.Handle("/metrics", metrics.Handler())

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func readyHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true

		if err := deps.EventStore.HealthCheck(ctx); err != nil {
			checks["eventstore"] = "not ready: " + err.Error()
			ready = false
		} else {
			checks["eventstore"] = "ready"
		}

		if err := deps.Meilisearch.Health(ctx); err != nil {
			checks["meilisearch"] = "not ready: " + err.Error()
			ready = false
		} else {
			checks["meilisearch"] = "ready"
		}

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(checks)
	}
}
