package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "game_tracker"

var (
	// SyncRuns counts synchronization runs.
	// Labels: platform, mode (library, wishlist), status (ok, fetch_error)
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "runs_total",
		Help:      "Total library synchronization runs",
	}, []string{"platform", "mode", "status"})

	// SyncItems counts reconciled games by outcome.
	// Labels: platform, outcome (imported, updated, skipped, failed)
	SyncItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "items_total",
		Help:      "Total games reconciled by outcome",
	}, []string{"platform", "outcome"})

	// SyncDuration measures end-to-end synchronization time.
	SyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "duration_seconds",
		Help:      "Library synchronization duration in seconds",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"platform"})

	// CatalogLookups counts identity matcher resolutions.
	// Labels: phase (external_id, name), result (matched, unmatched, error)
	CatalogLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "lookups_total",
		Help:      "Total catalog lookups by matching phase and result",
	}, []string{"phase", "result"})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
