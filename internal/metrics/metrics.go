// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diary_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diary_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// Derived results
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diary_cache_lookups_total",
			Help: "Cache lookups for derived results",
		},
		[]string{"kind", "result"}, // streak/calendar/tree, hit/miss/error
	)

	ComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diary_compute_duration_seconds",
			Help:    "Time spent loading and computing derived results",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"kind"},
	)

	CurrentStreak = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "diary_current_streak_days",
			Help: "Current writing streak as of the last computation",
		},
	)

	FolderIntegrityWarnings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "diary_folder_integrity_warnings",
			Help: "Folders left out of the tree at the last build",
		},
	)

	ScheduledJobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diary_scheduled_job_runs_total",
			Help: "Background job executions",
		},
		[]string{"job", "status"},
	)
)

// Cache lookup results.
const (
	Hit   = "hit"
	Miss  = "miss"
	Error = "error"
)
