package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sentiment Classification Metrics
var (
	// ClassificationAttempts tracks strategy invocations by strategy name.
	ClassificationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_classification_attempts_total",
			Help: "Total sentiment strategy invocations by strategy",
		},
		[]string{"strategy"},
	)

	// ClassificationFailures tracks strategy failures that triggered fallback.
	ClassificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_classification_failures_total",
			Help: "Total sentiment strategy failures by strategy",
		},
		[]string{"strategy"},
	)

	// ClassificationServed tracks which strategy ultimately produced the result.
	ClassificationServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_classification_served_total",
			Help: "Total classifications served by producing strategy",
		},
		[]string{"strategy"},
	)

	// ClassificationDuration tracks per-strategy classification latency in seconds.
	ClassificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentiment_classification_duration_seconds",
			Help:    "Sentiment strategy call duration in seconds",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"strategy"},
	)
)

// Rate Limiter Metrics
var (
	// RateLimitDecisions tracks admission decisions by outcome (admitted/rejected).
	RateLimitDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_decisions_total",
			Help: "Total rate limiter decisions by outcome",
		},
		[]string{"outcome"},
	)

	// RateLimitTrackedKeys tracks the number of identity keys currently held in memory.
	RateLimitTrackedKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limit_tracked_keys",
			Help: "Number of identity keys currently tracked by the in-memory limiter",
		},
	)

	// RateLimitEvictions tracks idle keys removed by the background sweep.
	RateLimitEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_evictions_total",
			Help: "Total idle identity keys evicted from the in-memory limiter",
		},
	)
)

// Review Submission Metrics
var (
	// ReviewSubmissionsTotal tracks review submissions by result
	// (accepted, rate_limited, invalid, error).
	ReviewSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_submissions_total",
			Help: "Total review submissions by result",
		},
		[]string{"result"},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks database query latency in seconds
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database errors by query
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query",
		},
		[]string{"query"},
	)
)
