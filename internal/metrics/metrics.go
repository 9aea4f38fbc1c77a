// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/platewise/internal/recommend"
)

// Prometheus instrumentation for:
// - DuckDB import and load queries
// - API endpoint latency and throughput
// - Ranking cache efficiency
// - Model fits and dataset shape

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBRowsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_rows_imported_total",
			Help: "Total number of rows imported from source files",
		},
		[]string{"table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of cache read or write failures",
		},
		[]string{"cache_type", "operation"},
	)

	CacheGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_gc_runs_total",
			Help: "Total number of value log garbage collection passes",
		},
		[]string{"cache_type", "result"},
	)

	// Recommendation Metrics
	FitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_fit_duration_seconds",
			Help:    "Duration of per-user model fits in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	FitErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fit_errors_total",
			Help: "Total number of failed fits by error kind",
		},
		[]string{"kind"},
	)

	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_items_served_total",
			Help: "Total number of recommendation records returned",
		},
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_dataset_load_duration_seconds",
			Help:    "Duration of dataset loads including vocabulary build",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommend_dataset_rows",
			Help: "Number of rows in the loaded dataset",
		},
		[]string{"table"},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_vocabulary_size",
			Help: "Number of distinct category labels in the loaded catalog",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordImport records rows imported into a table.
func RecordImport(table string, rows int64) {
	DBRowsImported.WithLabelValues(table).Add(float64(rows))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a hit or miss for cacheType.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheError records a failed cache operation.
func RecordCacheError(cacheType, operation string) {
	CacheErrors.WithLabelValues(cacheType, operation).Inc()
}

// RecordCacheGC records a garbage collection pass. rewrote reports whether
// the pass reclaimed a value log file.
func RecordCacheGC(cacheType string, rewrote bool) {
	result := "noop"
	if rewrote {
		result = "rewrote"
	}
	CacheGCRuns.WithLabelValues(cacheType, result).Inc()
}

// RecordFit records a model fit. Failed fits are counted by error kind.
func RecordFit(duration time.Duration, err error) {
	if err != nil {
		FitErrors.WithLabelValues(recommend.ErrorKind(err)).Inc()
		return
	}
	FitDuration.Observe(duration.Seconds())
}

// RecordServed adds n returned recommendation records.
func RecordServed(n int) {
	RecommendationsServed.Add(float64(n))
}

// RecordDatasetLoad records a completed dataset load and its shape.
func RecordDatasetLoad(duration time.Duration, restaurants, users, reviews, vocabulary int) {
	DatasetLoadDuration.Observe(duration.Seconds())
	DatasetRows.WithLabelValues("restaurants").Set(float64(restaurants))
	DatasetRows.WithLabelValues("users").Set(float64(users))
	DatasetRows.WithLabelValues("reviews").Set(float64(reviews))
	VocabularySize.Set(float64(vocabulary))
}
