// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto at
package initialization, so importing the package is enough to expose them.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8390/metrics

# Available Metrics

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - duckdb_rows_imported_total: Rows imported from JSON or Parquet (counter)
    Labels: table

API Metrics:
  - api_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rejected by the rate limiter (counter)

Cache Metrics:
  - cache_hits_total, cache_misses_total: Ranking cache lookups
  - cache_errors_total: Failed reads and writes
  - cache_gc_runs_total: Value log GC passes

Recommendation Metrics:
  - recommend_fit_duration_seconds: Per-user fit latency (histogram)
  - recommend_fit_errors_total: Failed fits (counter)
    Labels: kind (no_history, degenerate_model, configuration, ...)
  - recommend_items_served_total: Returned records (counter)
  - recommend_dataset_load_duration_seconds: Dataset load latency
  - recommend_dataset_rows: Loaded rows per table (gauge)
  - recommend_vocabulary_size: Distinct category labels (gauge)

# Usage

	start := time.Now()
	err := session.Fit(ctx, userID)
	metrics.RecordFit(time.Since(start), err)
*/
package metrics
