// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package config loads Platewise configuration with koanf.

# Configuration Sources

Layers are applied in order, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: $PLATEWISE_CONFIG, else platewise.yaml, platewise.yml,
    /etc/platewise/config.yaml, /etc/platewise/config.yml
 3. PLATEWISE_* environment variables

The result is validated with go-playground/validator tags and a few
cross-section rules.

# Sections

  - data: raw Yelp JSON-lines paths, Parquet directory, category filter
  - database: DuckDB path and tuning
  - recommend: worker count, K limits, fit timeout, exclude_visited
  - cache: BadgerDB ranking cache
  - server: HTTP listener and rate limiting
  - logging: zerolog level and format
  - metrics: Prometheus endpoint

# Environment Variables

Data:
  - PLATEWISE_BUSINESS_FILE, PLATEWISE_USER_FILE, PLATEWISE_REVIEW_FILE
  - PLATEWISE_PARQUET_DIR: Parquet import/export directory
  - PLATEWISE_REQUIRE_CATEGORY: keep only businesses with this label (e.g. Restaurants)
  - PLATEWISE_IMPORT_BATCH: rows per insert transaction (default: 10000)

Database:
  - PLATEWISE_DUCKDB_PATH (default: data/platewise.duckdb)
  - PLATEWISE_DUCKDB_MAX_MEMORY (default: 2GB)
  - PLATEWISE_DUCKDB_THREADS (default: 0 = NumCPU)

Recommendation:
  - PLATEWISE_WORKERS (default: 4)
  - PLATEWISE_DEFAULT_K, PLATEWISE_MAX_K (default: 10, 100)
  - PLATEWISE_FIT_TIMEOUT (default: 30s)
  - PLATEWISE_EXCLUDE_VISITED (default: false)

Cache:
  - PLATEWISE_CACHE_ENABLED, PLATEWISE_CACHE_PATH, PLATEWISE_CACHE_IN_MEMORY
  - PLATEWISE_CACHE_TTL (default: 1h), PLATEWISE_CACHE_ENTRIES (default: 1024)
  - PLATEWISE_CACHE_GC_INTERVAL (default: 10m)

Server:
  - PLATEWISE_HTTP_HOST, PLATEWISE_HTTP_PORT (default: 0.0.0.0:8086)
  - PLATEWISE_HTTP_TIMEOUT, PLATEWISE_SHUTDOWN_TIMEOUT
  - PLATEWISE_RATE_LIMIT_REQUESTS, PLATEWISE_RATE_LIMIT_WINDOW, PLATEWISE_DISABLE_RATE_LIMIT

Logging and metrics:
  - PLATEWISE_LOG_LEVEL, PLATEWISE_LOG_FORMAT, PLATEWISE_LOG_CALLER
  - PLATEWISE_METRICS_ENABLED, PLATEWISE_METRICS_PATH

# Usage

	cfg, err := config.Load()
	if err != nil {
	    return err
	}
	logging.Init(cfg.LoggerConfig())
	eng, err := engine.New(cfg.EngineConfig(), provider, store, logger)
*/
package config
