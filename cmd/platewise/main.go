// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Command platewise imports a Yelp-style review dataset into DuckDB and
// recommends restaurants to a user from the categories of places they
// have already reviewed.
//
// # Commands
//
//	platewise import [--from-parquet] [--export-parquet]
//	platewise recommend <user_id> [-k 10] [--exclude-visited] [--explain]
//	platewise vocab [--prefix Sus] [--associations Sushi Bars]
//	platewise users [--limit 20]
//	platewise serve
//	platewise version
//
// # Configuration
//
// Settings are layered with koanf (highest priority wins):
//   - PLATEWISE_* environment variables (for example PLATEWISE_DUCKDB_PATH)
//   - The file named by --config or PLATEWISE_CONFIG, or the first of
//     ./platewise.yaml and /etc/platewise/config.yaml
//   - Built-in defaults
//
// # Serving
//
// serve runs the HTTP API under a suture supervisor tree. The dataset is
// loaded in the background; /api/v1/health/ready reports 503 until the
// first load completes. SIGINT and SIGTERM trigger a graceful shutdown.
package main

import (
	"os"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
