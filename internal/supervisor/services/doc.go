// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package services adapts Platewise components to suture.Service.

  - HTTPServerService: runs an *http.Server and shuts it down gracefully
    when the supervisor context is canceled.
  - DatasetService: loads the engine's dataset at startup and optionally
    reloads it on an interval.
  - CacheGCService: runs badger value log GC for the ranking cache.

Each service depends on a narrow interface (HTTPServer, DatasetLoader,
GarbageCollector) rather than the concrete type, so tests substitute
doubles and the package does not import the engine.
*/
package services
