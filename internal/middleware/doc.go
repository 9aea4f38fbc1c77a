// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package middleware provides chi-compatible HTTP middleware.

  - RequestID: assigns or propagates X-Request-ID and stores it in the context
  - AccessLog: one zerolog line per request, level chosen by status
  - PrometheusMetrics: request counts and latency labelled by route pattern

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logging.Component("http")))
	r.Use(middleware.PrometheusMetrics)

Handlers read the request id with GetRequestID or logging.Ctx.
*/
package middleware
