// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/middleware"
)

// RouterConfig controls optional routes and request limits.
type RouterConfig struct {
	// MetricsPath serves Prometheus metrics when non-empty.
	MetricsPath string

	// RequestTimeout bounds API handlers. Zero disables the timeout.
	RequestTimeout time.Duration
}

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	config        RouterConfig
}

// NewRouter creates a router. A nil chiMW uses the default configuration.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, cfg RouterConfig) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		config:        cfg,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(logging.Component("http")))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json"))
		if router.config.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(router.config.RequestTimeout))
		}

		r.Get("/recommendations/{userID}", router.handler.Recommendations)

		r.Get("/users", router.handler.Users)
		r.Get("/users/{userID}", router.handler.User)
		r.Get("/users/{userID}/profile", router.handler.Profile)

		r.Get("/categories", router.handler.Categories)
		r.Get("/categories/pairs", router.handler.Pairs)
		r.Get("/categories/{label}/associations", router.handler.Associations)

		r.Get("/stats", router.handler.Stats)

		r.With(router.chiMiddleware.RateLimit("admin")).Post("/admin/reload", router.handler.Reload)
	})

	if router.config.MetricsPath != "" {
		r.Handle(router.config.MetricsPath, promhttp.Handler())
	}

	return r
}
