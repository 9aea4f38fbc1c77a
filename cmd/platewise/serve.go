// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/platewise/internal/api"
	"github.com/tomtom215/platewise/internal/config"
	"github.com/tomtom215/platewise/internal/database"
	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/metrics"
	"github.com/tomtom215/platewise/internal/recommend/engine"
	"github.com/tomtom215/platewise/internal/supervisor"
	"github.com/tomtom215/platewise/internal/supervisor/services"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the recommendation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	logging.Info().Str("version", version).Msg("Starting Platewise with supervisor tree")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)
	logging.Info().Str("db_path", db.Path()).Msg("Database initialized successfully")

	store, err := a.openCache()
	if err != nil {
		return err
	}
	// Pass a nil interface, not a typed nil, when caching is off.
	var rankingCache engine.RankingCache
	if store != nil {
		rankingCache = store
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing ranking cache")
			}
		}()
		logging.Info().
			Bool("in_memory", cfg.Cache.InMemory).
			Dur("ttl", cfg.Cache.TTL).
			Msg("Ranking cache enabled")
	} else {
		logging.Info().Msg("Ranking cache disabled (PLATEWISE_CACHE_ENABLED=false)")
	}

	provider := database.NewProvider(db, cfg.Data.RequireCategory)
	eng, err := engine.New(cfg.EngineConfig(), provider, rankingCache, logging.Component("engine"))
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	server := newHTTPServer(cfg, eng)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewDatasetService(eng, cfg.Data.ReloadInterval, logging.Component("dataset")))
	if store != nil {
		tree.AddDataService(services.NewCacheGCService(store, logging.Component("cache")))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if cfg.Server.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (PLATEWISE_DISABLE_RATE_LIMIT=true)")
	}

	err = <-tree.ServeBackground(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Platewise stopped gracefully")
	return nil
}

// newHTTPServer wires the API router for eng using the server and metrics
// config sections.
func newHTTPServer(cfg *config.Config, eng *engine.Engine) *http.Server {
	chiMW := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSMaxAge:         api.DefaultChiMiddlewareConfig().CORSMaxAge,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
		RateLimitDisabled:  cfg.Server.RateLimitDisabled,
	})

	routerCfg := api.RouterConfig{RequestTimeout: cfg.Server.Timeout}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsPath = cfg.Metrics.Path
	}
	router := api.NewRouter(api.NewHandler(eng), chiMW, routerCfg)

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Leaves room for the handler timeout response to be written.
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
