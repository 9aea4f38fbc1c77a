// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/platewise/internal/cache"
	"github.com/tomtom215/platewise/internal/config"
	"github.com/tomtom215/platewise/internal/database"
	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/recommend/engine"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	jsonOutput bool
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "platewise",
		Short:         "Content-based restaurant recommendations from review data",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: PLATEWISE_CONFIG or ./platewise.yaml)")
	cmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "print results as JSON")

	cmd.AddCommand(
		newImportCmd(a),
		newRecommendCmd(a),
		newVocabCmd(a),
		newUsersCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

func (a *app) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFrom(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.Init(cfg.LoggerConfig())
	return nil
}

// openDB opens the configured DuckDB database. Callers close it.
func (a *app) openDB() (*database.DB, error) {
	db, err := database.New(&a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// loadEngine builds an uncached engine over db and loads the dataset.
// One-shot commands fit once per run, so the ranking cache is skipped.
func (a *app) loadEngine(ctx context.Context, db *database.DB) (*engine.Engine, error) {
	cfg := a.cfg.EngineConfig()
	cfg.Cache.Enabled = false

	provider := database.NewProvider(db, a.cfg.Data.RequireCategory)
	eng, err := engine.New(cfg, provider, nil, logging.Component("engine"))
	if err != nil {
		return nil, err
	}
	if err := eng.Load(ctx); err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return eng, nil
}

// openCache opens the badger ranking cache when enabled. A nil store
// means caching is off.
func (a *app) openCache() (*cache.Store, error) {
	if !a.cfg.Cache.Enabled {
		return nil, nil
	}
	store, err := cache.Open(a.cfg.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("open ranking cache: %w", err)
	}
	return store, nil
}

func closeDB(db *database.DB) {
	if err := db.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Works without a valid config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "platewise %s\n", version)
			return err
		},
	}
}
