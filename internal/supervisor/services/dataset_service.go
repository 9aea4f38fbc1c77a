// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DatasetLoader reads the dataset tables into the serving engine.
// Implemented by *engine.Engine.
type DatasetLoader interface {
	Load(ctx context.Context) error
}

// DatasetService owns the engine's dataset lifecycle.
//
// The initial load runs when the service starts. If it fails Serve returns
// the error so the supervisor restarts it with backoff. After a successful
// load the service reloads every interval; reload failures are logged and
// the engine keeps serving the previous snapshot.
type DatasetService struct {
	loader      DatasetLoader
	interval    time.Duration
	loadTimeout time.Duration
	logger      zerolog.Logger
	name        string
}

// NewDatasetService creates the service. A non-positive interval loads once.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDatasetService(loader DatasetLoader, interval time.Duration, logger zerolog.Logger) *DatasetService {
	return &DatasetService{
		loader:      loader,
		interval:    interval,
		loadTimeout: 30 * time.Minute,
		logger:      logger.With().Str("service", "dataset").Logger(),
		name:        "dataset-service",
	}
}

// Serve implements suture.Service.
func (s *DatasetService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("reload_interval", s.interval).Msg("dataset service starting")

	if err := s.load(ctx); err != nil {
		return fmt.Errorf("initial dataset load: %w", err)
	}

	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("dataset service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.load(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled dataset reload failed, keeping previous snapshot")
			}
		}
	}
}

func (s *DatasetService) load(ctx context.Context) error {
	loadCtx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	start := time.Now()
	if err := s.loader.Load(loadCtx); err != nil {
		return err
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("dataset loaded")
	return nil
}

func (s *DatasetService) String() string {
	return s.name
}
