// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector is the value-log maintenance surface of the ranking
// cache store. Implemented by *cache.Store.
type GarbageCollector interface {
	// RunGC performs one collection pass and reports whether it rewrote
	// anything.
	RunGC() (bool, error)

	// GCInterval is the pause between passes.
	GCInterval() time.Duration
}

// CacheGCService periodically reclaims badger value-log space left by
// expired and purged ranking entries.
type CacheGCService struct {
	store  GarbageCollector
	logger zerolog.Logger
	name   string
}

// NewCacheGCService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheGCService(store GarbageCollector, logger zerolog.Logger) *CacheGCService {
	return &CacheGCService{
		store:  store,
		logger: logger.With().Str("service", "cache-gc").Logger(),
		name:   "cache-gc-service",
	}
}

// Serve implements suture.Service. A non-positive interval disables GC and
// the service idles until shutdown.
func (s *CacheGCService) Serve(ctx context.Context) error {
	interval := s.store.GCInterval()
	if interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			rewrote, err := s.store.RunGC()
			if err != nil {
				s.logger.Warn().Err(err).Msg("cache value log GC failed")
				continue
			}
			s.logger.Debug().Bool("rewrote", rewrote).Msg("cache value log GC pass")
		}
	}
}

func (s *CacheGCService) String() string {
	return s.name
}
