// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Workers is the number of goroutines used to encode the catalog and
	// compute scores. Values below 2 run sequentially.
	// Default: 4.
	Workers int `json:"workers"`

	// ExcludeVisited drops restaurants the user already reviewed from
	// responses. The ranking itself always covers the full catalog.
	// Default: false.
	ExcludeVisited bool `json:"exclude_visited"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains ranking cache parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the default number of recommendations to return.
	// Default: 10.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed K value.
	// Default: 100.
	MaxK int `json:"max_k"`

	// FitTimeout bounds a single fit when called through the engine.
	// Default: 30s.
	FitTimeout time.Duration `json:"fit_timeout"`
}

// CacheConfig contains ranking cache parameters.
type CacheConfig struct {
	// Enabled controls whether rankings are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 1h.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers:        4,
		ExcludeVisited: false,
		Limits: LimitsConfig{
			DefaultK:   10,
			MaxK:       100,
			FitTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.FitTimeout <= 0 {
		return fmt.Errorf("limits.fit_timeout must be positive, got %v", c.Limits.FitTimeout)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	clone := *c
	return &clone
}
