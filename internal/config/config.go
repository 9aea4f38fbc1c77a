// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package config

import (
	"time"

	"github.com/tomtom215/platewise/internal/cache"
	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// DataConfig describes where the raw review dataset lives and how the
// catalog is filtered when it is loaded.
type DataConfig struct {
	// BusinessFile is the Yelp business JSON-lines file.
	BusinessFile string `koanf:"business_file"`

	// UserFile is the Yelp user JSON-lines file.
	UserFile string `koanf:"user_file"`

	// ReviewFile is the Yelp review JSON-lines file.
	ReviewFile string `koanf:"review_file"`

	// ParquetDir holds restaurants.parquet, users.parquet and reviews*.parquet.
	// Used by import --from-parquet and as the export target.
	ParquetDir string `koanf:"parquet_dir"`

	// RequireCategory restricts the catalog to businesses carrying this
	// label (after trimming). Empty keeps every business.
	RequireCategory string `koanf:"require_category" validate:"max=128"`

	// BatchSize is the number of rows written per insert transaction.
	BatchSize int `koanf:"batch_size" validate:"min=1,max=1000000"`

	// ReloadInterval re-reads the dataset tables into the serving engine.
	// Zero loads once at startup.
	ReloadInterval time.Duration `koanf:"reload_interval" validate:"min=0"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path                   string `koanf:"path" validate:"required"`
	MaxMemory              string `koanf:"max_memory" validate:"required,memsize"`
	Threads                int    `koanf:"threads" validate:"min=0,max=1024"` // 0 = use NumCPU
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
}

// RecommendConfig holds recommendation engine settings
type RecommendConfig struct {
	Workers        int           `koanf:"workers" validate:"min=0,max=512"`
	ExcludeVisited bool          `koanf:"exclude_visited"`
	DefaultK       int           `koanf:"default_k" validate:"min=1"`
	MaxK           int           `koanf:"max_k" validate:"min=1,gtefield=DefaultK"`
	FitTimeout     time.Duration `koanf:"fit_timeout" validate:"gt=0"`
}

// CacheConfig holds ranking cache settings
type CacheConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Path           string        `koanf:"path"`
	InMemory       bool          `koanf:"in_memory"`
	TTL            time.Duration `koanf:"ttl" validate:"gt=0"`
	MemoryEntries  int           `koanf:"memory_entries" validate:"min=0"`
	GCInterval     time.Duration `koanf:"gc_interval" validate:"gte=0"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio" validate:"gt=0,lt=1"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins" validate:"dive,required"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path" validate:"required,startswith=/"`
}

// EngineConfig converts the recommend section into the engine's config.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Workers:        c.Recommend.Workers,
		ExcludeVisited: c.Recommend.ExcludeVisited,
		Limits: recommend.LimitsConfig{
			DefaultK:   c.Recommend.DefaultK,
			MaxK:       c.Recommend.MaxK,
			FitTimeout: c.Recommend.FitTimeout,
		},
		Cache: recommend.CacheConfig{
			Enabled: c.Cache.Enabled,
			TTL:     c.Cache.TTL,
		},
	}
}

// StoreConfig converts the cache section into the badger store config.
func (c *Config) StoreConfig() cache.Config {
	return cache.Config{
		Path:           c.Cache.Path,
		InMemory:       c.Cache.InMemory,
		TTL:            c.Cache.TTL,
		MemoryEntries:  c.Cache.MemoryEntries,
		GCInterval:     c.Cache.GCInterval,
		GCDiscardRatio: c.Cache.GCDiscardRatio,
	}
}

// LoggerConfig converts the logging section for logging.Init.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}
