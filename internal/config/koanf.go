// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"platewise.yaml",
	"platewise.yml",
	"/etc/platewise/config.yaml",
	"/etc/platewise/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "PLATEWISE_CONFIG"

// envPrefix is stripped from every environment variable before mapping.
const envPrefix = "PLATEWISE_"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			BusinessFile:    "data/raw/yelp_academic_dataset_business.json",
			UserFile:        "data/raw/yelp_academic_dataset_user.json",
			ReviewFile:      "data/raw/yelp_academic_dataset_review.json",
			ParquetDir:      "data/pre-processed",
			RequireCategory: "",
			BatchSize:       10000,
			ReloadInterval:  0,
		},
		Database: DatabaseConfig{
			Path:                   "data/platewise.duckdb",
			MaxMemory:              "2GB",
			Threads:                0,
			PreserveInsertionOrder: true, // catalog order drives vocabulary and tie order
		},
		Recommend: RecommendConfig{
			Workers:        4,
			ExcludeVisited: false,
			DefaultK:       10,
			MaxK:           100,
			FitTimeout:     30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:        true,
			Path:           "data/cache",
			InMemory:       false,
			TTL:            time.Hour,
			MemoryEntries:  1024,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8086,
			Timeout:           30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Default returns the built-in configuration without consulting files or
// the environment.
func Default() *Config {
	return defaultConfig()
}

// Load reads configuration from defaults, the first config file found and
// PLATEWISE_* environment variables, in that order of precedence.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the config path from PLATEWISE_CONFIG or the first
// existing default path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps PLATEWISE_-stripped, lowercased variable names to koanf paths.
var envMappings = map[string]string{
	"business_file":    "data.business_file",
	"user_file":        "data.user_file",
	"review_file":      "data.review_file",
	"parquet_dir":      "data.parquet_dir",
	"require_category": "data.require_category",
	"reload_interval":  "data.reload_interval",
	"import_batch":     "data.batch_size",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"workers":         "recommend.workers",
	"exclude_visited": "recommend.exclude_visited",
	"default_k":       "recommend.default_k",
	"max_k":           "recommend.max_k",
	"fit_timeout":     "recommend.fit_timeout",

	"cache_enabled":     "cache.enabled",
	"cache_path":        "cache.path",
	"cache_in_memory":   "cache.in_memory",
	"cache_ttl":         "cache.ttl",
	"cache_entries":     "cache.memory_entries",
	"cache_gc_interval": "cache.gc_interval",

	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",
	"cors_origins":        "server.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"metrics_enabled": "metrics.enabled",
	"metrics_path":    "metrics.path",
}

// envTransformFunc maps an environment variable to its koanf path.
// Unmapped keys return "" and are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
