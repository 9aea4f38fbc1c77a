// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Path != "data/platewise.duckdb" {
		t.Errorf("Database.Path = %q, want data/platewise.duckdb", cfg.Database.Path)
	}
	if cfg.Database.MaxMemory != "2GB" {
		t.Errorf("Database.MaxMemory = %q, want 2GB", cfg.Database.MaxMemory)
	}
	if !cfg.Database.PreserveInsertionOrder {
		t.Error("Database.PreserveInsertionOrder should be true by default")
	}
	if cfg.Data.RequireCategory != "" {
		t.Errorf("Data.RequireCategory = %q, want empty", cfg.Data.RequireCategory)
	}
	if cfg.Recommend.DefaultK != 10 || cfg.Recommend.MaxK != 100 {
		t.Errorf("K limits = %d/%d, want 10/100", cfg.Recommend.DefaultK, cfg.Recommend.MaxK)
	}
	if cfg.Recommend.FitTimeout != 30*time.Second {
		t.Errorf("Recommend.FitTimeout = %v, want 30s", cfg.Recommend.FitTimeout)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache = %+v, want enabled with 1h TTL", cfg.Cache)
	}
	if cfg.Server.Port != 8086 {
		t.Errorf("Server.Port = %d, want 8086", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want /metrics", cfg.Metrics.Path)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// TestLoadFrom_DefaultsOnly verifies loading without a file or environment overrides
func TestLoadFrom_DefaultsOnly(t *testing.T) {
	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom(\"\") error = %v", err)
	}
	if cfg.Server.Port != 8086 {
		t.Errorf("Server.Port = %d, want 8086", cfg.Server.Port)
	}
	if cfg.Cache.GCInterval != 10*time.Minute {
		t.Errorf("Cache.GCInterval = %v, want 10m", cfg.Cache.GCInterval)
	}
}

// TestLoadFrom_YAMLFile verifies the file layer overrides defaults
func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platewise.yaml")
	yamlContent := `
data:
  require_category: Restaurants
  parquet_dir: /srv/parquet
database:
  path: /srv/platewise.duckdb
  max_memory: 512MB
recommend:
  workers: 8
  default_k: 5
  max_k: 50
  fit_timeout: 5s
  exclude_visited: true
server:
  port: 9090
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Data.RequireCategory != "Restaurants" {
		t.Errorf("Data.RequireCategory = %q, want Restaurants", cfg.Data.RequireCategory)
	}
	if cfg.Data.ParquetDir != "/srv/parquet" {
		t.Errorf("Data.ParquetDir = %q", cfg.Data.ParquetDir)
	}
	if cfg.Database.Path != "/srv/platewise.duckdb" || cfg.Database.MaxMemory != "512MB" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Recommend.Workers != 8 || cfg.Recommend.DefaultK != 5 || cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Recommend.FitTimeout != 5*time.Second {
		t.Errorf("Recommend.FitTimeout = %v, want 5s", cfg.Recommend.FitTimeout)
	}
	if !cfg.Recommend.ExcludeVisited {
		t.Error("Recommend.ExcludeVisited should be true")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	// Untouched values keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

// TestLoadFrom_EnvOverridesFile verifies environment precedence over the file layer
func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platewise.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PLATEWISE_HTTP_PORT", "7070")
	t.Setenv("PLATEWISE_REQUIRE_CATEGORY", "Restaurants")
	t.Setenv("PLATEWISE_CACHE_TTL", "15m")
	t.Setenv("PLATEWISE_CACHE_IN_MEMORY", "true")
	t.Setenv("PLATEWISE_LOG_LEVEL", "warn")
	t.Setenv("PLATEWISE_RELOAD_INTERVAL", "6h")
	t.Setenv("PLATEWISE_UNKNOWN_SETTING", "ignored")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Data.RequireCategory != "Restaurants" {
		t.Errorf("Data.RequireCategory = %q", cfg.Data.RequireCategory)
	}
	if cfg.Cache.TTL != 15*time.Minute {
		t.Errorf("Cache.TTL = %v, want 15m", cfg.Cache.TTL)
	}
	if !cfg.Cache.InMemory {
		t.Error("Cache.InMemory should be true")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Data.ReloadInterval != 6*time.Hour {
		t.Errorf("Data.ReloadInterval = %v, want 6h", cfg.Data.ReloadInterval)
	}
}

// TestLoadFrom_InvalidValues verifies that validation runs after loading
func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"PLATEWISE_HTTP_PORT": "70000"}},
		{"max_k below default_k", map[string]string{"PLATEWISE_DEFAULT_K": "20", "PLATEWISE_MAX_K": "10"}},
		{"bad memory size", map[string]string{"PLATEWISE_DUCKDB_MAX_MEMORY": "plenty"}},
		{"bad log format", map[string]string{"PLATEWISE_LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadFrom(""); err == nil {
				t.Error("LoadFrom() should fail validation")
			}
		})
	}
}

// TestLoadFrom_MissingFile verifies an explicit missing file is an error
func TestLoadFrom_MissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFrom() should fail for a missing file")
	}
}

// TestFindConfigFile_EnvVar verifies PLATEWISE_CONFIG takes priority
func TestFindConfigFile_EnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"PLATEWISE_HTTP_PORT", "server.port"},
		{"PLATEWISE_DUCKDB_PATH", "database.path"},
		{"PLATEWISE_REQUIRE_CATEGORY", "data.require_category"},
		{"PLATEWISE_MAX_K", "recommend.max_k"},
		{"PLATEWISE_CACHE_ENTRIES", "cache.memory_entries"},
		{"PLATEWISE_METRICS_PATH", "metrics.path"},
		{"PLATEWISE_NOT_A_SETTING", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
