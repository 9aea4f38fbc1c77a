// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero workers runs sequentially", func(c *Config) { c.Recommend.Workers = 0 }, false},
		{"negative workers", func(c *Config) { c.Recommend.Workers = -1 }, true},
		{"zero default_k", func(c *Config) { c.Recommend.DefaultK = 0 }, true},
		{"max_k below default_k", func(c *Config) { c.Recommend.MaxK = 5 }, true},
		{"zero fit timeout", func(c *Config) { c.Recommend.FitTimeout = 0 }, true},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, true},
		{"bad max memory", func(c *Config) { c.Database.MaxMemory = "2 elephants" }, true},
		{"percent max memory", func(c *Config) { c.Database.MaxMemory = "80%" }, false},
		{"zero batch size", func(c *Config) { c.Data.BatchSize = 0 }, true},
		{"cache without path", func(c *Config) { c.Cache.Path = "" }, true},
		{"in-memory cache without path", func(c *Config) { c.Cache.Path = ""; c.Cache.InMemory = true }, false},
		{"disabled cache without path", func(c *Config) { c.Cache.Path = ""; c.Cache.Enabled = false }, false},
		{"discard ratio of one", func(c *Config) { c.Cache.GCDiscardRatio = 1 }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"long shutdown", func(c *Config) { c.Server.ShutdownTimeout = time.Hour }, true},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"metrics path without slash", func(c *Config) { c.Metrics.Path = "metrics" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.Workers = 3
	cfg.Recommend.ExcludeVisited = true
	cfg.Cache.Enabled = false

	ec := cfg.EngineConfig()
	if ec.Workers != 3 || !ec.ExcludeVisited {
		t.Errorf("EngineConfig() = %+v", ec)
	}
	if ec.Limits.DefaultK != 10 || ec.Limits.MaxK != 100 {
		t.Errorf("Limits = %+v", ec.Limits)
	}
	if ec.Cache.Enabled {
		t.Error("Cache.Enabled should follow the cache section")
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("converted engine config should validate: %v", err)
	}
}

func TestStoreConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.InMemory = true

	sc := cfg.StoreConfig()
	if !sc.InMemory || sc.TTL != time.Hour || sc.MemoryEntries != 1024 {
		t.Errorf("StoreConfig() = %+v", sc)
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.Caller = true

	lc := cfg.LoggerConfig()
	if lc.Level != "debug" || !lc.Caller || lc.Format != "json" {
		t.Errorf("LoggerConfig() = %+v", lc)
	}
	if lc.Output == nil {
		t.Error("LoggerConfig() should default the output writer")
	}
}
