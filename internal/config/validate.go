// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package config

import (
	"fmt"

	"github.com/tomtom215/platewise/internal/validation"
)

// Validate checks struct tags first, then the rules that span sections.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	return c.validateServer()
}

// validateCache requires a directory unless badger runs in memory.
func (c *Config) validateCache() error {
	if !c.Cache.Enabled || c.Cache.InMemory {
		return nil
	}
	if c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required when the cache is enabled and not in memory")
	}
	return nil
}

// validateServer keeps the shutdown grace period within the request timeout
// budget so in-flight fits can finish.
func (c *Config) validateServer() error {
	if c.Server.ShutdownTimeout > 10*c.Server.Timeout {
		return fmt.Errorf("server.shutdown_timeout (%s) must not exceed 10x server.timeout (%s)",
			c.Server.ShutdownTimeout, c.Server.Timeout)
	}
	return nil
}
