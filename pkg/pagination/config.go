// Package pagination provides types and utilities for offset-based paginated
// queries using skip/limit semantics.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds pagination settings including limit bounds.
type Config struct {
	DefaultLimit int `toml:"default_limit" json:"default_limit"`
	MaxLimit     int `toml:"max_limit" json:"max_limit"`
}

// ConfigEnv maps environment variable names for pagination configuration.
type ConfigEnv struct {
	DefaultLimit string
	MaxLimit     string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultLimit != 0 {
		c.DefaultLimit = overlay.DefaultLimit
	}
	if overlay.MaxLimit != 0 {
		c.MaxLimit = overlay.MaxLimit
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = 100
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = 1000
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if env.DefaultLimit != "" {
		if v := os.Getenv(env.DefaultLimit); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.DefaultLimit = n
			}
		}
	}
	if env.MaxLimit != "" {
		if v := os.Getenv(env.MaxLimit); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxLimit = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive")
	}
	if c.MaxLimit < 1 {
		return fmt.Errorf("max_limit must be positive")
	}
	if c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("default_limit cannot exceed max_limit")
	}
	return nil
}
