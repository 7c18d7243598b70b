package storage

import (
	"os"
	"path/filepath"
)

// Config holds staging storage parameters.
type Config struct {
	Dir string `toml:"dir"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Dir string
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
}

func (c *Config) loadDefaults() {
	if c.Dir == "" {
		c.Dir = filepath.Join(os.TempDir(), "slate-staging")
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Dir != "" {
		if v := os.Getenv(env.Dir); v != "" {
			c.Dir = v
		}
	}
}
