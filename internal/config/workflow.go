package config

import (
	"fmt"
	"os"
	"time"
)

const EnvWorkflowAnalysisTimeout = "SLATE_WORKFLOW_ANALYSIS_TIMEOUT"

// WorkflowConfig holds analysis workflow parameters.
type WorkflowConfig struct {
	AnalysisTimeout string `toml:"analysis_timeout"`
}

// AnalysisTimeoutDuration returns AnalysisTimeout as a time.Duration.
func (c *WorkflowConfig) AnalysisTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.AnalysisTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.AnalysisTimeout != "" {
		c.AnalysisTimeout = overlay.AnalysisTimeout
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.AnalysisTimeout == "" {
		c.AnalysisTimeout = "300s"
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvWorkflowAnalysisTimeout); v != "" {
		c.AnalysisTimeout = v
	}
}

func (c *WorkflowConfig) validate() error {
	d, err := time.ParseDuration(c.AnalysisTimeout)
	if err != nil {
		return fmt.Errorf("invalid analysis_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("analysis_timeout must be positive")
	}
	return nil
}
