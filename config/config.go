// Package config provides configuration loading and management for
// speccover.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/speccover/coverage"
	"github.com/c360studio/speccover/duplicates"
)

// Config represents the complete speccover configuration.
type Config struct {
	Coverage   coverage.Config   `yaml:"coverage"`
	Duplicates duplicates.Config `yaml:"duplicates"`
	Ingest     IngestConfig      `yaml:"ingest"`
	Watch      WatchConfig       `yaml:"watch"`
	Metrics    MetricsConfig     `yaml:"metrics"`
}

// IngestConfig configures document reading.
type IngestConfig struct {
	// Extensions lists the file extensions read as scenario documents.
	Extensions []string `yaml:"extensions"`
	// ExcludeDirs lists directory names skipped while globbing.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// DebounceDelay is how long to wait for more changes before re-running.
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// MetricsConfig configures the optional metrics listener.
type MetricsConfig struct {
	// Addr is the listen address for the Prometheus endpoint in watch
	// mode (empty = disabled).
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Coverage:   coverage.DefaultConfig(),
		Duplicates: duplicates.DefaultConfig(),
		Ingest: IngestConfig{
			Extensions:  []string{".feature", ".md", ".txt", ".html"},
			ExcludeDirs: []string{".git", "node_modules", "vendor"},
		},
		Watch: WatchConfig{
			DebounceDelay: 500 * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	cov := c.Coverage
	if cov.BaseThreshold <= 0 || cov.BaseThreshold > 1 {
		return fmt.Errorf("coverage.base_threshold must be in (0, 1]")
	}
	if cov.MinThreshold > cov.MaxThreshold {
		return fmt.Errorf("coverage.min_threshold must not exceed coverage.max_threshold")
	}
	switch cov.Policy {
	case coverage.PolicyManyToOne, coverage.PolicyAtMostOne:
	default:
		return fmt.Errorf("coverage.policy must be %q or %q", coverage.PolicyManyToOne, coverage.PolicyAtMostOne)
	}
	if c.Duplicates.HighThreshold < c.Duplicates.MediumThreshold {
		return fmt.Errorf("duplicates.high_threshold must be at least duplicates.medium_threshold")
	}
	if len(c.Ingest.Extensions) == 0 {
		return fmt.Errorf("ingest.extensions must not be empty")
	}
	return nil
}

// Merge merges another config into this one; other takes precedence for
// non-zero values. Zero-valued fields read as unset, so numeric knobs
// that support switching off, such as coverage.quick_score_pairs, take a
// negative value to disable explicitly.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Coverage
	if other.Coverage.BaseThreshold != 0 {
		c.Coverage.BaseThreshold = other.Coverage.BaseThreshold
	}
	if other.Coverage.MinThreshold != 0 {
		c.Coverage.MinThreshold = other.Coverage.MinThreshold
	}
	if other.Coverage.MaxThreshold != 0 {
		c.Coverage.MaxThreshold = other.Coverage.MaxThreshold
	}
	if other.Coverage.Policy != "" {
		c.Coverage.Policy = other.Coverage.Policy
	}
	if other.Coverage.QuickScorePairs != 0 {
		c.Coverage.QuickScorePairs = other.Coverage.QuickScorePairs
	}

	// Duplicates
	if other.Duplicates.HighThreshold != 0 {
		c.Duplicates.HighThreshold = other.Duplicates.HighThreshold
	}
	if other.Duplicates.MediumThreshold != 0 {
		c.Duplicates.MediumThreshold = other.Duplicates.MediumThreshold
	}
	if other.Duplicates.MediumStepGate != 0 {
		c.Duplicates.MediumStepGate = other.Duplicates.MediumStepGate
	}

	// Ingest
	if len(other.Ingest.Extensions) > 0 {
		c.Ingest.Extensions = other.Ingest.Extensions
	}
	if len(other.Ingest.ExcludeDirs) > 0 {
		c.Ingest.ExcludeDirs = other.Ingest.ExcludeDirs
	}

	// Watch and metrics
	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file, creating parent
// directories as needed.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
