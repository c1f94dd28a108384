package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c360studio/speccover/coverage"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Coverage.BaseThreshold != 0.70 {
		t.Errorf("expected default base threshold 0.70, got %f", cfg.Coverage.BaseThreshold)
	}
	if cfg.Coverage.Policy != coverage.PolicyManyToOne {
		t.Errorf("expected default policy many-to-one, got %s", cfg.Coverage.Policy)
	}
	if cfg.Watch.DebounceDelay != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", cfg.Watch.DebounceDelay)
	}
	if len(cfg.Ingest.Extensions) == 0 {
		t.Error("expected default ingest extensions")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "base threshold above one",
			modify:  func(c *Config) { c.Coverage.BaseThreshold = 1.5 },
			wantErr: true,
		},
		{
			name:    "base threshold zero",
			modify:  func(c *Config) { c.Coverage.BaseThreshold = 0 },
			wantErr: true,
		},
		{
			name:    "min threshold above max",
			modify:  func(c *Config) { c.Coverage.MinThreshold = 0.9 },
			wantErr: true,
		},
		{
			name:    "unknown policy",
			modify:  func(c *Config) { c.Coverage.Policy = "round-robin" },
			wantErr: true,
		},
		{
			name:    "inverted duplicate tiers",
			modify:  func(c *Config) { c.Duplicates.HighThreshold = 0.5 },
			wantErr: true,
		},
		{
			name:    "no ingest extensions",
			modify:  func(c *Config) { c.Ingest.Extensions = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "speccover.yaml")

	content := `
coverage:
  base_threshold: 0.65
  policy: "at-most-one"
duplicates:
  high_threshold: 0.85
watch:
  debounce_delay: 2s
metrics:
  addr: ":9187"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Coverage.BaseThreshold != 0.65 {
		t.Errorf("expected base threshold 0.65, got %f", cfg.Coverage.BaseThreshold)
	}
	if cfg.Coverage.Policy != coverage.PolicyAtMostOne {
		t.Errorf("expected policy at-most-one, got %s", cfg.Coverage.Policy)
	}
	if cfg.Duplicates.HighThreshold != 0.85 {
		t.Errorf("expected high threshold 0.85, got %f", cfg.Duplicates.HighThreshold)
	}
	if cfg.Watch.DebounceDelay != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.DebounceDelay)
	}
	if cfg.Metrics.Addr != ":9187" {
		t.Errorf("expected metrics addr :9187, got %s", cfg.Metrics.Addr)
	}
	// Unspecified sections keep their defaults.
	if cfg.Duplicates.MediumThreshold != 0.70 {
		t.Errorf("expected medium threshold default 0.70, got %f", cfg.Duplicates.MediumThreshold)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Coverage: coverage.Config{
			BaseThreshold: 0.75,
			Policy:        coverage.PolicyAtMostOne,
		},
		Metrics: MetricsConfig{Addr: ":9187"},
	}

	base.Merge(override)

	if base.Coverage.BaseThreshold != 0.75 {
		t.Errorf("expected base threshold 0.75, got %f", base.Coverage.BaseThreshold)
	}
	if base.Coverage.Policy != coverage.PolicyAtMostOne {
		t.Errorf("expected policy at-most-one, got %s", base.Coverage.Policy)
	}
	if base.Metrics.Addr != ":9187" {
		t.Errorf("expected metrics addr :9187, got %s", base.Metrics.Addr)
	}
	// Min threshold should remain from base since override didn't set it
	if base.Coverage.MinThreshold != 0.55 {
		t.Errorf("expected min threshold to remain default, got %f", base.Coverage.MinThreshold)
	}
}

func TestConfigMergeNegativeDisablesFastPath(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Coverage: coverage.Config{QuickScorePairs: -1},
	}

	base.Merge(override)

	// Zero reads as unset, so a negative value is the explicit off switch.
	if base.Coverage.QuickScorePairs != -1 {
		t.Errorf("expected quick score pairs -1, got %d", base.Coverage.QuickScorePairs)
	}
	if base.Coverage.BaseThreshold != 0.70 {
		t.Errorf("expected base threshold to remain default, got %f", base.Coverage.BaseThreshold)
	}
}

func TestConfigMergeNil(t *testing.T) {
	base := DefaultConfig()
	base.Merge(nil)
	if base.Coverage.BaseThreshold != 0.70 {
		t.Errorf("expected defaults untouched, got %f", base.Coverage.BaseThreshold)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "speccover.yaml")

	cfg := DefaultConfig()
	cfg.Coverage.BaseThreshold = 0.72

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Coverage.BaseThreshold != 0.72 {
		t.Errorf("expected base threshold 0.72, got %f", loaded.Coverage.BaseThreshold)
	}
}
