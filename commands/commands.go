// Package commands implements the speccover CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/c360studio/speccover/analysis"
	"github.com/c360studio/speccover/config"
	"github.com/c360studio/speccover/ingest"
	"github.com/c360studio/speccover/scenario"
)

// Options carries the shared state every subcommand needs.
type Options struct {
	// ConfigPath overrides the layered config lookup when set.
	ConfigPath string
	Logger     *slog.Logger
}

// loadConfig resolves configuration from an explicit path or the layered
// loader.
func (o *Options) loadConfig() (*config.Config, error) {
	if o.ConfigPath != "" {
		cfg, err := config.LoadFromFile(o.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.NewLoader(o.Logger).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newRunner builds the analysis runner and document reader for a config.
func (o *Options) newRunner(cfg *config.Config) (*analysis.Runner, *ingest.Reader) {
	reader := ingest.NewReader(cfg.Ingest.Extensions, cfg.Ingest.ExcludeDirs)
	reader.SetLogger(o.Logger)
	return analysis.NewRunner(cfg, o.Logger), reader
}

// readDocuments loads a path's documents as parser inputs.
func readDocuments(reader *ingest.Reader, path string) ([]scenario.Document, error) {
	docs, err := reader.ReadPath(path)
	if err != nil {
		return nil, err
	}
	out := make([]scenario.Document, len(docs))
	for i, d := range docs {
		out[i] = scenario.Document{Name: d.Name, Text: d.Text}
	}
	return out, nil
}
