package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/speccover/analysis"
	"github.com/c360studio/speccover/ingest"
	"github.com/c360studio/speccover/metrics"
	"github.com/c360studio/speccover/report"
)

// NewWatchCmd creates the watch command: re-run the analysis whenever
// the watched documents change, optionally exposing Prometheus metrics.
func NewWatchCmd(opts *Options) *cobra.Command {
	var (
		sourcePath  string
		qaPath      string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the analysis when scenario documents change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				cfg.Metrics.Addr = metricsAddr
			}

			runner, reader := opts.newRunner(cfg)
			collector := metrics.NewCollector()
			runner.SetCollector(collector)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Metrics.Addr != "" {
				go func() {
					if err := collector.Serve(ctx, cfg.Metrics.Addr, opts.Logger); err != nil {
						opts.Logger.Error("Metrics endpoint failed", "error", err)
					}
				}()
			}

			watcher, err := ingest.NewWatcher(reader, []string{sourcePath, qaPath}, cfg.Watch.DebounceDelay, opts.Logger)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer func() { _ = watcher.Stop() }()
			watcher.Start(ctx)

			// Run once up front, then on every debounced change.
			if err := runAndRender(cmd, opts, runner, reader, sourcePath, qaPath); err != nil {
				opts.Logger.Warn("Analysis failed", "error", err)
			}
			for {
				select {
				case <-ctx.Done():
					return nil
				case _, ok := <-watcher.Changes():
					if !ok {
						return nil
					}
					if err := runAndRender(cmd, opts, runner, reader, sourcePath, qaPath); err != nil {
						opts.Logger.Warn("Analysis failed", "error", err)
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "Source documents directory (required)")
	cmd.Flags().StringVar(&qaPath, "qa", "", "QA documents directory (required)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus listen address (e.g. :9090)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("qa")

	return cmd
}

// runAndRender performs one full analysis and prints the reports.
func runAndRender(cmd *cobra.Command, opts *Options, runner *analysis.Runner, reader *ingest.Reader, sourcePath, qaPath string) error {
	source, err := readDocuments(reader, sourcePath)
	if err != nil {
		return fmt.Errorf("read source documents: %w", err)
	}
	qa, err := readDocuments(reader, qaPath)
	if err != nil {
		return fmt.Errorf("read QA documents: %w", err)
	}

	run := runner.Analyze(source, qa)
	cmd.Println(report.RenderCoverage(run))
	cmd.Println(report.RenderDuplicates(run.Duplicates))
	return nil
}
