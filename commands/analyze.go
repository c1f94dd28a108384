package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/speccover/coverage"
	"github.com/c360studio/speccover/report"
)

// NewAnalyzeCmd creates the analyze command: parse both document sets,
// match coverage, cluster duplicates, and render the full report.
func NewAnalyzeCmd(opts *Options) *cobra.Command {
	var (
		sourcePath string
		qaPath     string
		policy     string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze QA coverage of source behavior scenarios",
		Long: `Analyze parses the source and QA scenario documents, matches every
source behavior against the QA set, and reports coverage, missing
behaviors, unmatched QA scenarios, and duplicate QA scenarios.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if policy != "" {
				cfg.Coverage.Policy = coverage.Policy(policy)
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}
			}

			runner, reader := opts.newRunner(cfg)

			source, err := readDocuments(reader, sourcePath)
			if err != nil {
				return fmt.Errorf("read source documents: %w", err)
			}
			qa, err := readDocuments(reader, qaPath)
			if err != nil {
				return fmt.Errorf("read QA documents: %w", err)
			}

			run := runner.Analyze(source, qa)

			if asJSON {
				out, err := report.RenderJSON(run)
				if err != nil {
					return err
				}
				cmd.Println(out)
				return nil
			}
			cmd.Println(report.RenderCoverage(run))
			cmd.Println(report.RenderDuplicates(run.Duplicates))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "Source documents: file, directory, or glob (required)")
	cmd.Flags().StringVar(&qaPath, "qa", "", "QA documents: file, directory, or glob (required)")
	cmd.Flags().StringVar(&policy, "policy", "", "Match policy override (many-to-one, at-most-one)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full run as JSON")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("qa")

	return cmd
}
