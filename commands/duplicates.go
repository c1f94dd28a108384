package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/speccover/duplicates"
	"github.com/c360studio/speccover/report"
)

// NewDuplicatesCmd creates the duplicates command: cluster one QA
// document set into redundancy tiers without a source set.
func NewDuplicatesCmd(opts *Options) *cobra.Command {
	var (
		qaPath string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Find redundant QA scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			runner, reader := opts.newRunner(cfg)

			qa, err := readDocuments(reader, qaPath)
			if err != nil {
				return fmt.Errorf("read QA documents: %w", err)
			}

			scenarios := runner.ParseOnly(qa)
			clusterer := duplicates.NewClusterer(cfg.Duplicates)
			clusterer.SetLogger(opts.Logger)
			rep := clusterer.Cluster(scenarios, &duplicates.Sequence{})

			if asJSON {
				data, err := json.MarshalIndent(rep, "", "  ")
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}
			cmd.Println(report.RenderDuplicates(rep))
			return nil
		},
	}

	cmd.Flags().StringVar(&qaPath, "qa", "", "QA documents: file, directory, or glob (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON")
	_ = cmd.MarkFlagRequired("qa")

	return cmd
}
