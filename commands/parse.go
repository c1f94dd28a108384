package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewParseCmd creates the parse command: dump the scenarios recovered
// from a document set, for checking what the parser sees.
func NewParseCmd(opts *Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <path>",
		Short: "Parse documents and print the recovered scenarios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			runner, reader := opts.newRunner(cfg)

			docs, err := readDocuments(reader, args[0])
			if err != nil {
				return fmt.Errorf("read documents: %w", err)
			}
			scenarios := runner.ParseOnly(docs)

			if asJSON {
				data, err := json.MarshalIndent(scenarios, "", "  ")
				if err != nil {
					return fmt.Errorf("encode scenarios: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			cmd.Printf("Recovered %d scenarios\n", len(scenarios))
			for _, s := range scenarios {
				cmd.Printf("\n%s  (%s:%d, %s, %s)\n",
					s.Title, s.Location.Document, s.Location.Line, s.WorkflowCategory, s.BusinessImpact)
				for _, step := range s.Steps {
					cmd.Printf("  %s\n", step)
				}
				if len(s.Tags) > 0 {
					cmd.Printf("  tags: %v\n", s.Tags)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit scenarios as JSON")
	return cmd
}
