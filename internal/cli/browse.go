// Package cli implements the Cobra command hierarchy for the repograph CLI tool.
// This file implements `repograph browse`, a dedicated entry point into the
// interactive file browser (the same terminal UI `preview --interactive`
// launches), for users who want to explore a selection without a report
// printed to stderr first.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/repograph/repograph/internal/cli/tui"
	"github.com/repograph/repograph/internal/engine"
	"github.com/repograph/repograph/internal/tokenizer"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the selected files in an interactive terminal UI",
	Long: `Browse runs the full selection pipeline and opens an interactive terminal UI
over the result: a token-report summary screen followed by a scrollable,
filterable list of the selected files ordered by priority.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	fv := GlobalFlags()

	result, err := engine.Run(cmd.Context(), fv)
	if err != nil {
		return err
	}

	report := tokenizer.NewTokenReport(result.Files, fv.Tokenizer, fv.MaxTokens)
	return tui.Run(result.Files, report.Format())
}
