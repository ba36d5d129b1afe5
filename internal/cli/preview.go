// Package cli implements the Cobra command hierarchy for the repograph CLI tool.
// This file implements the `repograph preview` subcommand which shows file selection
// and token statistics without generating an output file.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repograph/repograph/internal/cli/tui"
	"github.com/repograph/repograph/internal/config"
	"github.com/repograph/repograph/internal/engine"
	"github.com/repograph/repograph/internal/relevance"
	"github.com/repograph/repograph/internal/tokenizer"
)

// previewHeatmap is a local flag target for --heatmap on the preview command.
// It is a file-level variable (not inside init) to avoid dereferencing the
// flagValues pointer before root.go's init() has populated it.
var previewHeatmap bool

// previewInteractive is a local flag target for --interactive, which launches
// the bubbletea file browser instead of printing a static report.
var previewInteractive bool

// previewExplain enables per-file priority-formula output.
var previewExplain int

// previewCmd implements `repograph preview` which shows file selection and token
// distribution without generating an output file.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview file selection and token statistics without generating output",
	Long: `Preview runs the file discovery and token counting stages without writing
an output context file. Use this to inspect which files would be included,
their token counts, and how they relate to your token budget.

Examples:
  # Preview the current directory
  repograph preview

  # Show token density heatmap to find context-bloat files
  repograph preview --heatmap

  # Preview with a specific tokenizer
  repograph preview --tokenizer o200k_base

  # Show the top 20 largest files
  repograph preview --top-files 20`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewHeatmap, "heatmap", false, "Show token density heatmap (tokens per line)")
	previewCmd.Flags().BoolVarP(&previewInteractive, "interactive", "i", false, "browse the selected files in a terminal UI instead of printing a report")
	previewCmd.Flags().IntVar(&previewExplain, "explain-priority", 0, "show the priority formula for the top N selected files")
	rootCmd.AddCommand(previewCmd)
}

// runPreview executes the full discovery-through-budget pipeline and reports
// file selection and token statistics without writing an output context file.
func runPreview(cmd *cobra.Command, args []string) error {
	fv := GlobalFlags()

	// Sync the local heatmap flag back to the shared FlagValues so that
	// downstream callers (e.g. pipeline) can read it from a single place.
	fv.Heatmap = previewHeatmap

	result, err := engine.Run(cmd.Context(), fv)
	if err != nil {
		return err
	}

	if previewInteractive {
		report := tokenizer.NewTokenReport(result.Files, fv.Tokenizer, fv.MaxTokens)
		return tui.Run(result.Files, report.Format())
	}

	if fv.Heatmap {
		lineCounts := make(map[string]int, len(result.Files))
		for _, fd := range result.Files {
			lineCounts[fd.Path] = strings.Count(fd.Content, "\n") + 1
		}
		report := tokenizer.NewHeatmapReport(result.Files, lineCounts)
		fmt.Fprint(os.Stderr, report.Format())
		return nil
	}

	if fv.TopFiles > 0 {
		PrintTopFiles(os.Stderr, result.Files, fv.TopFiles)
		return nil
	}

	if previewExplain > 0 {
		rules := priorityRulesFromFlags(fv.CustomPriority)
		for i, fd := range result.Files {
			if i >= previewExplain {
				break
			}
			fmt.Fprint(os.Stderr, relevance.ExplainPriority(fd, rules).Format())
		}
		return nil
	}

	report := tokenizer.NewTokenReport(result.Files, fv.Tokenizer, fv.MaxTokens)
	fmt.Fprint(os.Stderr, report.Format())
	return nil
}

// priorityRulesFromFlags compiles the already-validated pattern=weight flag
// values; entries that no longer parse are skipped.
func priorityRulesFromFlags(raw []string) []relevance.PriorityRule {
	rules := make([]relevance.PriorityRule, 0, len(raw))
	for _, r := range raw {
		pattern, weight, err := config.ParsePriorityRule(r)
		if err != nil {
			continue
		}
		rules = append(rules, relevance.PriorityRule{Pattern: pattern, Weight: weight})
	}
	return rules
}
