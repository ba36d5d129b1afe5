package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/repograph/repograph/internal/engine"
	"github.com/repograph/repograph/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate LLM-optimized context from a codebase",
	Long: `Recursively discover files, apply filters, and produce a structured
context document optimized for large language models.

This is the primary workflow command. Running 'repograph' with no subcommand
is equivalent to running 'repograph generate'.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("preview", false, "show file tree and token estimate without writing output")
	rootCmd.AddCommand(generateCmd)

	// Register completion for inherited persistent flags on the generate command.
	generateCmd.RegisterFlagCompletionFunc("tokenizer", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"cl100k_base", "o200k_base", "none"}, cobra.ShellCompDirectiveNoFileComp
	})
	generateCmd.RegisterFlagCompletionFunc("truncation-strategy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"truncate", "skip"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	result, err := engine.Run(cmd.Context(), flagValues)
	if err != nil {
		return err
	}

	// --token-count and --top-files are report-only: they print their report
	// and skip writing the rendered document entirely.
	if flagValues.TokenCountOnly {
		PrintTokenReport(os.Stderr, result.Files, flagValues.Tokenizer, flagValues.MaxTokens)
		return nil
	}
	if flagValues.TopFiles > 0 {
		PrintTopFiles(os.Stderr, result.Files, flagValues.TopFiles)
		return nil
	}

	if flagValues.Stdout {
		fmt.Fprint(cmd.OutOrStdout(), result.Document)
	} else {
		if err := os.WriteFile(flagValues.Output, []byte(result.Document), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if !flagValues.Quiet {
		PrintTokenReport(os.Stderr, result.Files, flagValues.Tokenizer, flagValues.MaxTokens)
	}
	printDiagnostics(os.Stderr, result.Diagnostics)

	return nil
}

// maxDiagnosticLines bounds how many individual diagnostics are echoed after
// the summary count.
const maxDiagnosticLines = 5

func printDiagnostics(w io.Writer, diags *pipeline.Diagnostics) {
	if diags.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "%d file(s) reported non-fatal diagnostics:\n", diags.Len())
	for i, d := range diags.Entries() {
		if i >= maxDiagnosticLines {
			fmt.Fprintf(w, "  ... and %d more\n", diags.Len()-maxDiagnosticLines)
			break
		}
		fmt.Fprintf(w, "  [%s] %s: %v\n", d.Stage, d.Path, d.Err)
	}
}
