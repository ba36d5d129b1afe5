// Package cli implements the Cobra command hierarchy for the repograph CLI tool.
// The root command defined here is the entry point for all subcommands and
// handles cross-cutting concerns like logging initialization and error handling.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/repograph/repograph/internal/config"
	"github.com/repograph/repograph/internal/pipeline"
	"github.com/spf13/cobra"
)

// flagValues holds the parsed global flag values, populated by config.BindFlags
// during command initialization and validated in PersistentPreRunE.
var flagValues *config.FlagValues

var rootCmd = &cobra.Command{
	Use:   "repograph",
	Short: "Turn a repository into a token-budgeted LLM context document.",
	Long: `Repograph assembles a single context document describing a source
repository, sized to fit a token budget.

It walks the tree under layered ignore rules, extracts imports and symbols
per language, boosts files that important files depend on, and admits the
highest-priority files that fit the budget before rendering them with a
tree, table of contents, and per-file headers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Validate all global flags.
		if err := config.ValidateFlags(flagValues, cmd); err != nil {
			return err
		}

		// Initialize logging with validated flag values.
		level := config.ResolveLogLevel(flagValues.Verbose, flagValues.Quiet)
		format := config.ResolveLogFormat()
		config.SetupLogging(level, format)
		slog.Debug("logging initialized", "level", level, "format", format)

		// Layer the profile stack (defaults, global config, repograph.toml
		// or --profile-file, environment) beneath the explicit flags.
		resolved, err := config.Resolve(config.ResolveOptions{
			ProfileName: flagValues.Profile,
			ProfileFile: flagValues.ProfileFile,
			TargetDir:   flagValues.Dir,
		})
		if err != nil {
			return err
		}
		if problems := config.ValidateProfile(resolved.ProfileName, resolved.Profile); config.HasErrors(problems) {
			for _, p := range problems {
				slog.Error(p.Error())
			}
			return fmt.Errorf("profile %q failed validation", resolved.ProfileName)
		}
		config.ApplyResolvedProfile(flagValues, resolved.Profile, cmd)
		return nil
	},
	// When no subcommand is given, delegate to the generate command, unless
	// --mcp was passed, in which case serve the pipeline as an MCP tool over
	// stdio until the client disconnects or the process is signaled.
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagValues.MCP {
			return newMCPServer().Serve(cmd.Context())
		}
		return runGenerate(cmd, args)
	},
}

func init() {
	flagValues = config.BindFlags(rootCmd)

	// Register flag completion functions for flags with fixed valid values.
	// These enable intelligent tab completion (e.g., --format <TAB>).
	rootCmd.RegisterFlagCompletionFunc("format", completeFormat)
	rootCmd.RegisterFlagCompletionFunc("target", completeTarget)
}

// completeFormat returns the valid values for the --format flag.
func completeFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"markdown", "xml"}, cobra.ShellCompDirectiveNoFileComp
}

// completeTarget returns the valid values for the --target flag.
func completeTarget(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"claude", "chatgpt", "generic"}, cobra.ShellCompDirectiveNoFileComp
}

// Execute runs the root command and returns an appropriate exit code.
// If the error is a *pipeline.RepographError, its Code is used.
// Generic errors return ExitError (1). Nil returns ExitSuccess (0).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(pipeline.ExitSuccess)
}

// extractExitCode determines the process exit code from an error.
// If the error is a *pipeline.RepographError, its Code field is used.
// Otherwise, ExitError (1) is returned for any non-nil error.
func extractExitCode(err error) int {
	if err == nil {
		return int(pipeline.ExitSuccess)
	}
	var repographErr *pipeline.RepographError
	if errors.As(err, &repographErr) {
		return repographErr.Code
	}
	return int(pipeline.ExitError)
}

// RootCmd returns the root cobra.Command for use in testing and subcommand registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// GlobalFlags returns the parsed global flag values. This is available after
// PersistentPreRunE has run. Subcommands use this to access shared configuration.
func GlobalFlags() *config.FlagValues {
	return flagValues
}
