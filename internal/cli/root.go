// Package cli provides the command-line interface for appfwlog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appfwlog/appfwlog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "appfwlog",
		Short: "Parse macOS application firewall logs",
		Long: `appfwlog parses macOS application firewall logs (appfirewall.log) into
normalized, fully-timestamped events.

The source format omits the year and collapses repeated records into terse
markers; appfwlog reconstructs both: it infers the starting year (from a
hint, file metadata, or the clock), detects December-to-January rollover,
and expands repetition markers from the preceding full record.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
