package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appfwlog/appfwlog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an appfwlog configuration file without parsing any logs.

Checks:
  - YAML syntax
  - Required fields
  - Timezone name resolution
  - Filter expression compilation
  - Output format and log level values`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Configuration valid!\n")
	fmt.Printf("  Inputs:   %d pattern(s)\n", len(cfg.Inputs))
	fmt.Printf("  Output:   %s\n", cfg.Output)
	if cfg.YearHint != 0 {
		fmt.Printf("  Year:     %d\n", cfg.YearHint)
	}
	if cfg.Timezone != "" {
		fmt.Printf("  Timezone: %s\n", cfg.Timezone)
	}
	if cfg.Filter != "" {
		fmt.Printf("  Filter:   %s\n", cfg.Filter)
	}

	return nil
}
