package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cotstudio/cot/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at ~/.cotstudio/config.yaml for syntax and semantic correctness.

This includes:
- YAML syntax validation
- API base URL and timeout validation
- Output format, color mode, and theme validation
- UI page size and buffer size bounds
- Logging level and format validation`,
		Example: `  # Validate current configuration
  cot config validate

  # Validate and show detailed information
  cot config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.New()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  API base URL: %s\n", cfg.API.BaseURL)
	cmd.Printf("  API timeout: %ds\n", cfg.API.TimeoutSeconds)
	cmd.Printf("  Response cache: %s\n", enabledWord(cfg.API.CacheEnabled))
	if cfg.API.CacheEnabled {
		cmd.Printf("  Cache TTL: %ds\n", cfg.API.CacheTTLSeconds)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Theme: %s\n", cfg.UI.Theme)
	cmd.Printf("  Page size: %d\n", cfg.UI.PageSize)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
}

func enabledWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
