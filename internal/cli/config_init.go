package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cotstudio/cot/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// When run inside a COT Studio workspace (without --global), it creates a
// workspace-local .cotstudio/ directory with config.yaml and a .gitignore.
// Otherwise, it creates the global ~/.cotstudio/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

When run inside a COT Studio workspace, creates workspace-local configuration
at $WORKSPACE/.cotstudio/config.yaml with a .gitignore to protect
user-specific data. Use --global to force global configuration
initialization even inside a workspace.`,
		Example: `  # Create workspace-local configuration (inside a workspace)
  cot config init

  # Create global configuration
  cot config init --global

  # Create configuration, overwriting existing
  cot config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workspaceDir := config.GetResolvedWorkspaceDir()

			if workspaceDir != "" && !global {
				return initWorkspaceConfig(cmd, workspaceDir, force)
			}

			return initGlobalConfigFile(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even inside a workspace")

	return cmd
}

// initWorkspaceConfig creates workspace-local config at workspaceDir/config.yaml
// with a .gitignore.
func initWorkspaceConfig(cmd *cobra.Command, workspaceDir string, force bool) error {
	configPath := filepath.Join(workspaceDir, "config.yaml")

	if !force {
		_, err := os.Stat(configPath)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", configPath, err)
		}
	}

	if err := os.MkdirAll(workspaceDir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace config directory: %w", err)
	}

	cfg := config.New()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Create .gitignore (never overwrites existing)
	created, err := config.EnsureGitignore(workspaceDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to protect user-specific data\n")
	}

	return nil
}

// initGlobalConfigFile creates global config at ~/.cotstudio/config.yaml.
func initGlobalConfigFile(cmd *cobra.Command, force bool) error {
	cfg := config.New()

	if !force {
		if _, err := os.Stat(cfg.ConfigPath()); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", cfg.ConfigPath(), err)
		}
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())

	return nil
}
