package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cotstudio/cot/internal/config"
	"github.com/cotstudio/cot/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the cot CLI.
// It wires up logging, tracing, audit logging, workspace resolution, and the
// subcommand groups (project, docs, tasks, graph, studio, config, setup, status).
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, os.Args, os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with explicit args and env lookup for testability.
// This allows tests to inject custom args and environment variables.
func NewRootCmdWithArgs(
	ver string,
	_ []string,
	lookupEnv func(string) (string, bool),
) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "cot",
		Short:   "COT Studio terminal client",
		Long:    "cot: Browse, import, and export COT Studio projects, documents, tasks, and knowledge graphs",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Validate cache-ttl is non-negative (negative values cause undefined cache expiry behavior)
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			// Resolve the workspace before loading config so a workspace-local
			// .cotstudio/config.yaml can overlay the global one.
			projectDir, _ := cmd.Flags().GetString("project-dir")
			startDir, err := os.Getwd()
			if err != nil {
				startDir = "."
			}
			workspaceDir := resolveWorkspace(cmd.Context(), projectDir, startDir, lookupEnv)
			config.InitGlobalConfigWithWorkspace(cmd.Context(), workspaceDir)

			// CLI flag overrides land on the loaded global config.
			if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
				config.GetGlobalConfig().API.BaseURL = apiURL
			}
			if cacheTTL > 0 {
				config.GetGlobalConfig().API.CacheTTLSeconds = cacheTTL
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().Bool("plain", false, "force plain non-interactive output")
	cmd.PersistentFlags().
		Bool("skip-version-check", false, "skip server version compatibility check")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "response cache TTL in seconds (0 = use config default, overrides config file)")
	cmd.PersistentFlags().
		String("api-url", "", "COT Studio API base URL (overrides config file)")
	cmd.PersistentFlags().
		String("project-dir", "", "workspace directory (defaults to walking up from the current directory)")
	cmd.AddCommand(
		newProjectCmd(), newDocsCmd(), NewTasksCmd(), NewGraphCmd(),
		NewStudioCmd(), newConfigCmd(), NewSetupCmd(), NewStatusCmd(),
	)

	return cmd
}

// resolveWorkspace picks the workspace directory for this invocation. The
// injected env lookup keeps the flag > COTSTUDIO_WORKSPACE > walk-up order
// testable without mutating the process environment.
func resolveWorkspace(
	ctx context.Context,
	flagValue, startDir string,
	lookupEnv func(string) (string, bool),
) string {
	if flagValue == "" {
		if envDir, ok := lookupEnv("COTSTUDIO_WORKSPACE"); ok && envDir != "" {
			flagValue = envDir
		}
	}
	return config.ResolveWorkspaceDir(ctx, flagValue, startDir)
}

const rootCmdExample = `  # Open the full studio shell
  cot studio

  # Browse documents in the current workspace's project
  cot docs browse --project proj-123

  # Import a directory of documents in batches
  cot docs import ./corpus --project proj-123

  # Export annotations as ndjson to stdout
  cot docs export --project proj-123 --output ndjson

  # Watch annotation tasks refresh every 2 seconds
  cot tasks --project proj-123 --interval 2s

  # List projects as JSON with a custom cache TTL (5 minutes)
  cot project list --output json --cache-ttl 300

  # Initialize configuration
  cot config init

  # Check connectivity and workspace health
  cot status`

// newProjectCmd creates the project command group with CRUD subcommands.
func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project management commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Call root command's PersistentPreRunE to ensure logging/tracing is set up.
			// Cobra child commands override parent's PersistentPreRunE, so we must call explicitly.
			// Navigate to the root command to avoid recursion. We pass root itself as the command
			// to prevent Cobra from traversing back through the parent chain.
			root := cmd.Root()
			if root != nil && root.PersistentPreRunE != nil && root != cmd {
				if err := root.PersistentPreRunE(root, args); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.AddCommand(
		NewProjectListCmd(), NewProjectCreateCmd(),
		NewProjectRenameCmd(), NewProjectDeleteCmd(),
	)
	return cmd
}

// newDocsCmd creates the docs command group with browse, import, and export subcommands.
func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Document browsing, import, and export commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			if root != nil && root.PersistentPreRunE != nil && root != cmd {
				if err := root.PersistentPreRunE(root, args); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.AddCommand(NewDocsBrowseCmd(), NewDocsImportCmd(), NewDocsExportCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}
