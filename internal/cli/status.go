package cli

import (
	"fmt"
	"path/filepath"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/config"
	"github.com/cotstudio/cot/internal/logging"
	"github.com/cotstudio/cot/internal/workspace"
)

// statusReport aggregates the health probes for "cot status".
type statusReport struct {
	Server       *api.ServerInfo `json:"server,omitempty" yaml:"server,omitempty"`
	ServerErr    string          `json:"server_error,omitempty" yaml:"server_error,omitempty"`
	Projects     int             `json:"projects" yaml:"projects"`
	RunningTasks int             `json:"running_tasks" yaml:"running_tasks"`
	Workspace    string          `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	ConfigPath   string          `json:"config_path" yaml:"config_path"`
}

// NewStatusCmd creates the "status" command. It probes the server and the
// local setup concurrently and exits with ExitCodeUnhealthy when the server
// is unreachable or incompatible.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check server connectivity and workspace health",
		Example: `  # Human-readable health summary
  cot status

  # Machine-readable, for monitoring
  cot status --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)

			format, err := resolveOutputFormat(cmd)
			if err != nil {
				return err
			}

			report := statusReport{ConfigPath: config.GetGlobalConfig().ConfigPath()}
			if dir := config.GetResolvedWorkspaceDir(); dir != "" {
				report.Workspace = dir
			}

			// The compatibility probe is part of the report, so build the
			// client without the up-front gate newAPIClient applies.
			client, err := api.NewFromConfig(config.GetGlobalConfig())
			if err != nil {
				return fmt.Errorf("creating API client: %w", err)
			}

			group, groupCtx := errgroup.WithContext(ctx)
			group.SetLimit(runtime.NumCPU())

			group.Go(func() error {
				info, infoErr := client.GetServerInfo(groupCtx)
				if infoErr != nil {
					report.ServerErr = infoErr.Error()
					return nil
				}
				report.Server = info
				if verErr := api.CheckServerVersion(info.APIVersion); verErr != nil {
					report.ServerErr = verErr.Error()
				}
				return nil
			})
			group.Go(func() error {
				projects, listErr := client.ListProjects(groupCtx)
				if listErr != nil {
					return nil // folded into the server probe result
				}
				report.Projects = len(projects)
				return nil
			})
			group.Go(func() error {
				tasks, listErr := client.ListTasks(groupCtx, api.ListTasksParams{State: api.TaskStateRunning})
				if listErr != nil {
					return nil
				}
				report.RunningTasks = len(tasks)
				return nil
			})

			// The probes never return errors, but Wait still observes
			// context cancellation.
			if err := group.Wait(); err != nil {
				return err
			}

			if structuredFormat(format) {
				if err := writeStructured(cmd.OutOrStdout(), format, report, []statusReport{report}); err != nil {
					return err
				}
			} else if err := renderStatusReport(cmd, report); err != nil {
				return err
			}

			if report.ServerErr != "" {
				log.Warn().Ctx(ctx).Str("error", report.ServerErr).Msg("server unhealthy")
				return &ExitError{Code: ExitCodeUnhealthy, Reason: "server unhealthy: " + report.ServerErr}
			}
			return nil
		},
	}

	cmd.Flags().String("output", "", "Output format: table, json, ndjson, or yaml (default from configuration)")

	return cmd
}

// renderStatusReport writes the human-readable summary.
func renderStatusReport(cmd *cobra.Command, report statusReport) error {
	const tabPadding = 2
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)

	if report.Server != nil {
		fmt.Fprintf(tw, "Server:\t%s (API %s)\n", report.Server.Name, report.Server.APIVersion)
	}
	if report.ServerErr != "" {
		fmt.Fprintf(tw, "Server error:\t%s\n", report.ServerErr)
	} else {
		fmt.Fprintf(tw, "Projects:\t%d\n", report.Projects)
		fmt.Fprintf(tw, "Running tasks:\t%d\n", report.RunningTasks)
	}
	if report.Workspace != "" {
		// The resolved dir is $ROOT/.cotstudio; the manifest sits at $ROOT.
		root := filepath.Dir(report.Workspace)
		fmt.Fprintf(tw, "Workspace:\t%s\n", root)
		if _, err := workspace.LoadManifest(root); err != nil {
			fmt.Fprintf(tw, "Workspace manifest:\t%v\n", err)
		}
	}
	fmt.Fprintf(tw, "Config:\t%s\n", report.ConfigPath)
	return tw.Flush()
}
