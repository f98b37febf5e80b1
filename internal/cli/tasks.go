package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/tui"
)

// taskListDocument is the json/yaml payload for a plain task listing.
type taskListDocument struct {
	Tasks []api.Task `json:"tasks" yaml:"tasks"`
}

// NewTasksCmd creates the "tasks" command. Interactive terminals get the
// live polling dashboard; pipes and explicit structured formats get a
// one-shot listing.
func NewTasksCmd() *cobra.Command {
	var (
		interval time.Duration
		state    string
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Watch annotation and import tasks",
		Long:  "Shows a project's tasks. Interactive terminals open a dashboard that refreshes on an interval; pipes print the current tasks once.",
		Example: `  # Live dashboard, refreshed every 5 seconds
  cot tasks --project proj-123

  # Faster refresh
  cot tasks --project proj-123 --interval 2s

  # One-shot listing of running tasks for scripts
  cot tasks --project proj-123 --state running --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			projectID, err := requireProject(cmd)
			if err != nil {
				return err
			}

			format, err := resolveOutputFormat(cmd)
			if err != nil {
				return err
			}

			if !structuredFormat(format) && detectMode(cmd) == tui.OutputModeInteractive {
				return runTaskDashboard(ctx, projectID, interval)
			}

			audit := newAuditContext(ctx, "tasks", map[string]string{
				"project_id": projectID,
				"output":     format,
			})

			client, err := newAPIClient(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			tasks, err := client.ListTasks(ctx, api.ListTasksParams{
				ProjectID: projectID,
				State:     state,
			})
			if err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("listing tasks: %w", err)
			}

			doc := taskListDocument{Tasks: tasks}
			if structuredFormat(format) {
				if err := writeStructured(cmd.OutOrStdout(), format, doc, doc.Tasks); err != nil {
					audit.logFailure(ctx, err)
					return err
				}
				audit.logSuccess(ctx, len(tasks))
				return nil
			}

			if detectMode(cmd) == tui.OutputModeStyled {
				fmt.Fprintln(cmd.OutOrStdout(), tui.HeaderStyle.Render("TASKS"))
			}
			if err := renderTaskTable(cmd.OutOrStdout(), tasks); err != nil {
				audit.logFailure(ctx, err)
				return err
			}
			audit.logSuccess(ctx, len(tasks))
			return nil
		},
	}

	cmd.Flags().String("project", "", "Project ID (required)")
	cmd.Flags().String("output", "", "Output format: table, json, ndjson, or yaml (default from configuration)")
	cmd.Flags().DurationVar(&interval, "interval", tui.DefaultPollInterval, "Dashboard refresh interval")
	cmd.Flags().StringVar(&state, "state", "", "Filter by task state (pending, running, done, failed)")

	return cmd
}

// runTaskDashboard runs the interactive polling dashboard.
func runTaskDashboard(ctx context.Context, projectID string, interval time.Duration) error {
	client, err := newAPIClient(ctx)
	if err != nil {
		return err
	}

	model := tui.NewTasksModel(ctx, client, projectID, interval)
	program := tea.NewProgram(tui.NewStandalone(model), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running task dashboard: %w", err)
	}
	return nil
}

// renderTaskTable writes the listing as an aligned table.
func renderTaskTable(w io.Writer, tasks []api.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}

	const tabPadding = 2
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tKind\tState\tProgress\tUpdated")
	fmt.Fprintln(tw, "--\t----\t-----\t--------\t-------")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f%%\t%s\n",
			t.ID, t.Kind, t.State, t.Progress*100, t.UpdatedAt.Format("15:04:05"))
	}
	return tw.Flush()
}
