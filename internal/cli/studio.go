package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cotstudio/cot/internal/tui"
)

// NewStudioCmd creates the "studio" command, the full interactive shell:
// sidebar navigation between projects, documents, tasks, and the knowledge
// graph, with modal dialogs on top.
func NewStudioCmd() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "studio",
		Short: "Open the interactive studio shell",
		Long: `Opens the full COT Studio terminal shell.

The shell needs an interactive terminal. Scripts should use the dedicated
subcommands (project list, docs browse, tasks, graph) with --output instead.`,
		Example: `  # Open the studio
  cot studio

  # Open with a project already selected
  cot studio --project proj-123`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !tui.IsTTY(os.Stdin) || !tui.IsTTY(os.Stdout) {
				return errors.New("studio needs an interactive terminal; use the subcommands with --output when piping")
			}

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			shell, err := tui.NewShellModel(ctx, client, projectID)
			if err != nil {
				return err
			}

			program := tea.NewProgram(shell, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running studio: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Open with this project selected")

	return cmd
}
