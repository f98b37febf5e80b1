package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/cli/pagination"
	"github.com/cotstudio/cot/internal/tui"
)

// projectListDocument is the json/yaml payload for project list.
type projectListDocument struct {
	Projects   []api.Project              `json:"projects" yaml:"projects"`
	Pagination *pagination.PaginationMeta `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// NewProjectListCmd creates the "project list" command. Interactive
// terminals get the project browser TUI; pipes and explicit structured
// formats get a scriptable listing with sorting and pagination.
func NewProjectListCmd() *cobra.Command {
	var (
		sortExpr string
		page     int
		pageSize int
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List projects with document and task counts. Interactive terminals open the project browser.",
		Example: `  # Browse projects interactively
  cot project list

  # Script-friendly listing
  cot project list --output json

  # Largest projects first, first page of 20
  cot project list --sort documents:desc --page 1 --page-size 20 --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			format, err := resolveOutputFormat(cmd)
			if err != nil {
				return err
			}

			if !structuredFormat(format) && detectMode(cmd) == tui.OutputModeInteractive {
				return runProjectBrowser(ctx, cmd)
			}

			audit := newAuditContext(ctx, "project_list", map[string]string{
				"output": format,
				"sort":   sortExpr,
			})

			client, err := newAPIClient(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			projects, err := client.ListProjects(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("listing projects: %w", err)
			}

			if sortExpr != "" {
				sorter := pagination.NewProjectSorter()
				field, order, parseErr := pagination.ParseSort(sortExpr)
				if parseErr != nil {
					return fmt.Errorf("invalid sort expression: %w", parseErr)
				}
				if !sorter.IsValidField(field) {
					return fmt.Errorf("%w: %q (valid fields: %s)",
						pagination.ErrInvalidSortField, field, strings.Join(sorter.GetValidFields(), ", "))
				}
				projects = sorter.Sort(projects, field, order)
			}

			params := pagination.PaginationParams{
				Limit:    limit,
				Offset:   offset,
				Page:     page,
				PageSize: pageSize,
			}
			if params.Page > 0 && params.PageSize == 0 {
				params.PageSize = pagination.DefaultPageSize
			}
			if err := params.Validate(); err != nil {
				return fmt.Errorf("invalid pagination parameters: %w", err)
			}

			doc := projectListDocument{Projects: projects}
			if params.IsEnabled() {
				doc.Projects = pagination.ApplyToSlice(params, projects)
				meta := pagination.NewPaginationMeta(params, len(projects))
				doc.Pagination = &meta
			}

			if structuredFormat(format) {
				if err := writeStructured(cmd.OutOrStdout(), format, doc, doc.Projects); err != nil {
					audit.logFailure(ctx, err)
					return err
				}
				audit.logSuccess(ctx, len(doc.Projects))
				return nil
			}

			if detectMode(cmd) == tui.OutputModeStyled {
				fmt.Fprintln(cmd.OutOrStdout(), tui.HeaderStyle.Render("PROJECTS"))
			}
			if err := renderProjectTable(cmd.OutOrStdout(), doc); err != nil {
				audit.logFailure(ctx, err)
				return err
			}
			audit.logSuccess(ctx, len(doc.Projects))
			return nil
		},
	}

	cmd.Flags().String("output", "", "Output format: table, json, ndjson, or yaml (default from configuration)")
	cmd.Flags().StringVar(&sortExpr, "sort", "", "Sort by field[:order], e.g. name, updated:desc")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (1-based, page mode)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Items per page (page mode)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of items (offset mode, 0 = all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of items to skip (offset mode)")

	return cmd
}

// runProjectBrowser runs the interactive project browser and prints a
// follow-up hint when the user opened a project before quitting.
func runProjectBrowser(ctx context.Context, cmd *cobra.Command) error {
	client, err := newAPIClient(ctx)
	if err != nil {
		return err
	}

	model, err := tui.NewProjectsModel(ctx, client)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewStandalone(model), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running project browser: %w", err)
	}

	if wrapper, ok := final.(*tui.Standalone); ok {
		if selected := wrapper.Selected(); selected != nil {
			cmd.Printf("Opened %s. Browse its documents with: cot docs browse --project %s\n",
				selected.Name, selected.ID)
		}
	}
	return nil
}

// renderProjectTable writes the listing as an aligned table with an optional
// pagination footer.
func renderProjectTable(w io.Writer, doc projectListDocument) error {
	if len(doc.Projects) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return nil
	}

	const tabPadding = 2
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tDocuments\tTasks\tUpdated")
	fmt.Fprintln(tw, "--\t----\t---------\t-----\t-------")
	for _, p := range doc.Projects {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			p.ID, p.Name, p.DocumentCount, p.TaskCount, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if doc.Pagination != nil {
		fmt.Fprintln(w, doc.Pagination.String())
	}
	return nil
}

// NewProjectCreateCmd creates the "project create" command.
func NewProjectCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		Example: `  # Create a project
  cot project create "Clinical Notes"

  # With a description
  cot project create corpus-2026 --description "2026 intake corpus"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("project name must not be empty")
			}

			audit := newAuditContext(ctx, "project_create", map[string]string{"name": name})

			client, err := newAPIClient(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			project, err := client.CreateProject(ctx, api.CreateProjectRequest{
				Name:        name,
				Description: description,
			})
			if err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("creating project: %w", err)
			}

			audit.logSuccess(ctx, 1)
			cmd.Printf("Created project %s (%s)\n", project.Name, project.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Project description")
	return cmd
}

// NewProjectRenameCmd creates the "project rename" command.
func NewProjectRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <project-id> <new-name>",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		Example: `  # Rename a project
  cot project rename proj-123 "Clinical Notes v2"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID := args[0]
			name := strings.TrimSpace(args[1])
			if name == "" {
				return errors.New("project name must not be empty")
			}

			audit := newAuditContext(ctx, "project_rename", map[string]string{
				"project_id": projectID,
				"name":       name,
			})

			client, err := newAPIClient(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			project, err := client.RenameProject(ctx, projectID, name)
			if err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("renaming project: %w", err)
			}

			audit.logSuccess(ctx, 1)
			cmd.Printf("Renamed project %s to %s\n", project.ID, project.Name)
			return nil
		},
	}
	return cmd
}

// NewProjectDeleteCmd creates the "project delete" command. Deletion asks
// for confirmation on a terminal; scripts must pass --yes.
func NewProjectDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and all of its documents",
		Args:  cobra.ExactArgs(1),
		Example: `  # Delete with confirmation prompt
  cot project delete proj-123

  # Delete without prompting (required when piping)
  cot project delete proj-123 --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID := args[0]

			if !yes {
				result := ConfirmActionWithStdin(cmd.OutOrStdout(),
					fmt.Sprintf("Delete project %q and all of its documents?", projectID))
				if !result.Accepted {
					cmd.Println("Aborted. Pass --yes to delete without confirmation.")
					return nil
				}
			}

			audit := newAuditContext(ctx, "project_delete", map[string]string{"project_id": projectID})

			client, err := newAPIClient(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			if err := client.DeleteProject(ctx, projectID); err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("deleting project: %w", err)
			}

			audit.logSuccess(ctx, 1)
			cmd.Printf("Deleted project %s\n", projectID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}
