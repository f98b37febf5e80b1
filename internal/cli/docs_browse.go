package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/tui"
)

// docListDocument is the json/yaml payload for a plain document listing.
type docListDocument struct {
	Documents []api.Document `json:"documents" yaml:"documents"`
	Page      int            `json:"page" yaml:"page"`
	PerPage   int            `json:"per_page" yaml:"per_page"`
	Total     int            `json:"total" yaml:"total"`
	HasMore   bool           `json:"has_more" yaml:"has_more"`
}

// NewDocsBrowseCmd creates the "docs browse" command. Interactive terminals
// get the windowed document browser with infinite load; pipes and explicit
// structured formats get a single page of the server listing.
func NewDocsBrowseCmd() *cobra.Command {
	var (
		page    int
		perPage int
		sort    string
		query   string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a project's documents",
		Long:  "Browse documents in a project. Interactive terminals open the scrolling browser; pipes print one listing page.",
		Example: `  # Scroll through a project's documents
  cot docs browse --project proj-123

  # Search within the listing, newest first
  cot docs browse --project proj-123 --query intake --sort updated_desc --output json

  # Second page of a plain listing
  cot docs browse --project proj-123 --page 2 --per-page 100 --plain`,
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

			if sort != "" {
				if err := validateDocumentSort(sort); err != nil {
					return err
				}
			}

			if !structuredFormat(format) && detectMode(cmd) == tui.OutputModeInteractive {
				return runDocumentBrowser(ctx, projectID)
			}

			audit := newAuditContext(ctx, "docs_browse", map[string]string{
				"project_id": projectID,
				"output":     format,
			})

			client, err := newAPIClient(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			result, err := client.ListDocuments(ctx, api.ListDocumentsParams{
				ProjectID: projectID,
				Page:      page,
				PerPage:   perPage,
				Sort:      sort,
				Query:     query,
			})
			if err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("listing documents: %w", err)
			}

			doc := docListDocument{
				Documents: result.Items,
				Page:      result.Page,
				PerPage:   result.PerPage,
				Total:     result.Total,
				HasMore:   result.HasMore,
			}

			if structuredFormat(format) {
				if err := writeStructured(cmd.OutOrStdout(), format, doc, doc.Documents); err != nil {
					audit.logFailure(ctx, err)
					return err
				}
				audit.logSuccess(ctx, len(doc.Documents))
				return nil
			}

			if detectMode(cmd) == tui.OutputModeStyled {
				fmt.Fprintln(cmd.OutOrStdout(), tui.HeaderStyle.Render("DOCUMENTS"))
			}
			if err := renderDocumentTable(cmd.OutOrStdout(), doc); err != nil {
				audit.logFailure(ctx, err)
				return err
			}
			audit.logSuccess(ctx, len(doc.Documents))
			return nil
		},
	}

	cmd.Flags().String("project", "", "Project ID (required)")
	cmd.Flags().String("output", "", "Output format: table, json, ndjson, or yaml (default from configuration)")
	cmd.Flags().IntVar(&page, "page", 1, "Listing page (plain output only)")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Documents per page (plain output only, default from configuration)")
	cmd.Flags().StringVar(&sort, "sort", "", "Server sort order: updated_desc, updated_asc, title_asc, or status")
	cmd.Flags().StringVar(&query, "query", "", "Filter the listing by title substring")

	return cmd
}

// validateDocumentSort rejects sort orders the server does not accept.
func validateDocumentSort(sort string) error {
	switch sort {
	case api.SortUpdatedDesc, api.SortUpdatedAsc, api.SortTitleAsc, api.SortStatus:
		return nil
	default:
		return fmt.Errorf("unsupported sort order: %s (supported: %s, %s, %s, %s)",
			sort, api.SortUpdatedDesc, api.SortUpdatedAsc, api.SortTitleAsc, api.SortStatus)
	}
}

// runDocumentBrowser runs the interactive scrolling browser.
func runDocumentBrowser(ctx context.Context, projectID string) error {
	client, err := newAPIClient(ctx)
	if err != nil {
		return err
	}

	model, err := tui.NewDocumentsModel(ctx, client, projectID)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewStandalone(model), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running document browser: %w", err)
	}
	return nil
}

// renderDocumentTable writes one listing page as an aligned table.
func renderDocumentTable(w io.Writer, doc docListDocument) error {
	if len(doc.Documents) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return nil
	}

	const tabPadding = 2
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tTitle\tStatus\tAnnotations\tUpdated")
	fmt.Fprintln(tw, "--\t-----\t------\t-----------\t-------")
	for _, d := range doc.Documents {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			d.ID, d.Title, d.Status, d.AnnotationCount, d.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Page %d of %d documents", doc.Page, doc.Total)
	if doc.HasMore {
		fmt.Fprint(w, " (more available, use --page)")
	}
	fmt.Fprintln(w)
	return nil
}
