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

// graphListDocument is the json/yaml payload for a plain node listing.
type graphListDocument struct {
	Stats *api.GraphStats `json:"stats,omitempty" yaml:"stats,omitempty"`
	Nodes []api.GraphNode `json:"nodes" yaml:"nodes"`
	Page  int             `json:"page" yaml:"page"`
	Total int             `json:"total" yaml:"total"`
}

// NewGraphCmd creates the "graph" command. Interactive terminals get the
// windowed node-card grid; pipes and explicit structured formats get the
// graph stats plus one page of nodes.
func NewGraphCmd() *cobra.Command {
	var (
		kind    string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "View a project's knowledge graph",
		Long:  "Shows a project's knowledge-graph nodes. Interactive terminals open the card grid; pipes print stats and one listing page.",
		Example: `  # Browse node cards in a grid
  cot graph --project proj-123

  # Only claim nodes
  cot graph --project proj-123 --kind claim

  # Stats and first node page for scripts
  cot graph --project proj-123 --output json`,
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
				return runGraphGrid(ctx, projectID)
			}

			audit := newAuditContext(ctx, "graph", map[string]string{
				"project_id": projectID,
				"output":     format,
			})

			client, err := newAPIClient(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			stats, err := client.GetGraphStats(ctx, projectID)
			if err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("fetching graph stats: %w", err)
			}

			nodes, err := client.GraphNodes(ctx, api.GraphNodesParams{
				ProjectID: projectID,
				Page:      page,
				PerPage:   perPage,
				Kind:      kind,
			})
			if err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("listing graph nodes: %w", err)
			}

			doc := graphListDocument{
				Stats: stats,
				Nodes: nodes.Items,
				Page:  nodes.Page,
				Total: nodes.Total,
			}

			if structuredFormat(format) {
				if err := writeStructured(cmd.OutOrStdout(), format, doc, doc.Nodes); err != nil {
					audit.logFailure(ctx, err)
					return err
				}
				audit.logSuccess(ctx, len(doc.Nodes))
				return nil
			}

			if detectMode(cmd) == tui.OutputModeStyled {
				fmt.Fprintln(cmd.OutOrStdout(), tui.HeaderStyle.Render("KNOWLEDGE GRAPH"))
			}
			if err := renderGraphListing(cmd.OutOrStdout(), doc); err != nil {
				audit.logFailure(ctx, err)
				return err
			}
			audit.logSuccess(ctx, len(doc.Nodes))
			return nil
		},
	}

	cmd.Flags().String("project", "", "Project ID (required)")
	cmd.Flags().String("output", "", "Output format: table, json, ndjson, or yaml (default from configuration)")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by node kind (entity, concept, claim)")
	cmd.Flags().IntVar(&page, "page", 1, "Listing page (plain output only)")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Nodes per page (plain output only, default from configuration)")

	return cmd
}

// runGraphGrid runs the interactive node-card grid.
func runGraphGrid(ctx context.Context, projectID string) error {
	client, err := newAPIClient(ctx)
	if err != nil {
		return err
	}

	model, err := tui.NewGraphModel(ctx, client, projectID)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewStandalone(model), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running graph view: %w", err)
	}
	return nil
}

// renderGraphListing writes stats and the node page as aligned text.
func renderGraphListing(w io.Writer, doc graphListDocument) error {
	if doc.Stats != nil {
		fmt.Fprintf(w, "Nodes: %d  Edges: %d  Density: %.3f\n\n",
			doc.Stats.Nodes, doc.Stats.Edges, doc.Stats.Density)
	}

	if len(doc.Nodes) == 0 {
		fmt.Fprintln(w, "No graph nodes found.")
		return nil
	}

	const tabPadding = 2
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tLabel\tKind\tDegree\tDoc refs")
	fmt.Fprintln(tw, "--\t-----\t----\t------\t--------")
	for _, n := range doc.Nodes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", n.ID, n.Label, n.Kind, n.Degree, n.DocRefs)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Page %d of %d nodes\n", doc.Page, doc.Total)
	return nil
}
