package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/export"
)

// NewDocsExportCmd creates the "docs export" command. It streams annotation
// pages from the server through a format writer to a file or stdout.
func NewDocsExportCmd() *cobra.Command {
	var (
		documentID string
		format     string
		outPath    string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a project's annotations",
		Long:  "Exports annotations as json, ndjson, or yaml. Pages are streamed, so exports of large projects stay flat in memory.",
		Example: `  # All annotations of a project, one JSON line each
  cot docs export --project proj-123 --output ndjson > annotations.ndjson

  # One document's annotations as a pretty JSON array
  cot docs export --project proj-123 --document doc-9 --output json --file doc-9.json

  # YAML export with larger server pages
  cot docs export --project proj-123 --output yaml --limit 500`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			projectID, err := requireProject(cmd)
			if err != nil {
				return err
			}

			exportFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			audit := newAuditContext(ctx, "docs_export", map[string]string{
				"project_id": projectID,
				"format":     string(exportFormat),
			})

			out, closeOut, err := openExportOutput(cmd.OutOrStdout(), outPath)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}
			defer closeOut()

			writer, err := export.NewWriter(exportFormat, out)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			client, err := newAPIClient(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			count, err := export.Run(ctx, client, api.ListAnnotationsParams{
				ProjectID:  projectID,
				DocumentID: documentID,
				Limit:      limit,
			}, writer)
			if err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("exporting annotations: %w", err)
			}

			audit.logSuccess(ctx, count)
			if outPath != "" {
				cmd.Printf("Exported %d annotations to %s\n", count, outPath)
			}
			return nil
		},
	}

	cmd.Flags().String("project", "", "Project ID (required)")
	cmd.Flags().StringVar(&documentID, "document", "", "Restrict the export to one document")
	cmd.Flags().StringVar(&format, "output", string(export.FormatNDJSON), "Export format: json, ndjson, or yaml")
	cmd.Flags().StringVar(&outPath, "file", "", "Write to this file instead of stdout")
	cmd.Flags().IntVar(&limit, "limit", 0, "Annotations fetched per server page (default 200)")

	return cmd
}

// openExportOutput returns the writer for the export and a cleanup func.
// An empty path means stdout, which is not closed.
func openExportOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating export file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
