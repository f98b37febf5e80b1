package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/batch"
	"github.com/cotstudio/cot/internal/importer"
	"github.com/cotstudio/cot/internal/logging"
)

// uploadFailure records one document that could not be uploaded.
type uploadFailure struct {
	Path string
	Err  error
}

// NewDocsImportCmd creates the "docs import" command. It stages documents
// from a directory or manifest and uploads them in batches. Failures are
// collected rather than aborting the run; a partially failed import exits
// with ExitCodePartialFailure.
func NewDocsImportCmd() *cobra.Command {
	var (
		batchSize   int
		concurrency int
		dryRun      bool
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "import <dir|manifest>",
		Short: "Import local documents into a project",
		Long: `Imports documents into a project, in batches.

The argument is either a directory (scanned recursively for supported
document types) or a yaml/json manifest listing the files to upload.`,
		Args: cobra.ExactArgs(1),
		Example: `  # Import every document under a directory
  cot docs import ./corpus --project proj-123

  # Preview what would be uploaded
  cot docs import ./corpus --project proj-123 --dry-run

  # Import a curated manifest with four parallel batches
  cot docs import intake.yaml --project proj-123 --concurrency 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)

			projectID, err := requireProject(cmd)
			if err != nil {
				return err
			}

			audit := newAuditContext(ctx, "docs_import", map[string]string{
				"project_id": projectID,
				"path":       args[0],
			})

			entries, err := importer.Collect(ctx, args[0])
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}
			for i := range entries {
				entries[i].Tags = append(entries[i].Tags, tags...)
			}

			if dryRun {
				printImportPlan(cmd, entries)
				audit.logSuccess(ctx, len(entries))
				return nil
			}

			processor, err := batch.NewProcessor[importer.Entry](batchSize)
			if err != nil {
				return fmt.Errorf("invalid batch size: %w", err)
			}
			processor = processor.WithProgressCallback(func(progress *batch.Progress) {
				snap := progress.Snapshot()
				cmd.Printf("Batch %d/%d done: %d/%d documents (%.0f%%)\n",
					snap.ProcessedBatches, snap.TotalBatches,
					snap.ProcessedItems, snap.TotalItems, snap.PercentComplete)
			})

			client, err := newAPIClient(ctx)
			if err != nil {
				audit.logFailure(ctx, err)
				return err
			}

			var failures []uploadFailure
			uploadBatch := uploadBatchFunc(client, projectID, &failures)

			cmd.Printf("Importing %d documents into %s in batches of %d\n",
				len(entries), projectID, processor.GetBatchSize())

			if concurrency > 1 {
				err = processor.ProcessConcurrent(ctx, entries, uploadBatch, concurrency)
			} else {
				err = processor.Process(ctx, entries, uploadBatch)
			}
			if err != nil {
				audit.logFailure(ctx, err)
				return fmt.Errorf("import aborted: %w", err)
			}

			uploaded := len(entries) - len(failures)
			audit.logSuccess(ctx, uploaded)
			cmd.Printf("Imported %d of %d documents\n", uploaded, len(entries))

			if len(failures) > 0 {
				for _, f := range failures {
					cmd.PrintErrf("  failed: %s: %v\n", f.Path, f.Err)
				}
				log.Warn().Ctx(ctx).Int("failed", len(failures)).Msg("import completed with failures")
				return &ExitError{
					Code:   ExitCodePartialFailure,
					Reason: fmt.Sprintf("%d of %d uploads failed", len(failures), len(entries)),
				}
			}
			return nil
		},
	}

	cmd.Flags().String("project", "", "Project ID (required)")
	cmd.Flags().IntVar(&batchSize, "batch-size", batch.DefaultBatchSize, "Documents per upload batch")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Number of batches uploaded in parallel")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be uploaded without uploading")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag applied to every imported document (repeatable)")

	return cmd
}

// uploadBatchFunc builds the per-batch callback. Individual upload failures
// are recorded and skipped so one bad file does not sink the batch; the
// callback itself only fails on context cancellation.
//
// The failures slice is only safe for sequential processing; concurrent runs
// wrap it in the mutex below.
func uploadBatchFunc(
	client *api.Client,
	projectID string,
	failures *[]uploadFailure,
) batch.BatchCallback[importer.Entry] {
	var mu sync.Mutex
	return func(ctx context.Context, entries []importer.Entry, _ int) error {
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}

			upload, err := entry.Upload()
			if err == nil {
				_, err = client.UploadDocument(ctx, projectID, upload)
			}
			if err != nil {
				mu.Lock()
				*failures = append(*failures, uploadFailure{Path: entry.Path, Err: err})
				mu.Unlock()
			}
		}
		return nil
	}
}

// printImportPlan lists the staged entries for --dry-run.
func printImportPlan(cmd *cobra.Command, entries []importer.Entry) {
	cmd.Printf("Would import %d documents:\n", len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("  %s (%s, %d bytes)", e.Path, e.MediaType, e.SizeBytes)
		if len(e.Tags) > 0 {
			line += " [" + strings.Join(e.Tags, ", ") + "]"
		}
		cmd.Println(line)
	}
}
