// Package export streams a project's annotations to json, ndjson or yaml.
// Pages arrive from the API by cursor and pass through a Writer one page
// at a time, so an export never holds the full annotation set in memory.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/logging"
)

// Format is an export encoding.
type Format string

// Supported export formats.
const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
)

// ErrUnsupportedFormat indicates a format outside json, ndjson and yaml.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var validFormats = map[Format]bool{
	FormatJSON:   true,
	FormatNDJSON: true,
	FormatYAML:   true,
}

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if !validFormats[format] {
		return "", fmt.Errorf("%w: %q (valid formats: json, ndjson, yaml)", ErrUnsupportedFormat, s)
	}
	return format, nil
}

// AnnotationLister is the slice of the API client the exporter consumes.
type AnnotationLister interface {
	ListAnnotations(ctx context.Context, params api.ListAnnotationsParams) (*api.AnnotationsPage, error)
}

// Run walks every annotation page selected by params and streams it
// through w, returning the number of annotations written. The writer is
// closed only on success; on error the caller discards the partial output.
func Run(ctx context.Context, lister AnnotationLister, params api.ListAnnotationsParams, w Writer) (int, error) {
	log := logging.FromContext(ctx)

	total := 0
	pages := 0
	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		page, err := lister.ListAnnotations(ctx, params)
		if err != nil {
			return total, fmt.Errorf("fetching annotations: %w", err)
		}
		pages++

		if len(page.Items) > 0 {
			if err := w.Write(page.Items); err != nil {
				return total, fmt.Errorf("writing export: %w", err)
			}
			total += len(page.Items)
		}

		if !page.HasMore() {
			break
		}
		params.Cursor = page.NextCursor
	}

	if err := w.Close(); err != nil {
		return total, fmt.Errorf("finalizing export: %w", err)
	}

	log.Debug().
		Str("component", "export").
		Int("annotations", total).
		Int("pages", pages).
		Msg("export complete")

	return total, nil
}
