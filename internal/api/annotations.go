package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// DefaultAnnotationLimit is the per-request annotation batch size.
const DefaultAnnotationLimit = 200

// ListAnnotationsParams paginates an annotation listing by cursor. Leave
// Cursor empty for the first page; pass the previous page's NextCursor to
// continue.
type ListAnnotationsParams struct {
	ProjectID  string
	DocumentID string
	Cursor     string
	Limit      int
}

func (p ListAnnotationsParams) values() url.Values {
	limit := p.Limit
	if limit < 1 {
		limit = DefaultAnnotationLimit
	}

	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))
	if p.ProjectID != "" {
		values.Set("project", p.ProjectID)
	}
	if p.DocumentID != "" {
		values.Set("document", p.DocumentID)
	}
	if p.Cursor != "" {
		values.Set("cursor", p.Cursor)
	}
	return values
}

// ListAnnotations returns one cursor page of annotations. Never cached:
// exports must see the live annotation set.
func (c *Client) ListAnnotations(ctx context.Context, params ListAnnotationsParams) (*AnnotationsPage, error) {
	var page AnnotationsPage
	if err := c.getJSON(ctx, "/annotations", params.values(), &page, false); err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}
	return &page, nil
}
