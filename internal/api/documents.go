package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Document sort orders accepted by the server.
const (
	SortUpdatedDesc = "updated_desc"
	SortUpdatedAsc  = "updated_asc"
	SortTitleAsc    = "title_asc"
	SortStatus      = "status"
)

// DefaultPerPage is applied when a listing request does not set a page size.
const DefaultPerPage = 50

// ListDocumentsParams narrows and paginates a document listing.
type ListDocumentsParams struct {
	ProjectID string
	Page      int
	PerPage   int
	Sort      string
	Query     string
}

func (p ListDocumentsParams) values() url.Values {
	page := p.Page
	if page < 1 {
		page = 1
	}
	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))
	if p.ProjectID != "" {
		values.Set("project", p.ProjectID)
	}
	if p.Sort != "" {
		values.Set("sort", p.Sort)
	}
	if p.Query != "" {
		values.Set("q", p.Query)
	}
	return values
}

type documentEnvelope struct {
	Document Document `json:"document"`
}

// ListDocuments returns one page of documents. Pages are cached so that
// scrolling back through an already-loaded listing stays off the network.
func (c *Client) ListDocuments(ctx context.Context, params ListDocumentsParams) (*DocumentsPage, error) {
	var page DocumentsPage
	if err := c.getJSON(ctx, "/documents", params.values(), &page, true); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return &page, nil
}

// GetDocument fetches a single document by ID.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("document ID must not be empty")
	}

	var envelope documentEnvelope
	if err := c.getJSON(ctx, "/documents/"+url.PathEscape(documentID), nil, &envelope, false); err != nil {
		return nil, fmt.Errorf("fetching document %s: %w", documentID, err)
	}
	return &envelope.Document, nil
}

// UploadDocument creates a document inside a project and returns the
// server's record of it.
func (c *Client) UploadDocument(ctx context.Context, projectID string, upload DocumentUpload) (*Document, error) {
	if projectID == "" {
		return nil, ErrEmptyProjectID
	}
	if upload.Title == "" {
		return nil, fmt.Errorf("document title must not be empty")
	}

	var envelope documentEnvelope
	path := "/projects/" + url.PathEscape(projectID) + "/documents"
	if err := c.postJSON(ctx, path, upload, &envelope); err != nil {
		return nil, fmt.Errorf("uploading document %q: %w", upload.Title, err)
	}
	return &envelope.Document, nil
}
