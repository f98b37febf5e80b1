package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GraphNodesParams paginates a graph node listing.
type GraphNodesParams struct {
	ProjectID string
	Page      int
	PerPage   int
	Kind      string
}

func (p GraphNodesParams) values() url.Values {
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
	if p.Kind != "" {
		values.Set("kind", p.Kind)
	}
	return values
}

// GraphNodes returns one page of knowledge-graph nodes, cached like
// document pages.
func (c *Client) GraphNodes(ctx context.Context, params GraphNodesParams) (*GraphNodesPage, error) {
	var page GraphNodesPage
	if err := c.getJSON(ctx, "/graph/nodes", params.values(), &page, true); err != nil {
		return nil, fmt.Errorf("listing graph nodes: %w", err)
	}
	return &page, nil
}

// GetGraphStats returns summary statistics for a project's graph.
func (c *Client) GetGraphStats(ctx context.Context, projectID string) (*GraphStats, error) {
	if projectID == "" {
		return nil, ErrEmptyProjectID
	}

	values := url.Values{}
	values.Set("project", projectID)

	var stats GraphStats
	if err := c.getJSON(ctx, "/graph/stats", values, &stats, true); err != nil {
		return nil, fmt.Errorf("fetching graph stats: %w", err)
	}
	return &stats, nil
}
