package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrEmptyProjectID indicates a project operation was called without an ID.
var ErrEmptyProjectID = errors.New("project ID must not be empty")

// CreateProjectRequest is the body for CreateProject.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type projectsEnvelope struct {
	Projects []Project `json:"projects"`
}

type projectEnvelope struct {
	Project Project `json:"project"`
}

// ListProjects returns all projects visible to the current token. The
// listing is intentionally not cached so project mutations are reflected
// immediately.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var envelope projectsEnvelope
	if err := c.getJSON(ctx, "/projects", nil, &envelope, false); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return envelope.Projects, nil
}

// GetProject fetches a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	if projectID == "" {
		return nil, ErrEmptyProjectID
	}

	var envelope projectEnvelope
	if err := c.getJSON(ctx, "/projects/"+url.PathEscape(projectID), nil, &envelope, false); err != nil {
		return nil, fmt.Errorf("fetching project %s: %w", projectID, err)
	}
	return &envelope.Project, nil
}

// CreateProject creates a new project and returns it.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	if req.Name == "" {
		return nil, errors.New("project name must not be empty")
	}

	var envelope projectEnvelope
	if err := c.postJSON(ctx, "/projects", req, &envelope); err != nil {
		return nil, fmt.Errorf("creating project %q: %w", req.Name, err)
	}
	return &envelope.Project, nil
}

// RenameProject changes a project's display name.
func (c *Client) RenameProject(ctx context.Context, projectID, name string) (*Project, error) {
	if projectID == "" {
		return nil, ErrEmptyProjectID
	}
	if name == "" {
		return nil, errors.New("project name must not be empty")
	}

	payload := struct {
		Name string `json:"name"`
	}{Name: name}

	var envelope projectEnvelope
	if err := c.patchJSON(ctx, "/projects/"+url.PathEscape(projectID), payload, &envelope); err != nil {
		return nil, fmt.Errorf("renaming project %s: %w", projectID, err)
	}
	return &envelope.Project, nil
}

// DeleteProject removes a project and everything under it.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return ErrEmptyProjectID
	}

	if err := c.del(ctx, "/projects/"+url.PathEscape(projectID)); err != nil {
		return fmt.Errorf("deleting project %s: %w", projectID, err)
	}
	return nil
}
