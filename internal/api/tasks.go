package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListTasksParams narrows a task listing.
type ListTasksParams struct {
	ProjectID string
	State     string
}

type tasksEnvelope struct {
	Tasks []Task `json:"tasks"`
}

// ListTasks returns tasks for the dashboard, newest first. Never cached:
// the dashboard polls for live state.
func (c *Client) ListTasks(ctx context.Context, params ListTasksParams) ([]Task, error) {
	values := url.Values{}
	if params.ProjectID != "" {
		values.Set("project", params.ProjectID)
	}
	if params.State != "" {
		values.Set("state", params.State)
	}

	var envelope tasksEnvelope
	if err := c.getJSON(ctx, "/tasks", values, &envelope, false); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return envelope.Tasks, nil
}
