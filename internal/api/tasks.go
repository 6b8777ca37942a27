package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Task is a unit of work assigned to a user.
type Task struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority,omitempty"`
	AssigneeID   int64      `json:"assignee_id,omitempty"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Completed reports whether the task is done.
func (t *Task) Completed() bool {
	return t.Status == "completed" || t.Status == "done"
}

// TaskList is a page of tasks with the server's pagination counters.
type TaskList struct {
	Data    []Task `json:"data"`
	Total   int    `json:"total"`
	PerPage int    `json:"per_page"`
	Page    int    `json:"current_page"`
}

// ListTasksOptions filters and paginates a task listing.
type ListTasksOptions struct {
	Status  string
	Page    int
	PerPage int
}

// ListTasks fetches the caller's visible tasks.
func (c *Client) ListTasks(ctx context.Context, opts ListTasksOptions) (*TaskList, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Page > 0 {
		query.Set("page", fmt.Sprint(opts.Page))
	}
	if opts.PerPage > 0 {
		query.Set("per_page", fmt.Sprint(opts.PerPage))
	}

	path := "/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out TaskList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TaskInput carries the writable fields of a task. Nil fields are left
// unchanged on update.
type TaskInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type taskEnvelope struct {
	Task *Task `json:"task"`
}

// CreateTask creates a task and returns the server's record of it.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	var out taskEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/tasks", input, &out); err != nil {
		return nil, err
	}
	return out.Task, nil
}

// UpdateTask applies the non-nil fields of input to the task.
func (c *Client) UpdateTask(ctx context.Context, id int64, input TaskInput) (*Task, error) {
	var out taskEnvelope
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), input, &out); err != nil {
		return nil, err
	}
	return out.Task, nil
}

// CompleteTask marks the task completed.
func (c *Client) CompleteTask(ctx context.Context, id int64) (*Task, error) {
	status := "completed"
	return c.UpdateTask(ctx, id, TaskInput{Status: &status})
}

// DeleteTask removes the task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}
