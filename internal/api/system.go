package api

import (
	"context"
	"net/http"
)

// Department is an organizational unit users belong to.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Departments lists the departments. The endpoint is public so the
// registration form can offer them before any session exists.
func (c *Client) Departments(ctx context.Context) ([]Department, error) {
	var out []Department
	if err := c.doJSON(ctx, http.MethodGet, "/departments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeamUser is a user the caller may assign tasks to.
type TeamUser struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	DepartmentID int64  `json:"department_id,omitempty"`
}

// TeamUsers lists the users the caller may assign tasks to.
func (c *Client) TeamUsers(ctx context.Context) ([]TeamUser, error) {
	var out []TeamUser
	if err := c.doJSON(ctx, http.MethodGet, "/team/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Announcements lists the active announcements targeted at the caller.
func (c *Client) Announcements(ctx context.Context) ([]Announcement, error) {
	var out []Announcement
	if err := c.doJSON(ctx, http.MethodGet, "/system/announcements", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveTheme fetches the currently active theme, or nil when the server
// has none configured.
func (c *Client) ActiveTheme(ctx context.Context) (*Theme, error) {
	var out themeEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/system/theme", nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Theme, nil
}
