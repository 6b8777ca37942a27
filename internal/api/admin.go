package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Green254/taskpulse-cli/internal/session"
)

// AdminSummary is the headline counters on the admin dashboard.
type AdminSummary struct {
	TotalUsers      int `json:"total_users"`
	ActiveUsers     int `json:"active_users"`
	SuspendedUsers  int `json:"suspended_users"`
	DepartmentCount int `json:"department_count"`
}

// AdminSummary fetches the admin dashboard counters.
func (c *Client) AdminSummary(ctx context.Context) (*AdminSummary, error) {
	var out AdminSummary
	if err := c.doJSON(ctx, http.MethodGet, "/admin/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUsers lists every account, suspended ones included.
func (c *Client) AdminUsers(ctx context.Context) ([]session.Profile, error) {
	var out []session.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUserRequest carries an admin-created account.
type CreateUserRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	DepartmentID int64  `json:"department_id"`
}

type userEnvelope struct {
	User *session.Profile `json:"user"`
}

// CreateUser provisions an account with the given role.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*session.Profile, error) {
	var out userEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/admin/users", req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// SuspendUserRequest carries an optional reason and end date. A nil Until
// suspends indefinitely.
type SuspendUserRequest struct {
	Reason string     `json:"reason,omitempty"`
	Until  *time.Time `json:"until,omitempty"`
}

// SuspendUser locks the account out until reactivated or Until passes.
func (c *Client) SuspendUser(ctx context.Context, id int64, req SuspendUserRequest) (*session.Profile, error) {
	var out userEnvelope
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/suspend", id), req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// ReactivateUser lifts a suspension.
func (c *Client) ReactivateUser(ctx context.Context, id int64) (*session.Profile, error) {
	var out userEnvelope
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/reactivate", id), nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// UpdateUserRole replaces the account's primary role.
func (c *Client) UpdateUserRole(ctx context.Context, id int64, role string) (*session.Profile, error) {
	var out userEnvelope
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/role", id), map[string]string{"role": role}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// DeleteUser removes the account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil)
}

// Announcement is a broadcast shown on user dashboards. Targeting is by
// scope: everyone, a role, or a department.
type Announcement struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Message            string    `json:"message"`
	Type               string    `json:"type"`
	TargetScope        string    `json:"target_scope"`
	TargetRole         string    `json:"target_role,omitempty"`
	TargetDepartmentID int64     `json:"target_department_id,omitempty"`
	IsPinned           bool      `json:"is_pinned"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

// AnnouncementTypes are the accepted announcement severities.
var AnnouncementTypes = []string{"info", "warning", "critical", "celebration"}

// TargetScopes are the accepted announcement audiences.
var TargetScopes = []string{"all", "role", "department"}

// AdminAnnouncements lists all announcements, inactive ones included.
func (c *Client) AdminAnnouncements(ctx context.Context) ([]Announcement, error) {
	var out []Announcement
	if err := c.doJSON(ctx, http.MethodGet, "/admin/announcements", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAnnouncementRequest carries a new announcement.
type CreateAnnouncementRequest struct {
	Title              string `json:"title"`
	Message            string `json:"message"`
	Type               string `json:"type"`
	TargetScope        string `json:"target_scope"`
	TargetRole         string `json:"target_role,omitempty"`
	TargetDepartmentID int64  `json:"target_department_id,omitempty"`
	IsPinned           bool   `json:"is_pinned"`
	IsActive           bool   `json:"is_active"`
}

type announcementEnvelope struct {
	Announcement *Announcement `json:"announcement"`
}

// CreateAnnouncement posts an announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, req CreateAnnouncementRequest) (*Announcement, error) {
	var out announcementEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/admin/announcements", req, &out); err != nil {
		return nil, err
	}
	return out.Announcement, nil
}

// DeleteAnnouncement removes an announcement.
func (c *Client) DeleteAnnouncement(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/announcements/%d", id), nil, nil)
}

// Theme is a site-wide visual theme. At most one is active.
type Theme struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Tagline       string `json:"tagline,omitempty"`
	BannerMessage string `json:"banner_message,omitempty"`
	PrimaryColor  string `json:"primary_color"`
	AccentColor   string `json:"accent_color"`
	SurfaceColor  string `json:"surface_color"`
	IsActive      bool   `json:"is_active"`
}

// AdminThemes lists every theme.
func (c *Client) AdminThemes(ctx context.Context) ([]Theme, error) {
	var out []Theme
	if err := c.doJSON(ctx, http.MethodGet, "/admin/themes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateThemeRequest carries a new theme.
type CreateThemeRequest struct {
	Name          string `json:"name"`
	Tagline       string `json:"tagline,omitempty"`
	BannerMessage string `json:"banner_message,omitempty"`
	PrimaryColor  string `json:"primary_color"`
	AccentColor   string `json:"accent_color"`
	SurfaceColor  string `json:"surface_color"`
	IsActive      bool   `json:"is_active"`
}

type themeEnvelope struct {
	Theme *Theme `json:"theme"`
}

// CreateTheme creates a theme. When IsActive is set the server deactivates
// the rest.
func (c *Client) CreateTheme(ctx context.Context, req CreateThemeRequest) (*Theme, error) {
	var out themeEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/admin/themes", req, &out); err != nil {
		return nil, err
	}
	return out.Theme, nil
}

// ActivateTheme makes the theme the active one.
func (c *Client) ActivateTheme(ctx context.Context, id int64) (*Theme, error) {
	var out themeEnvelope
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/admin/themes/%d/activate", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Theme, nil
}
