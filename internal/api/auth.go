package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Green254/taskpulse-cli/internal/session"
)

// AuthResponse is the server's answer to login and register: a bearer
// token and the authenticated user.
type AuthResponse struct {
	Token string           `json:"token"`
	User  *session.Profile `json:"user"`
}

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. It does not touch the
// session store; the caller decides what to do with the credential.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, fmt.Errorf("invalid login response from server")
	}
	return &out, nil
}

// RegisterRequest carries a new account's details.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	DepartmentID         int64  `json:"department_id"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Register creates an account. On success the server signs the new user in
// and returns a token alongside the profile.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/register", req, &out); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, fmt.Errorf("invalid register response from server")
	}
	return &out, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*session.Profile, error) {
	var profile session.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FetchProfile adapts Me into the shape the session store's refresh wants:
// it authenticates with the given token explicitly and reports a 401 as
// session.ErrUnauthorized without tearing the session down itself.
func (c *Client) FetchProfile(ctx context.Context, token string) (*session.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, session.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp)
	}

	var profile session.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &profile, nil
}

// NotifyLogout tells the server the given session is ending. It bypasses
// the interceptor: a rejection here must not recurse into another logout.
func (c *Client) NotifyLogout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/logout", bytes.NewReader(nil))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("logout rejected with status %d", resp.StatusCode)
	}
	return nil
}

// ForgotPassword asks the server to mail a password reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPasswordRequest carries a password reset submission.
type ResetPasswordRequest struct {
	Email                string `json:"email"`
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ResetPassword completes a password reset started by ForgotPassword.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/reset-password", req, nil)
}
