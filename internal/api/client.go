// Package api is the TaskPulse HTTP client. Every authenticated request
// goes through Do, which injects the standard headers and applies the
// session-wide interceptor rules for expired and suspended accounts.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Green254/taskpulse-cli/internal/errors"
	"github.com/Green254/taskpulse-cli/internal/log"
	"github.com/Green254/taskpulse-cli/internal/session"
)

// Client talks to the TaskPulse API on behalf of the current session.
type Client struct {
	// BaseURL is the endpoint root, including the /api prefix.
	BaseURL    string
	HTTPClient *http.Client

	store  *session.Store
	logger *log.Logger
}

// NewClient creates an API client bound to the given session store. The
// baseURL must already carry the /api prefix.
func NewClient(baseURL string, store *session.Store) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store:  store,
		logger: log.DefaultLogger(),
	}
}

// RequestOption mutates an outgoing request before it is sent.
type RequestOption func(*http.Request)

// WithHeader sets a header on the outgoing request. A Content-Type set
// this way suppresses the automatic JSON content type.
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// Do performs an authenticated request against path (relative to BaseURL)
// and applies the session interceptor:
//
//   - 401 tears the session down and returns a session-expired error
//   - 423 tears the session down and returns an account-suspended error,
//     carrying the server's message when one is present
//
// Every other status is returned to the caller untouched, body unread.
// The caller owns the response body.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, opts ...RequestOption) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	for _, opt := range opts {
		opt(req)
	}

	if body != nil && req.Header.Get("Content-Type") == "" {
		if _, multipart := body.(*multipartBody); !multipart {
			req.Header.Set("Content-Type", "application/json")
		}
	}

	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.NewAPIUnreachableError(c.BaseURL, err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		resp.Body.Close()
		c.store.Logout(ctx)
		return nil, errors.NewSessionExpiredError()
	case http.StatusLocked:
		message := suspensionMessage(resp.Body)
		resp.Body.Close()
		c.store.Logout(ctx)
		return nil, errors.NewAccountSuspendedError(message)
	}

	return resp, nil
}

// doJSON performs a request with a JSON-encoded body (nil payload means no
// body), decodes a 2xx response into out (when non-nil), and converts any
// other status into an error built from the server's error envelope.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// multipartBody marks a request body whose Content-Type is managed by the
// multipart writer, so the JSON content type must not be forced onto it.
type multipartBody struct {
	io.Reader
	contentType string
}

// NewMultipartBody wraps a multipart stream so Do leaves its content type
// alone. Pass WithHeader("Content-Type", body.ContentType()) alongside it.
func NewMultipartBody(r io.Reader, contentType string) *multipartBody {
	return &multipartBody{Reader: r, contentType: contentType}
}

// ContentType returns the writer-assigned multipart content type.
func (b *multipartBody) ContentType() string { return b.contentType }
