package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal ErrorCode = "CONFIG-003"

	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthSessionExpired   ErrorCode = "AUTH-001"
	ErrCodeAuthAccountSuspended ErrorCode = "AUTH-002"
	ErrCodeAuthNotLoggedIn      ErrorCode = "AUTH-003"
	ErrCodeAuthLoginFailed      ErrorCode = "AUTH-004"
	ErrCodeAuthRegisterFailed   ErrorCode = "AUTH-005"
	ErrCodeAuthUnauthorized     ErrorCode = "AUTH-006"

	// Session persistence errors (SESSION-001 to SESSION-099)
	ErrCodeSessionPersist ErrorCode = "SESSION-001"
	ErrCodeSessionSealed  ErrorCode = "SESSION-002"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest     ErrorCode = "API-001"
	ErrCodeAPIResponse    ErrorCode = "API-002"
	ErrCodeAPIUnreachable ErrorCode = "API-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-004"
)

// TaskPulseError represents an enhanced error with code, suggestions, and documentation
type TaskPulseError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *TaskPulseError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *TaskPulseError) Unwrap() error {
	return e.Cause
}

// New creates a new TaskPulseError
func New(code ErrorCode, message string) *TaskPulseError {
	return &TaskPulseError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new TaskPulseError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *TaskPulseError {
	return &TaskPulseError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *TaskPulseError) WithSuggestion(suggestion string) *TaskPulseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *TaskPulseError) WithSuggestions(suggestions ...string) *TaskPulseError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *TaskPulseError) WithDocs(url string) *TaskPulseError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates a missing-session error
func NewNotLoggedInError() *TaskPulseError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'taskpulse login' to authenticate").
		WithSuggestion("Run 'taskpulse register' to create an account")
}

// NewSessionExpiredError creates a session expiry error
func NewSessionExpiredError() *TaskPulseError {
	return New(ErrCodeAuthSessionExpired, "session expired, please login again").
		WithSuggestion("Run 'taskpulse login' to re-authenticate")
}

// NewAccountSuspendedError creates an account suspension error
func NewAccountSuspendedError(message string) *TaskPulseError {
	if message == "" {
		message = "your account is suspended, contact an administrator"
	}
	return New(ErrCodeAuthAccountSuspended, message).
		WithSuggestion("Contact an administrator to reactivate your account")
}

// NewAPIUnreachableError creates a connectivity error
func NewAPIUnreachableError(baseURL string, cause error) *TaskPulseError {
	return Wrap(ErrCodeAPIUnreachable, fmt.Sprintf("unable to reach TaskPulse API at %s", baseURL), cause).
		WithSuggestion("Check that the API server is running").
		WithSuggestion("Set TASKPULSE_API_URL or api_url in the config file")
}

// NewConfigUnmarshalError creates a config parse error
func NewConfigUnmarshalError(path string, cause error) *TaskPulseError {
	return Wrap(ErrCodeConfigUnmarshal, fmt.Sprintf("failed to parse config file: %s", path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion("Ensure the file is valid YAML")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *TaskPulseError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}
