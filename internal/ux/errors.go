package ux

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\n💡 Suggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError analyzes an error and adds contextual suggestions
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	// Connectivity errors
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "no route to host") {
		return NewErrorWithSuggestion(err,
			"Check that the TaskPulse API server is running and TASKPULSE_API_URL points at it")
	}

	if strings.Contains(errMsg, "no such host") {
		return NewErrorWithSuggestion(err,
			"Verify the API hostname in TASKPULSE_API_URL or ~/.config/taskpulse/config.yaml")
	}

	// Session errors
	if strings.Contains(errMsg, "session expired") {
		return NewErrorWithSuggestion(err,
			"Run 'taskpulse login' to start a new session")
	}

	if strings.Contains(errMsg, "not logged in") {
		return NewErrorWithSuggestion(err,
			"Run 'taskpulse login', or 'taskpulse register' if you have no account yet")
	}

	if strings.Contains(errMsg, "suspended") {
		return NewErrorWithSuggestion(err,
			"Contact an administrator to reactivate your account")
	}

	// Permission errors
	if strings.Contains(errMsg, "permission denied") {
		return NewErrorWithSuggestion(err,
			"Check the permissions on ~/.config/taskpulse and its files")
	}

	// Validation errors
	if strings.Contains(errMsg, "data was invalid") || strings.Contains(errMsg, "validation") {
		return NewErrorWithSuggestion(err,
			"Fix the reported fields and resubmit")
	}

	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
