package exitcode

import (
	"errors"
	"os"
	"strings"

	tperrors "github.com/Green254/taskpulse-cli/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// SuspendedError indicates the account was suspended by an administrator
	SuspendedError = 4

	// NetworkError indicates a network connectivity issue
	NetworkError = 5

	// Interrupted indicates the user cancelled the operation (SIGINT)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var tpErr *tperrors.TaskPulseError
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case tperrors.ErrCodeAuthAccountSuspended:
			return SuspendedError
		case tperrors.ErrCodeAuthSessionExpired,
			tperrors.ErrCodeAuthNotLoggedIn,
			tperrors.ErrCodeAuthLoginFailed,
			tperrors.ErrCodeAuthRegisterFailed,
			tperrors.ErrCodeAuthUnauthorized:
			return AuthError
		case tperrors.ErrCodeAPIUnreachable:
			return NetworkError
		}
	}

	errMsg := strings.ToLower(err.Error())

	// Authentication errors
	if strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "not logged in") {
		return AuthError
	}
	if strings.Contains(errMsg, "session expired") {
		return AuthError
	}

	// Network errors
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}
	if strings.Contains(errMsg, "timeout") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "unknown command") || strings.Contains(errMsg, "required flag") {
		return UsageError
	}
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}

	// Default to general error
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case SuspendedError:
		return "Account suspended"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
