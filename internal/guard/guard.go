// Package guard decides whether the current session may enter a protected
// surface, and where to send it otherwise.
package guard

import (
	"github.com/Green254/taskpulse-cli/internal/roles"
	"github.com/Green254/taskpulse-cli/internal/session"
)

// Decision is the outcome of evaluating a protected surface against the
// current session.
type Decision int

const (
	// Allow grants entry.
	Allow Decision = iota
	// RedirectLogin sends the user to the login surface: no credential.
	RedirectLogin
	// RedirectUnauthorized sends the user to the unauthorized surface:
	// authenticated but lacking the required role.
	RedirectUnauthorized
	// Pending means the decision cannot be made yet because the profile
	// has not loaded; callers should hold and re-evaluate.
	Pending
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Evaluate applies the access rules for a surface that requires the given
// role. An empty required role means any authenticated session is allowed.
//
// Order matters: the credential check comes first, so an expired session
// lands on login rather than unauthorized, and the profile-pending check
// comes before the role check so a slow profile load does not flash the
// unauthorized surface.
func Evaluate(hasToken bool, profile *session.Profile, required roles.Role) Decision {
	if !hasToken {
		return RedirectLogin
	}
	if required == "" {
		return Allow
	}
	if profile == nil {
		return Pending
	}
	if roles.Has(profile, required) {
		return Allow
	}
	return RedirectUnauthorized
}

// EvaluateStore is a convenience that reads the session state from the
// store. The store already reports the profile absent when no credential
// is held.
func EvaluateStore(store *session.Store, required roles.Role) Decision {
	return Evaluate(store.LoggedIn(), store.Profile(), required)
}
