// Package roles defines the role vocabulary and membership checks used for
// authorization decisions throughout the client.
package roles

import "github.com/Green254/taskpulse-cli/internal/session"

// Role is a server-defined role name. Matching is exact and case
// sensitive: "Admin" is not Admin.
type Role string

const (
	Admin    Role = "admin"
	Manager  Role = "manager"
	Staff    Role = "staff"
	Watchman Role = "watchman"
	Chef     Role = "chef"
	User     Role = "user"
)

// All lists the known roles in display order.
var All = []Role{Admin, Manager, Staff, Watchman, Chef, User}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range All {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// Has reports whether the profile carries the given role. A nil profile or
// an empty role list never has any role.
func Has(profile *session.Profile, role Role) bool {
	if profile == nil {
		return false
	}
	for _, ref := range profile.Roles {
		if ref.Name == string(role) {
			return true
		}
	}
	return false
}

// HasAny reports whether the profile carries at least one of the given roles.
func HasAny(profile *session.Profile, candidates ...Role) bool {
	for _, role := range candidates {
		if Has(profile, role) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the profile may access administrative surfaces.
func IsAdmin(profile *session.Profile) bool {
	return Has(profile, Admin)
}

// CanAssignTasks reports whether the profile may assign tasks to other
// users rather than only to itself.
func CanAssignTasks(profile *session.Profile) bool {
	return HasAny(profile, Admin, Manager)
}

// Primary returns the first role on the profile, or "" when none is set.
// The server orders roles by significance, so the first is the one shown
// in summaries.
func Primary(profile *session.Profile) Role {
	if profile == nil || len(profile.Roles) == 0 {
		return ""
	}
	return Role(profile.Roles[0].Name)
}
