package session

// RoleRef is a role membership entry as returned by the TaskPulse API.
type RoleRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Profile is the server-sourced record describing the authenticated user.
type Profile struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Roles                []RoleRef `json:"roles"`
	IsCurrentlySuspended bool      `json:"is_currently_suspended,omitempty"`
	DepartmentID         int64     `json:"department_id,omitempty"`
	SuspensionReason     string    `json:"suspension_reason,omitempty"`
}

// HasPopulatedRoles reports whether the role list has been loaded.
// A profile fresh from login may carry no roles yet; the store uses this
// to decide whether a "who am I" refresh is needed.
func (p *Profile) HasPopulatedRoles() bool {
	return p != nil && len(p.Roles) > 0
}
