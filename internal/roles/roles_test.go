package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Green254/taskpulse-cli/internal/session"
)

func profileWith(names ...string) *session.Profile {
	p := &session.Profile{ID: 1, Name: "Test User", Email: "test@example.com"}
	for i, name := range names {
		p.Roles = append(p.Roles, session.RoleRef{ID: int64(i + 1), Name: name})
	}
	return p
}

func TestHas(t *testing.T) {
	tests := []struct {
		name    string
		profile *session.Profile
		role    Role
		want    bool
	}{
		{"nil profile", nil, Admin, false},
		{"empty roles", profileWith(), Admin, false},
		{"exact match", profileWith("admin"), Admin, true},
		{"second role matches", profileWith("user", "manager"), Manager, true},
		{"case sensitive", profileWith("Admin"), Admin, false},
		{"no partial match", profileWith("administrator"), Admin, false},
		{"unrelated role", profileWith("chef"), Watchman, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Has(tt.profile, tt.role))
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(profileWith("admin")))
	assert.False(t, IsAdmin(profileWith("manager")))
	assert.False(t, IsAdmin(nil))
}

func TestCanAssignTasks(t *testing.T) {
	assert.True(t, CanAssignTasks(profileWith("admin")))
	assert.True(t, CanAssignTasks(profileWith("manager")))
	assert.False(t, CanAssignTasks(profileWith("staff", "chef", "watchman", "user")))
	assert.False(t, CanAssignTasks(nil))
}

func TestPrimary(t *testing.T) {
	assert.Equal(t, Manager, Primary(profileWith("manager", "user")))
	assert.Equal(t, Role(""), Primary(profileWith()))
	assert.Equal(t, Role(""), Primary(nil))
}

func TestRoleValid(t *testing.T) {
	for _, role := range All {
		assert.True(t, role.Valid(), role)
	}
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("Admin").Valid())
}
