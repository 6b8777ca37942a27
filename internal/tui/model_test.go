package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Green254/taskpulse-cli/internal/api"
	"github.com/Green254/taskpulse-cli/internal/session"
)

func newTestModel(t *testing.T) (Model, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	client := api.NewClient("http://127.0.0.1:1/api", store)
	return NewModel(store, client), store
}

func adminProfile() *session.Profile {
	return &session.Profile{
		ID:    1,
		Name:  "Amina Njeri",
		Email: "amina@example.com",
		Roles: []session.RoleRef{{ID: 1, Name: "admin"}},
	}
}

func staffProfile() *session.Profile {
	return &session.Profile{
		ID:    2,
		Name:  "Brian Otieno",
		Email: "brian@example.com",
		Roles: []session.RoleRef{{ID: 3, Name: "staff"}},
	}
}

// TestNewModelStartsOnHomeWhenLoggedOut tests the initial view selection
func TestNewModelStartsOnHomeWhenLoggedOut(t *testing.T) {
	model, _ := newTestModel(t)

	if model.view != ViewHome {
		t.Errorf("Expected ViewHome, got %v", model.view)
	}
}

// TestNewModelStartsOnDashboardWhenLoggedIn tests session-aware startup
func TestNewModelStartsOnDashboardWhenLoggedIn(t *testing.T) {
	store := session.NewStore(t.TempDir())
	if err := store.Login(staffProfile(), "tok-1"); err != nil {
		t.Fatal(err)
	}
	client := api.NewClient("http://127.0.0.1:1/api", store)

	model := NewModel(store, client)
	if model.view != ViewDashboard {
		t.Errorf("Expected ViewDashboard, got %v", model.view)
	}
}

// TestNavigateWithoutSessionRedirectsToLogin tests the login redirect
func TestNavigateWithoutSessionRedirectsToLogin(t *testing.T) {
	model, _ := newTestModel(t)

	updated, _ := model.navigate(ViewDashboard)
	if updated.view != ViewLogin {
		t.Errorf("Expected ViewLogin, got %v", updated.view)
	}
}

// TestNavigateAdminWithoutRoleRedirectsUnauthorized tests the role check
func TestNavigateAdminWithoutRoleRedirectsUnauthorized(t *testing.T) {
	model, store := newTestModel(t)
	if err := store.Login(staffProfile(), "tok-1"); err != nil {
		t.Fatal(err)
	}

	updated, _ := model.navigate(ViewAdmin)
	if updated.view != ViewUnauthorized {
		t.Errorf("Expected ViewUnauthorized, got %v", updated.view)
	}
}

// TestNavigateAdminAsAdminAllows tests admin entry
func TestNavigateAdminAsAdminAllows(t *testing.T) {
	model, store := newTestModel(t)
	if err := store.Login(adminProfile(), "tok-1"); err != nil {
		t.Fatal(err)
	}

	updated, cmd := model.navigate(ViewAdmin)
	if updated.view != ViewAdmin {
		t.Errorf("Expected ViewAdmin, got %v", updated.view)
	}
	if cmd == nil {
		t.Error("Expected a data load command")
	}
}

// TestNavigateAdminWithUnloadedProfileHolds tests the pending decision
func TestNavigateAdminWithUnloadedProfileHolds(t *testing.T) {
	model, store := newTestModel(t)
	if err := store.Login(nil, "tok-1"); err != nil {
		t.Fatal(err)
	}

	updated, cmd := model.navigate(ViewAdmin)
	if updated.view != ViewLoading {
		t.Errorf("Expected ViewLoading, got %v", updated.view)
	}
	if updated.pendingView != ViewAdmin {
		t.Errorf("Expected pending ViewAdmin, got %v", updated.pendingView)
	}
	if cmd == nil {
		t.Error("Expected a profile sync command")
	}
}

// TestProfileSyncedReEvaluatesPendingNavigation tests the guard re-run
func TestProfileSyncedReEvaluatesPendingNavigation(t *testing.T) {
	model, store := newTestModel(t)
	if err := store.Login(nil, "tok-1"); err != nil {
		t.Fatal(err)
	}

	held, _ := model.navigate(ViewAdmin)

	// The profile arrives without the admin role.
	if err := store.Login(staffProfile(), "tok-1"); err != nil {
		t.Fatal(err)
	}
	updated, _ := held.Update(profileSyncedMsg{})
	m := updated.(Model)

	if m.view != ViewUnauthorized {
		t.Errorf("Expected ViewUnauthorized after sync, got %v", m.view)
	}
}

// TestLoginResultSuccessLandsOnDashboard tests the login transition
func TestLoginResultSuccessLandsOnDashboard(t *testing.T) {
	model, store := newTestModel(t)
	navigated, _ := model.navigate(ViewDashboard)
	if navigated.view != ViewLogin {
		t.Fatalf("Expected ViewLogin, got %v", navigated.view)
	}

	updated, _ := navigated.handleLoginResult(loginResultMsg{
		resp: &api.AuthResponse{Token: "tok-9", User: staffProfile()},
	})
	m := updated.(Model)

	if m.view != ViewDashboard {
		t.Errorf("Expected ViewDashboard, got %v", m.view)
	}
	if !store.LoggedIn() {
		t.Error("Expected session to hold the new credential")
	}
	if store.Token() != "tok-9" {
		t.Errorf("Expected token tok-9, got %s", store.Token())
	}
}

// TestLoginResultFailureStaysOnLogin tests the failure path
func TestLoginResultFailureStaysOnLogin(t *testing.T) {
	model, store := newTestModel(t)
	navigated, _ := model.navigate(ViewLogin)

	updated, _ := navigated.handleLoginResult(loginResultMsg{
		err: &api.RequestError{StatusCode: 401, Message: "Invalid credentials."},
	})
	m := updated.(Model)

	if m.view != ViewLogin {
		t.Errorf("Expected ViewLogin, got %v", m.view)
	}
	if store.LoggedIn() {
		t.Error("Expected session to stay empty")
	}
	if m.lastErr == "" {
		t.Error("Expected the failure to be surfaced")
	}
}

// TestDashboardDataErrorAfterTeardownRedirects tests the expired-session path
func TestDashboardDataErrorAfterTeardownRedirects(t *testing.T) {
	model, store := newTestModel(t)
	if err := store.Login(staffProfile(), "tok-1"); err != nil {
		t.Fatal(err)
	}
	entered, _ := model.navigate(ViewDashboard)

	// Simulate the interceptor having torn the session down mid-load.
	store.Logout(context.Background())
	updated, _ := entered.Update(dashboardDataMsg{err: &api.RequestError{StatusCode: 401, Message: "session expired"}})
	m := updated.(Model)

	if m.view != ViewLogin {
		t.Errorf("Expected ViewLogin, got %v", m.view)
	}
}

// TestFilteredUsers tests the admin table filters
func TestFilteredUsers(t *testing.T) {
	model, _ := newTestModel(t)
	model.users = []session.Profile{
		{ID: 1, Name: "Amina Njeri", Email: "amina@example.com",
			Roles: []session.RoleRef{{Name: "admin"}}},
		{ID: 2, Name: "Brian Otieno", Email: "brian@example.com",
			Roles: []session.RoleRef{{Name: "staff"}}, IsCurrentlySuspended: true},
		{ID: 3, Name: "Carol Wanjiku", Email: "carol@example.com",
			Roles: []session.RoleRef{{Name: "staff"}}},
	}

	if got := len(model.filteredUsers()); got != 3 {
		t.Errorf("Expected 3 users unfiltered, got %d", got)
	}

	model.search = "brian"
	if got := model.filteredUsers(); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Expected only Brian, got %v", got)
	}

	model.search = ""
	model.statusFilter = 2 // suspended
	if got := model.filteredUsers(); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Expected only the suspended user, got %v", got)
	}

	model.statusFilter = 1 // active
	model.roleFilter = "staff"
	if got := model.filteredUsers(); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("Expected only Carol, got %v", got)
	}
}

// TestUnauthorizedViewRender tests the access-denied copy
func TestUnauthorizedViewRender(t *testing.T) {
	model, _ := newTestModel(t)
	model.ready = true
	model.view = ViewUnauthorized

	out := model.View()
	if !strings.Contains(out, "Access denied") {
		t.Errorf("Expected access denied text, got %q", out)
	}
}

// TestCtrlCQuits tests the universal quit key
func TestCtrlCQuits(t *testing.T) {
	model, _ := newTestModel(t)

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m := updated.(Model)

	if !m.quitting {
		t.Error("Expected quitting state")
	}
	if cmd == nil {
		t.Error("Expected tea.Quit command")
	}
}
