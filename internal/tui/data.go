package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Green254/taskpulse-cli/internal/api"
	"github.com/Green254/taskpulse-cli/internal/session"
)

// Messages produced by the async data commands.

type loginResultMsg struct {
	resp *api.AuthResponse
	err  error
}

type profileSyncedMsg struct{}

type loggedOutMsg struct{}

type dashboardDataMsg struct {
	tasks         *api.TaskList
	announcements []api.Announcement
	theme         *api.Theme
	err           error
}

type adminDataMsg struct {
	summary       *api.AdminSummary
	users         []session.Profile
	departments   []api.Department
	announcements []api.Announcement
	themes        []api.Theme
	err           error
}

// loginCmd submits credentials and reports the outcome.
func (m Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		resp, err := client.Login(ctx, email, password)
		return loginResultMsg{resp: resp, err: err}
	}
}

// syncProfileCmd refreshes the profile when the role list is missing, then
// signals the guard to re-evaluate the held navigation.
func (m Model) syncProfileCmd() tea.Cmd {
	store := m.store
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		store.RefreshProfileIfIncomplete(ctx, client.FetchProfile)
		return profileSyncedMsg{}
	}
}

// logoutCmd ends the session and reports back.
func (m Model) logoutCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		store.Logout(ctx)
		return loggedOutMsg{}
	}
}

// loadDashboardCmd fetches everything the dashboard shows. The theme and
// announcements are decorative; only a task failure fails the load.
func (m Model) loadDashboardCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		tasks, err := client.ListTasks(ctx, api.ListTasksOptions{PerPage: 10})
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		announcements, err := client.Announcements(ctx)
		if err != nil {
			announcements = nil
		}
		theme, err := client.ActiveTheme(ctx)
		if err != nil {
			theme = nil
		}

		return dashboardDataMsg{tasks: tasks, announcements: announcements, theme: theme}
	}
}

// loadAdminCmd fetches the admin console data.
func (m Model) loadAdminCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		summary, err := client.AdminSummary(ctx)
		if err != nil {
			return adminDataMsg{err: err}
		}
		users, err := client.AdminUsers(ctx)
		if err != nil {
			return adminDataMsg{err: err}
		}
		departments, err := client.Departments(ctx)
		if err != nil {
			return adminDataMsg{err: err}
		}
		announcements, err := client.AdminAnnouncements(ctx)
		if err != nil {
			return adminDataMsg{err: err}
		}
		themes, err := client.AdminThemes(ctx)
		if err != nil {
			return adminDataMsg{err: err}
		}

		return adminDataMsg{
			summary:       summary,
			users:         users,
			departments:   departments,
			announcements: announcements,
			themes:        themes,
		}
	}
}
