// Package tui is the interactive TaskPulse dashboard. It is a single
// bubbletea program whose views mirror the product surfaces: home, login,
// dashboard, admin, and the unauthorized landing. Every view switch goes
// through the route guard, so an expired or under-privileged session can
// never land on a protected view.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Green254/taskpulse-cli/internal/api"
	"github.com/Green254/taskpulse-cli/internal/guard"
	"github.com/Green254/taskpulse-cli/internal/roles"
	"github.com/Green254/taskpulse-cli/internal/session"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewHome is the landing view
	ViewHome ViewType = iota
	// ViewLogin is the credential form
	ViewLogin
	// ViewLoading is shown while the profile or view data loads
	ViewLoading
	// ViewDashboard is the task overview for any signed-in user
	ViewDashboard
	// ViewAdmin is the admin console, admins only
	ViewAdmin
	// ViewUnauthorized is shown when the session lacks the required role
	ViewUnauthorized
)

// requiredRole returns the role a view demands. An empty role means any
// authenticated session may enter.
func requiredRole(view ViewType) roles.Role {
	if view == ViewAdmin {
		return roles.Admin
	}
	return ""
}

// statusFilterStates cycles through the admin user-table status filter.
var statusFilterStates = []string{"all", "active", "suspended"}

// Model represents the TUI application state
type Model struct {
	store  *session.Store
	client *api.Client

	// UI state
	view     ViewType
	width    int
	height   int
	ready    bool
	quitting bool
	notice   string
	lastErr  string

	// Navigation state: where to go once the profile finishes loading.
	pendingView ViewType

	login   loginForm
	spinner spinner.Model

	// Dashboard data
	tasks         *api.TaskList
	announcements []api.Announcement
	theme         *api.Theme

	// Admin data
	summary     *api.AdminSummary
	users       []session.Profile
	departments []api.Department
	adminNotes  []api.Announcement
	themes      []api.Theme

	// Admin user-table filters
	search       string
	searching    bool
	statusFilter int
	roleFilter   roles.Role

	styles Styles
}

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Banner   lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
	KeyDesc  lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("36")). // Green
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginBottom(1),
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("36")). // Green
			Padding(1, 2),
		Banner: lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("36")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("36")),
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// NewModel creates the dashboard model bound to the given session and
// API client. The session should already be restored.
func NewModel(store *session.Store, client *api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		store:  store,
		client: client,
		view:   ViewHome,
		// Init cannot persist model changes, so a profile sync started
		// there resolves to this view once the profile arrives.
		pendingView: ViewDashboard,
		login:       newLoginForm(),
		spinner:     sp,
		styles:      DefaultStyles(),
	}
	if store.LoggedIn() {
		m.view = ViewDashboard
	}
	return m
}

// Init initializes the TUI model (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.view == ViewDashboard {
		model, cmd := m.navigate(ViewDashboard)
		_ = model
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// navigate runs the route guard for the target view and returns the model
// positioned on whichever view the guard decided, plus the load command
// for that view's data.
func (m Model) navigate(target ViewType) (Model, tea.Cmd) {
	decision := guard.EvaluateStore(m.store, requiredRole(target))

	switch decision {
	case guard.RedirectLogin:
		m.view = ViewLogin
		m.login = newLoginForm()
		return m, m.login.focusCmd()
	case guard.RedirectUnauthorized:
		m.view = ViewUnauthorized
		return m, nil
	case guard.Pending:
		m.view = ViewLoading
		m.pendingView = target
		return m, m.syncProfileCmd()
	}

	m.view = target
	switch target {
	case ViewDashboard:
		return m, m.loadDashboardCmd()
	case ViewAdmin:
		return m, m.loadAdminCmd()
	}
	return m, nil
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case profileSyncedMsg:
		// The guard held this navigation until the profile arrived.
		// Re-evaluate now that it has (or the session is gone).
		target := m.pendingView
		m.pendingView = ViewHome
		return withCmd(m.navigate(target))

	case dashboardDataMsg:
		if msg.err != nil {
			return m.handleLoadError(msg.err)
		}
		m.tasks = msg.tasks
		m.announcements = msg.announcements
		m.theme = msg.theme
		m.lastErr = ""
		return m, nil

	case adminDataMsg:
		if msg.err != nil {
			return m.handleLoadError(msg.err)
		}
		m.summary = msg.summary
		m.users = msg.users
		m.departments = msg.departments
		m.adminNotes = msg.announcements
		m.themes = msg.themes
		m.lastErr = ""
		return m, nil

	case loggedOutMsg:
		m.notice = "Signed out."
		return withCmd(m.navigate(ViewDashboard))
	}

	if m.view == ViewLogin {
		return m.updateLogin(msg)
	}

	return m, nil
}

// handleLoadError routes a data-load failure. The API client has already
// torn the session down for expired and suspended sessions, so re-running
// the guard lands on the login view with the failure as the notice.
func (m Model) handleLoadError(err error) (tea.Model, tea.Cmd) {
	m.lastErr = err.Error()
	if !m.store.LoggedIn() {
		m.notice = err.Error()
		return withCmd(m.navigate(ViewDashboard))
	}
	return m, nil
}

// View renders the TUI (required by Bubble Tea)
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	switch m.view {
	case ViewHome:
		return m.renderHome()
	case ViewLogin:
		return m.renderLogin()
	case ViewLoading:
		return m.renderLoading()
	case ViewDashboard:
		return m.renderDashboard()
	case ViewAdmin:
		return m.renderAdmin()
	case ViewUnauthorized:
		return m.renderUnauthorized()
	default:
		return "Unknown view"
	}
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.view == ViewLogin {
		return m.updateLogin(msg)
	}

	if m.view == ViewAdmin && m.searching {
		return m.updateSearch(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "l":
		if m.view == ViewHome {
			return withCmd(m.navigate(ViewLogin))
		}

	case "d":
		return withCmd(m.navigate(ViewDashboard))

	case "esc", "enter":
		if m.view == ViewUnauthorized || m.view == ViewAdmin {
			return withCmd(m.navigate(ViewDashboard))
		}

	case "a":
		return withCmd(m.navigate(ViewAdmin))

	case "r":
		switch m.view {
		case ViewDashboard:
			return m, m.loadDashboardCmd()
		case ViewAdmin:
			return m, m.loadAdminCmd()
		}

	case "x":
		if m.store.LoggedIn() {
			return m, m.logoutCmd()
		}

	case "/":
		if m.view == ViewAdmin {
			m.searching = true
			return m, nil
		}

	case "f":
		if m.view == ViewAdmin {
			m.statusFilter = (m.statusFilter + 1) % len(statusFilterStates)
			return m, nil
		}

	case "o":
		if m.view == ViewAdmin {
			m.roleFilter = nextRoleFilter(m.roleFilter)
			return m, nil
		}
	}

	return m, nil
}

// updateSearch consumes keys while the admin search box is active.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
	case "backspace":
		if len(m.search) > 0 {
			m.search = m.search[:len(m.search)-1]
		}
	default:
		if len(msg.Runes) > 0 {
			m.search += string(msg.Runes)
		}
	}
	return m, nil
}

// nextRoleFilter cycles none -> each role -> none.
func nextRoleFilter(current roles.Role) roles.Role {
	if current == "" {
		return roles.All[0]
	}
	for i, role := range roles.All {
		if role == current {
			if i+1 < len(roles.All) {
				return roles.All[i+1]
			}
			return ""
		}
	}
	return ""
}

// filteredUsers applies the admin table filters.
func (m Model) filteredUsers() []session.Profile {
	query := normalizeQuery(m.search)
	status := statusFilterStates[m.statusFilter]

	var out []session.Profile
	for _, row := range m.users {
		if query != "" && !matchesQuery(&row, query) {
			continue
		}
		if status == "active" && row.IsCurrentlySuspended {
			continue
		}
		if status == "suspended" && !row.IsCurrentlySuspended {
			continue
		}
		if m.roleFilter != "" && !roles.Has(&row, m.roleFilter) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// withCmd adapts navigate's (Model, tea.Cmd) to Update's return type.
func withCmd(m Model, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	return m, cmd
}

// requestTimeout bounds every API call issued from the TUI.
const requestTimeout = 15 * time.Second

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
