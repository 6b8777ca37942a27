package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Green254/taskpulse-cli/internal/api"
	"github.com/Green254/taskpulse-cli/internal/roles"
	"github.com/Green254/taskpulse-cli/internal/session"
)

// renderHome renders the landing view
func (m Model) renderHome() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("TaskPulse"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Manage tasks. Empower teams. Move faster."))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.Warning.Render(m.notice))
		b.WriteString("\n\n")
	}

	if m.store.LoggedIn() {
		b.WriteString(m.styles.Status.Render("You are signed in."))
	} else {
		b.WriteString(m.styles.Muted.Render("Sign in to see your tasks."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderHelpLine(
		helpItem{"l", "login"},
		helpItem{"d", "dashboard"},
		helpItem{"q", "quit"},
	))
	return b.String()
}

// renderLogin renders the credential form
func (m Model) renderLogin() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Sign in to TaskPulse"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.Warning.Render(m.notice))
		b.WriteString("\n\n")
	}

	for i, input := range m.login.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
		if m.login.errs[i] != "" {
			b.WriteString(m.styles.Error.Render("  " + m.login.errs[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.login.busy {
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" Signing in..."))
	} else if m.lastErr != "" {
		b.WriteString(m.styles.Error.Render(m.lastErr))
	}
	b.WriteString("\n")

	b.WriteString(m.renderHelpLine(
		helpItem{"enter", "submit"},
		helpItem{"tab", "next field"},
		helpItem{"esc", "back"},
	))
	return b.String()
}

// renderLoading renders the hold screen while the profile loads
func (m Model) renderLoading() string {
	return m.spinner.View() + m.styles.Muted.Render(" Loading your profile...")
}

// renderDashboard renders the task overview
func (m Model) renderDashboard() string {
	var b strings.Builder

	if m.theme != nil && m.theme.BannerMessage != "" {
		b.WriteString(m.styles.Banner.Render(m.theme.BannerMessage))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Title.Render("Welcome back to TaskPulse!"))
	b.WriteString("\n")
	if profile := m.store.Profile(); profile != nil {
		line := profile.Name
		if role := roles.Primary(profile); role != "" {
			line += "  ·  " + string(role)
		}
		b.WriteString(m.styles.Subtitle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderStatsCards())
	b.WriteString("\n\n")
	b.WriteString(m.renderRecentTasks())

	if len(m.announcements) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderAnnouncements(m.announcements))
	}

	if m.lastErr != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render(m.lastErr))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelpLine(
		helpItem{"r", "refresh"},
		helpItem{"a", "admin"},
		helpItem{"x", "sign out"},
		helpItem{"q", "quit"},
	))
	return b.String()
}

// renderStatsCards renders the total/completed/pending counters
func (m Model) renderStatsCards() string {
	total, completed := 0, 0
	if m.tasks != nil {
		total = m.tasks.Total
		if total == 0 {
			total = len(m.tasks.Data)
		}
		for _, task := range m.tasks.Data {
			if task.Completed() {
				completed++
			}
		}
	}
	pending := total - completed

	card := func(label, value string, style lipgloss.Style) string {
		return m.styles.Border.Render(
			m.styles.Muted.Render(label) + "\n" + style.Render(value))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Tasks", fmt.Sprintf("%d", total), m.styles.Status),
		card("Completed", fmt.Sprintf("%d", completed), m.styles.Success),
		card("Pending", fmt.Sprintf("%d", pending), m.styles.Warning),
	)
}

// renderRecentTasks renders the latest tasks list
func (m Model) renderRecentTasks() string {
	var b strings.Builder
	b.WriteString(m.styles.Status.Render("Recent Tasks"))
	b.WriteString("\n")

	if m.tasks == nil || len(m.tasks.Data) == 0 {
		b.WriteString(m.styles.Muted.Render("No tasks yet"))
		return b.String()
	}

	for _, task := range m.tasks.Data {
		icon := "○"
		style := m.styles.Muted
		if task.Completed() {
			icon = "✓"
			style = m.styles.Success
		}
		line := fmt.Sprintf("%s %s", icon, task.Title)
		if task.AssigneeName != "" {
			line += m.styles.Muted.Render("  (" + task.AssigneeName + ")")
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderAnnouncements renders an announcement feed, pinned first
func (m Model) renderAnnouncements(items []api.Announcement) string {
	var b strings.Builder
	b.WriteString(m.styles.Status.Render("Announcements"))
	b.WriteString("\n")

	render := func(a api.Announcement) {
		style := m.styles.Muted
		switch a.Type {
		case "warning":
			style = m.styles.Warning
		case "critical":
			style = m.styles.Error
		case "celebration":
			style = m.styles.Success
		}
		prefix := ""
		if a.IsPinned {
			prefix = "📌 "
		}
		b.WriteString(style.Render(prefix+a.Title) + m.styles.Muted.Render(": "+a.Message))
		b.WriteString("\n")
	}

	for _, a := range items {
		if a.IsPinned {
			render(a)
		}
	}
	for _, a := range items {
		if !a.IsPinned {
			render(a)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderAdmin renders the admin console
func (m Model) renderAdmin() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Master Admin Dashboard"))
	b.WriteString("\n\n")

	if m.summary != nil {
		card := func(label string, value int, style lipgloss.Style) string {
			return m.styles.Border.Render(
				m.styles.Muted.Render(label) + "\n" + style.Render(fmt.Sprintf("%d", value)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			card("Total Users", m.summary.TotalUsers, m.styles.Status),
			card("Active", m.summary.ActiveUsers, m.styles.Success),
			card("Suspended", m.summary.SuspendedUsers, m.styles.Error),
			card("Departments", m.summary.DepartmentCount, m.styles.Status),
		))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderUserTable())

	if len(m.adminNotes) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderAnnouncements(m.adminNotes))
	}

	if len(m.themes) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderThemes())
	}

	if m.lastErr != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render(m.lastErr))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelpLine(
		helpItem{"/", "search"},
		helpItem{"f", "status filter"},
		helpItem{"o", "role filter"},
		helpItem{"r", "refresh"},
		helpItem{"esc", "dashboard"},
		helpItem{"q", "quit"},
	))
	return b.String()
}

// renderUserTable renders the filtered user table
func (m Model) renderUserTable() string {
	var b strings.Builder

	header := fmt.Sprintf("Users  ·  status: %s", statusFilterStates[m.statusFilter])
	if m.roleFilter != "" {
		header += "  ·  role: " + string(m.roleFilter)
	}
	if m.search != "" || m.searching {
		cursor := ""
		if m.searching {
			cursor = "█"
		}
		header += "  ·  search: " + m.search + cursor
	}
	b.WriteString(m.styles.Status.Render(header))
	b.WriteString("\n")

	rows := m.filteredUsers()
	if len(rows) == 0 {
		b.WriteString(m.styles.Muted.Render("No matching users"))
		return b.String()
	}

	for _, row := range rows {
		status := m.styles.Success.Render("active")
		if row.IsCurrentlySuspended {
			status = m.styles.Error.Render("suspended")
			if row.SuspensionReason != "" {
				status += m.styles.Muted.Render(" (" + row.SuspensionReason + ")")
			}
		}
		role := string(roles.Primary(&row))
		if role == "" {
			role = "-"
		}
		b.WriteString(fmt.Sprintf("%-24s %-30s %-10s %s\n",
			truncate(row.Name, 24), truncate(row.Email, 30), role, status))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderThemes renders the theme list with the active one marked
func (m Model) renderThemes() string {
	var b strings.Builder
	b.WriteString(m.styles.Status.Render("Themes"))
	b.WriteString("\n")

	for _, theme := range m.themes {
		marker := "○"
		style := m.styles.Muted
		if theme.IsActive {
			marker = "●"
			style = m.styles.Success
		}
		line := fmt.Sprintf("%s %s", marker, theme.Name)
		if theme.Tagline != "" {
			line += m.styles.Muted.Render(" : " + theme.Tagline)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderUnauthorized renders the access-denied landing
func (m Model) renderUnauthorized() string {
	var b strings.Builder

	b.WriteString(m.styles.Error.Render("Access denied"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("Your account does not have the role this area requires."))
	b.WriteString("\n\n")
	b.WriteString(m.renderHelpLine(
		helpItem{"esc", "dashboard"},
		helpItem{"q", "quit"},
	))
	return b.String()
}

type helpItem struct {
	key  string
	desc string
}

// renderHelpLine renders the hotkey line at the bottom
func (m Model) renderHelpLine(items ...helpItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, m.styles.Key.Render(item.key)+" "+m.styles.KeyDesc.Render(item.desc))
	}
	return m.styles.Help.Render(strings.Join(parts, " · "))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

func normalizeQuery(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchesQuery(row *session.Profile, query string) bool {
	return strings.Contains(strings.ToLower(row.Name), query) ||
		strings.Contains(strings.ToLower(row.Email), query)
}
