package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Green254/taskpulse-cli/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the interactive dashboard",
	Long: `Open the full-screen interactive dashboard.

The dashboard shows your tasks, team announcements, and the active theme.
Administrators can press 'a' to switch to the admin panel with user,
announcement, and theme management. If you are not logged in the dashboard
starts on the login screen.`,
	Example: `  # Open the dashboard
  taskpulse dashboard

  # Against a different server
  taskpulse dashboard --api-url https://tasks.example.com`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	// Load the profile up front so the guard has roles to work with;
	// failures are fine, the dashboard falls back to its login screen.
	if app.store.LoggedIn() {
		app.store.RefreshProfileIfIncomplete(cmd.Context(), app.client.FetchProfile)
	}

	program := tea.NewProgram(tui.NewModel(app.store, app.client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
