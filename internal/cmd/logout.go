package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Long: `Sign out of TaskPulse.

The server is told the session is ending, then the local credential and
profile are removed. The local state is cleared even when the server
cannot be reached, so logout always succeeds.

Examples:
  taskpulse logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.store.LoggedIn() {
			printf(cmd, "Not logged in.\n")
			return nil
		}

		app.store.Logout(cmd.Context())
		printf(cmd, "Logged out.\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
