package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Green254/taskpulse-cli/internal/api"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Password recovery",
	Long: `Request and complete password resets.

Subcommands:
  forgot  Ask the server to mail a reset link
  reset   Set a new password using the token from that mail

Examples:
  taskpulse password forgot --email user@example.com
  taskpulse password reset --email user@example.com --token abc123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var passwordForgotCmd = &cobra.Command{
	Use:   "forgot",
	Short: "Request a password reset link",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if err := validateEmail(email); err != nil {
			return err
		}

		if err := app.client.ForgotPassword(cmd.Context(), email); err != nil {
			return fmt.Errorf("failed to request reset: %w", err)
		}

		printf(cmd, "Reset link sent to %s.\n", email)
		return nil
	},
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Set a new password with a reset token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		token, _ := cmd.Flags().GetString("token")
		newPassword, _ := cmd.Flags().GetString("new-password")
		confirm, _ := cmd.Flags().GetString("confirm")

		if err := validateEmail(email); err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("--token is required")
		}
		if err := validatePassword(newPassword); err != nil {
			return err
		}
		if confirm == "" {
			confirm = newPassword
		}
		if confirm != newPassword {
			return fmt.Errorf("passwords do not match")
		}

		err := app.client.ResetPassword(cmd.Context(), api.ResetPasswordRequest{
			Email:                email,
			Token:                token,
			Password:             newPassword,
			PasswordConfirmation: confirm,
		})
		if err != nil {
			return fmt.Errorf("failed to reset password: %w", err)
		}

		printf(cmd, "Password reset. Sign in with 'taskpulse login'.\n")
		return nil
	},
}

func init() {
	passwordForgotCmd.Flags().String("email", "", "account email")

	passwordResetCmd.Flags().String("email", "", "account email")
	passwordResetCmd.Flags().String("token", "", "reset token from the email")
	passwordResetCmd.Flags().String("new-password", "", "new password (min 8 characters)")
	passwordResetCmd.Flags().String("confirm", "", "confirm the new password")

	passwordCmd.AddCommand(passwordForgotCmd)
	passwordCmd.AddCommand(passwordResetCmd)
	rootCmd.AddCommand(passwordCmd)
}
