package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	tperrors "github.com/Green254/taskpulse-cli/internal/errors"
	"github.com/Green254/taskpulse-cli/internal/roles"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to TaskPulse",
	Long: `Sign in to the TaskPulse server with your email and password.

The credential is stored under ~/.config/taskpulse and reused by every
command until you logout or the server ends the session. Set
TASKPULSE_PASSPHRASE to seal the stored token at rest.

Credentials can be passed as flags or entered interactively.

Examples:
  taskpulse login
  taskpulse login --email user@example.com --password mypass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" || password == "" {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&email).
					Validate(validateEmail),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(required("Password")),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		if err := validateEmail(email); err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}

		resp, err := app.client.Login(cmd.Context(), email, password)
		if err != nil {
			return tperrors.Wrap(tperrors.ErrCodeAuthLoginFailed, "login failed", err).
				WithSuggestion("Check your email and password")
		}

		if err := app.store.Login(resp.User, resp.Token); err != nil {
			return err
		}

		printf(cmd, "Logged in as %s", resp.User.Name)
		if role := roles.Primary(resp.User); role != "" {
			printf(cmd, " (%s)", role)
		}
		printf(cmd, "\n")
		return nil
	},
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 || !strings.Contains(s[at+1:], ".") {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	rootCmd.AddCommand(loginCmd)
}
