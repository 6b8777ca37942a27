package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Green254/taskpulse-cli/internal/api"
	tperrors "github.com/Green254/taskpulse-cli/internal/errors"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a TaskPulse account",
	Long: `Create a TaskPulse account and sign in with it.

The server requires a name, a unique email, a department, and a password of
at least 8 characters. On success the new session is stored locally, the
same as after login.

Examples:
  taskpulse register
  taskpulse register --name "Amina Njeri" --email amina@example.com --department 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		departmentID, _ := cmd.Flags().GetInt64("department")
		password, _ := cmd.Flags().GetString("password")

		departments, err := app.client.Departments(ctx)
		if err != nil {
			return fmt.Errorf("failed to load departments: %w", err)
		}
		if len(departments) == 0 {
			return fmt.Errorf("the server has no departments configured")
		}

		if name == "" || email == "" || password == "" || departmentID == 0 {
			confirm := ""
			options := make([]huh.Option[int64], len(departments))
			for i, dept := range departments {
				options[i] = huh.NewOption(dept.Name, dept.ID)
			}
			if departmentID == 0 {
				departmentID = departments[0].ID
			}

			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Value(&name).
					Validate(required("Name")),
				huh.NewInput().
					Title("Email").
					Value(&email).
					Validate(validateEmail),
				huh.NewSelect[int64]().
					Title("Department").
					Options(options...).
					Value(&departmentID),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(validatePassword),
				huh.NewInput().
					Title("Confirm password").
					EchoMode(huh.EchoModePassword).
					Value(&confirm),
			))
			if err := form.Run(); err != nil {
				return err
			}
			if confirm != password {
				return fmt.Errorf("passwords do not match")
			}
		}

		if err := validateEmail(email); err != nil {
			return err
		}
		if err := validatePassword(password); err != nil {
			return err
		}

		resp, err := app.client.Register(ctx, api.RegisterRequest{
			Name:                 name,
			Email:                email,
			DepartmentID:         departmentID,
			Password:             password,
			PasswordConfirmation: password,
		})
		if err != nil {
			return tperrors.Wrap(tperrors.ErrCodeAuthRegisterFailed, "registration failed", err)
		}

		if err := app.store.Login(resp.User, resp.Token); err != nil {
			return err
		}

		printf(cmd, "Welcome to TaskPulse, %s! You are now signed in.\n", resp.User.Name)
		return nil
	},
}

func validatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func init() {
	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().Int64("department", 0, "department id")
	registerCmd.Flags().String("password", "", "account password (min 8 characters)")
	rootCmd.AddCommand(registerCmd)
}
