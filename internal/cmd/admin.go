package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Green254/taskpulse-cli/internal/api"
	"github.com/Green254/taskpulse-cli/internal/roles"
	"github.com/Green254/taskpulse-cli/internal/session"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer users, announcements, and themes",
	Long: `Administrative operations. Every subcommand requires the admin role;
non-admins are refused before any request is made.

Subcommands:
  summary        Show user and department counters
  users          Manage accounts (list, create, suspend, reactivate, role, delete)
  announcements  Manage announcements (list, create, delete)
  themes         Manage site themes (list, create, activate)

Examples:
  taskpulse admin summary
  taskpulse admin users list --status suspended
  taskpulse admin users suspend 7 --reason "Policy violation" --days 7`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initApp(); err != nil {
			return err
		}
		return requireRole(cmd.Context(), roles.Admin)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// summaryOutput renders the admin counters.
type summaryOutput struct {
	TotalUsers      int `json:"total_users" yaml:"total_users"`
	ActiveUsers     int `json:"active_users" yaml:"active_users"`
	SuspendedUsers  int `json:"suspended_users" yaml:"suspended_users"`
	DepartmentCount int `json:"department_count" yaml:"department_count"`
}

func (o summaryOutput) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Total users: %d\nActive: %d\nSuspended: %d\nDepartments: %d\n",
		o.TotalUsers, o.ActiveUsers, o.SuspendedUsers, o.DepartmentCount)
	return err
}

var adminSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show user and department counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := app.client.AdminSummary(cmd.Context())
		if err != nil {
			return err
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(summaryOutput{
			TotalUsers:      summary.TotalUsers,
			ActiveUsers:     summary.ActiveUsers,
			SuspendedUsers:  summary.SuspendedUsers,
			DepartmentCount: summary.DepartmentCount,
		})
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// userListOutput renders the account table.
type userListOutput struct {
	Users []session.Profile `json:"users" yaml:"users"`
}

func (o userListOutput) RenderText(w io.Writer) error {
	if len(o.Users) == 0 {
		_, err := fmt.Fprintln(w, "No users.")
		return err
	}
	for _, row := range o.Users {
		status := "active"
		if row.IsCurrentlySuspended {
			status = "suspended"
			if row.SuspensionReason != "" {
				status += " (" + row.SuspensionReason + ")"
			}
		}
		role := string(roles.Primary(&row))
		if role == "" {
			role = "-"
		}
		if _, err := fmt.Fprintf(w, "#%-5d %-24s %-30s %-10s %s\n",
			row.ID, row.Name, row.Email, role, status); err != nil {
			return err
		}
	}
	return nil
}

var adminUsersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := app.client.AdminUsers(cmd.Context())
		if err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		role, _ := cmd.Flags().GetString("role")

		filtered := users[:0:0]
		for _, row := range users {
			if status == "active" && row.IsCurrentlySuspended {
				continue
			}
			if status == "suspended" && !row.IsCurrentlySuspended {
				continue
			}
			if role != "" && !roles.Has(&row, roles.Role(role)) {
				continue
			}
			filtered = append(filtered, row)
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(userListOutput{Users: filtered})
	},
}

var adminUsersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account with a role",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")
		departmentID, _ := cmd.Flags().GetInt64("department")

		if name == "" || email == "" || password == "" {
			return fmt.Errorf("--name, --email and --password are required")
		}
		if err := validateEmail(email); err != nil {
			return err
		}
		if !roles.Role(role).Valid() {
			return fmt.Errorf("unknown role %q", role)
		}

		user, err := app.client.CreateUser(cmd.Context(), api.CreateUserRequest{
			Name:         name,
			Email:        email,
			Password:     password,
			Role:         role,
			DepartmentID: departmentID,
		})
		if err != nil {
			return err
		}

		printf(cmd, "Created user #%d: %s (%s)\n", user.ID, user.Name, role)
		return nil
	},
}

var adminUsersSuspendCmd = &cobra.Command{
	Use:   "suspend <id>",
	Short: "Suspend an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		req := api.SuspendUserRequest{}
		if reason, _ := cmd.Flags().GetString("reason"); reason != "" {
			req.Reason = reason
		}
		if days, _ := cmd.Flags().GetInt("days"); days > 0 {
			until := time.Now().AddDate(0, 0, days)
			req.Until = &until
		}

		user, err := app.client.SuspendUser(cmd.Context(), id, req)
		if err != nil {
			return err
		}

		printf(cmd, "Suspended %s.\n", user.Name)
		return nil
	},
}

var adminUsersReactivateCmd = &cobra.Command{
	Use:   "reactivate <id>",
	Short: "Lift an account suspension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		user, err := app.client.ReactivateUser(cmd.Context(), id)
		if err != nil {
			return err
		}

		printf(cmd, "Reactivated %s.\n", user.Name)
		return nil
	},
}

var adminUsersRoleCmd = &cobra.Command{
	Use:   "role <id> <role>",
	Short: "Replace an account's role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		if !roles.Role(args[1]).Valid() {
			return fmt.Errorf("unknown role %q, valid roles: %v", args[1], roles.All)
		}

		user, err := app.client.UpdateUserRole(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}

		printf(cmd, "%s is now %s.\n", user.Name, args[1])
		return nil
	},
}

var adminUsersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmed(cmd, fmt.Sprintf("Delete user #%d?", id)) {
			printf(cmd, "Aborted.\n")
			return nil
		}

		if err := app.client.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}

		printf(cmd, "Deleted user #%d.\n", id)
		return nil
	},
}

var adminAnnouncementsCmd = &cobra.Command{
	Use:   "announcements",
	Short: "Manage announcements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// announcementListOutput renders the announcement feed.
type announcementListOutput struct {
	Announcements []api.Announcement `json:"announcements" yaml:"announcements"`
}

func (o announcementListOutput) RenderText(w io.Writer) error {
	if len(o.Announcements) == 0 {
		_, err := fmt.Fprintln(w, "No announcements.")
		return err
	}
	for _, a := range o.Announcements {
		pin := " "
		if a.IsPinned {
			pin = "*"
		}
		if _, err := fmt.Fprintf(w, "%s #%-5d [%s] %s: %s\n", pin, a.ID, a.Type, a.Title, a.Message); err != nil {
			return err
		}
	}
	return nil
}

var adminAnnouncementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List announcements",
	RunE: func(cmd *cobra.Command, args []string) error {
		announcements, err := app.client.AdminAnnouncements(cmd.Context())
		if err != nil {
			return err
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(announcementListOutput{Announcements: announcements})
	},
}

var adminAnnouncementsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post an announcement",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		message, _ := cmd.Flags().GetString("message")
		kind, _ := cmd.Flags().GetString("type")
		scope, _ := cmd.Flags().GetString("scope")
		targetRole, _ := cmd.Flags().GetString("role")
		targetDepartment, _ := cmd.Flags().GetInt64("department")
		pinned, _ := cmd.Flags().GetBool("pinned")

		if title == "" || message == "" {
			return fmt.Errorf("--title and --message are required")
		}
		if !slices.Contains(api.AnnouncementTypes, kind) {
			return fmt.Errorf("unknown type %q, valid types: %v", kind, api.AnnouncementTypes)
		}
		if !slices.Contains(api.TargetScopes, scope) {
			return fmt.Errorf("unknown scope %q, valid scopes: %v", scope, api.TargetScopes)
		}

		req := api.CreateAnnouncementRequest{
			Title:       title,
			Message:     message,
			Type:        kind,
			TargetScope: scope,
			IsPinned:    pinned,
			IsActive:    true,
		}
		switch scope {
		case "role":
			if !roles.Role(targetRole).Valid() {
				return fmt.Errorf("--role is required for scope=role")
			}
			req.TargetRole = targetRole
		case "department":
			if targetDepartment == 0 {
				return fmt.Errorf("--department is required for scope=department")
			}
			req.TargetDepartmentID = targetDepartment
		}

		announcement, err := app.client.CreateAnnouncement(cmd.Context(), req)
		if err != nil {
			return err
		}

		printf(cmd, "Posted announcement #%d: %s\n", announcement.ID, announcement.Title)
		return nil
	},
}

var adminAnnouncementsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid announcement id %q", args[0])
		}

		if err := app.client.DeleteAnnouncement(cmd.Context(), id); err != nil {
			return err
		}

		printf(cmd, "Deleted announcement #%d.\n", id)
		return nil
	},
}

var adminThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Manage site themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// themeListOutput renders the theme list.
type themeListOutput struct {
	Themes []api.Theme `json:"themes" yaml:"themes"`
}

func (o themeListOutput) RenderText(w io.Writer) error {
	if len(o.Themes) == 0 {
		_, err := fmt.Fprintln(w, "No themes.")
		return err
	}
	for _, theme := range o.Themes {
		marker := " "
		if theme.IsActive {
			marker = "*"
		}
		line := fmt.Sprintf("%s #%-5d %s", marker, theme.ID, theme.Name)
		if theme.Tagline != "" {
			line += ": " + theme.Tagline
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

var adminThemesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		themes, err := app.client.AdminThemes(cmd.Context())
		if err != nil {
			return err
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(themeListOutput{Themes: themes})
	},
}

var adminThemesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return fmt.Errorf("--name is required")
		}

		tagline, _ := cmd.Flags().GetString("tagline")
		banner, _ := cmd.Flags().GetString("banner")
		primary, _ := cmd.Flags().GetString("primary-color")
		accent, _ := cmd.Flags().GetString("accent-color")
		surface, _ := cmd.Flags().GetString("surface-color")
		activate, _ := cmd.Flags().GetBool("activate")

		theme, err := app.client.CreateTheme(cmd.Context(), api.CreateThemeRequest{
			Name:          name,
			Tagline:       tagline,
			BannerMessage: banner,
			PrimaryColor:  primary,
			AccentColor:   accent,
			SurfaceColor:  surface,
			IsActive:      activate,
		})
		if err != nil {
			return err
		}

		printf(cmd, "Created theme #%d: %s\n", theme.ID, theme.Name)
		return nil
	},
}

var adminThemesActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Make a theme the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid theme id %q", args[0])
		}

		theme, err := app.client.ActivateTheme(cmd.Context(), id)
		if err != nil {
			return err
		}

		printf(cmd, "Activated theme %s.\n", theme.Name)
		return nil
	},
}

func parseUserID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}

func init() {
	adminUsersListCmd.Flags().String("status", "", "filter by status (active, suspended)")
	adminUsersListCmd.Flags().String("role", "", "filter by role")

	adminUsersCreateCmd.Flags().String("name", "", "full name")
	adminUsersCreateCmd.Flags().String("email", "", "account email")
	adminUsersCreateCmd.Flags().String("password", "", "initial password")
	adminUsersCreateCmd.Flags().String("role", "user", "role to grant")
	adminUsersCreateCmd.Flags().Int64("department", 0, "department id")

	adminUsersSuspendCmd.Flags().String("reason", "", "suspension reason shown to the user")
	adminUsersSuspendCmd.Flags().Int("days", 0, "suspension length in days (0 = indefinite)")

	adminUsersDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	adminAnnouncementsCreateCmd.Flags().String("title", "", "announcement title")
	adminAnnouncementsCreateCmd.Flags().String("message", "", "announcement body")
	adminAnnouncementsCreateCmd.Flags().String("type", "info", "type (info, warning, critical, celebration)")
	adminAnnouncementsCreateCmd.Flags().String("scope", "all", "audience (all, role, department)")
	adminAnnouncementsCreateCmd.Flags().String("role", "", "target role for scope=role")
	adminAnnouncementsCreateCmd.Flags().Int64("department", 0, "target department for scope=department")
	adminAnnouncementsCreateCmd.Flags().Bool("pinned", false, "pin the announcement")

	adminThemesCreateCmd.Flags().String("name", "", "theme name")
	adminThemesCreateCmd.Flags().String("tagline", "", "theme tagline")
	adminThemesCreateCmd.Flags().String("banner", "", "banner message")
	adminThemesCreateCmd.Flags().String("primary-color", "#0f172a", "primary color")
	adminThemesCreateCmd.Flags().String("accent-color", "#2563eb", "accent color")
	adminThemesCreateCmd.Flags().String("surface-color", "#ffffff", "surface color")
	adminThemesCreateCmd.Flags().Bool("activate", true, "activate the theme on creation")

	adminUsersCmd.AddCommand(adminUsersListCmd)
	adminUsersCmd.AddCommand(adminUsersCreateCmd)
	adminUsersCmd.AddCommand(adminUsersSuspendCmd)
	adminUsersCmd.AddCommand(adminUsersReactivateCmd)
	adminUsersCmd.AddCommand(adminUsersRoleCmd)
	adminUsersCmd.AddCommand(adminUsersDeleteCmd)

	adminAnnouncementsCmd.AddCommand(adminAnnouncementsListCmd)
	adminAnnouncementsCmd.AddCommand(adminAnnouncementsCreateCmd)
	adminAnnouncementsCmd.AddCommand(adminAnnouncementsDeleteCmd)

	adminThemesCmd.AddCommand(adminThemesListCmd)
	adminThemesCmd.AddCommand(adminThemesCreateCmd)
	adminThemesCmd.AddCommand(adminThemesActivateCmd)

	adminCmd.AddCommand(adminSummaryCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminAnnouncementsCmd)
	adminCmd.AddCommand(adminThemesCmd)
	rootCmd.AddCommand(adminCmd)
}
