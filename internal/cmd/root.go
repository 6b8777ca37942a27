// Package cmd wires the TaskPulse CLI: cobra commands over the session
// store, route guard, and API client.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Green254/taskpulse-cli/internal/api"
	"github.com/Green254/taskpulse-cli/internal/config"
	tperrors "github.com/Green254/taskpulse-cli/internal/errors"
	"github.com/Green254/taskpulse-cli/internal/guard"
	"github.com/Green254/taskpulse-cli/internal/log"
	"github.com/Green254/taskpulse-cli/internal/roles"
	"github.com/Green254/taskpulse-cli/internal/security"
	"github.com/Green254/taskpulse-cli/internal/session"
	"github.com/Green254/taskpulse-cli/internal/ux"
)

var rootCmd = &cobra.Command{
	Use:   "taskpulse",
	Short: "Team task management from the terminal",
	Long: `taskpulse is the terminal client for the TaskPulse task-management server.
It keeps a persistent login session, shows your tasks and team announcements,
and gives administrators user, announcement, and theme management.

Sessions survive restarts: login once, then every command reuses the stored
credential until you logout or the server ends the session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Flag values bound in init.
var (
	flagOutput string
	flagAPIURL string
)

// app holds the wired application state for the lifetime of one command.
type appState struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
}

var app appState

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: text, json, or yaml")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "TaskPulse API server base URL")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initApp()
	}
}

// initApp loads configuration and wires the session store and API client.
func initApp() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagAPIURL != "" {
		cfg.APIBaseURL = flagAPIURL
	}
	if flagOutput != "" {
		cfg.Output = flagOutput
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	log.SetDefaultLogger(log.New(logCfg))

	var opts []session.Option
	if cfg.Passphrase != "" {
		opts = append(opts, session.WithSealer(security.NewSealer(cfg.Passphrase)))
	}
	store := session.NewStore(cfg.StateDir, opts...)
	store.Restore()

	client := api.NewClient(cfg.APIURL(), store)
	store.SetNotifier(client.NotifyLogout)

	app = appState{cfg: cfg, store: store, client: client}
	return nil
}

// formatter builds the output formatter for the current command.
func formatter() (ux.Formatter, error) {
	return ux.NewFormatter(app.cfg.Output, nil)
}

// requireSession ensures a credential is present and the profile is loaded,
// refreshing it from the server when the role list is missing.
func requireSession(ctx context.Context) error {
	if !app.store.LoggedIn() {
		return tperrors.NewNotLoggedInError()
	}
	app.store.RefreshProfileIfIncomplete(ctx, app.client.FetchProfile)
	if !app.store.LoggedIn() {
		return tperrors.NewSessionExpiredError()
	}
	return nil
}

// requireRole runs the route guard for a command that demands a role.
func requireRole(ctx context.Context, required roles.Role) error {
	decision := guard.EvaluateStore(app.store, required)
	if decision == guard.Pending {
		app.store.RefreshProfileIfIncomplete(ctx, app.client.FetchProfile)
		decision = guard.EvaluateStore(app.store, required)
	}

	switch decision {
	case guard.Allow:
		return nil
	case guard.RedirectLogin:
		return tperrors.NewNotLoggedInError()
	case guard.Pending:
		return tperrors.New(tperrors.ErrCodeAuthUnauthorized, "could not load your profile to verify access").
			WithSuggestion("Check your connection and try again")
	default:
		return tperrors.New(tperrors.ErrCodeAuthUnauthorized,
			fmt.Sprintf("your account does not have the %q role", required)).
			WithSuggestion("Ask an administrator if you believe you should have access")
	}
}

// printf writes to the command's stdout.
func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// confirmed asks a y/N question on the terminal.
func confirmed(cmd *cobra.Command, question string) bool {
	printf(cmd, "%s [y/N]: ", question)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
