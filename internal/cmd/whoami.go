package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Green254/taskpulse-cli/internal/session"
)

// whoamiOutput is the printable shape of the current session.
type whoamiOutput struct {
	ID        int64    `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Email     string   `json:"email" yaml:"email"`
	Roles     []string `json:"roles" yaml:"roles"`
	Suspended bool     `json:"suspended" yaml:"suspended"`
}

func (o whoamiOutput) RenderText(w io.Writer) error {
	roleList := "-"
	if len(o.Roles) > 0 {
		roleList = strings.Join(o.Roles, ", ")
	}
	_, err := fmt.Fprintf(w, "%s <%s>\nRoles: %s\n", o.Name, o.Email, roleList)
	return err
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Show the profile attached to the current session.

When the stored profile has no role information yet, it is refreshed from
the server first.

Examples:
  taskpulse whoami
  taskpulse whoami -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		profile := app.store.Profile()
		if profile == nil {
			// Credential present but the profile never loaded; ask directly.
			fetched, err := app.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			profile = fetched
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(profileOutput(profile))
	},
}

func profileOutput(p *session.Profile) whoamiOutput {
	out := whoamiOutput{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Suspended: p.IsCurrentlySuspended,
	}
	for _, ref := range p.Roles {
		out.Roles = append(out.Roles, ref.Name)
	}
	return out
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
