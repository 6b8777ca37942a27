package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Green254/taskpulse-cli/internal/api"
)

// teamListOutput renders the assignable-user list.
type teamListOutput struct {
	Users []api.TeamUser `json:"users" yaml:"users"`
}

func (o teamListOutput) RenderText(w io.Writer) error {
	if len(o.Users) == 0 {
		_, err := fmt.Fprintln(w, "No assignable users.")
		return err
	}
	for _, row := range o.Users {
		if _, err := fmt.Fprintf(w, "#%-5d %-24s %s\n", row.ID, row.Name, row.Email); err != nil {
			return err
		}
	}
	return nil
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "List users tasks can be assigned to",
	Long: `List the users you may assign tasks to. Use the ids with
'taskpulse task create --assignee' and 'taskpulse task update --assignee'.

Examples:
  taskpulse team
  taskpulse team -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		users, err := app.client.TeamUsers(cmd.Context())
		if err != nil {
			return err
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(teamListOutput{Users: users})
	},
}

func init() {
	rootCmd.AddCommand(teamCmd)
}
