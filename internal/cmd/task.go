package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Green254/taskpulse-cli/internal/api"
	"github.com/Green254/taskpulse-cli/internal/roles"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Work with your tasks",
	Long: `List, create, update, complete, and delete tasks.

Regular users see and manage their own tasks. Admins and managers can
assign tasks to other users with --assignee.

Subcommands:
  list    List tasks
  create  Create a task
  update  Change a task's fields
  done    Mark a task completed
  delete  Delete a task

Examples:
  taskpulse task list --status pending
  taskpulse task create --title "Fix auth bug" --priority high
  taskpulse task done 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// taskListOutput renders a task page as a table.
type taskListOutput struct {
	Tasks []api.Task `json:"tasks" yaml:"tasks"`
	Total int        `json:"total" yaml:"total"`
}

func (o taskListOutput) RenderText(w io.Writer) error {
	if len(o.Tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}
	for _, task := range o.Tasks {
		mark := " "
		if task.Completed() {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] #%-5d %s", mark, task.ID, task.Title)
		if task.Priority != "" {
			line += "  (" + task.Priority + ")"
		}
		if task.AssigneeName != "" {
			line += "  -> " + task.AssigneeName
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d of %d tasks\n", len(o.Tasks), o.Total)
	return err
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")
		if perPage == 0 {
			perPage = app.cfg.PerPage
		}

		list, err := app.client.ListTasks(cmd.Context(), api.ListTasksOptions{
			Status:  status,
			Page:    page,
			PerPage: perPage,
		})
		if err != nil {
			return err
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		total := list.Total
		if total == 0 {
			total = len(list.Data)
		}
		return f.Format(taskListOutput{Tasks: list.Data, Total: total})
	},
}

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			return fmt.Errorf("--title is required")
		}

		input := api.TaskInput{Title: &title}
		if description, _ := cmd.Flags().GetString("description"); description != "" {
			input.Description = &description
		}
		if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
			input.Priority = &priority
		}
		if assignee, _ := cmd.Flags().GetInt64("assignee"); assignee != 0 {
			if !roles.CanAssignTasks(app.store.Profile()) {
				return fmt.Errorf("only admins and managers can assign tasks to others")
			}
			input.AssigneeID = &assignee
		}
		if due, _ := cmd.Flags().GetString("due"); due != "" {
			parsed, err := time.Parse("2006-01-02", due)
			if err != nil {
				return fmt.Errorf("invalid --due date, expected YYYY-MM-DD: %w", err)
			}
			input.DueDate = &parsed
		}

		task, err := app.client.CreateTask(cmd.Context(), input)
		if err != nil {
			return err
		}

		printf(cmd, "Created task #%d: %s\n", task.ID, task.Title)
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		var input api.TaskInput
		changed := false
		if title, _ := cmd.Flags().GetString("title"); title != "" {
			input.Title = &title
			changed = true
		}
		if description, _ := cmd.Flags().GetString("description"); description != "" {
			input.Description = &description
			changed = true
		}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			input.Status = &status
			changed = true
		}
		if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
			input.Priority = &priority
			changed = true
		}
		if assignee, _ := cmd.Flags().GetInt64("assignee"); assignee != 0 {
			if !roles.CanAssignTasks(app.store.Profile()) {
				return fmt.Errorf("only admins and managers can assign tasks to others")
			}
			input.AssigneeID = &assignee
			changed = true
		}
		if !changed {
			return fmt.Errorf("nothing to update, pass at least one field flag")
		}

		task, err := app.client.UpdateTask(cmd.Context(), id, input)
		if err != nil {
			return err
		}

		printf(cmd, "Updated task #%d: %s\n", task.ID, task.Title)
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		task, err := app.client.CompleteTask(cmd.Context(), id)
		if err != nil {
			return err
		}

		printf(cmd, "Completed task #%d: %s\n", task.ID, task.Title)
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return err
		}
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one task id")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmed(cmd, fmt.Sprintf("Delete task #%d?", id)) {
			printf(cmd, "Aborted.\n")
			return nil
		}

		if err := app.client.DeleteTask(cmd.Context(), id); err != nil {
			return err
		}

		printf(cmd, "Deleted task #%d.\n", id)
		return nil
	},
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func init() {
	taskListCmd.Flags().String("status", "", "filter by status (pending, completed)")
	taskListCmd.Flags().Int("page", 0, "page number")
	taskListCmd.Flags().Int("per-page", 0, "page size")

	taskCreateCmd.Flags().String("title", "", "task title")
	taskCreateCmd.Flags().String("description", "", "task description")
	taskCreateCmd.Flags().String("priority", "", "priority (low, medium, high)")
	taskCreateCmd.Flags().Int64("assignee", 0, "assignee user id (admins and managers)")
	taskCreateCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")

	taskUpdateCmd.Flags().String("title", "", "new title")
	taskUpdateCmd.Flags().String("description", "", "new description")
	taskUpdateCmd.Flags().String("status", "", "new status")
	taskUpdateCmd.Flags().String("priority", "", "new priority")
	taskUpdateCmd.Flags().Int64("assignee", 0, "new assignee user id")

	taskDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}
