package cli

import (
	"fmt"

	"github.com/alexanderramin/prodtime/internal/cli/formatter"
	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage production tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Task{Name: args[0], Code: code}
			if err := app.Tasks.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", t.Name, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Short unique code, usable wherever a task ID is expected")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID|CODE",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", t.Name)
			return nil
		},
	}
}
