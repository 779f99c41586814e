package cli

import (
	"fmt"

	"github.com/alexanderramin/prodtime/internal/cli/formatter"
	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Log and inspect production sessions",
	}

	cmd.AddCommand(
		newSessionLogCmd(app),
		newSessionListCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionLogCmd(app *App) *cobra.Command {
	var taskRef, start, end, note string
	var minutes, quantity int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a production session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			startAt, err := parseInstantFlag("start", start, app.loc())
			if err != nil {
				return err
			}
			endAt, err := parseInstantFlag("end", end, app.loc())
			if err != nil {
				return err
			}

			s := &domain.ProductionSession{
				StartTime:    startAt,
				EndTime:      endAt,
				TimeSpentMin: minutes,
				Quantity:     quantity,
				Note:         note,
			}
			if taskRef != "" {
				t, err := app.Tasks.Resolve(ctx, taskRef)
				if err != nil {
					return fmt.Errorf("task %q: %w", taskRef, err)
				}
				s.TaskID = t.ID
			}

			if err := app.Sessions.LogSession(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s session %s (%s)\n",
				formatter.FormatMinutes(float64(s.TimeSpentMin)),
				formatter.ClockRange(s.StartTime, s.EndTime), s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&taskRef, "task", "", "Task ID or code")
	cmd.Flags().StringVar(&start, "start", "", "Session start (RFC3339, \"YYYY-MM-DD HH:MM\" or unix epoch)")
	cmd.Flags().StringVar(&end, "end", "", "Session end")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Logged minutes (defaults to the span length)")
	cmd.Flags().IntVar(&quantity, "qty", 0, "Units produced")
	cmd.Flags().StringVar(&note, "note", "", "Session note")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var rng rangeFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions overlapping a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			from, to, err := rng.dates(app)
			if err != nil {
				return err
			}
			start, end := domain.DateWindow(from, to)
			sessions, err := app.Sessions.ListRange(ctx, start, end)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(sessions, domain.NewTaskNames(tasks)))
			return nil
		},
	}

	rng.register(cmd.Flags(), "listing")

	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", args[0])
			return nil
		},
	}
}
