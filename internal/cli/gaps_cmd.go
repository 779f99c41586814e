package cli

import (
	"fmt"

	"github.com/alexanderramin/prodtime/internal/app"
	"github.com/alexanderramin/prodtime/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGapsCmd(a *App) *cobra.Command {
	var rng rangeFlags
	var startHour, endHour, minGap int
	var weekends bool
	var nowFlag string

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Find idle stretches in the working calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := rng.dates(a)
			if err != nil {
				return err
			}

			req := app.NewGapReportRequest(from, to)
			req.Schedule.StartHour = startHour
			req.Schedule.EndHour = endHour
			req.Schedule.IncludeWeekends = weekends
			req.MinGapMinutes = minGap
			if nowFlag != "" {
				now, err := parseInstantFlag("now", nowFlag, a.loc())
				if err != nil {
					return err
				}
				req.Now = &now
			}

			resp, err := a.Gaps.Report(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGapReport(resp.Report, resp.Warnings))
			return nil
		},
	}

	rng.register(cmd.Flags(), "report")
	cmd.Flags().IntVar(&startHour, "start-hour", a.Schedule.StartHour, "Hour the working window opens (0-23)")
	cmd.Flags().IntVar(&endHour, "end-hour", a.Schedule.EndHour, "Hour the working window closes (1-24)")
	cmd.Flags().BoolVar(&weekends, "weekends", a.Schedule.IncludeWeekends, "Treat Saturday and Sunday as working days")
	cmd.Flags().IntVar(&minGap, "min-gap", a.MinGapMinutes, "Ignore gaps shorter than this many minutes")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Evaluate as of this instant; later days are not analyzed")

	return cmd
}
