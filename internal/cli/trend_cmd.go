package cli

import (
	"fmt"

	"github.com/alexanderramin/prodtime/internal/app"
	"github.com/alexanderramin/prodtime/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const defaultChartWidth = 60

func newTrendCmd(a *App) *cobra.Command {
	var rng rangeFlags
	var chart bool
	var width int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show week-over-week productivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := rng.optional(a)
			if err != nil {
				return err
			}
			report, err := a.Trend.Weekly(cmd.Context(), app.TrendRequest{From: from, To: to})
			if err != nil {
				return err
			}
			chartWidth := 0
			if chart {
				chartWidth = width
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeeklyTrend(report, chartWidth))
			return nil
		},
	}

	rng.register(cmd.Flags(), "analysis")
	cmd.Flags().BoolVar(&chart, "chart", false, "Plot productivity and the fitted trend line")
	cmd.Flags().IntVar(&width, "width", defaultChartWidth, "Chart width in columns")

	return cmd
}
