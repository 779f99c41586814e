package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/guptarohit/asciigraph"
)

const (
	minChartWidth  = 20
	minChartHeight = 5
)

// FormatWeeklyTrend renders the week-by-week productivity table, the overall
// trend and, when chartWidth > 0, an ASCII chart of productivity against
// the fitted trend line.
func FormatWeeklyTrend(r *accounting.WeeklyReport, chartWidth int) string {
	if len(r.Weeks) == 0 {
		return Dim("No sessions in range.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Weekly productivity") + "\n\n")

	rows := make([][]string, 0, len(r.Weeks))
	for i, w := range r.Weeks {
		change := Dim("—")
		if i > 0 {
			change = Pct(w.PercentChangeVsPrevious)
		}
		top := Dim("—")
		if w.TopProduct != nil {
			top = fmt.Sprintf("%s (%.0f%%)", w.TopProduct.TaskName, w.TopProduct.SharePct)
		}
		rows = append(rows, []string{
			w.Key,
			w.Start.Format("Jan 02"),
			fmt.Sprintf("%d", w.SessionsCount),
			FormatMinutes(float64(w.TotalMinutes)),
			fmt.Sprintf("%d", w.TotalQuantity),
			fmt.Sprintf("%.2f/h", w.Productivity),
			fmt.Sprintf("%.0f%%", w.Efficiency),
			change,
			TrendIndicator(w.TrendLabel),
			top,
		})
	}
	cols := Num(Cols("WEEK", "FROM", "SESSIONS", "TIME", "QTY", "RATE", "EFF", "CHANGE", "TREND", "TOP TASK"), 2, 3, 4, 5, 6, 7)
	b.WriteString(RenderTable(cols, rows))

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", Dim("Overall:"), TrendIndicator(r.OverallTrend))
	if r.TrendLine != nil {
		fmt.Fprintf(&b, "%s  %+.3f units/h per week\n", Dim("Slope:  "), r.TrendLine.Slope)
	}
	if r.SkippedSessions > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("! %d sessions skipped for invalid timestamps", r.SkippedSessions)) + "\n")
	}

	if chartWidth > 0 {
		b.WriteString("\n" + RenderTrendChart(r, chartWidth, 10) + "\n")
	}
	return b.String()
}

// RenderTrendChart plots weekly productivity, with the trend line as a
// second series when one was fitted.
func RenderTrendChart(r *accounting.WeeklyReport, width, height int) string {
	if len(r.Weeks) == 0 {
		return Dim("No data available")
	}
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)

	actual := make([]float64, len(r.Weeks))
	trend := make([]float64, len(r.Weeks))
	for i, w := range r.Weeks {
		actual[i] = w.Productivity
		if w.TrendValue != nil {
			trend[i] = *w.TrendValue
		}
	}
	// asciigraph needs at least two points to draw a line.
	if len(actual) == 1 {
		actual = append(actual, actual[0])
		trend = append(trend, trend[0])
	}

	caption := fmt.Sprintf("units/hour, %s to %s", r.Weeks[0].Key, r.Weeks[len(r.Weeks)-1].Key)
	if r.TrendLine == nil {
		return asciigraph.Plot(actual,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		)
	}
	return asciigraph.PlotMany([][]float64{actual, trend},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption+" (trend in blue)"),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
	)
}
