package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/alexanderramin/prodtime/internal/domain"
)

var gapKindLabels = map[domain.GapKind]string{
	domain.GapFullDay:     "full day",
	domain.GapBeforeFirst: "before first",
	domain.GapBetween:     "between",
	domain.GapAfterLast:   "after last",
}

// FormatGapReport renders the summary box, per-day table, gap list and
// recommendations of a gap report.
func FormatGapReport(r accounting.GapReport, warnings []string) string {
	var b strings.Builder

	b.WriteString(formatGapSummary(r))
	b.WriteString("\n")

	for _, w := range warnings {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}
	if len(warnings) > 0 {
		b.WriteString("\n")
	}

	days := r.Days()
	if len(days) == 0 {
		b.WriteString(Dim("No business days in range.") + "\n")
		return b.String()
	}

	b.WriteString(Header("Daily coverage") + "\n\n")
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{
			d.Date,
			ClockRange(d.Window.Start, d.Window.End),
			fmt.Sprintf("%d", d.SessionsCount),
			FormatMinutes(float64(d.ProductionMinutes)),
			FormatMinutes(float64(d.GapMinutes)),
			CoverageStyled(float64(d.Coverage)),
			fmt.Sprintf("%d", len(d.Gaps)),
		})
	}
	cols := Num(Cols("DATE", "WINDOW", "SESSIONS", "PRODUCTION", "GAPS", "COVERAGE", "#GAPS"), 2, 3, 4, 5, 6)
	b.WriteString(RenderTable(cols, rows))

	if len(r.Gaps) > 0 {
		b.WriteString("\n" + Header("Gaps") + "\n\n")
		b.WriteString(formatGapList(r.Gaps))
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\n" + Header("Recommendations") + "\n\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%s  %s\n", SeverityPill(rec.Severity), rec.Message)
		}
	}

	return b.String()
}

func formatGapSummary(r accounting.GapReport) string {
	s := r.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("Period:   "), DateRange(r.Period.From, r.Period.To))
	fmt.Fprintf(&b, "%s  %02d:00–%02d:00%s, min gap %dm\n", Dim("Schedule: "),
		r.WorkSchedule.StartHour, r.WorkSchedule.EndHour, weekendNote(r.WorkSchedule), r.MinGapMinutes)
	fmt.Fprintf(&b, "%s  %d\n", Dim("Days:     "), r.Period.Days)
	fmt.Fprintf(&b, "%s  %s of %s\n", Dim("Produced: "),
		Bold(FormatMinutes(float64(s.TotalProductionMinutes))), FormatMinutes(float64(s.TotalWorkMinutes)))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Idle:     "), FormatMinutes(float64(s.TotalGapMinutes)))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Coverage: "), CoverageStyled(s.OverallCoverage))
	fmt.Fprintf(&b, "%s  %d on %d days, %d days without production\n", Dim("Gaps:     "),
		s.GapsCount, s.DaysWithGaps, s.DaysWithoutProduction)
	if s.SkippedSessions > 0 {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Skipped:  "), StyleYellow.Render(fmt.Sprintf("%d sessions with invalid timestamps", s.SkippedSessions)))
	}
	return RenderBox("Production gaps", b.String())
}

func weekendNote(w domain.WorkSchedule) string {
	if w.IncludeWeekends {
		return " incl. weekends"
	}
	return " weekdays"
}

func formatGapList(gaps []domain.Gap) string {
	rows := make([][]string, 0, len(gaps))
	for _, g := range gaps {
		rows = append(rows, []string{
			g.Date,
			gapKindLabels[g.Kind],
			ClockRange(g.Start, g.End),
			FormatMinutes(float64(g.Minutes)),
			adjacentTasks(g.Adjacent),
		})
	}
	return RenderTable(Num(Cols("DATE", "KIND", "SPAN", "IDLE", "NEIGHBOURS"), 3), rows)
}

// adjacentTasks lists the distinct task names around a gap.
func adjacentTasks(adj []domain.AdjacentPeriod) string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range adj {
		for _, ref := range p.Sessions {
			if !seen[ref.TaskName] {
				seen[ref.TaskName] = true
				names = append(names, ref.TaskName)
			}
		}
	}
	if len(names) == 0 {
		return Dim("—")
	}
	return strings.Join(names, ", ")
}
