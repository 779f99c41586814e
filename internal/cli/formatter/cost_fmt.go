package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/alexanderramin/prodtime/internal/app"
	"github.com/alexanderramin/prodtime/internal/domain"
)

// FormatCostList renders all cost records with their latest unit cost.
func FormatCostList(views []app.CostView, now time.Time) string {
	if len(views) == 0 {
		return Dim("No cost records.") + "\n"
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		perHour, calculated := Dim("—"), Dim("never")
		if v.Analysis != nil {
			perHour = FormatRate(v.Analysis.CostPerHour)
			calculated = CalculatedAgo(v.Analysis.LastCalculatedAt, now)
		}
		rows = append(rows, []string{
			TruncID(v.Cost.ID),
			DateRange(v.Cost.StartDate, v.Cost.EndDate),
			FormatAmount(v.Cost.Amount),
			paidLabel(v.Cost.IsPaid),
			perHour,
			calculated + staleMarker(v.Stale),
			Clip(v.Cost.Description, noteWidth),
		})
	}
	cols := Num(Cols("ID", "PERIOD", "AMOUNT", "PAID", "PER HOUR", "CALCULATED", "DESCRIPTION"), 2, 4)
	return RenderTable(cols, rows)
}

// FormatCostView renders one cost record and its latest analysis.
func FormatCostView(v *app.CostView, now time.Time) string {
	c := v.Cost
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID:        "), c.ID)
	fmt.Fprintf(&b, "%s  %s\n", Dim("Period:    "), DateRange(c.StartDate, c.EndDate))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Amount:    "), Bold(FormatAmount(c.Amount)))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Paid:      "), paidLabel(c.IsPaid))
	if c.Description != "" {
		fmt.Fprintf(&b, "%s  %s\n", Dim("About:     "), c.Description)
	}
	if len(c.ExcludedTaskIDs) > 0 {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Excluding: "), strings.Join(c.ExcludedTaskIDs, ", "))
	}

	a := v.Analysis
	if a == nil {
		b.WriteString("\n" + StyleYellow.Render("Not calculated yet. Run `prodtime cost recalc "+c.ID+"`.") + "\n")
		return RenderBox("Cost", b.String())
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s (%.2fh)\n", Dim("Effective: "), Bold(FormatMinutes(a.EffectiveMinutes)), a.EffectiveHours)
	fmt.Fprintf(&b, "%s  %s / min, %s / hour\n", Dim("Unit cost: "), FormatRate(a.CostPerMinute), FormatRate(a.CostPerHour))
	fmt.Fprintf(&b, "%s  %d sessions → %d periods, %d duplicates, %d clipped\n", Dim("Merging:   "),
		a.SessionsCount, a.MergedPeriodsCount, a.DuplicatesEliminated, a.ClippedPeriodsCount)
	if a.ExcludedSessionsCount > 0 || a.SkippedSessions > 0 {
		fmt.Fprintf(&b, "%s  %d excluded, %d skipped\n", Dim("Dropped:   "), a.ExcludedSessionsCount, a.SkippedSessions)
	}
	fmt.Fprintf(&b, "%s  v%d, %s%s\n", Dim("Snapshot:  "), a.Version, CalculatedAgo(a.LastCalculatedAt, now), staleMarker(v.Stale))
	return RenderBox("Cost", b.String())
}

// FormatCostHistory renders every stored analysis version of a cost.
func FormatCostHistory(history []*domain.CostAnalysis, now time.Time) string {
	if len(history) == 0 {
		return Dim("No analyses recorded.") + "\n"
	}
	rows := make([][]string, 0, len(history))
	for _, a := range history {
		rows = append(rows, []string{
			fmt.Sprintf("v%d", a.Version),
			FormatMinutes(a.EffectiveMinutes),
			fmt.Sprintf("%d", a.SessionsCount),
			FormatRate(a.CostPerMinute),
			FormatRate(a.CostPerHour),
			CalculatedAgo(a.LastCalculatedAt, now),
		})
	}
	cols := Num(Cols("VERSION", "EFFECTIVE", "SESSIONS", "PER MIN", "PER HOUR", "CALCULATED"), 1, 2, 3, 4)
	return RenderTable(cols, rows)
}

// FormatEffectiveTime renders an ad-hoc effective-time computation.
func FormatEffectiveTime(r *accounting.EffectiveTimeResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s → %s\n", Dim("Range:     "), SessionTime(r.RangeStart), SessionTime(r.RangeEnd))
	fmt.Fprintf(&b, "%s  %s (%.2fh)\n", Dim("Effective: "), Bold(FormatMinutes(r.EffectiveMinutes)), r.EffectiveHours())
	fmt.Fprintf(&b, "%s  %d sessions → %d periods\n", Dim("Merging:   "), r.SessionsCount, r.MergedPeriodsCount)
	fmt.Fprintf(&b, "%s  %d duplicates, %d clipped, %d excluded, %d skipped\n", Dim("Details:   "),
		r.DuplicatesEliminated, r.ClippedPeriodsCount, r.ExcludedSessionsCount, r.SkippedSessions)
	if len(r.Periods) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(r.Periods))
		for _, p := range r.Periods {
			rows = append(rows, []string{
				SessionTime(p.Start),
				p.End.Format("15:04"),
				FormatMinutes(p.Minutes()),
				fmt.Sprintf("%d", len(p.Sources)),
			})
		}
		b.WriteString(RenderTable(Num(Cols("FROM", "TO", "LENGTH", "SESSIONS"), 2, 3), rows))
	}
	return RenderBox("Effective production time", b.String())
}

// FormatCashflow renders a month-by-month cost breakdown with totals.
func FormatCashflow(resp *app.CashflowResponse) string {
	if len(resp.Months) == 0 {
		return Dim("No months in range.") + "\n"
	}
	var b strings.Builder
	for _, m := range resp.Months {
		fmt.Fprintf(&b, "%s  %s\n", StyleHeader.Render(m.Month), Dim(DateRange(m.From, m.To)))
		if len(m.Lines) == 0 {
			b.WriteString("  " + Dim("no costs") + "\n\n")
			continue
		}
		rows := make([][]string, 0, len(m.Lines))
		for _, l := range m.Lines {
			rows = append(rows, []string{TruncID(l.CostID), Clip(l.Description, noteWidth), FormatAmount(l.Amount), paidLabel(l.IsPaid)})
		}
		b.WriteString(RenderTable(Num(Cols("ID", "DESCRIPTION", "AMOUNT", "PAID"), 2), rows))
		fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n\n",
			Dim("total"), Bold(FormatAmount(m.Total)),
			Dim("paid"), StyleGreen.Render(FormatAmount(m.Paid)),
			Dim("unpaid"), StyleRed.Render(FormatAmount(m.Unpaid)))
	}
	fmt.Fprintf(&b, "%s  %s  (%s paid, %s unpaid)\n", Bold("TOTAL"), Bold(FormatAmount(resp.Total)),
		FormatAmount(resp.Paid), FormatAmount(resp.Unpaid))
	return b.String()
}

func paidLabel(paid bool) string {
	if paid {
		return StyleGreen.Render("paid")
	}
	return StyleYellow.Render("unpaid")
}

func staleMarker(stale bool) string {
	if stale {
		return " " + StyleRed.Render("(stale)")
	}
	return ""
}
