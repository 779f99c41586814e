package accounting

import (
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
)

// ProportionalAmount attributes the part of a cost falling inside the
// inclusive report date range, in proportion to overlapping calendar days.
// Session data plays no part. A record without a positive day span is
// attributed in full.
func ProportionalAmount(rec *domain.CostRecord, reportFrom, reportTo time.Time) float64 {
	costStart, costEnd := rec.Window()
	totalDays := calendarDays(costStart, costEnd)
	if totalDays <= 0 {
		return rec.Amount
	}
	from, to := domain.DateWindow(reportFrom, reportTo)
	return rec.Amount * overlapDays(costStart, costEnd, from, to) / totalDays
}

func overlapDays(aStart, aEnd, bStart, bEnd time.Time) float64 {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return calendarDays(start, end)
}

// calendarDays counts the date boundaries between from and to, so a day that
// is 23 or 25 hours long across a DST change still counts as one.
func calendarDays(from, to time.Time) float64 {
	return float64(civilDay(to) - civilDay(from))
}

func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

// CashflowMonth is one calendar month of a cashflow view.
type CashflowMonth struct {
	Month  string
	From   time.Time
	To     time.Time
	Total  float64
	Paid   float64
	Unpaid float64
	Lines  []CashflowLine
}

// CashflowLine is the share of one cost record attributed to a month.
type CashflowLine struct {
	CostID      string
	Description string
	Amount      float64
	IsPaid      bool
}

// MonthlyCashflow splits costs across the calendar months of the inclusive
// range [from, to], clipping the first and last month to the range.
func MonthlyCashflow(costs []*domain.CostRecord, from, to time.Time) []CashflowMonth {
	from, to = domain.StartOfDay(from), domain.StartOfDay(to)
	if to.Before(from) {
		return nil
	}

	var months []CashflowMonth
	for monthStart := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location()); !monthStart.After(to); monthStart = monthStart.AddDate(0, 1, 0) {
		sliceFrom := monthStart
		if from.After(sliceFrom) {
			sliceFrom = from
		}
		sliceTo := monthStart.AddDate(0, 1, -1)
		if to.Before(sliceTo) {
			sliceTo = to
		}

		m := CashflowMonth{Month: monthStart.Format("2006-01"), From: sliceFrom, To: sliceTo}
		for _, c := range costs {
			amount := ProportionalAmount(c, sliceFrom, sliceTo)
			if amount == 0 {
				continue
			}
			m.Lines = append(m.Lines, CashflowLine{CostID: c.ID, Description: c.Description, Amount: amount, IsPaid: c.IsPaid})
			m.Total += amount
			if c.IsPaid {
				m.Paid += amount
			} else {
				m.Unpaid += amount
			}
		}
		months = append(months, m)
	}
	return months
}
