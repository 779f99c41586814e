package accounting

import (
	"testing"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hourOfWork logs one 60-minute session producing qty pieces on the given week offset.
func hourOfWork(week int, qty int, opts ...sessionOpt) domain.ProductionSession {
	start := clock(7*week, 9, 0)
	return sess(start, start.Add(time.Hour), append([]sessionOpt{withQty(qty)}, opts...)...)
}

func TestISOWeekKey(t *testing.T) {
	assert.Equal(t, "2024-W03", ISOWeekKey(clock(0, 9, 0)))
	assert.Equal(t, "2025-W01", ISOWeekKey(ymd(2024, 12, 30)), "ISO year differs from calendar year")
	assert.Equal(t, "2020-W53", ISOWeekKey(ymd(2021, 1, 3)))
}

func TestAnalyzeWeekly_ProductivitySeries(t *testing.T) {
	sessions := []domain.ProductionSession{
		hourOfWork(3, 15),
		hourOfWork(0, 10),
		hourOfWork(2, 9),
		hourOfWork(1, 12),
	}

	report := AnalyzeWeekly(sessions, nil)

	require.Len(t, report.Weeks, 4)
	keys := []string{report.Weeks[0].Key, report.Weeks[1].Key, report.Weeks[2].Key, report.Weeks[3].Key}
	assert.Equal(t, []string{"2024-W03", "2024-W04", "2024-W05", "2024-W06"}, keys)

	w := report.Weeks
	assert.Equal(t, 10.0, w[0].Productivity)
	assert.Equal(t, 0.0, w[0].PercentChangeVsPrevious)
	assert.Equal(t, domain.TrendStable, w[0].TrendLabel)

	assert.InDelta(t, 20.0, w[1].PercentChangeVsPrevious, 1e-9)
	assert.Equal(t, domain.TrendImproving, w[1].TrendLabel)
	assert.InDelta(t, -25.0, w[2].PercentChangeVsPrevious, 1e-9)
	assert.Equal(t, domain.TrendDeclining, w[2].TrendLabel)
	assert.Equal(t, domain.TrendImproving, w[3].TrendLabel)

	// Halves [10,12] vs [9,15]: 11 -> 12 is under a 10% rise.
	assert.Equal(t, domain.TrendStable, report.OverallTrend)

	require.NotNil(t, report.TrendLine)
	assert.InDelta(t, 1.2, report.TrendLine.Slope, 1e-9)
	assert.InDelta(t, 9.7, report.TrendLine.Intercept, 1e-9)
	require.NotNil(t, w[3].TrendValue)
	assert.InDelta(t, 13.3, *w[3].TrendValue, 1e-9)

	assert.Equal(t, ymd(2024, 1, 15), w[0].Start)
	assert.InDelta(t, 10.0/11.5*100, w[0].Efficiency, 1e-9)
}

func TestAnalyzeWeekly_SingleWeekHasNoTrendLine(t *testing.T) {
	report := AnalyzeWeekly([]domain.ProductionSession{hourOfWork(0, 10)}, nil)

	require.Len(t, report.Weeks, 1)
	assert.Nil(t, report.TrendLine)
	assert.Nil(t, report.Weeks[0].TrendValue)
	assert.Equal(t, domain.TrendStable, report.OverallTrend)
}

func TestAnalyzeWeekly_ZeroMinutesAndZeroPrevious(t *testing.T) {
	idle := hourOfWork(0, 5, withLogged(0))
	busy := hourOfWork(1, 10)

	report := AnalyzeWeekly([]domain.ProductionSession{idle, busy}, nil)

	require.Len(t, report.Weeks, 2)
	assert.Equal(t, 0.0, report.Weeks[0].Productivity)
	assert.Equal(t, 0.0, report.Weeks[1].PercentChangeVsPrevious, "no change is computed against a zero week")
	assert.Equal(t, domain.TrendStable, report.Weeks[1].TrendLabel)
	assert.Equal(t, domain.TrendStable, report.OverallTrend)
}

func TestAnalyzeWeekly_Breakdown(t *testing.T) {
	names := domain.TaskNames{"t-1": "Bracket", "t-2": "Flange"}
	start := clock(0, 8, 0)
	sessions := []domain.ProductionSession{
		sess(start, start.Add(30*time.Minute), onTask("t-1"), withQty(5)),
		sess(start.Add(time.Hour), start.Add(3*time.Hour), onTask("t-2"), withQty(8)),
		sess(clock(1, 8, 0), clock(1, 8, 30), onTask("t-1"), withQty(5)),
		sess(clock(2, 8, 0), clock(2, 9, 0), onTask("t-404"), withQty(1)),
	}

	report := AnalyzeWeekly(sessions, names)

	require.Len(t, report.Weeks, 1)
	week := report.Weeks[0]
	assert.Equal(t, 240, week.TotalMinutes)
	assert.Equal(t, 19, week.TotalQuantity)
	assert.Equal(t, 4, week.SessionsCount)

	require.Len(t, week.Breakdown, 3)
	assert.Equal(t, "Flange", week.Breakdown[0].TaskName)
	assert.InDelta(t, 50.0, week.Breakdown[0].SharePct, 1e-9)
	assert.InDelta(t, 4.0, week.Breakdown[0].Productivity, 1e-9)
	assert.Equal(t, "Bracket", week.Breakdown[1].TaskName)
	assert.Equal(t, 2, week.Breakdown[1].SessionsCount)
	assert.InDelta(t, 25.0, week.Breakdown[1].SharePct, 1e-9)
	assert.Equal(t, domain.UnknownTaskName, week.Breakdown[2].TaskName)

	require.NotNil(t, week.TopProduct)
	assert.Equal(t, "t-2", week.TopProduct.TaskID)
}

func TestAnalyzeWeekly_SkipsSessionsWithoutStart(t *testing.T) {
	report := AnalyzeWeekly([]domain.ProductionSession{{ID: "x", TimeSpentMin: 30}}, nil)
	assert.Equal(t, 1, report.SkippedSessions)
	assert.Empty(t, report.Weeks)
}

func TestAnalyzeWeekly_SkipsInvertedAndOpenSessions(t *testing.T) {
	good := hourOfWork(0, 10)
	inverted := sess(clock(1, 10, 0), clock(1, 9, 0), withQty(50))
	open := domain.ProductionSession{ID: "open", StartTime: clock(2, 9, 0), TimeSpentMin: 45, Quantity: 7}

	report := AnalyzeWeekly([]domain.ProductionSession{good, inverted, open}, nil)

	assert.Equal(t, 2, report.SkippedSessions)
	require.Len(t, report.Weeks, 1)
	assert.Equal(t, 1, report.Weeks[0].SessionsCount)
	assert.Equal(t, 10, report.Weeks[0].TotalQuantity)
	assert.Equal(t, 60, report.Weeks[0].TotalMinutes)
}

func TestSeriesTrend(t *testing.T) {
	assert.Equal(t, domain.TrendImproving, SeriesTrend([]float64{10, 10, 12, 12}))
	assert.Equal(t, domain.TrendDeclining, SeriesTrend([]float64{10, 10, 8, 8}))
	assert.Equal(t, domain.TrendStable, SeriesTrend([]float64{10, 10, 10.5, 10.5}))
	assert.Equal(t, domain.TrendImproving, SeriesTrend([]float64{10, 11, 20}), "odd lengths put the middle value in the second half")
	assert.Equal(t, domain.TrendStable, SeriesTrend(nil))
}

func TestChangeLabel_Boundaries(t *testing.T) {
	assert.Equal(t, domain.TrendStable, ChangeLabel(5))
	assert.Equal(t, domain.TrendImproving, ChangeLabel(5.01))
	assert.Equal(t, domain.TrendStable, ChangeLabel(-5))
	assert.Equal(t, domain.TrendDeclining, ChangeLabel(-5.01))
}
