package accounting

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
)

// GapInput holds everything a gap analysis needs.
type GapInput struct {
	Sessions      []domain.ProductionSession
	From          time.Time
	To            time.Time
	Now           time.Time
	Schedule      domain.WorkSchedule
	MinGapMinutes int
	// TaskNames enriches adjacent sessions; unresolved tasks render as unknown.
	TaskNames domain.TaskNames
}

type ReportPeriod struct {
	From time.Time
	To   time.Time
	Days int
}

type GapSummary struct {
	TotalWorkMinutes       int
	TotalProductionMinutes int
	TotalGapMinutes        int
	OverallCoverage        float64
	GapsCount              int
	DaysWithGaps           int
	DaysWithoutProduction  int
	SkippedSessions        int
}

// DayAnalysis is the per-day breakdown of a gap report.
type DayAnalysis struct {
	Date                 string
	Window               domain.WorkWindow
	SessionsCount        int
	MergedPeriods        []domain.MergedPeriod
	DuplicatesEliminated int
	WorkMinutes          int
	ProductionMinutes    int
	GapMinutes           int
	Coverage             int
	Gaps                 []domain.Gap
}

type GapReport struct {
	Period          ReportPeriod
	WorkSchedule    domain.WorkSchedule
	MinGapMinutes   int
	Summary         GapSummary
	Gaps            []domain.Gap
	DailyAnalysis   map[string]DayAnalysis
	Recommendations []Recommendation
}

// Days returns the daily analyses in calendar order.
func (r GapReport) Days() []DayAnalysis {
	days := make([]DayAnalysis, 0, len(r.DailyAnalysis))
	for _, d := range r.DailyAnalysis {
		days = append(days, d)
	}
	sortDays(days)
	return days
}

// CountGaps returns how many reported gaps are of kind.
func (r GapReport) CountGaps(kind domain.GapKind) int {
	n := 0
	for _, g := range r.Gaps {
		if g.Kind == kind {
			n++
		}
	}
	return n
}

// AnalyzeGaps detects idle stretches in each working window of the range.
// Sessions are bucketed by the calendar date of their start time and merged
// over their full extent; gaps are then measured against the day's window.
func AnalyzeGaps(in GapInput) GapReport {
	windows := EnumerateWorkWindows(in.From, in.To, in.Now, in.Schedule)
	loc := in.From.Location()

	report := GapReport{
		Period:        ReportPeriod{From: in.From, To: in.To, Days: len(windows)},
		WorkSchedule:  in.Schedule,
		MinGapMinutes: in.MinGapMinutes,
		DailyAnalysis: make(map[string]DayAnalysis, len(windows)),
	}

	byDate := make(map[string][]domain.ProductionSession)
	for _, s := range in.Sessions {
		if !s.Valid() {
			report.Summary.SkippedSessions++
			continue
		}
		key := s.StartTime.In(loc).Format(domain.DateLayout)
		byDate[key] = append(byDate[key], s)
	}

	minGap := time.Duration(in.MinGapMinutes) * time.Minute
	for _, w := range windows {
		day := analyzeDay(w, byDate[w.DateKey()], minGap, in.TaskNames)
		report.DailyAnalysis[day.Date] = day
		report.Gaps = append(report.Gaps, day.Gaps...)

		report.Summary.TotalWorkMinutes += day.WorkMinutes
		report.Summary.TotalProductionMinutes += day.ProductionMinutes
		report.Summary.TotalGapMinutes += day.GapMinutes
		if len(day.Gaps) > 0 {
			report.Summary.DaysWithGaps++
		}
		if day.SessionsCount == 0 {
			report.Summary.DaysWithoutProduction++
		}
	}
	report.Summary.GapsCount = len(report.Gaps)
	if report.Summary.TotalWorkMinutes > 0 {
		report.Summary.OverallCoverage = float64(report.Summary.TotalProductionMinutes) /
			float64(report.Summary.TotalWorkMinutes) * 100
	}

	report.Recommendations = Recommend(report)
	return report
}

func analyzeDay(w domain.WorkWindow, sessions []domain.ProductionSession, minGap time.Duration, names domain.TaskNames) DayAnalysis {
	day := DayAnalysis{
		Date:          w.DateKey(),
		Window:        w,
		SessionsCount: len(sessions),
		WorkMinutes:   int(math.Round(w.Minutes())),
	}

	if len(sessions) == 0 {
		day.Gaps = []domain.Gap{newGap(domain.GapFullDay, w, w.Start, w.End)}
		day.GapMinutes = day.Gaps[0].Minutes
		return day
	}

	merged := MergeSessions(sessions)
	day.MergedPeriods = merged.Periods
	day.DuplicatesEliminated = merged.DuplicatesEliminated()

	// Logged time, not wall-clock span, drives production and coverage.
	for _, s := range sessions {
		day.ProductionMinutes += s.TimeSpentMin
	}
	if day.WorkMinutes > 0 {
		day.Coverage = int(math.Round(float64(day.ProductionMinutes) / float64(day.WorkMinutes) * 100))
	}

	periods := merged.Periods
	emit := func(kind domain.GapKind, start, end time.Time, adjacent ...domain.MergedPeriod) {
		start, end = clampToWindow(w, start), clampToWindow(w, end)
		// Empty gaps are dropped even when minGap is zero.
		if !end.After(start) || end.Sub(start) < minGap {
			return
		}
		g := newGap(kind, w, start, end)
		for _, p := range adjacent {
			g.Adjacent = append(g.Adjacent, adjacentPeriod(p, names))
		}
		day.Gaps = append(day.Gaps, g)
		day.GapMinutes += g.Minutes
	}

	emit(domain.GapBeforeFirst, w.Start, periods[0].Start, periods[0])
	for i := 0; i+1 < len(periods); i++ {
		emit(domain.GapBetween, periods[i].End, periods[i+1].Start, periods[i], periods[i+1])
	}
	last := periods[len(periods)-1]
	emit(domain.GapAfterLast, last.End, w.End, last)

	return day
}

func newGap(kind domain.GapKind, w domain.WorkWindow, start, end time.Time) domain.Gap {
	return domain.Gap{
		Kind:    kind,
		Date:    w.DateKey(),
		Start:   start,
		End:     end,
		Minutes: int(math.Round(end.Sub(start).Minutes())),
	}
}

func clampToWindow(w domain.WorkWindow, t time.Time) time.Time {
	if t.Before(w.Start) {
		return w.Start
	}
	if t.After(w.End) {
		return w.End
	}
	return t
}

func adjacentPeriod(p domain.MergedPeriod, names domain.TaskNames) domain.AdjacentPeriod {
	ap := domain.AdjacentPeriod{Start: p.Start, End: p.End}
	for _, s := range p.Sources {
		ap.Sessions = append(ap.Sessions, domain.SessionRef{
			SessionID: s.ID,
			TaskID:    s.TaskID,
			TaskName:  names.Name(s.TaskID),
		})
	}
	return ap
}

func sortDays(days []DayAnalysis) {
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
}
