package accounting

import (
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
)

// EffectiveTimeResult describes the merged, clipped production time inside a range.
type EffectiveTimeResult struct {
	RangeStart            time.Time
	RangeEnd              time.Time
	EffectiveMinutes      float64
	SessionsCount         int
	MergedPeriodsCount    int
	DuplicatesEliminated  int
	ClippedPeriodsCount   int
	ExcludedSessionsCount int
	SkippedSessions       int
	Periods               []domain.MergedPeriod
}

func (r EffectiveTimeResult) EffectiveHours() float64 {
	return r.EffectiveMinutes / 60
}

// ComputeEffectiveTime selects every session overlapping [rangeStart, rangeEnd],
// drops those of excluded tasks, merges the rest over their full extents and
// only then clips each merged period to the range. Merging before clipping
// keeps merge decisions independent of where the range boundary falls.
func ComputeEffectiveTime(sessions []domain.ProductionSession, rangeStart, rangeEnd time.Time, excludedTaskIDs []string) EffectiveTimeResult {
	res := EffectiveTimeResult{RangeStart: rangeStart, RangeEnd: rangeEnd}
	if !rangeEnd.After(rangeStart) {
		return res
	}

	excluded := make(map[string]struct{}, len(excludedTaskIDs))
	for _, id := range excludedTaskIDs {
		excluded[id] = struct{}{}
	}

	spans := make([]domain.TimeSpan, 0, len(sessions))
	for _, s := range sessions {
		if !s.Overlaps(rangeStart, rangeEnd) {
			continue
		}
		if _, skip := excluded[s.TaskID]; skip && s.TaskID != "" {
			res.ExcludedSessionsCount++
			continue
		}
		spans = append(spans, s.Span())
	}

	merged := MergeSpans(spans)
	res.SkippedSessions = merged.Skipped
	res.SessionsCount = merged.Merged
	res.MergedPeriodsCount = len(merged.Periods)
	res.DuplicatesEliminated = merged.DuplicatesEliminated()
	res.Periods = merged.Periods

	var total time.Duration
	for _, p := range merged.Periods {
		total += p.Clip(rangeStart, rangeEnd)
		if p.Start.Before(rangeStart) || p.End.After(rangeEnd) {
			res.ClippedPeriodsCount++
		}
	}
	res.EffectiveMinutes = total.Minutes()
	return res
}

// CostPerMinute divides amount over effective minutes, or returns 0 when
// either is not positive.
func CostPerMinute(amount, effectiveMinutes float64) float64 {
	if amount > 0 && effectiveMinutes > 0 {
		return amount / effectiveMinutes
	}
	return 0
}

// AnalyzeCost computes the cost analysis snapshot of rec against a session
// snapshot. A degenerate record yields zero figures rather than an error.
func AnalyzeCost(rec *domain.CostRecord, sessions []domain.ProductionSession, now time.Time) domain.CostAnalysis {
	analysis := domain.CostAnalysis{CostID: rec.ID, LastCalculatedAt: now}
	if !rec.EndDate.After(rec.StartDate) {
		return analysis
	}

	from, to := rec.Window()
	res := ComputeEffectiveTime(sessions, from, to, rec.ExcludedTaskIDs)

	analysis.EffectiveMinutes = res.EffectiveMinutes
	analysis.EffectiveHours = res.EffectiveHours()
	analysis.SessionsCount = res.SessionsCount
	analysis.MergedPeriodsCount = res.MergedPeriodsCount
	analysis.DuplicatesEliminated = res.DuplicatesEliminated
	analysis.ClippedPeriodsCount = res.ClippedPeriodsCount
	analysis.ExcludedSessionsCount = res.ExcludedSessionsCount
	analysis.SkippedSessions = res.SkippedSessions
	analysis.CostPerMinute = CostPerMinute(rec.Amount, res.EffectiveMinutes)
	analysis.CostPerHour = analysis.CostPerMinute * 60
	return analysis
}
