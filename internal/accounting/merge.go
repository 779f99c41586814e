// Package accounting computes duplicate-free production time, gap, cost and
// trend figures from production-session snapshots. Every function is pure:
// callers load sessions and costs beforehand and pass them in.
package accounting

import (
	"sort"

	"github.com/alexanderramin/prodtime/internal/domain"
)

// MergeResult is the outcome of coalescing spans.
type MergeResult struct {
	Periods []domain.MergedPeriod
	// Merged counts the spans that made it into a period.
	Merged int
	// Skipped counts spans dropped for having no extent or missing timestamps.
	Skipped int
}

// DuplicatesEliminated is the number of spans absorbed into another span's period.
func (r MergeResult) DuplicatesEliminated() int {
	return r.Merged - len(r.Periods)
}

// TotalMinutes sums the unclipped length of all periods.
func (r MergeResult) TotalMinutes() float64 {
	var total float64
	for _, p := range r.Periods {
		total += p.Minutes()
	}
	return total
}

// MergeSpans coalesces spans into sorted, pairwise-disjoint periods. A span
// starting exactly where the current period ends is merged into it, so two
// consecutive periods are always separated by a strictly positive gap.
func MergeSpans(spans []domain.TimeSpan) MergeResult {
	valid := make([]domain.TimeSpan, 0, len(spans))
	var result MergeResult
	for _, s := range spans {
		if s.Start.IsZero() || s.End.IsZero() || !s.Start.Before(s.End) {
			result.Skipped++
			continue
		}
		valid = append(valid, s)
	}
	if len(valid) == 0 {
		return result
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	current := domain.MergedPeriod{
		Start:   valid[0].Start,
		End:     valid[0].End,
		Sources: []domain.ProductionSession{valid[0].Session},
	}
	for _, s := range valid[1:] {
		if !s.Start.After(current.End) {
			if s.End.After(current.End) {
				current.End = s.End
			}
			current.Sources = append(current.Sources, s.Session)
			continue
		}
		result.Periods = append(result.Periods, current)
		current = domain.MergedPeriod{
			Start:   s.Start,
			End:     s.End,
			Sources: []domain.ProductionSession{s.Session},
		}
	}
	result.Periods = append(result.Periods, current)
	result.Merged = len(valid)
	return result
}

// MergeSessions merges the full wall-clock extents of sessions.
func MergeSessions(sessions []domain.ProductionSession) MergeResult {
	spans := make([]domain.TimeSpan, len(sessions))
	for i, s := range sessions {
		spans[i] = s.Span()
	}
	return MergeSpans(spans)
}
