package accounting

import (
	"fmt"

	"github.com/alexanderramin/prodtime/internal/domain"
)

const (
	longGapMinutes      = 120
	lowCoveragePct      = 50
	edgeGapPatternLimit = 3
)

// Recommendation is an actionable finding derived from a gap report.
type Recommendation struct {
	Kind     domain.RecommendationKind
	Severity domain.Severity
	Message  string
	// Count is the number of gaps or days the finding is based on.
	Count int
}

// recommendationRule pairs a predicate over a report with the recommendation
// it produces. Rules are independent: each reads the report only.
type recommendationRule struct {
	kind    domain.RecommendationKind
	applies func(GapReport) bool
	build   func(GapReport) Recommendation
}

var recommendationRules = []recommendationRule{
	{
		kind:    domain.RecLongGaps,
		applies: func(r GapReport) bool { return countLongGaps(r) > 0 },
		build: func(r GapReport) Recommendation {
			n := countLongGaps(r)
			return Recommendation{
				Kind:     domain.RecLongGaps,
				Severity: domain.SeverityHigh,
				Count:    n,
				Message:  fmt.Sprintf("%d gap(s) longer than %d minutes; review scheduling and machine availability", n, longGapMinutes),
			}
		},
	},
	{
		kind:    domain.RecNoProductionDays,
		applies: func(r GapReport) bool { return r.Summary.DaysWithoutProduction > 0 },
		build: func(r GapReport) Recommendation {
			n := r.Summary.DaysWithoutProduction
			return Recommendation{
				Kind:     domain.RecNoProductionDays,
				Severity: domain.SeverityMedium,
				Count:    n,
				Message:  fmt.Sprintf("%d working day(s) without any logged production", n),
			}
		},
	},
	{
		kind:    domain.RecLowCoverage,
		applies: func(r GapReport) bool { return countLowCoverageDays(r) > 0 },
		build: func(r GapReport) Recommendation {
			n := countLowCoverageDays(r)
			return Recommendation{
				Kind:     domain.RecLowCoverage,
				Severity: domain.SeverityMedium,
				Count:    n,
				Message:  fmt.Sprintf("%d day(s) with production but coverage below %d%%", n, lowCoveragePct),
			}
		},
	},
	{
		kind:    domain.RecEarlyStartPattern,
		applies: func(r GapReport) bool { return r.CountGaps(domain.GapBeforeFirst) > edgeGapPatternLimit },
		build: func(r GapReport) Recommendation {
			n := r.CountGaps(domain.GapBeforeFirst)
			return Recommendation{
				Kind:     domain.RecEarlyStartPattern,
				Severity: domain.SeverityLow,
				Count:    n,
				Message:  fmt.Sprintf("production repeatedly starts after the shift opens (%d days); consider a later shift start", n),
			}
		},
	},
	{
		kind:    domain.RecEarlyEndPattern,
		applies: func(r GapReport) bool { return r.CountGaps(domain.GapAfterLast) > edgeGapPatternLimit },
		build: func(r GapReport) Recommendation {
			n := r.CountGaps(domain.GapAfterLast)
			return Recommendation{
				Kind:     domain.RecEarlyEndPattern,
				Severity: domain.SeverityLow,
				Count:    n,
				Message:  fmt.Sprintf("production repeatedly stops before the shift closes (%d days); consider an earlier shift end", n),
			}
		},
	},
}

// Recommend evaluates every rule against the report, in rule order.
func Recommend(r GapReport) []Recommendation {
	var recs []Recommendation
	for _, rule := range recommendationRules {
		if rule.applies(r) {
			recs = append(recs, rule.build(r))
		}
	}
	return recs
}

func countLongGaps(r GapReport) int {
	n := 0
	for _, g := range r.Gaps {
		if g.Minutes > longGapMinutes {
			n++
		}
	}
	return n
}

func countLowCoverageDays(r GapReport) int {
	n := 0
	for _, d := range r.DailyAnalysis {
		if d.SessionsCount > 0 && d.Coverage < lowCoveragePct {
			n++
		}
	}
	return n
}
