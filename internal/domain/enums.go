package domain

// DateLayout is the calendar-date format used for keys and storage.
const DateLayout = "2006-01-02"

type GapKind string

const (
	GapFullDay     GapKind = "full_day"
	GapBeforeFirst GapKind = "before_first"
	GapBetween     GapKind = "between"
	GapAfterLast   GapKind = "after_last"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type RecommendationKind string

const (
	RecLongGaps          RecommendationKind = "LONG_GAPS"
	RecNoProductionDays  RecommendationKind = "NO_PRODUCTION_DAYS"
	RecLowCoverage       RecommendationKind = "LOW_COVERAGE"
	RecEarlyStartPattern RecommendationKind = "EARLY_START_PATTERN"
	RecEarlyEndPattern   RecommendationKind = "EARLY_END_PATTERN"
)

type TrendLabel string

const (
	TrendImproving TrendLabel = "improving"
	TrendDeclining TrendLabel = "declining"
	TrendStable    TrendLabel = "stable"
)
