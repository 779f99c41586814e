package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
)

const (
	weekChangeThresholdPct = 5.0
	seriesImprovingRatio   = 1.1
	seriesDecliningRatio   = 0.9
)

// WeekBucket aggregates the sessions started within one ISO week.
type WeekBucket struct {
	Key           string
	Year          int
	Week          int
	Start         time.Time
	TotalMinutes  int
	TotalQuantity int
	SessionsCount int
}

// TaskShare is one task's contribution to a week.
type TaskShare struct {
	TaskID        string
	TaskName      string
	Quantity      int
	Minutes       int
	SessionsCount int
	Productivity  float64
	SharePct      float64
}

// WeeklyMetrics is a week bucket with derived productivity figures.
type WeeklyMetrics struct {
	WeekBucket
	Productivity            float64
	Efficiency              float64
	PercentChangeVsPrevious float64
	TrendLabel              domain.TrendLabel
	// TrendValue is the fitted trend-line value; nil when no line could be fitted.
	TrendValue *float64
	TopProduct *TaskShare
	Breakdown  []TaskShare
}

type WeeklyReport struct {
	Weeks           []WeeklyMetrics
	OverallTrend    domain.TrendLabel
	TrendLine       *TrendLine
	SkippedSessions int
}

// ISOWeekKey formats the ISO-8601 week of t as "2024-W03".
func ISOWeekKey(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", y, w)
}

// Productivity is quantity per hour of logged time.
func Productivity(quantity, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return float64(quantity) / (float64(minutes) / 60)
}

// PercentChange is (cur-prev)/prev*100, or 0 when prev is 0.
func PercentChange(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

// ChangeLabel classifies a week-over-week change.
func ChangeLabel(pct float64) domain.TrendLabel {
	switch {
	case pct > weekChangeThresholdPct:
		return domain.TrendImproving
	case pct < -weekChangeThresholdPct:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// SeriesTrend compares the mean of the first half of values with the mean of
// the second half, splitting at len/2.
func SeriesTrend(values []float64) domain.TrendLabel {
	half := len(values) / 2
	first, second := mean(values[:half]), mean(values[half:])
	if first == 0 {
		return domain.TrendStable
	}
	ratio := second / first
	switch {
	case ratio > seriesImprovingRatio:
		return domain.TrendImproving
	case ratio < seriesDecliningRatio:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// BucketByISOWeek groups sessions by the ISO week of their start time and
// returns the buckets in chronological order. Sessions without a valid span
// are counted as skipped.
func BucketByISOWeek(sessions []domain.ProductionSession) ([]WeekBucket, map[string][]domain.ProductionSession, int) {
	buckets := make(map[string]*WeekBucket)
	members := make(map[string][]domain.ProductionSession)
	skipped := 0
	for _, s := range sessions {
		if !s.Valid() {
			skipped++
			continue
		}
		key := ISOWeekKey(s.StartTime)
		b, ok := buckets[key]
		if !ok {
			y, w := s.StartTime.ISOWeek()
			b = &WeekBucket{Key: key, Year: y, Week: w, Start: weekStart(s.StartTime)}
			buckets[key] = b
		}
		b.TotalMinutes += s.TimeSpentMin
		b.TotalQuantity += s.Quantity
		b.SessionsCount++
		members[key] = append(members[key], s)
	}

	ordered := make([]WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, *b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Year != ordered[j].Year {
			return ordered[i].Year < ordered[j].Year
		}
		return ordered[i].Week < ordered[j].Week
	})
	return ordered, members, skipped
}

// AnalyzeWeekly builds week-over-week productivity metrics, the whole-series
// trend, a least-squares trend line and per-task breakdowns.
func AnalyzeWeekly(sessions []domain.ProductionSession, names domain.TaskNames) WeeklyReport {
	buckets, members, skipped := BucketByISOWeek(sessions)
	report := WeeklyReport{SkippedSessions: skipped, OverallTrend: domain.TrendStable}
	if len(buckets) == 0 {
		return report
	}

	productivity := make([]float64, len(buckets))
	for i, b := range buckets {
		productivity[i] = Productivity(b.TotalQuantity, b.TotalMinutes)
	}
	avg := mean(productivity)

	report.Weeks = make([]WeeklyMetrics, len(buckets))
	for i, b := range buckets {
		m := WeeklyMetrics{
			WeekBucket:   b,
			Productivity: productivity[i],
			TrendLabel:   domain.TrendStable,
			Breakdown:    weekBreakdown(members[b.Key], b.TotalMinutes, names),
		}
		if avg > 0 {
			m.Efficiency = productivity[i] / avg * 100
		}
		if i > 0 {
			m.PercentChangeVsPrevious = PercentChange(productivity[i-1], productivity[i])
			m.TrendLabel = ChangeLabel(m.PercentChangeVsPrevious)
		}
		if len(m.Breakdown) > 0 {
			top := m.Breakdown[0]
			m.TopProduct = &top
		}
		report.Weeks[i] = m
	}

	report.OverallTrend = SeriesTrend(productivity)
	if line, ok := FitTrendLine(productivity); ok {
		report.TrendLine = &line
		for i := range report.Weeks {
			v := line.At(i)
			report.Weeks[i].TrendValue = &v
		}
	}
	return report
}

func weekBreakdown(sessions []domain.ProductionSession, weekMinutes int, names domain.TaskNames) []TaskShare {
	byTask := make(map[string]*TaskShare)
	var order []string
	for _, s := range sessions {
		share, ok := byTask[s.TaskID]
		if !ok {
			share = &TaskShare{TaskID: s.TaskID, TaskName: names.Name(s.TaskID)}
			byTask[s.TaskID] = share
			order = append(order, s.TaskID)
		}
		share.Quantity += s.Quantity
		share.Minutes += s.TimeSpentMin
		share.SessionsCount++
	}

	out := make([]TaskShare, 0, len(order))
	for _, id := range order {
		share := byTask[id]
		share.Productivity = Productivity(share.Quantity, share.Minutes)
		if weekMinutes > 0 {
			share.SharePct = float64(share.Minutes) / float64(weekMinutes) * 100
		}
		out = append(out, *share)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SharePct > out[j].SharePct })
	return out
}

func weekStart(t time.Time) time.Time {
	day := domain.StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
