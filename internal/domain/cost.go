package domain

import (
	"fmt"
	"math"
	"time"
)

// CostRecord is a facility cost incurred over an inclusive range of calendar
// dates. StartDate and EndDate are stored at midnight.
type CostRecord struct {
	ID              string
	StartDate       time.Time
	EndDate         time.Time
	Amount          float64
	ExcludedTaskIDs []string
	IsPaid          bool
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate rejects degenerate ranges and negative amounts.
func (c *CostRecord) Validate() error {
	if c.StartDate.IsZero() {
		return &ValidationError{Field: "start_date", Message: "is required"}
	}
	if c.EndDate.IsZero() {
		return &ValidationError{Field: "end_date", Message: "is required"}
	}
	if !c.EndDate.After(c.StartDate) {
		return &ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("%s must be after start_date %s", c.EndDate.Format(DateLayout), c.StartDate.Format(DateLayout)),
		}
	}
	if c.Amount < 0 || math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) {
		return &ValidationError{Field: "amount", Message: fmt.Sprintf("must be a non-negative number, got %v", c.Amount)}
	}
	return nil
}

// Window returns the instant range covered by the record: from the start of
// StartDate to the start of the day after EndDate.
func (c *CostRecord) Window() (time.Time, time.Time) {
	return DateWindow(c.StartDate, c.EndDate)
}

// Excludes reports whether sessions of taskID are left out of the record's
// effective time.
func (c *CostRecord) Excludes(taskID string) bool {
	if taskID == "" {
		return false
	}
	for _, id := range c.ExcludedTaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}

// ApplyPatch updates the fields present in p.
func (c *CostRecord) ApplyPatch(p CostPatch, now time.Time) {
	if p.StartDate != nil {
		c.StartDate = StartOfDay(*p.StartDate)
	}
	if p.EndDate != nil {
		c.EndDate = StartOfDay(*p.EndDate)
	}
	c.Amount = ValueOr(c.Amount, p.Amount)
	c.IsPaid = ValueOr(c.IsPaid, p.IsPaid)
	c.Description = ValueOr(c.Description, p.Description)
	if p.ExcludedTaskIDs != nil {
		c.ExcludedTaskIDs = append([]string(nil), (*p.ExcludedTaskIDs)...)
	}
	c.UpdatedAt = now
}

// CostPatch carries a partial update of a CostRecord. Nil fields are left as is.
type CostPatch struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Amount          *float64
	IsPaid          *bool
	Description     *string
	ExcludedTaskIDs *[]string
}

// CostAnalysis is a derived, recomputable snapshot of a cost record's
// effective production time and unit cost.
type CostAnalysis struct {
	CostID                string
	Version               int
	EffectiveMinutes      float64
	EffectiveHours        float64
	SessionsCount         int
	MergedPeriodsCount    int
	DuplicatesEliminated  int
	ClippedPeriodsCount   int
	ExcludedSessionsCount int
	SkippedSessions       int
	CostPerMinute         float64
	CostPerHour           float64
	LastCalculatedAt      time.Time
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateWindow converts an inclusive date range into a half-open instant range.
func DateWindow(from, to time.Time) (time.Time, time.Time) {
	return StartOfDay(from), StartOfDay(to).AddDate(0, 0, 1)
}
