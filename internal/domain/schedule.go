package domain

import (
	"fmt"
	"time"
)

// WorkSchedule is the working-calendar configuration used for gap analysis.
type WorkSchedule struct {
	StartHour       int
	EndHour         int
	IncludeWeekends bool
}

// DefaultWorkSchedule covers 06:00 to 22:00 on weekdays.
func DefaultWorkSchedule() WorkSchedule {
	return WorkSchedule{StartHour: 6, EndHour: 22}
}

// Validate checks that the schedule describes a non-empty window within one day.
func (w WorkSchedule) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 {
		return &ValidationError{Field: "work_start_hour", Message: fmt.Sprintf("must be between 0 and 23, got %d", w.StartHour)}
	}
	if w.EndHour < 1 || w.EndHour > 24 {
		return &ValidationError{Field: "work_end_hour", Message: fmt.Sprintf("must be between 1 and 24, got %d", w.EndHour)}
	}
	if w.EndHour <= w.StartHour {
		return &ValidationError{Field: "work_end_hour", Message: fmt.Sprintf("must be after work_start_hour (%d), got %d", w.StartHour, w.EndHour)}
	}
	return nil
}

// WindowMinutes is the length of one day's working window.
func (w WorkSchedule) WindowMinutes() int {
	return (w.EndHour - w.StartHour) * 60
}

// WorkWindow is the working window of a single business day.
type WorkWindow struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

func (w WorkWindow) Minutes() float64 {
	return w.End.Sub(w.Start).Minutes()
}

// DateKey returns the window's date as YYYY-MM-DD.
func (w WorkWindow) DateKey() string {
	return w.Date.Format(DateLayout)
}
