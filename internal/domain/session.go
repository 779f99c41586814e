package domain

import "time"

// ProductionSession is a logged block of production on a task. TimeSpentMin is
// recorded independently of the StartTime/EndTime span and may diverge from it;
// both are kept as logged.
type ProductionSession struct {
	ID           string
	TaskID       string
	StartTime    time.Time
	EndTime      time.Time
	TimeSpentMin int
	Quantity     int
	Note         string
	CreatedAt    time.Time
}

// Valid reports whether the session has usable timestamps.
func (s ProductionSession) Valid() bool {
	return !s.StartTime.IsZero() && !s.EndTime.IsZero() && s.StartTime.Before(s.EndTime)
}

// Span returns the wall-clock extent of the session.
func (s ProductionSession) Span() TimeSpan {
	return TimeSpan{Start: s.StartTime, End: s.EndTime, Session: s}
}

// SpanMinutes is the wall-clock length of the session in minutes.
func (s ProductionSession) SpanMinutes() float64 {
	return s.EndTime.Sub(s.StartTime).Minutes()
}

// Overlaps uses inclusive bounds on both sides, so a session ending exactly
// at from or starting exactly at to is selected.
func (s ProductionSession) Overlaps(from, to time.Time) bool {
	return !s.StartTime.After(to) && !s.EndTime.Before(from)
}
