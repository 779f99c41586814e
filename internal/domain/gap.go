package domain

import "time"

// SessionRef identifies a session adjacent to a gap, enriched with task metadata.
type SessionRef struct {
	SessionID string
	TaskID    string
	TaskName  string
}

// AdjacentPeriod is a merged period bordering a gap.
type AdjacentPeriod struct {
	Start    time.Time
	End      time.Time
	Sessions []SessionRef
}

// Gap is an idle stretch of a working window.
type Gap struct {
	Kind     GapKind
	Date     string
	Start    time.Time
	End      time.Time
	Minutes  int
	Adjacent []AdjacentPeriod
}

func (g Gap) Duration() time.Duration {
	return g.End.Sub(g.Start)
}
