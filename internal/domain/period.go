package domain

import "time"

// TimeSpan is a half-open extent tied to the session it came from.
type TimeSpan struct {
	Start   time.Time
	End     time.Time
	Session ProductionSession
}

// Duration returns End-Start, which may be negative for malformed spans.
func (t TimeSpan) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// MergedPeriod is a maximal span formed by coalescing overlapping or touching
// sessions. Sources keep the order in which sessions were merged in.
type MergedPeriod struct {
	Start   time.Time
	End     time.Time
	Sources []ProductionSession
}

func (p MergedPeriod) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

func (p MergedPeriod) Minutes() float64 {
	return p.Duration().Minutes()
}

// Clip returns the part of the period inside [from, to], or zero when the
// period lies outside it.
func (p MergedPeriod) Clip(from, to time.Time) time.Duration {
	start := p.Start
	if from.After(start) {
		start = from
	}
	end := p.End
	if to.Before(end) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
