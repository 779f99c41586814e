package accounting

import (
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
)

// EnumerateWorkWindows lists the working window of every business day from
// the date of from through the date of to, inclusive. The last day is clamped
// to the day containing now: only elapsed time is analyzed. Days are computed
// in from's location.
func EnumerateWorkWindows(from, to, now time.Time, sched domain.WorkSchedule) []domain.WorkWindow {
	loc := from.Location()
	first := domain.StartOfDay(from)
	last := domain.StartOfDay(to.In(loc))
	if today := domain.StartOfDay(now.In(loc)); last.After(today) {
		last = today
	}

	var windows []domain.WorkWindow
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !sched.IncludeWeekends && isWeekend(day) {
			continue
		}
		y, m, d := day.Date()
		windows = append(windows, domain.WorkWindow{
			Date:  day,
			Start: time.Date(y, m, d, sched.StartHour, 0, 0, 0, loc),
			End:   time.Date(y, m, d, sched.EndHour, 0, 0, 0, loc),
		})
	}
	return windows
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
