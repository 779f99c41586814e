package accounting

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
)

// monday is 2024-01-15, a Monday.
func clock(day, h, m int) time.Time {
	return time.Date(2024, 1, 15+day, h, m, 0, 0, time.UTC)
}

type sessionOpt func(*domain.ProductionSession)

func onTask(id string) sessionOpt {
	return func(s *domain.ProductionSession) { s.TaskID = id }
}

func withQty(q int) sessionOpt {
	return func(s *domain.ProductionSession) { s.Quantity = q }
}

func withLogged(min int) sessionOpt {
	return func(s *domain.ProductionSession) { s.TimeSpentMin = min }
}

var sessionSeq int

// sess builds a session whose logged minutes default to its span.
func sess(start, end time.Time, opts ...sessionOpt) domain.ProductionSession {
	sessionSeq++
	s := domain.ProductionSession{
		ID:           fmt.Sprintf("s-%d", sessionSeq),
		StartTime:    start,
		EndTime:      end,
		TimeSpentMin: int(end.Sub(start).Minutes()),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
