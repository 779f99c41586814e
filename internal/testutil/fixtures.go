package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/google/uuid"
)

var testTaskCodeCounter atomic.Int64

// Monday is a fixed reference week start used across fixtures.
var Monday = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

// At returns Monday plus the given day offset, hour and minute.
func At(day, hour, minute int) time.Time {
	return Monday.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// Date returns UTC midnight of the given calendar day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskCode(code string) TaskOption {
	return func(t *domain.Task) {
		t.Code = code
	}
}

func NewTestTask(name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		Code:      fmt.Sprintf("T%03d", testTaskCodeCounter.Add(1)),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Session options
type SessionOption func(*domain.ProductionSession)

func WithTask(taskID string) SessionOption {
	return func(s *domain.ProductionSession) {
		s.TaskID = taskID
	}
}

func WithQuantity(q int) SessionOption {
	return func(s *domain.ProductionSession) {
		s.Quantity = q
	}
}

func WithTimeSpent(min int) SessionOption {
	return func(s *domain.ProductionSession) {
		s.TimeSpentMin = min
	}
}

func WithNote(n string) SessionOption {
	return func(s *domain.ProductionSession) {
		s.Note = n
	}
}

// NewTestSession builds a session spanning [start, end). Logged minutes
// default to the span.
func NewTestSession(start, end time.Time, opts ...SessionOption) *domain.ProductionSession {
	s := &domain.ProductionSession{
		ID:           uuid.New().String(),
		StartTime:    start,
		EndTime:      end,
		TimeSpentMin: int(end.Sub(start).Minutes()),
		CreatedAt:    time.Now().UTC(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Cost options
type CostOption func(*domain.CostRecord)

func WithExcludedTasks(ids ...string) CostOption {
	return func(c *domain.CostRecord) {
		c.ExcludedTaskIDs = ids
	}
}

func WithPaid(paid bool) CostOption {
	return func(c *domain.CostRecord) {
		c.IsPaid = paid
	}
}

func WithDescription(d string) CostOption {
	return func(c *domain.CostRecord) {
		c.Description = d
	}
}

// NewTestCost builds a cost over the inclusive date range [start, end].
func NewTestCost(start, end time.Time, amount float64, opts ...CostOption) *domain.CostRecord {
	now := time.Now().UTC()
	c := &domain.CostRecord{
		ID:        uuid.New().String(),
		StartDate: domain.StartOfDay(start),
		EndDate:   domain.StartOfDay(end),
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}
