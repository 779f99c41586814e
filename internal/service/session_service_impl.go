package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions repository.SessionRepo
}

func NewSessionService(sessions repository.SessionRepo) SessionService {
	return &sessionService{sessions: sessions}
}

// LogSession rejects malformed sessions at the entry point. Analyses still
// skip malformed rows that reach storage by other paths.
func (s *sessionService) LogSession(ctx context.Context, session *domain.ProductionSession) error {
	if err := validateSession(session); err != nil {
		return err
	}
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.TimeSpentMin == 0 {
		session.TimeSpentMin = int(math.Round(session.SpanMinutes()))
	}
	session.CreatedAt = time.Now().UTC()
	return s.sessions.Create(ctx, session)
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.ProductionSession, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) ListRange(ctx context.Context, from, to time.Time) ([]*domain.ProductionSession, error) {
	return s.sessions.ListOverlapping(ctx, from, to)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func validateSession(s *domain.ProductionSession) error {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return &domain.ValidationError{Field: "start_time", Message: "start and end are required"}
	}
	if !s.Valid() {
		return &domain.ValidationError{
			Field:   "end_time",
			Message: fmt.Sprintf("%s must be after start %s", s.EndTime.Format(time.RFC3339), s.StartTime.Format(time.RFC3339)),
		}
	}
	if s.TimeSpentMin < 0 {
		return &domain.ValidationError{Field: "time_spent_min", Message: fmt.Sprintf("must be >= 0, got %d", s.TimeSpentMin)}
	}
	if s.Quantity < 0 {
		return &domain.ValidationError{Field: "quantity", Message: fmt.Sprintf("must be >= 0, got %d", s.Quantity)}
	}
	return nil
}
