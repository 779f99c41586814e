package service

import (
	"context"
	"time"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/alexanderramin/prodtime/internal/app"
	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/repository"
)

type trendService struct {
	sessions repository.SessionRepo
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewTrendService(sessions repository.SessionRepo, tasks repository.TaskRepo, observers ...UseCaseObserver) TrendService {
	return &trendService{sessions: sessions, tasks: tasks, observer: useCaseObserverOrNoop(observers)}
}

func (s *trendService) Weekly(ctx context.Context, req app.TrendRequest) (report *accounting.WeeklyReport, err error) {
	fields, done := observe(ctx, s.observer, "weekly-trend", &err)
	defer done()

	if err = req.Validate(); err != nil {
		return nil, err
	}

	var rows []*domain.ProductionSession
	if req.From == nil && req.To == nil {
		rows, err = s.sessions.ListAll(ctx)
	} else {
		rows, err = s.listBounded(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	fields["records"] = len(rows)

	r := accounting.AnalyzeWeekly(snapshot(rows), taskNames(ctx, s.tasks, s.observer))
	fields["weeks"] = len(r.Weeks)
	fields["skipped_sessions"] = r.SkippedSessions
	return &r, nil
}

// listBounded keeps sessions starting inside the inclusive date bounds, so a
// session is counted in exactly one week.
func (s *trendService) listBounded(ctx context.Context, req app.TrendRequest) ([]*domain.ProductionSession, error) {
	var from, to time.Time
	if req.From != nil {
		from = domain.StartOfDay(*req.From)
	}
	if req.To != nil {
		to = domain.StartOfDay(*req.To).AddDate(0, 0, 1)
	}
	return s.sessions.ListStartingBetween(ctx, from, to)
}
