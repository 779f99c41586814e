package service

import (
	"context"
	"time"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/alexanderramin/prodtime/internal/app"
	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/repository"
)

type gapService struct {
	sessions repository.SessionRepo
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewGapService(sessions repository.SessionRepo, tasks repository.TaskRepo, observers ...UseCaseObserver) GapService {
	return &gapService{sessions: sessions, tasks: tasks, observer: useCaseObserverOrNoop(observers)}
}

func (s *gapService) Report(ctx context.Context, req app.GapReportRequest) (resp *app.GapReportResponse, err error) {
	fields, done := observe(ctx, s.observer, "gap-report", &err)
	defer done()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}

	// Days are bucketed by session start, so every session starting inside
	// the date range is needed; the overlap query returns a superset.
	from, to := domain.DateWindow(req.From, req.To)
	var rows []*domain.ProductionSession
	rows, err = s.sessions.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}
	fields["records"] = len(rows)

	report := accounting.AnalyzeGaps(accounting.GapInput{
		Sessions:      snapshot(rows),
		From:          req.From,
		To:            req.To,
		Now:           now,
		Schedule:      req.Schedule,
		MinGapMinutes: req.MinGapMinutes,
		TaskNames:     taskNames(ctx, s.tasks, s.observer),
	})
	fields["gaps"] = report.Summary.GapsCount
	fields["skipped_sessions"] = report.Summary.SkippedSessions

	resp = &app.GapReportResponse{Report: report}
	if report.Period.Days == 0 {
		resp.Warnings = append(resp.Warnings, "no elapsed working days in range")
	}
	if report.Summary.SkippedSessions > 0 {
		resp.Warnings = append(resp.Warnings, "some sessions had unusable timestamps and were skipped")
	}
	return resp, nil
}
