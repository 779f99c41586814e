package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/alexanderramin/prodtime/internal/app"
	"github.com/alexanderramin/prodtime/internal/db"
	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type costService struct {
	costs    repository.CostRepo
	analyses repository.CostAnalysisRepo
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	workers  int
	observer UseCaseObserver
	now      func() time.Time
}

// NewCostService creates the cost use cases. workers bounds the number of
// records analyzed concurrently by RecalculateAll.
func NewCostService(
	costs repository.CostRepo,
	analyses repository.CostAnalysisRepo,
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	workers int,
	observers ...UseCaseObserver,
) CostService {
	if workers < 1 {
		workers = 1
	}
	return &costService{
		costs:    costs,
		analyses: analyses,
		sessions: sessions,
		uow:      uow,
		workers:  workers,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *costService) Create(ctx context.Context, c *domain.CostRecord) (view *app.CostView, err error) {
	fields, done := observe(ctx, s.observer, "cost-create", &err)
	defer done()

	c.StartDate = domain.StartOfDay(c.StartDate)
	c.EndDate = domain.StartOfDay(c.EndDate)
	if err = c.Validate(); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	fields["cost_id"] = c.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCostRepo(tx).Create(ctx, c); err != nil {
			return err
		}
		view, err = s.analyzeAndSave(ctx, tx, c, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["effective_minutes"] = view.Analysis.EffectiveMinutes
	fields["skipped_sessions"] = view.Analysis.SkippedSessions
	return view, nil
}

func (s *costService) Update(ctx context.Context, id string, patch domain.CostPatch) (view *app.CostView, err error) {
	fields, done := observe(ctx, s.observer, "cost-update", &err)
	defer done()
	fields["cost_id"] = id

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		costs := repository.NewSQLiteCostRepo(tx)
		c, err := costs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		now := s.now()
		c.ApplyPatch(patch, now)
		if err := c.Validate(); err != nil {
			return err
		}
		if err := costs.Update(ctx, c); err != nil {
			return err
		}
		view, err = s.analyzeAndSave(ctx, tx, c, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["effective_minutes"] = view.Analysis.EffectiveMinutes
	return view, nil
}

func (s *costService) Get(ctx context.Context, id string) (*app.CostView, error) {
	c, err := s.costs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	analysis, err := s.latest(ctx, id)
	if err != nil {
		return nil, err
	}
	return newCostView(c, analysis), nil
}

// List returns every record with its latest snapshot, which may be stale.
func (s *costService) List(ctx context.Context) ([]app.CostView, error) {
	costs, err := s.costs.List(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.analyses.ListLatest(ctx)
	if err != nil {
		return nil, err
	}
	byCost := make(map[string]*domain.CostAnalysis, len(latest))
	for _, a := range latest {
		byCost[a.CostID] = a
	}

	views := make([]app.CostView, 0, len(costs))
	for _, c := range costs {
		views = append(views, *newCostView(c, byCost[c.ID]))
	}
	return views, nil
}

func (s *costService) Delete(ctx context.Context, id string) (err error) {
	fields, done := observe(ctx, s.observer, "cost-delete", &err)
	defer done()
	fields["cost_id"] = id

	return s.costs.Delete(ctx, id)
}

func (s *costService) Recalculate(ctx context.Context, id string) (view *app.CostView, err error) {
	fields, done := observe(ctx, s.observer, "cost-recalculate", &err)
	defer done()
	fields["cost_id"] = id

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		c, err := repository.NewSQLiteCostRepo(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		view, err = s.analyzeAndSave(ctx, tx, c, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["effective_minutes"] = view.Analysis.EffectiveMinutes
	return view, nil
}

// RecalculateAll analyzes every record against one session snapshot. Each
// record's analysis depends only on the record and the snapshot, so the
// analyses run concurrently; all snapshots are then saved in one transaction.
func (s *costService) RecalculateAll(ctx context.Context) (count int, err error) {
	fields, done := observe(ctx, s.observer, "cost-recalculate-all", &err)
	defer done()

	var costs []*domain.CostRecord
	if costs, err = s.costs.List(ctx); err != nil {
		return 0, err
	}
	fields["records"] = len(costs)
	if len(costs) == 0 {
		return 0, nil
	}

	from, to := costs[0].Window()
	for _, c := range costs[1:] {
		cf, ct := c.Window()
		if cf.Before(from) {
			from = cf
		}
		if ct.After(to) {
			to = ct
		}
	}
	var rows []*domain.ProductionSession
	if rows, err = s.sessions.ListOverlapping(ctx, from, to); err != nil {
		return 0, err
	}
	sessions := snapshot(rows)
	now := s.now()

	results := make([]domain.CostAnalysis, len(costs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, c := range costs {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = accounting.AnalyzeCost(c, sessions, now)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return 0, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		analyses := repository.NewSQLiteCostAnalysisRepo(tx)
		for i := range results {
			if err := analyses.Save(ctx, &results[i]); err != nil {
				return fmt.Errorf("saving analysis for %s: %w", results[i].CostID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

func (s *costService) Invalidate(ctx context.Context, id string) (err error) {
	fields, done := observe(ctx, s.observer, "cost-invalidate", &err)
	defer done()
	fields["cost_id"] = id

	if _, err = s.costs.GetByID(ctx, id); err != nil {
		return err
	}
	return s.analyses.DeleteByCost(ctx, id)
}

func (s *costService) History(ctx context.Context, id string) ([]*domain.CostAnalysis, error) {
	if _, err := s.costs.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.analyses.ListVersions(ctx, id)
}

// Effective answers the effective-time question for an ad hoc range without
// touching stored records.
func (s *costService) Effective(ctx context.Context, req app.EffectiveTimeRequest) (res *accounting.EffectiveTimeResult, err error) {
	fields, done := observe(ctx, s.observer, "effective-time", &err)
	defer done()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	var rows []*domain.ProductionSession
	if rows, err = s.sessions.ListOverlapping(ctx, req.From, req.To); err != nil {
		return nil, err
	}
	r := accounting.ComputeEffectiveTime(snapshot(rows), req.From, req.To, req.ExcludedTaskIDs)
	fields["effective_minutes"] = r.EffectiveMinutes
	fields["skipped_sessions"] = r.SkippedSessions
	return &r, nil
}

// Cashflow spreads every cost over calendar months by day proportion. It
// reads no sessions.
func (s *costService) Cashflow(ctx context.Context, req app.CashflowRequest) (resp *app.CashflowResponse, err error) {
	fields, done := observe(ctx, s.observer, "cashflow", &err)
	defer done()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	var costs []*domain.CostRecord
	if costs, err = s.costs.List(ctx); err != nil {
		return nil, err
	}
	fields["records"] = len(costs)

	resp = &app.CashflowResponse{Months: accounting.MonthlyCashflow(costs, req.From, req.To)}
	for _, m := range resp.Months {
		resp.Total += m.Total
		resp.Paid += m.Paid
		resp.Unpaid += m.Unpaid
	}
	return resp, nil
}

func (s *costService) analyzeAndSave(ctx context.Context, tx db.DBTX, c *domain.CostRecord, now time.Time) (*app.CostView, error) {
	from, to := c.Window()
	rows, err := repository.NewSQLiteSessionRepo(tx).ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}
	analysis := accounting.AnalyzeCost(c, snapshot(rows), now)
	if err := repository.NewSQLiteCostAnalysisRepo(tx).Save(ctx, &analysis); err != nil {
		return nil, err
	}
	return &app.CostView{Cost: c, Analysis: &analysis}, nil
}

func (s *costService) latest(ctx context.Context, id string) (*domain.CostAnalysis, error) {
	a, err := s.analyses.GetLatest(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

func newCostView(c *domain.CostRecord, a *domain.CostAnalysis) *app.CostView {
	return &app.CostView{
		Cost:     c,
		Analysis: a,
		Stale:    a == nil || c.UpdatedAt.After(a.LastCalculatedAt),
	}
}
