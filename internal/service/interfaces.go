package service

import (
	"context"
	"time"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/alexanderramin/prodtime/internal/app"
	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/importer"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	// Resolve looks a task up by ID, then by code.
	Resolve(ctx context.Context, ref string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type SessionService interface {
	LogSession(ctx context.Context, s *domain.ProductionSession) error
	GetByID(ctx context.Context, id string) (*domain.ProductionSession, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.ProductionSession, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a session import.
type ImportResult struct {
	Imported int
	Skipped  []importer.SkippedRow
}

type ImportService interface {
	ImportSessions(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSessionsFromSchema(ctx context.Context, schema *importer.SessionImportSchema) (*ImportResult, error)
}

type GapService interface {
	Report(ctx context.Context, req app.GapReportRequest) (*app.GapReportResponse, error)
}

type CostService interface {
	Create(ctx context.Context, c *domain.CostRecord) (*app.CostView, error)
	Update(ctx context.Context, id string, patch domain.CostPatch) (*app.CostView, error)
	Get(ctx context.Context, id string) (*app.CostView, error)
	List(ctx context.Context) ([]app.CostView, error)
	Delete(ctx context.Context, id string) error
	Recalculate(ctx context.Context, id string) (*app.CostView, error)
	RecalculateAll(ctx context.Context) (int, error)
	Invalidate(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]*domain.CostAnalysis, error)
	Effective(ctx context.Context, req app.EffectiveTimeRequest) (*accounting.EffectiveTimeResult, error)
	Cashflow(ctx context.Context, req app.CashflowRequest) (*app.CashflowResponse, error)
}

type TrendService interface {
	Weekly(ctx context.Context, req app.TrendRequest) (*accounting.WeeklyReport, error)
}
