package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByCode(ctx context.Context, code string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// SessionRepo stores production sessions. ListOverlapping selects sessions
// whose span touches [from, to] with inclusive bounds on both ends;
// ListStartingBetween selects sessions starting in [from, to).
type SessionRepo interface {
	Create(ctx context.Context, s *domain.ProductionSession) error
	GetByID(ctx context.Context, id string) (*domain.ProductionSession, error)
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.ProductionSession, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.ProductionSession, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.ProductionSession, error)
	ListAll(ctx context.Context) ([]*domain.ProductionSession, error)
	Delete(ctx context.Context, id string) error
}

type CostRepo interface {
	Create(ctx context.Context, c *domain.CostRecord) error
	GetByID(ctx context.Context, id string) (*domain.CostRecord, error)
	List(ctx context.Context) ([]*domain.CostRecord, error)
	Update(ctx context.Context, c *domain.CostRecord) error
	Delete(ctx context.Context, id string) error
}

// CostAnalysisRepo keeps versioned analysis snapshots per cost record.
// Save assigns the next version; older versions are retained.
type CostAnalysisRepo interface {
	Save(ctx context.Context, a *domain.CostAnalysis) error
	GetLatest(ctx context.Context, costID string) (*domain.CostAnalysis, error)
	ListLatest(ctx context.Context) ([]*domain.CostAnalysis, error)
	ListVersions(ctx context.Context, costID string) ([]*domain.CostAnalysis, error)
	DeleteByCost(ctx context.Context, costID string) error
}
