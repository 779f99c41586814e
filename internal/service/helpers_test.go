package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/repository"
	"github.com/alexanderramin/prodtime/internal/testutil"
)

// recordingObserver keeps every event and warning for assertions.
type recordingObserver struct {
	mu       sync.Mutex
	events   []UseCaseEvent
	warnings []string
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) Warn(_ context.Context, msg string, _ ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, msg)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

// failingTaskRepo simulates an unavailable task metadata source.
type failingTaskRepo struct{ repository.TaskRepo }

func (failingTaskRepo) List(context.Context) ([]*domain.Task, error) {
	return nil, errors.New("task store offline")
}

type fixture struct {
	db       *sql.DB
	tasks    *repository.SQLiteTaskRepo
	sessions *repository.SQLiteSessionRepo
	costs    *repository.SQLiteCostRepo
	analyses *repository.SQLiteCostAnalysisRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return fixture{
		db:       database,
		tasks:    repository.NewSQLiteTaskRepo(database),
		sessions: repository.NewSQLiteSessionRepo(database),
		costs:    repository.NewSQLiteCostRepo(database),
		analyses: repository.NewSQLiteCostAnalysisRepo(database),
	}
}

func (f fixture) addSessions(t *testing.T, sessions ...*domain.ProductionSession) {
	t.Helper()
	for _, s := range sessions {
		if err := f.sessions.Create(context.Background(), s); err != nil {
			t.Fatalf("creating session: %v", err)
		}
	}
}
