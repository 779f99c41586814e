package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/repository"
)

// snapshot copies repository results into the value slice the accounting
// functions consume.
func snapshot(sessions []*domain.ProductionSession) []domain.ProductionSession {
	out := make([]domain.ProductionSession, len(sessions))
	for i, s := range sessions {
		out[i] = *s
	}
	return out
}

// taskNames loads display names for enrichment. A failed lookup is logged
// and yields an empty index, so every task renders as unknown.
func taskNames(ctx context.Context, tasks repository.TaskRepo, obs UseCaseObserver) domain.TaskNames {
	list, err := tasks.List(ctx)
	if err != nil {
		obs.Warn(ctx, "task lookup failed; using unknown task placeholder", "error", err.Error())
		return domain.TaskNames{}
	}
	return domain.NewTaskNames(list)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
