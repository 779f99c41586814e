package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prodtime/internal/db"
	"github.com/alexanderramin/prodtime/internal/importer"
	"github.com/alexanderramin/prodtime/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	loc      *time.Location
	observer UseCaseObserver
}

// NewImportService creates the session import use case. Timestamps without a
// zone are read in loc.
func NewImportService(uow db.UnitOfWork, loc *time.Location, observers ...UseCaseObserver) ImportService {
	if loc == nil {
		loc = time.Local
	}
	return &importService{uow: uow, loc: loc, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportSessions(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadSessionImport(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSessionsFromSchema(ctx, schema)
}

func (s *importService) ImportSessionsFromSchema(ctx context.Context, schema *importer.SessionImportSchema) (result *ImportResult, err error) {
	fields, done := observe(ctx, s.observer, "import-sessions", &err)
	defer done()

	if errs := importer.ValidateSessionImport(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted := importer.Convert(schema, s.loc, time.Now().UTC())
	fields["records"] = len(converted.Sessions)
	fields["skipped_sessions"] = len(converted.Skipped)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)
		for _, sess := range converted.Sessions {
			if err := sessions.Create(ctx, sess); err != nil {
				return fmt.Errorf("creating session %s: %w", sess.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ImportResult{Imported: len(converted.Sessions), Skipped: converted.Skipped}, nil
}
