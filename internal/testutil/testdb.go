package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/prodtime/internal/db"
)

// NewTestDB returns a migrated in-memory database that is closed when the
// test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
