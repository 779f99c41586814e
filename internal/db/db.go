package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// pragmas run on every open, in order.
var pragmas = []struct {
	stmt string
	what string
}{
	{"PRAGMA journal_mode = WAL", "setting WAL mode"},
	{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
	{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
}

// OpenDB opens the prodtime SQLite database at path, creating its directory
// when needed, and brings the schema up to date.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Pragmas are per connection and every connection to ":memory:" is a
	// separate database, so the pool holds a single connection.
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
