package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesDirectoryAndAppliesPragmas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prodtime.db")

	database, err := OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	var mode string
	require.NoError(t, database.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, database.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
	assert.FileExists(t, path)
}

func TestOpenDB_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prodtime.db")

	first, err := OpenDB(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO tasks (id, code, name, created_at) VALUES ('t1', 'PRESS', 'Press', '2024-01-15T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenDB(path)
	require.NoError(t, err)
	defer second.Close()

	var name string
	require.NoError(t, second.QueryRow(`SELECT name FROM tasks WHERE code = 'PRESS'`).Scan(&name))
	assert.Equal(t, "Press", name)
}
