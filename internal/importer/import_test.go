package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleImport = `{
  "sessions": [
    {"id": "s1", "task_id": "t-flange", "start": "2024-01-15T08:00:00Z", "end": "2024-01-15T10:00:00Z", "quantity": 12},
    {"task_id": "t-bracket", "start": 1705312800, "end": 1705316400000, "time_spent_minutes": 45},
    {"id": "bad-end", "start": "2024-01-15T12:00:00Z", "end": "soon"},
    {"id": "inverted", "start": "2024-01-15T14:00:00Z", "end": "2024-01-15T13:00:00Z"},
    {"id": "missing", "end": "2024-01-15T13:00:00Z"}
  ]
}`

func writeImport(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSessionImport(t *testing.T) {
	schema, err := LoadSessionImport(writeImport(t, sampleImport))
	require.NoError(t, err)
	require.Len(t, schema.Sessions, 5)
	assert.Equal(t, "s1", schema.Sessions[0].ID)
	require.NotNil(t, schema.Sessions[0].Quantity)
	assert.Equal(t, 12, *schema.Sessions[0].Quantity)
}

func TestLoadSessionImport_Errors(t *testing.T) {
	_, err := LoadSessionImport(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	_, err = LoadSessionImport(writeImport(t, `{"sessions": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}

func TestValidateSessionImport(t *testing.T) {
	neg := -1
	schema := &SessionImportSchema{Sessions: []SessionImport{
		{ID: "a"},
		{ID: "a"},
		{TimeSpentMinutes: &neg},
		{Quantity: &neg},
	}}
	errs := ValidateSessionImport(schema)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "sessions[1].id")
	assert.Contains(t, errs[1].Error(), "time_spent_minutes")
	assert.Contains(t, errs[2].Error(), "quantity")

	assert.Len(t, ValidateSessionImport(&SessionImportSchema{}), 1)
}

func TestConvert(t *testing.T) {
	schema, err := ParseSessionImport([]byte(sampleImport))
	require.NoError(t, err)
	require.Empty(t, ValidateSessionImport(schema))

	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	res := Convert(schema, time.UTC, now)

	require.Len(t, res.Sessions, 2)
	first := res.Sessions[0]
	assert.Equal(t, "s1", first.ID)
	assert.Equal(t, "t-flange", first.TaskID)
	assert.Equal(t, 120, first.TimeSpentMin, "logged minutes default to the span")
	assert.Equal(t, 12, first.Quantity)
	assert.Equal(t, now, first.CreatedAt)

	second := res.Sessions[1]
	assert.NotEmpty(t, second.ID, "missing ids are generated")
	assert.Equal(t, 45, second.TimeSpentMin)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), second.StartTime)
	assert.Equal(t, time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC), second.EndTime)

	require.Len(t, res.Skipped, 3)
	assert.Equal(t, 2, res.Skipped[0].Index)
	assert.Contains(t, res.Skipped[0].Reason, "end")
	assert.Equal(t, "inverted", res.Skipped[1].ID)
	assert.Contains(t, res.Skipped[2].Reason, "start")
}
