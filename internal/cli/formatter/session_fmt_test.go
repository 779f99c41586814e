package formatter

import (
	"testing"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/importer"
	"github.com/alexanderramin/prodtime/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatTaskList(t *testing.T) {
	task := testutil.NewTestTask("Press line", testutil.WithTaskCode("PRESS"))
	out := stripANSI(FormatTaskList([]*domain.Task{task}))

	assert.Contains(t, out, "PRESS")
	assert.Contains(t, out, "Press line")
	assert.Contains(t, stripANSI(FormatTaskList(nil)), "No tasks.")
}

func TestFormatSessionList_ResolvesNamesAndTotals(t *testing.T) {
	known := testutil.NewTestSession(testutil.At(0, 8, 0), testutil.At(0, 9, 30),
		testutil.WithTask("t-press"), testutil.WithQuantity(12), testutil.WithNote("first shift"))
	orphan := testutil.NewTestSession(testutil.At(0, 10, 0), testutil.At(0, 10, 30),
		testutil.WithTask("t-gone"), testutil.WithQuantity(3))

	out := stripANSI(FormatSessionList([]*domain.ProductionSession{known, orphan}, domain.TaskNames{"t-press": "Press line"}))

	assert.Contains(t, out, "2024-01-15 08:00")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "Press line")
	assert.Contains(t, out, domain.UnknownTaskName)
	assert.Contains(t, out, "first shift")
	assert.Contains(t, out, "2 sessions, 2h logged, 15 units")
}

func TestFormatImportResult(t *testing.T) {
	out := stripANSI(FormatImportResult(4, nil))
	assert.Contains(t, out, "Imported 4 sessions.")
	assert.NotContains(t, out, "Skipped")

	out = stripANSI(FormatImportResult(1, []importer.SkippedRow{{Index: 2, Reason: "end before start"}}))
	assert.Contains(t, out, "Skipped 1 rows")
	assert.Contains(t, out, "end before start")
}
