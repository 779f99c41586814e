package formatter

import (
	"testing"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func testGapReport() accounting.GapReport {
	press := testutil.NewTestSession(testutil.At(0, 8, 0), testutil.At(0, 10, 0), testutil.WithTask("t-press"))
	weld := testutil.NewTestSession(testutil.At(0, 12, 0), testutil.At(0, 22, 0), testutil.WithTask("t-weld"))
	return accounting.AnalyzeGaps(accounting.GapInput{
		Sessions:      []domain.ProductionSession{*press, *weld},
		From:          testutil.Monday,
		To:            testutil.At(1, 0, 0),
		Now:           testutil.At(7, 0, 0),
		Schedule:      domain.DefaultWorkSchedule(),
		MinGapMinutes: 30,
		TaskNames:     domain.TaskNames{"t-press": "Press line", "t-weld": "Welding"},
	})
}

func TestFormatGapReport_Summary(t *testing.T) {
	out := stripANSI(FormatGapReport(testGapReport(), nil))

	assert.Contains(t, out, "PRODUCTION GAPS")
	assert.Contains(t, out, "2024-01-15 → 2024-01-16")
	assert.Contains(t, out, "06:00–22:00 weekdays, min gap 30m")
	assert.Contains(t, out, "12h of 32h")
	assert.Contains(t, out, "3 on 2 days, 1 days without production")
}

func TestFormatGapReport_DailyAndGapTables(t *testing.T) {
	out := stripANSI(FormatGapReport(testGapReport(), nil))

	assert.Contains(t, out, "DAILY COVERAGE")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "0%")
	assert.Contains(t, out, "before first")
	assert.Contains(t, out, "full day")
	assert.Contains(t, out, "Press line, Welding")
}

func TestFormatGapReport_Recommendations(t *testing.T) {
	out := stripANSI(FormatGapReport(testGapReport(), nil))

	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "● HIGH")
	assert.Contains(t, out, "1 working day(s) without any logged production")
}

func TestFormatGapReport_WarningsAndEmptyRange(t *testing.T) {
	empty := accounting.AnalyzeGaps(accounting.GapInput{
		From:     testutil.At(5, 0, 0),
		To:       testutil.At(6, 0, 0),
		Now:      testutil.At(7, 0, 0),
		Schedule: domain.DefaultWorkSchedule(),
	})

	out := stripANSI(FormatGapReport(empty, []string{"range contains no business days"}))
	assert.Contains(t, out, "! range contains no business days")
	assert.Contains(t, out, "No business days in range.")
}
