package accounting

import (
	"testing"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ymd(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProportionalAmount(t *testing.T) {
	january := &domain.CostRecord{StartDate: ymd(2024, 1, 1), EndDate: ymd(2024, 1, 31), Amount: 3100}

	cases := []struct {
		name     string
		from, to time.Time
		want     float64
	}{
		{"first ten days", ymd(2024, 1, 1), ymd(2024, 1, 10), 1000},
		{"whole range", ymd(2024, 1, 1), ymd(2024, 1, 31), 3100},
		{"report wider than cost", ymd(2023, 12, 1), ymd(2024, 3, 31), 3100},
		{"straddles start", ymd(2023, 12, 25), ymd(2024, 1, 2), 200},
		{"disjoint", ymd(2024, 2, 1), ymd(2024, 2, 29), 0},
		{"single day", ymd(2024, 1, 15), ymd(2024, 1, 15), 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ProportionalAmount(january, tc.from, tc.to), 1e-9)
		})
	}
}

func TestProportionalAmount_CountsCalendarDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, ny) }
	march := &domain.CostRecord{StartDate: day(3, 1), EndDate: day(3, 31), Amount: 3100}

	assert.InDelta(t, 1000, ProportionalAmount(march, day(3, 1), day(3, 10)), 1e-9)
	assert.InDelta(t, 100, ProportionalAmount(march, day(3, 10), day(3, 10)), 1e-9, "the 23-hour day still counts as one")
	assert.InDelta(t, 3100, ProportionalAmount(march, day(2, 1), day(4, 30)), 1e-9)

	november := &domain.CostRecord{StartDate: day(11, 1), EndDate: day(11, 30), Amount: 3000}
	assert.InDelta(t, 100, ProportionalAmount(november, day(11, 3), day(11, 3)), 1e-9, "the 25-hour day still counts as one")
}

func TestProportionalAmount_IgnoresSessionsAndExclusions(t *testing.T) {
	rec := &domain.CostRecord{StartDate: ymd(2024, 1, 1), EndDate: ymd(2024, 1, 31), Amount: 3100, ExcludedTaskIDs: []string{"t-1"}}
	assert.InDelta(t, 1000, ProportionalAmount(rec, ymd(2024, 1, 1), ymd(2024, 1, 10)), 1e-9)
}

func TestProportionalAmount_DegenerateRangeReturnsFullAmount(t *testing.T) {
	rec := &domain.CostRecord{StartDate: ymd(2024, 1, 10), EndDate: ymd(2024, 1, 1), Amount: 500}
	assert.Equal(t, 500.0, ProportionalAmount(rec, ymd(2024, 1, 1), ymd(2024, 1, 5)))
}

func TestMonthlyCashflow_SplitsAcrossMonths(t *testing.T) {
	costs := []*domain.CostRecord{
		{ID: "rent", StartDate: ymd(2024, 1, 16), EndDate: ymd(2024, 2, 14), Amount: 3000, IsPaid: true},
		{ID: "power", StartDate: ymd(2024, 2, 1), EndDate: ymd(2024, 2, 29), Amount: 290},
	}

	months := MonthlyCashflow(costs, ymd(2024, 1, 1), ymd(2024, 2, 29))

	require.Len(t, months, 2)
	jan, feb := months[0], months[1]
	assert.Equal(t, "2024-01", jan.Month)
	assert.Equal(t, ymd(2024, 1, 31), jan.To)
	require.Len(t, jan.Lines, 1)
	assert.InDelta(t, 1600, jan.Total, 1e-9) // 16 of 30 days
	assert.InDelta(t, 1600, jan.Paid, 1e-9)

	assert.Equal(t, "2024-02", feb.Month)
	require.Len(t, feb.Lines, 2)
	assert.InDelta(t, 1400, feb.Paid, 1e-9)
	assert.InDelta(t, 290, feb.Unpaid, 1e-9)
	assert.InDelta(t, 1690, feb.Total, 1e-9)
}

func TestMonthlyCashflow_ClipsPartialMonths(t *testing.T) {
	costs := []*domain.CostRecord{{ID: "c", StartDate: ymd(2024, 3, 1), EndDate: ymd(2024, 3, 31), Amount: 310}}

	months := MonthlyCashflow(costs, ymd(2024, 3, 11), ymd(2024, 3, 20))

	require.Len(t, months, 1)
	assert.Equal(t, ymd(2024, 3, 11), months[0].From)
	assert.Equal(t, ymd(2024, 3, 20), months[0].To)
	assert.InDelta(t, 100, months[0].Total, 1e-9)
}

func TestMonthlyCashflow_InvertedRange(t *testing.T) {
	assert.Nil(t, MonthlyCashflow(nil, ymd(2024, 3, 1), ymd(2024, 2, 1)))
}
