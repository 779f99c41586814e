package accounting

import (
	"testing"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMergeSessions_OverlappingSameDay(t *testing.T) {
	a := sess(clock(0, 9, 0), clock(0, 10, 0))
	b := sess(clock(0, 9, 30), clock(0, 11, 0))

	res := MergeSessions([]domain.ProductionSession{a, b})

	require.Len(t, res.Periods, 1)
	assert.Equal(t, clock(0, 9, 0), res.Periods[0].Start)
	assert.Equal(t, clock(0, 11, 0), res.Periods[0].End)
	assert.Equal(t, 120.0, res.Periods[0].Minutes())
	assert.Equal(t, 1, res.DuplicatesEliminated())
	assert.Equal(t, []string{a.ID, b.ID}, sourceIDs(res.Periods[0]))
}

func TestMergeSessions_TouchingSpansAreMerged(t *testing.T) {
	a := sess(clock(0, 9, 0), clock(0, 10, 0))
	b := sess(clock(0, 10, 0), clock(0, 11, 0))

	res := MergeSessions([]domain.ProductionSession{b, a})

	require.Len(t, res.Periods, 1)
	assert.Equal(t, clock(0, 9, 0), res.Periods[0].Start)
	assert.Equal(t, clock(0, 11, 0), res.Periods[0].End)
}

func TestMergeSessions_ContainedSpanDoesNotShrinkPeriod(t *testing.T) {
	outer := sess(clock(0, 8, 0), clock(0, 12, 0))
	inner := sess(clock(0, 9, 0), clock(0, 10, 0))

	res := MergeSessions([]domain.ProductionSession{outer, inner})

	require.Len(t, res.Periods, 1)
	assert.Equal(t, clock(0, 12, 0), res.Periods[0].End)
}

func TestMergeSessions_DisjointSpansStaySeparate(t *testing.T) {
	a := sess(clock(0, 13, 0), clock(0, 14, 0))
	b := sess(clock(0, 9, 0), clock(0, 10, 0))

	res := MergeSessions([]domain.ProductionSession{a, b})

	require.Len(t, res.Periods, 2)
	assert.Equal(t, b.ID, res.Periods[0].Sources[0].ID, "periods are ordered by start")
	assert.Equal(t, a.ID, res.Periods[1].Sources[0].ID)
	assert.Equal(t, 0, res.DuplicatesEliminated())
}

func TestMergeSessions_SkipsMalformed(t *testing.T) {
	good := sess(clock(0, 9, 0), clock(0, 10, 0))
	inverted := sess(clock(0, 11, 0), clock(0, 10, 0))
	empty := sess(clock(0, 12, 0), clock(0, 12, 0))
	missing := domain.ProductionSession{ID: "missing", EndTime: clock(0, 12, 0)}

	res := MergeSessions([]domain.ProductionSession{good, inverted, empty, missing})

	assert.Equal(t, 3, res.Skipped)
	assert.Equal(t, 1, res.Merged)
	require.Len(t, res.Periods, 1)
}

func TestMergeSessions_EqualStartsKeepInputOrder(t *testing.T) {
	a := sess(clock(0, 9, 0), clock(0, 9, 30))
	b := sess(clock(0, 9, 0), clock(0, 10, 0))
	c := sess(clock(0, 9, 0), clock(0, 9, 15))

	res := MergeSessions([]domain.ProductionSession{a, b, c})

	require.Len(t, res.Periods, 1)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, sourceIDs(res.Periods[0]))
}

func TestMergeSpans_Empty(t *testing.T) {
	res := MergeSpans(nil)
	assert.Empty(t, res.Periods)
	assert.Zero(t, res.TotalMinutes())
}

// TestMergeSpans_Invariants checks ordering, strict separation and the
// duration bound over arbitrary inputs, including malformed spans.
func TestMergeSpans_Invariants(t *testing.T) {
	base := clock(0, 0, 0)
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 25).Draw(rt, "n")
		spans := make([]domain.TimeSpan, n)
		for i := range spans {
			start := base.Add(time.Duration(rapid.IntRange(0, 600).Draw(rt, "start")) * time.Minute)
			length := time.Duration(rapid.IntRange(-10, 120).Draw(rt, "length")) * time.Minute
			spans[i] = domain.TimeSpan{Start: start, End: start.Add(length)}
		}

		res := MergeSpans(spans)

		var valid []domain.TimeSpan
		var inputTotal time.Duration
		for _, s := range spans {
			if s.Start.Before(s.End) {
				valid = append(valid, s)
				inputTotal += s.Duration()
			}
		}
		assert.Equal(rt, len(spans), res.Merged+res.Skipped)
		assert.Equal(rt, len(valid), res.Merged)

		var mergedTotal time.Duration
		for i, p := range res.Periods {
			mergedTotal += p.Duration()
			if i > 0 {
				assert.True(rt, p.Start.After(res.Periods[i-1].End), "period %d must start strictly after the previous end", i)
			}
		}
		assert.LessOrEqual(rt, mergedTotal, inputTotal)

		for _, s := range valid {
			containing := 0
			for _, p := range res.Periods {
				if !s.Start.Before(p.Start) && !s.End.After(p.End) {
					containing++
				}
			}
			assert.Equal(rt, 1, containing, "every span lies in exactly one period")
		}

		// Touching spans merge without losing length, so only a positive
		// intersection makes the merged total shorter.
		assert.Equal(rt, !anyOverlap(valid), mergedTotal == inputTotal)
	})
}

func anyOverlap(spans []domain.TimeSpan) bool {
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].Start.Before(spans[j].End) && spans[j].Start.Before(spans[i].End) {
				return true
			}
		}
	}
	return false
}

func sourceIDs(p domain.MergedPeriod) []string {
	ids := make([]string, len(p.Sources))
	for i, s := range p.Sources {
		ids[i] = s.ID
	}
	return ids
}
