package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/prodtime/internal/app"
	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGapReport_SingleSessionDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task := testutil.NewTestTask("Flange")
	require.NoError(t, f.tasks.Create(ctx, task))
	f.addSessions(t, testutil.NewTestSession(testutil.At(0, 10, 0), testutil.At(0, 11, 0), testutil.WithTask(task.ID)))

	obs := &recordingObserver{}
	svc := NewGapService(f.sessions, f.tasks, obs)

	now := testutil.At(7, 0, 0)
	req := app.NewGapReportRequest(testutil.At(0, 0, 0), testutil.At(0, 0, 0))
	req.Now = &now

	resp, err := svc.Report(ctx, req)
	require.NoError(t, err)

	r := resp.Report
	require.Len(t, r.Gaps, 2)
	assert.Equal(t, domain.GapBeforeFirst, r.Gaps[0].Kind)
	assert.Equal(t, 240, r.Gaps[0].Minutes)
	assert.Equal(t, domain.GapAfterLast, r.Gaps[1].Kind)
	assert.Equal(t, 660, r.Gaps[1].Minutes)
	assert.Equal(t, 6, r.DailyAnalysis["2024-01-15"].Coverage)

	require.NotEmpty(t, r.Gaps[0].Adjacent)
	assert.Equal(t, "Flange", r.Gaps[0].Adjacent[0].Sessions[0].TaskName)

	ev := obs.last()
	assert.Equal(t, "gap-report", ev.Name)
	assert.True(t, ev.Success())
	assert.Equal(t, 1, ev.Fields["records"])
	assert.Empty(t, obs.warnings)
}

func TestGapReport_SessionStartingBeforeRangeIsBucketedOnItsOwnDay(t *testing.T) {
	f := newFixture(t)
	// Sunday 23:00 to Monday 01:00 overlaps Monday but belongs to Sunday.
	f.addSessions(t, testutil.NewTestSession(testutil.At(-1, 23, 0), testutil.At(0, 1, 0)))

	svc := NewGapService(f.sessions, f.tasks)
	now := testutil.At(7, 0, 0)
	req := app.NewGapReportRequest(testutil.At(0, 0, 0), testutil.At(0, 0, 0))
	req.Now = &now

	resp, err := svc.Report(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Report.Gaps, 1)
	assert.Equal(t, domain.GapFullDay, resp.Report.Gaps[0].Kind)
}

func TestGapReport_TaskLookupFailureDegradesToUnknown(t *testing.T) {
	f := newFixture(t)
	f.addSessions(t, testutil.NewTestSession(testutil.At(0, 10, 0), testutil.At(0, 11, 0), testutil.WithTask("t-1")))

	obs := &recordingObserver{}
	svc := NewGapService(f.sessions, failingTaskRepo{}, obs)
	now := testutil.At(7, 0, 0)
	req := app.NewGapReportRequest(testutil.At(0, 0, 0), testutil.At(0, 0, 0))
	req.Now = &now

	resp, err := svc.Report(context.Background(), req)
	require.NoError(t, err, "enrichment failure must not block the report")
	assert.Equal(t, 60, resp.Report.Summary.TotalProductionMinutes)
	assert.Equal(t, domain.UnknownTaskName, resp.Report.Gaps[0].Adjacent[0].Sessions[0].TaskName)
	assert.Len(t, obs.warnings, 1)
}

func TestGapReport_FutureRangeWarns(t *testing.T) {
	f := newFixture(t)
	svc := NewGapService(f.sessions, f.tasks)

	now := testutil.At(0, 12, 0)
	req := app.NewGapReportRequest(testutil.At(3, 0, 0), testutil.At(4, 0, 0))
	req.Now = &now

	resp, err := svc.Report(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, resp.Report.Period.Days)
	assert.Empty(t, resp.Report.Gaps)
	assert.NotEmpty(t, resp.Warnings)
}

func TestGapReport_InvalidRequest(t *testing.T) {
	f := newFixture(t)
	obs := &recordingObserver{}
	svc := NewGapService(f.sessions, f.tasks, obs)

	req := app.NewGapReportRequest(testutil.At(3, 0, 0), testutil.At(0, 0, 0))
	_, err := svc.Report(context.Background(), req)

	var reqErr *app.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, app.ErrInvalidRange, reqErr.Code)
	assert.False(t, obs.last().Success())
}
