package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_WritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:   "cost-create",
		Fields: map[string]any{"skipped_sessions": 2, "cost_id": "c1"},
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=cost-create")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "cost_id=c1 skipped_sessions=2")
}

func TestLogUseCaseObserver_ErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "gap-report", Err: errors.New("db locked")})
	obs.Warn(context.Background(), "task metadata unavailable", "error", "boom")

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="db locked"`)
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="task metadata unavailable"`)
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop_FansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}

	assert.Equal(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.Same(t, a, useCaseObserverOrNoop([]UseCaseObserver{nil, a}))

	obs := useCaseObserverOrNoop([]UseCaseObserver{a, b})
	var err error
	_, done := observe(context.Background(), obs, "weekly-trend", &err)
	done()

	assert.Equal(t, "weekly-trend", a.last().Name)
	assert.Equal(t, "weekly-trend", b.last().Name)
}
