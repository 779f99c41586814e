package app

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGapReportRequest_Defaults(t *testing.T) {
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	req := NewGapReportRequest(from, from.AddDate(0, 0, 6))

	assert.Equal(t, domain.DefaultWorkSchedule(), req.Schedule)
	assert.Equal(t, 30, req.MinGapMinutes)
	assert.Nil(t, req.Now)
	assert.NoError(t, req.Validate())
}

func TestGapReportRequest_Validate(t *testing.T) {
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*GapReportRequest)
		code   RequestErrorCode
	}{
		{"inverted range", func(r *GapReportRequest) { r.To = from.AddDate(0, 0, -1) }, ErrInvalidRange},
		{"missing from", func(r *GapReportRequest) { r.From = time.Time{} }, ErrInvalidRange},
		{"start after end hour", func(r *GapReportRequest) { r.Schedule = domain.WorkSchedule{StartHour: 18, EndHour: 8} }, ErrInvalidSchedule},
		{"negative min gap", func(r *GapReportRequest) { r.MinGapMinutes = -1 }, ErrInvalidMinGap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewGapReportRequest(from, from.AddDate(0, 0, 6))
			tt.mutate(&req)

			err := req.Validate()
			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr), "got %v", err)
			assert.Equal(t, tt.code, reqErr.Code)
		})
	}
}

func TestSingleDayRangeIsValid(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, NewGapReportRequest(day, day).Validate())
	assert.NoError(t, CashflowRequest{From: day, To: day}.Validate())
	assert.NoError(t, EffectiveTimeRequest{From: day, To: day}.Validate())
}

func TestTrendRequest_Validate(t *testing.T) {
	a := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, -7)
	assert.NoError(t, TrendRequest{}.Validate())
	assert.NoError(t, TrendRequest{From: &a}.Validate())
	assert.Error(t, TrendRequest{From: &a, To: &b}.Validate())
}
