package app

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/alexanderramin/prodtime/internal/domain"
)

const DefaultMinGapMinutes = 30

type GapReportRequest struct {
	From          time.Time
	To            time.Time
	Now           *time.Time
	Schedule      domain.WorkSchedule
	MinGapMinutes int
}

func NewGapReportRequest(from, to time.Time) GapReportRequest {
	return GapReportRequest{
		From:          from,
		To:            to,
		Schedule:      domain.DefaultWorkSchedule(),
		MinGapMinutes: DefaultMinGapMinutes,
	}
}

func (r GapReportRequest) Validate() error {
	if err := validateRange(r.From, r.To); err != nil {
		return err
	}
	if err := r.Schedule.Validate(); err != nil {
		return &RequestError{Code: ErrInvalidSchedule, Message: err.Error()}
	}
	if r.MinGapMinutes < 0 {
		return &RequestError{Code: ErrInvalidMinGap, Message: fmt.Sprintf("min gap must be >= 0, got %d", r.MinGapMinutes)}
	}
	return nil
}

type GapReportResponse struct {
	Report   accounting.GapReport
	Warnings []string
}
