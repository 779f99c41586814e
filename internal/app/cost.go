package app

import (
	"time"

	"github.com/alexanderramin/prodtime/internal/accounting"
	"github.com/alexanderramin/prodtime/internal/domain"
)

// EffectiveTimeRequest asks for effective production time over an instant
// range, independent of any stored cost record.
type EffectiveTimeRequest struct {
	From            time.Time
	To              time.Time
	ExcludedTaskIDs []string
}

func (r EffectiveTimeRequest) Validate() error {
	return validateRange(r.From, r.To)
}

// CostView pairs a cost record with its latest analysis. Stale is set when
// no analysis exists or the record changed after the last calculation.
type CostView struct {
	Cost     *domain.CostRecord
	Analysis *domain.CostAnalysis
	Stale    bool
}

type CashflowRequest struct {
	From time.Time
	To   time.Time
}

func (r CashflowRequest) Validate() error {
	return validateRange(r.From, r.To)
}

type CashflowResponse struct {
	Months []accounting.CashflowMonth
	Total  float64
	Paid   float64
	Unpaid float64
}
