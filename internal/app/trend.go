package app

import "time"

// TrendRequest bounds the weekly trend analysis. Nil bounds include all
// recorded sessions on that side.
type TrendRequest struct {
	From *time.Time
	To   *time.Time
}

func (r TrendRequest) Validate() error {
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return &RequestError{Code: ErrInvalidRange, Message: "to must not be before from"}
	}
	return nil
}
