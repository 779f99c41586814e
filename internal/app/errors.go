package app

import "time"

type RequestErrorCode string

const (
	ErrInvalidRange    RequestErrorCode = "INVALID_RANGE"
	ErrInvalidSchedule RequestErrorCode = "INVALID_SCHEDULE"
	ErrInvalidMinGap   RequestErrorCode = "INVALID_MIN_GAP"
)

// RequestError reports a request rejected before any data is read.
type RequestError struct {
	Code    RequestErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return &RequestError{Code: ErrInvalidRange, Message: "from and to are required"}
	}
	if to.Before(from) {
		return &RequestError{Code: ErrInvalidRange, Message: "to must not be before from"}
	}
	return nil
}
