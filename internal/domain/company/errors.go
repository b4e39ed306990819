package company

import "errors"

var (
	ErrWorkRulesNotFound = errors.New("work rules not found")
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayExists     = errors.New("holiday already exists for this date")
)
