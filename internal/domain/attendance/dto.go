package attendance

import (
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
)

// RecordManualRequest records or corrects a single day by hand. Status is
// always re-derived from the resolver, never taken from the caller.
type RecordManualRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`  // "HH:MM"
	CheckOut   *string `json:"check_out,omitempty"` // "HH:MM"
	Remark     *string `json:"remark,omitempty"`
}

func (r *RecordManualRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.CheckIn != nil && !validator.IsValidClock(*r.CheckIn) {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be HH:MM (24h)"})
	}
	if r.CheckOut != nil && !validator.IsValidClock(*r.CheckOut) {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be HH:MM (24h)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	Status       string  `json:"status"`
	Source       string  `json:"source"`
	Remark       *string `json:"remark,omitempty"`
}

// ImportRowError reports one rejected CSV row by its line number. Row errors
// never abort the batch.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportReport struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}

// DailyBoardRow is one active employee's resolved status for a single date,
// whether or not a record exists.
type DailyBoardRow struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	Status       string  `json:"status"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	Remark       *string `json:"remark,omitempty"`
}

type DailyBoardResponse struct {
	Date string          `json:"date"`
	Rows []DailyBoardRow `json:"rows"`
}

type MonthDay struct {
	Date   string          `json:"date"`
	Record *RecordResponse `json:"record,omitempty"`
}

type MonthSummaryResponse struct {
	EmployeeID string         `json:"employee_id"`
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Days       []MonthDay     `json:"days"`
	Counts     map[string]int `json:"counts"`
}
