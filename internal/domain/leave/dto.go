package leave

import (
	"github.com/shopspring/decimal"
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	MaxDaysPerYear *decimal.Decimal `json:"max_days_per_year,omitempty"`
	IsPaid         *bool            `json:"is_paid,omitempty"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.MaxDaysPerYear != nil && r.MaxDaysPerYear.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "max_days_per_year", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveTypeResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	MaxDaysPerYear decimal.Decimal `json:"max_days_per_year"`
	IsPaid         bool            `json:"is_paid"`
}

type CreateRecordRequest struct {
	EmployeeID  string           `json:"employee_id"`
	LeaveTypeID string           `json:"leave_type_id"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Days        *decimal.Decimal `json:"days,omitempty"`
	Reason      *string          `json:"reason,omitempty"`
	// Status defaults to pending; HR-entered records are typically submitted
	// as approved directly.
	Status *string `json:"status,omitempty"`
}

func (r *CreateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "is required"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if r.Days != nil && !r.Days.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be positive"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be pending, approved or rejected"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeCode  *string         `json:"employee_code,omitempty"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName *string         `json:"leave_type_name,omitempty"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Days          decimal.Decimal `json:"days"`
	Reason        *string         `json:"reason,omitempty"`
	Status        string          `json:"status"`
}

type RecordFilter struct {
	EmployeeID *string
	Status     *RecordStatus
	Year       *int
	Limit      int
}
