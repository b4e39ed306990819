package response

import (
	"errors"
	"net/http"

	"github.com/siamhr/payroll-backend-go/internal/domain/attendance"
	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
	"github.com/siamhr/payroll-backend-go/internal/domain/leave"
	"github.com/siamhr/payroll-backend-go/internal/domain/payroll"
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrTaxProfileNotFound):
		NotFound(w, "Tax profile not found")
	case errors.Is(err, employee.ErrInvalidStatus):
		BadRequest(w, "Invalid employee status", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrMissingHeader):
		BadRequest(w, "CSV header must be employee_code, date, check_in, check_out", nil)
	case errors.Is(err, attendance.ErrEmptyImportFile):
		BadRequest(w, "Import file has no data rows", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeCodeExists):
		Conflict(w, "Leave type code already exists")
	case errors.Is(err, leave.ErrRecordNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave record already processed")

	// Company domain errors
	case errors.Is(err, company.ErrWorkRulesNotFound):
		NotFound(w, "Work rules not found")
	case errors.Is(err, company.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, company.ErrHolidayExists):
		Conflict(w, "A holiday already exists on that date")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrPeriodExists):
		Conflict(w, "Payroll period already exists for this month and year")
	case errors.Is(err, payroll.ErrPeriodClosed):
		Conflict(w, "Payroll period is closed")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrItemNotFound):
		NotFound(w, "Payslip item not found")
	case errors.Is(err, payroll.ErrInvalidItemType):
		BadRequest(w, "Item type must be earning or deduction", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
