package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
)

type CreatePeriodRequest struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a reasonable year"})
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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID        string `json:"id"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsClosed  bool   `json:"is_closed"`
}

type RunPayrollRequest struct {
	PeriodID string `json:"period_id"`
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RunPayrollResult reports what one run touched. Skipped counts active
// employees left out because they carry no positive base salary.
type RunPayrollResult struct {
	PeriodID  string `json:"period_id"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
}

type ItemResponse struct {
	ID       string          `json:"id"`
	ItemType string          `json:"item_type"`
	Code     *string         `json:"code,omitempty"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
}

type AddItemRequest struct {
	ItemType string          `json:"item_type"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r *AddItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.ItemType, []string{string(ItemTypeEarning), string(ItemTypeDeduction)}) {
		errs = append(errs, validator.ValidationError{Field: "item_type", Message: "must be earning or deduction"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UnpaidDayDetail names one docked working day and why it was docked:
// unpaid_leave, no_record or absent.
type UnpaidDayDetail struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// UnpaidBreakdown explains how the unpaid-leave deduction on a payslip was
// derived from the period's calendar.
type UnpaidBreakdown struct {
	WorkingDays int               `json:"working_days"`
	UnpaidDays  int               `json:"unpaid_days"`
	DailyRate   decimal.Decimal   `json:"daily_rate"`
	Days        []UnpaidDayDetail `json:"days,omitempty"`
}

type PayslipResponse struct {
	ID             string           `json:"id"`
	EmployeeID     string           `json:"employee_id"`
	EmployeeCode   *string          `json:"employee_code,omitempty"`
	EmployeeName   *string          `json:"employee_name,omitempty"`
	Department     *string          `json:"department,omitempty"`
	PeriodID       string           `json:"period_id"`
	PeriodMonth    *int             `json:"period_month,omitempty"`
	PeriodYear     *int             `json:"period_year,omitempty"`
	GrossIncome    decimal.Decimal  `json:"gross_income"`
	TotalDeduction decimal.Decimal  `json:"total_deduction"`
	NetIncome      decimal.Decimal  `json:"net_income"`
	Items          []ItemResponse   `json:"items,omitempty"`
	Unpaid         *UnpaidBreakdown `json:"unpaid,omitempty"`
}

// PeriodSummary aggregates one period's payslips for the dashboard.
type PeriodSummary struct {
	PeriodID       string          `json:"period_id"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	PayslipCount   int             `json:"payslip_count"`
	GrossIncome    decimal.Decimal `json:"gross_income"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
	NetIncome      decimal.Decimal `json:"net_income"`
	WithholdingTax decimal.Decimal `json:"withholding_tax"`
	SocialSecurity decimal.Decimal `json:"social_security"`
}

// YearSummaryRow is one month's pay for an employee's year view.
type YearSummaryRow struct {
	Month          int             `json:"month"`
	Gross          decimal.Decimal `json:"gross"`
	Deduction      decimal.Decimal `json:"deduction"`
	Net            decimal.Decimal `json:"net"`
	WithholdingTax decimal.Decimal `json:"withholding_tax"`
	SocialSecurity decimal.Decimal `json:"social_security"`
}
