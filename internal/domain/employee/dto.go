package employee

import (
	"github.com/shopspring/decimal"
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code          string           `json:"code"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Position      *string          `json:"position,omitempty"`
	Department    *string          `json:"department,omitempty"`
	PhoneNumber   *string          `json:"phone_number,omitempty"`
	Address       *string          `json:"address,omitempty"`
	CitizenID     *string          `json:"citizen_id,omitempty"`
	HireDate      *string          `json:"hire_date,omitempty"`
	Status        *string          `json:"status,omitempty"`
	BaseSalary    *decimal.Decimal `json:"base_salary,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	BankAccountNo *string          `json:"bank_account_no,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'inactive'"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID            string           `json:"-"`
	FirstName     *string          `json:"first_name,omitempty"`
	LastName      *string          `json:"last_name,omitempty"`
	Position      *string          `json:"position,omitempty"`
	Department    *string          `json:"department,omitempty"`
	PhoneNumber   *string          `json:"phone_number,omitempty"`
	Address       *string          `json:"address,omitempty"`
	CitizenID     *string          `json:"citizen_id,omitempty"`
	HireDate      *string          `json:"hire_date,omitempty"`
	BaseSalary    *decimal.Decimal `json:"base_salary,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	BankAccountNo *string          `json:"bank_account_no,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	if !validator.IsInSlice(r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		return validator.ValidationErrors{{Field: "status", Message: "must be 'active' or 'inactive'"}}
	}
	return nil
}

type EmployeeFilter struct {
	Query      string
	Status     *Status
	Department *string
}

type EmployeeResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Position      *string         `json:"position,omitempty"`
	Department    *string         `json:"department,omitempty"`
	PhoneNumber   *string         `json:"phone_number,omitempty"`
	Address       *string         `json:"address,omitempty"`
	CitizenID     *string         `json:"citizen_id,omitempty"`
	HireDate      *string         `json:"hire_date,omitempty"`
	Status        string          `json:"status"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	BankName      *string         `json:"bank_name,omitempty"`
	BankAccountNo *string         `json:"bank_account_no,omitempty"`
}

type UpsertTaxProfileRequest struct {
	EmployeeID         string           `json:"-"`
	IsMarried          bool             `json:"is_married"`
	SpouseHasIncome    bool             `json:"spouse_has_income"`
	ChildrenCount      int              `json:"children_count"`
	InsuranceDeduction *decimal.Decimal `json:"insurance_deduction,omitempty"`
	ProvidentFund      *decimal.Decimal `json:"provident_fund,omitempty"`
	HomeLoanInterest   *decimal.Decimal `json:"home_loan_interest,omitempty"`
	OtherDeduction     *decimal.Decimal `json:"other_deduction,omitempty"`
}

func (r *UpsertTaxProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ChildrenCount < 0 {
		errs = append(errs, validator.ValidationError{Field: "children_count", Message: "must be non-negative"})
	}
	for field, amount := range map[string]*decimal.Decimal{
		"insurance_deduction": r.InsuranceDeduction,
		"provident_fund":      r.ProvidentFund,
		"home_loan_interest":  r.HomeLoanInterest,
		"other_deduction":     r.OtherDeduction,
	} {
		if amount != nil && amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaxProfileResponse struct {
	EmployeeID         string          `json:"employee_id"`
	IsMarried          bool            `json:"is_married"`
	SpouseHasIncome    bool            `json:"spouse_has_income"`
	ChildrenCount      int             `json:"children_count"`
	InsuranceDeduction decimal.Decimal `json:"insurance_deduction"`
	ProvidentFund      decimal.Decimal `json:"provident_fund"`
	HomeLoanInterest   decimal.Decimal `json:"home_loan_interest"`
	OtherDeduction     decimal.Decimal `json:"other_deduction"`
	AllowanceTotal     decimal.Decimal `json:"allowance_total"`
}

// ImportRowError reports one rejected CSV row by its line number.
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
