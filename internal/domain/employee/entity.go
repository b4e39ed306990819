package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	Code          string
	FirstName     string
	LastName      string
	Position      *string
	Department    *string
	PhoneNumber   *string
	Address       *string
	CitizenID     *string
	HireDate      *time.Time
	Status        Status
	BaseSalary    decimal.Decimal
	BankName      *string
	BankAccountNo *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// TaxProfile holds an employee's annual tax-allowance figures, one-to-one with
// Employee. An employee without a profile falls back to the flat personal
// allowance during withholding estimation.
type TaxProfile struct {
	ID              string
	EmployeeID      string
	IsMarried       bool
	SpouseHasIncome bool
	ChildrenCount   int
	// Annual deduction amounts, each >= 0.
	InsuranceDeduction decimal.Decimal
	ProvidentFund      decimal.Decimal
	HomeLoanInterest   decimal.Decimal
	OtherDeduction     decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
