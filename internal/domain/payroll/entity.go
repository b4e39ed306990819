package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollPeriod is one (month, year) pay cycle with explicit start/end dates.
// The pair is unique. Closed periods refuse further payroll runs.
type PayrollPeriod struct {
	ID        string
	Month     int
	Year      int
	StartDate time.Time
	EndDate   time.Time
	IsClosed  bool
	CreatedAt time.Time
}

// Payslip is one employee's slip for one period; the pair is unique. The three
// totals are cached aggregates recomputed from line items on demand, never the
// source of truth by themselves.
type Payslip struct {
	ID             string
	EmployeeID     string
	PeriodID       string
	GrossIncome    decimal.Decimal
	TotalDeduction decimal.Decimal
	NetIncome      decimal.Decimal
	GeneratedAt    time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeCode *string
	EmployeeName *string
	Department   *string
	PeriodMonth  *int
	PeriodYear   *int
}

type ItemType string

const (
	ItemTypeEarning   ItemType = "earning"
	ItemTypeDeduction ItemType = "deduction"
)

// Well-known line-item category codes, seeded at startup rather than created
// lazily mid-transaction. Payroll runs upsert against these codes.
const (
	CodeBaseSalary     = "BASE_SALARY"
	CodeUnpaid         = "UNPAID"
	CodeWithholdingTax = "WHT"
	CodeSocialSecurity = "SOCIAL_SEC"
)

// EarningType tags earning items; the flags steer which items feed the tax and
// social-security bases.
type EarningType struct {
	ID        string
	Code      string
	Name      string
	IsTaxable bool
	IsSSF     bool
}

// DeductionType tags deduction items.
type DeductionType struct {
	ID    string
	Code  string
	Name  string
	IsTax bool
	IsSSF bool
}

// PayslipItem is a signed line item. Code references a well-known category;
// ad-hoc items carry a nil code. (payslip, item type, code) is unique at the
// storage layer so re-running payroll upserts instead of duplicating.
type PayslipItem struct {
	ID        string
	PayslipID string
	ItemType  ItemType
	Code      *string
	Name      string
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Totals recomputes the cached aggregates from a full item set:
// gross = sum of earnings, deduction = sum of deductions, net = gross - deduction.
// Callers are responsible for invoking it after any item mutation; nothing
// keeps the cache in sync reactively.
func Totals(items []PayslipItem) (gross, deduction, net decimal.Decimal) {
	gross = decimal.Zero
	deduction = decimal.Zero
	for _, it := range items {
		switch it.ItemType {
		case ItemTypeEarning:
			gross = gross.Add(it.Amount)
		case ItemTypeDeduction:
			deduction = deduction.Add(it.Amount)
		}
	}
	return gross, deduction, gross.Sub(deduction)
}
