package payroll

import "context"

// PayrollRepository defines data access for periods, payslips and line items.
type PayrollRepository interface {
	CreatePeriod(ctx context.Context, p PayrollPeriod) (PayrollPeriod, error)
	GetPeriod(ctx context.Context, id string) (PayrollPeriod, error)
	GetPeriodByMonthYear(ctx context.Context, month, year int) (PayrollPeriod, error)
	ListPeriods(ctx context.Context) ([]PayrollPeriod, error)
	ClosePeriod(ctx context.Context, id string) error

	// GetOrCreatePayslip returns the slip for (employee, period), creating an
	// empty one when missing. The boolean reports whether a new row was made.
	GetOrCreatePayslip(ctx context.Context, employeeID, periodID string) (Payslip, bool, error)
	GetPayslip(ctx context.Context, id string) (Payslip, error)
	ListPayslipsByPeriod(ctx context.Context, periodID string, department *string) ([]Payslip, error)
	ListPayslipsByEmployee(ctx context.Context, employeeID string, year *int) ([]Payslip, error)
	UpdatePayslipTotals(ctx context.Context, p Payslip) error

	// UpsertItemByCode inserts or replaces the coded line item on a payslip.
	// Uniqueness of (payslip_id, item_type, code) is enforced by storage so
	// concurrent runs converge on a single row per category.
	UpsertItemByCode(ctx context.Context, item PayslipItem) (PayslipItem, error)
	AddItem(ctx context.Context, item PayslipItem) (PayslipItem, error)
	DeleteItemByCode(ctx context.Context, payslipID string, itemType ItemType, code string) error
	ListItems(ctx context.Context, payslipID string) ([]PayslipItem, error)

	SeedEarningType(ctx context.Context, et EarningType) error
	SeedDeductionType(ctx context.Context, dt DeductionType) error
	ListEarningTypes(ctx context.Context) ([]EarningType, error)
	ListDeductionTypes(ctx context.Context) ([]DeductionType, error)

	PeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error)
	EmployeeYearSummary(ctx context.Context, employeeID string, year int) ([]YearSummaryRow, error)
}
