package payroll

import "context"

// PayrollService defines business logic for pay periods and payslip generation.
type PayrollService interface {
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	ClosePeriod(ctx context.Context, id string) error

	// SeedDefaults ensures the built-in earning and deduction categories
	// exist. Called once at startup.
	SeedDefaults(ctx context.Context) error

	// Run generates or regenerates payslips for every active employee with a
	// positive base salary in the given period. Re-running replaces the
	// computed line items in place; manual items survive.
	Run(ctx context.Context, req RunPayrollRequest) (RunPayrollResult, error)

	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListPayslipsByPeriod(ctx context.Context, periodID string, department *string) ([]PayslipResponse, error)
	ListPayslipsByEmployee(ctx context.Context, employeeID string, year *int) ([]PayslipResponse, error)

	// AddItem attaches a manual ad-hoc line item and recomputes totals.
	AddItem(ctx context.Context, payslipID string, req AddItemRequest) (PayslipResponse, error)

	GetPeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error)
	GetEmployeeYearSummary(ctx context.Context, employeeID string, year int) ([]YearSummaryRow, error)
}
