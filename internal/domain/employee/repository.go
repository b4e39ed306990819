package employee

import "context"

// EmployeeRepository defines data access methods for employees and their tax
// profiles.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// UpsertByCode creates or overwrites an employee matched on its unique
	// code; used by bulk import. The bool result reports whether a new row
	// was created.
	UpsertByCode(ctx context.Context, emp Employee) (Employee, bool, error)

	GetTaxProfile(ctx context.Context, employeeID string) (TaxProfile, error)
	UpsertTaxProfile(ctx context.Context, profile TaxProfile) (TaxProfile, error)
}
