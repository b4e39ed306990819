package employee

import (
	"context"
	"io"
)

// EmployeeService defines business logic for employee management.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) error

	// ImportCSV bulk-creates/updates employees from a CSV stream matched on
	// code. Row-level validation failures are collected in the report; the
	// batch itself commits atomically.
	ImportCSV(ctx context.Context, r io.Reader) (ImportReport, error)

	GetTaxProfile(ctx context.Context, employeeID string) (TaxProfileResponse, error)
	UpsertTaxProfile(ctx context.Context, req UpsertTaxProfileRequest) (TaxProfileResponse, error)
}
