package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// (employee, work date) pair is unique at the storage layer; Upsert relies on
// that constraint.
type AttendanceRepository interface {
	Upsert(ctx context.Context, rec Record) (Record, bool, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Record, error)
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]Record, error)
}
