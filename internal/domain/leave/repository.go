package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access for leave types and leave records.
type LeaveRepository interface {
	CreateType(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetType(ctx context.Context, id string) (LeaveType, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)
	DeleteType(ctx context.Context, id string) error

	CreateRecord(ctx context.Context, rec Record) (Record, error)
	GetRecord(ctx context.Context, id string) (Record, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]Record, error)
	UpdateRecordStatus(ctx context.Context, id string, status RecordStatus) error

	// ListApprovedOverlapping returns approved records whose span intersects
	// [start, end], with leave-type fields joined in.
	ListApprovedOverlapping(ctx context.Context, start, end time.Time) ([]Record, error)

	// ListApprovedForEmployeeOverlapping is the single-employee variant.
	ListApprovedForEmployeeOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)
}
