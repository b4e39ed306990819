package leave

import "context"

// LeaveService defines business logic for leave management.
type LeaveService interface {
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	DeleteType(ctx context.Context, id string) error

	CreateRecord(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]RecordResponse, error)

	// Approve/Reject flip a pending record's status. Records already
	// processed return ErrAlreadyProcessed.
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}
