// Package leave implements leave-type and leave-record management.
package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
	"github.com/siamhr/payroll-backend-go/internal/domain/leave"
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(repo leave.LeaveRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{LeaveRepository: repo, employeeRepo: employeeRepo}
}

func toLeaveTypeResponse(lt leave.LeaveType) leave.LeaveTypeResponse {
	return leave.LeaveTypeResponse{
		ID:             lt.ID,
		Code:           lt.Code,
		Name:           lt.Name,
		MaxDaysPerYear: lt.MaxDaysPerYear,
		IsPaid:         lt.IsPaid,
	}
}

func toRecordResponse(rec leave.Record) leave.RecordResponse {
	return leave.RecordResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		EmployeeCode:  rec.EmployeeCode,
		EmployeeName:  rec.EmployeeName,
		LeaveTypeID:   rec.LeaveTypeID,
		LeaveTypeName: rec.LeaveTypeName,
		StartDate:     rec.StartDate.Format("2006-01-02"),
		EndDate:       rec.EndDate.Format("2006-01-02"),
		Days:          rec.Days,
		Reason:        rec.Reason,
		Status:        string(rec.Status),
	}
}

// CreateType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	lt := leave.LeaveType{
		ID:     uuid.NewString(),
		Code:   req.Code,
		Name:   req.Name,
		IsPaid: true,
	}
	if req.MaxDaysPerYear != nil {
		lt.MaxDaysPerYear = *req.MaxDaysPerYear
	}
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}

	created, err := s.LeaveRepository.CreateType(ctx, lt)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeCodeExists) {
			return leave.LeaveTypeResponse{}, leave.ErrLeaveTypeCodeExists
		}
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return toLeaveTypeResponse(created), nil
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.LeaveRepository.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	resp := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		resp = append(resp, toLeaveTypeResponse(lt))
	}
	return resp, nil
}

// DeleteType implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteType(ctx context.Context, id string) error {
	if _, err := s.LeaveRepository.GetType(ctx, id); err != nil {
		return err
	}
	return s.LeaveRepository.DeleteType(ctx, id)
}

// CreateRecord implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateRecord(ctx context.Context, req leave.CreateRecordRequest) (leave.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RecordResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.RecordResponse{}, err
	}
	lt, err := s.LeaveRepository.GetType(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.RecordResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	rec := leave.Record{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
	}
	if req.Days != nil {
		rec.Days = *req.Days
	} else {
		// Calendar days inclusive; half days come in explicitly.
		rec.Days = decimal.NewFromInt(int64(end.Sub(start).Hours()/24) + 1)
	}
	if req.Status != nil {
		rec.Status = leave.RecordStatus(*req.Status)
	}

	created, err := s.LeaveRepository.CreateRecord(ctx, rec)
	if err != nil {
		return leave.RecordResponse{}, fmt.Errorf("failed to create leave record: %w", err)
	}
	return toRecordResponse(created), nil
}

// ListRecords implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRecords(ctx context.Context, filter leave.RecordFilter) ([]leave.RecordResponse, error) {
	records, err := s.LeaveRepository.ListRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}

	resp := make([]leave.RecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toRecordResponse(rec))
	}
	return resp, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string) error {
	return s.transition(ctx, id, leave.StatusRejected)
}

func (s *LeaveServiceImpl) transition(ctx context.Context, id string, to leave.RecordStatus) error {
	rec, err := s.LeaveRepository.GetRecord(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status != leave.StatusPending {
		return leave.ErrAlreadyProcessed
	}
	return s.LeaveRepository.UpdateRecordStatus(ctx, id, to)
}
