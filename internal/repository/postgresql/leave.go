package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/siamhr/payroll-backend-go/internal/domain/leave"
	"github.com/siamhr/payroll-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// CreateType implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) CreateType(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := database.QuerierFrom(ctx, l.db)

	exists := false
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_types WHERE code = $1)`, lt.Code).Scan(&exists); err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to check leave type code: %w", err)
	}
	if exists {
		return leave.LeaveType{}, leave.ErrLeaveTypeCodeExists
	}

	query := `
		INSERT INTO leave_types (id, code, name, max_days_per_year, is_paid)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, code, name, max_days_per_year, is_paid, created_at, updated_at
	`

	var created leave.LeaveType
	err := q.QueryRow(ctx, query, lt.ID, lt.Code, lt.Name, lt.MaxDaysPerYear, lt.IsPaid).Scan(
		&created.ID, &created.Code, &created.Name, &created.MaxDaysPerYear,
		&created.IsPaid, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return created, nil
}

// GetType implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) GetType(ctx context.Context, id string) (leave.LeaveType, error) {
	q := database.QuerierFrom(ctx, l.db)

	query := `
		SELECT id, code, name, max_days_per_year, is_paid, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Code, &lt.Name, &lt.MaxDaysPerYear, &lt.IsPaid,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return lt, nil
}

// ListTypes implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	q := database.QuerierFrom(ctx, l.db)

	query := `
		SELECT id, code, name, max_days_per_year, is_paid, created_at, updated_at
		FROM leave_types
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.Code, &lt.Name, &lt.MaxDaysPerYear, &lt.IsPaid,
			&lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

// DeleteType implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) DeleteType(ctx context.Context, id string) error {
	q := database.QuerierFrom(ctx, l.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

const leaveRecordColumns = `
	r.id, r.employee_id, r.leave_type_id, r.start_date, r.end_date, r.days,
	r.reason, r.status, r.created_at, r.updated_at,
	t.name, t.code, t.is_paid, e.code, e.first_name || ' ' || e.last_name`

func scanLeaveRecord(row pgx.Row) (leave.Record, error) {
	var rec leave.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.LeaveTypeID, &rec.StartDate, &rec.EndDate,
		&rec.Days, &rec.Reason, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.LeaveTypeName, &rec.LeaveTypeCode, &rec.TypeIsPaid,
		&rec.EmployeeCode, &rec.EmployeeName,
	)
	return rec, err
}

// CreateRecord implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) CreateRecord(ctx context.Context, rec leave.Record) (leave.Record, error) {
	q := database.QuerierFrom(ctx, l.db)

	query := `
		INSERT INTO leave_records (id, employee_id, leave_type_id, start_date, end_date, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.LeaveTypeID, rec.StartDate, rec.EndDate,
		rec.Days, rec.Reason, rec.Status,
	).Scan(&id)
	if err != nil {
		return leave.Record{}, fmt.Errorf("failed to create leave record: %w", err)
	}
	return l.GetRecord(ctx, id)
}

// GetRecord implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) GetRecord(ctx context.Context, id string) (leave.Record, error) {
	q := database.QuerierFrom(ctx, l.db)

	query := `
		SELECT` + leaveRecordColumns + `
		FROM leave_records r
		JOIN leave_types t ON t.id = r.leave_type_id
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`

	rec, err := scanLeaveRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Record{}, leave.ErrRecordNotFound
		}
		return leave.Record{}, fmt.Errorf("failed to get leave record: %w", err)
	}
	return rec, nil
}

func (l *leaveRepositoryImpl) queryRecords(ctx context.Context, query string, args ...interface{}) ([]leave.Record, error) {
	q := database.QuerierFrom(ctx, l.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave records: %w", err)
	}
	defer rows.Close()

	var records []leave.Record
	for rows.Next() {
		rec, err := scanLeaveRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListRecords implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListRecords(ctx context.Context, filter leave.RecordFilter) ([]leave.Record, error) {
	query := `
		SELECT` + leaveRecordColumns + `
		FROM leave_records r
		JOIN leave_types t ON t.id = r.leave_type_id
		JOIN employees e ON e.id = r.employee_id
	`
	var conditions []string
	var args []interface{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("r.employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM r.start_date) = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY r.start_date DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return l.queryRecords(ctx, query, args...)
}

// UpdateRecordStatus implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) UpdateRecordStatus(ctx context.Context, id string, status leave.RecordStatus) error {
	q := database.QuerierFrom(ctx, l.db)

	query := `
		UPDATE leave_records
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, status).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update leave record status: %w", err)
	}
	return nil
}

// ListApprovedOverlapping implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListApprovedOverlapping(ctx context.Context, start, end time.Time) ([]leave.Record, error) {
	query := `
		SELECT` + leaveRecordColumns + `
		FROM leave_records r
		JOIN leave_types t ON t.id = r.leave_type_id
		JOIN employees e ON e.id = r.employee_id
		WHERE r.status = 'approved' AND r.start_date <= $2 AND r.end_date >= $1
		ORDER BY r.start_date
	`
	return l.queryRecords(ctx, query, start, end)
}

// ListApprovedForEmployeeOverlapping implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListApprovedForEmployeeOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Record, error) {
	query := `
		SELECT` + leaveRecordColumns + `
		FROM leave_records r
		JOIN leave_types t ON t.id = r.leave_type_id
		JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id = $1 AND r.status = 'approved'
			AND r.start_date <= $3 AND r.end_date >= $2
		ORDER BY r.start_date
	`
	return l.queryRecords(ctx, query, employeeID, start, end)
}
