package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/siamhr/payroll-backend-go/internal/domain/attendance"
	"github.com/siamhr/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.work_date, a.check_in, a.check_out, a.status,
	a.source, a.remark, a.created_at, a.updated_at,
	e.code, e.first_name || ' ' || e.last_name`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.CheckIn, &rec.CheckOut,
		&rec.Status, &rec.Source, &rec.Remark, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeCode, &rec.EmployeeName,
	)
	return rec, err
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, work_date, check_in, check_out, status, source, remark
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			status = EXCLUDED.status,
			source = EXCLUDED.source,
			remark = COALESCE(EXCLUDED.remark, attendance_records.remark),
			updated_at = NOW()
		RETURNING (created_at = updated_at), id, employee_id, work_date, check_in,
			check_out, status, source, remark, created_at, updated_at
	`

	var created bool
	var saved attendance.Record
	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.WorkDate, rec.CheckIn, rec.CheckOut,
		rec.Status, rec.Source, rec.Remark,
	).Scan(
		&created, &saved.ID, &saved.EmployeeID, &saved.WorkDate, &saved.CheckIn,
		&saved.CheckOut, &saved.Status, &saved.Source, &saved.Remark,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("failed to upsert attendance record: %w", err)
	}
	return saved, created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := database.QuerierFrom(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.work_date = $2
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return rec, nil
}

func (a *attendanceRepositoryImpl) queryRecords(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := database.QuerierFrom(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.work_date = $1
		ORDER BY e.code
	`
	return a.queryRecords(ctx, query, date)
}

// ListByEmployeeBetween implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.work_date BETWEEN $2 AND $3
		ORDER BY a.work_date
	`
	return a.queryRecords(ctx, query, employeeID, start, end)
}

// ListBetween implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.work_date BETWEEN $1 AND $2
		ORDER BY a.work_date, e.code
	`
	return a.queryRecords(ctx, query, start, end)
}
