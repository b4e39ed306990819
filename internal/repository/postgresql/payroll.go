package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/siamhr/payroll-backend-go/internal/domain/payroll"
	"github.com/siamhr/payroll-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const periodColumns = `id, month, year, start_date, end_date, is_closed, created_at`

func scanPeriod(row pgx.Row) (payroll.PayrollPeriod, error) {
	var p payroll.PayrollPeriod
	err := row.Scan(&p.ID, &p.Month, &p.Year, &p.StartDate, &p.EndDate, &p.IsClosed, &p.CreatedAt)
	return p, err
}

// CreatePeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreatePeriod(ctx context.Context, p payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (id, month, year, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + periodColumns

	created, err := scanPeriod(q.QueryRow(ctx, query, p.ID, p.Month, p.Year, p.StartDate, p.EndDate))
	if err != nil {
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}
	return created, nil
}

// GetPeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetPeriod(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1`

	p, err := scanPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}
	return p, nil
}

// GetPeriodByMonthYear implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetPeriodByMonthYear(ctx context.Context, month, year int) (payroll.PayrollPeriod, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE month = $1 AND year = $2`

	p, err := scanPeriod(q.QueryRow(ctx, query, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period by month/year: %w", err)
	}
	return p, nil
}

// ListPeriods implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListPeriods(ctx context.Context) ([]payroll.PayrollPeriod, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.PayrollPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// ClosePeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ClosePeriod(ctx context.Context, id string) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET is_closed = TRUE
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPeriodNotFound
		}
		return fmt.Errorf("failed to close payroll period: %w", err)
	}
	return nil
}

const payslipColumns = `
	p.id, p.employee_id, p.period_id, p.gross_income, p.total_deduction,
	p.net_income, p.generated_at, p.updated_at,
	e.code, e.first_name || ' ' || e.last_name, e.department,
	pp.month, pp.year`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodID, &p.GrossIncome, &p.TotalDeduction,
		&p.NetIncome, &p.GeneratedAt, &p.UpdatedAt,
		&p.EmployeeCode, &p.EmployeeName, &p.Department,
		&p.PeriodMonth, &p.PeriodYear,
	)
	return p, err
}

// GetOrCreatePayslip implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetOrCreatePayslip(ctx context.Context, employeeID, periodID string) (payroll.Payslip, bool, error) {
	q := database.QuerierFrom(ctx, r.db)

	insert := `
		INSERT INTO payslips (id, employee_id, period_id, gross_income, total_deduction, net_income)
		VALUES ($1, $2, $3, 0, 0, 0)
		ON CONFLICT (employee_id, period_id) DO NOTHING
		RETURNING id
	`

	var createdID string
	created := true
	err := q.QueryRow(ctx, insert, uuid.NewString(), employeeID, periodID).Scan(&createdID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, false, fmt.Errorf("failed to create payslip: %w", err)
		}
		created = false
	}

	query := `
		SELECT` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		JOIN payroll_periods pp ON pp.id = p.period_id
		WHERE p.employee_id = $1 AND p.period_id = $2
	`

	slip, err := scanPayslip(q.QueryRow(ctx, query, employeeID, periodID))
	if err != nil {
		return payroll.Payslip{}, false, fmt.Errorf("failed to load payslip: %w", err)
	}
	return slip, created, nil
}

// GetPayslip implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		JOIN payroll_periods pp ON pp.id = p.period_id
		WHERE p.id = $1
	`

	slip, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return slip, nil
}

func (r *payrollRepositoryImpl) queryPayslips(ctx context.Context, query string, args ...interface{}) ([]payroll.Payslip, error) {
	q := database.QuerierFrom(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payslips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}

// ListPayslipsByPeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListPayslipsByPeriod(ctx context.Context, periodID string, department *string) ([]payroll.Payslip, error) {
	query := `
		SELECT` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		JOIN payroll_periods pp ON pp.id = p.period_id
		WHERE p.period_id = $1
	`
	args := []interface{}{periodID}
	if department != nil {
		args = append(args, *department)
		query += fmt.Sprintf(" AND e.department = $%d", len(args))
	}
	query += " ORDER BY e.code"

	return r.queryPayslips(ctx, query, args...)
}

// ListPayslipsByEmployee implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListPayslipsByEmployee(ctx context.Context, employeeID string, year *int) ([]payroll.Payslip, error) {
	query := `
		SELECT` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		JOIN payroll_periods pp ON pp.id = p.period_id
		WHERE p.employee_id = $1
	`
	args := []interface{}{employeeID}
	if year != nil {
		args = append(args, *year)
		query += fmt.Sprintf(" AND pp.year = $%d", len(args))
	}
	query += " ORDER BY pp.year DESC, pp.month DESC"

	return r.queryPayslips(ctx, query, args...)
}

// UpdatePayslipTotals implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpdatePayslipTotals(ctx context.Context, p payroll.Payslip) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE payslips
		SET gross_income = $2, total_deduction = $3, net_income = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, p.ID, p.GrossIncome, p.TotalDeduction, p.NetIncome).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayslipNotFound
		}
		return fmt.Errorf("failed to update payslip totals: %w", err)
	}
	return nil
}

const itemColumns = `id, payslip_id, item_type, code, name, amount, created_at, updated_at`

func scanItem(row pgx.Row) (payroll.PayslipItem, error) {
	var it payroll.PayslipItem
	err := row.Scan(
		&it.ID, &it.PayslipID, &it.ItemType, &it.Code, &it.Name, &it.Amount,
		&it.CreatedAt, &it.UpdatedAt,
	)
	return it, err
}

// UpsertItemByCode implements payroll.PayrollRepository. The partial unique
// index on (payslip_id, item_type, code) makes concurrent payroll runs
// converge on one row per category instead of duplicating it.
func (r *payrollRepositoryImpl) UpsertItemByCode(ctx context.Context, item payroll.PayslipItem) (payroll.PayslipItem, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO payslip_items (id, payslip_id, item_type, code, name, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (payslip_id, item_type, code) WHERE code IS NOT NULL DO UPDATE SET
			name = EXCLUDED.name,
			amount = EXCLUDED.amount,
			updated_at = NOW()
		RETURNING ` + itemColumns

	saved, err := scanItem(q.QueryRow(ctx, query,
		item.ID, item.PayslipID, item.ItemType, item.Code, item.Name, item.Amount,
	))
	if err != nil {
		return payroll.PayslipItem{}, fmt.Errorf("failed to upsert payslip item: %w", err)
	}
	return saved, nil
}

// AddItem implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) AddItem(ctx context.Context, item payroll.PayslipItem) (payroll.PayslipItem, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO payslip_items (id, payslip_id, item_type, code, name, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + itemColumns

	saved, err := scanItem(q.QueryRow(ctx, query,
		item.ID, item.PayslipID, item.ItemType, item.Code, item.Name, item.Amount,
	))
	if err != nil {
		return payroll.PayslipItem{}, fmt.Errorf("failed to add payslip item: %w", err)
	}
	return saved, nil
}

// DeleteItemByCode implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) DeleteItemByCode(ctx context.Context, payslipID string, itemType payroll.ItemType, code string) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `DELETE FROM payslip_items WHERE payslip_id = $1 AND item_type = $2 AND code = $3`

	tag, err := q.Exec(ctx, query, payslipID, itemType, code)
	if err != nil {
		return fmt.Errorf("failed to delete payslip item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrItemNotFound
	}
	return nil
}

// ListItems implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListItems(ctx context.Context, payslipID string) ([]payroll.PayslipItem, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + itemColumns + `
		FROM payslip_items
		WHERE payslip_id = $1
		ORDER BY item_type, created_at
	`

	rows, err := q.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip items: %w", err)
	}
	defer rows.Close()

	var items []payroll.PayslipItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SeedEarningType implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) SeedEarningType(ctx context.Context, et payroll.EarningType) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO earning_types (id, code, name, is_taxable, is_ssf)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, et.ID, et.Code, et.Name, et.IsTaxable, et.IsSSF); err != nil {
		return fmt.Errorf("failed to seed earning type: %w", err)
	}
	return nil
}

// SeedDeductionType implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) SeedDeductionType(ctx context.Context, dt payroll.DeductionType) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO deduction_types (id, code, name, is_tax, is_ssf)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, dt.ID, dt.Code, dt.Name, dt.IsTax, dt.IsSSF); err != nil {
		return fmt.Errorf("failed to seed deduction type: %w", err)
	}
	return nil
}

// ListEarningTypes implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListEarningTypes(ctx context.Context) ([]payroll.EarningType, error) {
	q := database.QuerierFrom(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, code, name, is_taxable, is_ssf FROM earning_types ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list earning types: %w", err)
	}
	defer rows.Close()

	var types []payroll.EarningType
	for rows.Next() {
		var et payroll.EarningType
		if err := rows.Scan(&et.ID, &et.Code, &et.Name, &et.IsTaxable, &et.IsSSF); err != nil {
			return nil, err
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

// ListDeductionTypes implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListDeductionTypes(ctx context.Context) ([]payroll.DeductionType, error) {
	q := database.QuerierFrom(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, code, name, is_tax, is_ssf FROM deduction_types ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction types: %w", err)
	}
	defer rows.Close()

	var types []payroll.DeductionType
	for rows.Next() {
		var dt payroll.DeductionType
		if err := rows.Scan(&dt.ID, &dt.Code, &dt.Name, &dt.IsTax, &dt.IsSSF); err != nil {
			return nil, err
		}
		types = append(types, dt)
	}
	return types, rows.Err()
}

// PeriodSummary implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) PeriodSummary(ctx context.Context, periodID string) (payroll.PeriodSummary, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT pp.id, pp.month, pp.year, COUNT(p.id),
			COALESCE(SUM(p.gross_income), 0),
			COALESCE(SUM(p.total_deduction), 0),
			COALESCE(SUM(p.net_income), 0),
			COALESCE(SUM(t.wht), 0),
			COALESCE(SUM(t.ssf), 0)
		FROM payroll_periods pp
		LEFT JOIN payslips p ON p.period_id = pp.id
		LEFT JOIN LATERAL (
			SELECT
				COALESCE(SUM(CASE WHEN i.code = $2 THEN i.amount END), 0) AS wht,
				COALESCE(SUM(CASE WHEN i.code = $3 THEN i.amount END), 0) AS ssf
			FROM payslip_items i
			WHERE i.payslip_id = p.id
		) t ON TRUE
		WHERE pp.id = $1
		GROUP BY pp.id, pp.month, pp.year
	`

	var s payroll.PeriodSummary
	err := q.QueryRow(ctx, query, periodID, payroll.CodeWithholdingTax, payroll.CodeSocialSecurity).Scan(
		&s.PeriodID, &s.Month, &s.Year, &s.PayslipCount,
		&s.GrossIncome, &s.TotalDeduction, &s.NetIncome,
		&s.WithholdingTax, &s.SocialSecurity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PeriodSummary{}, payroll.ErrPeriodNotFound
		}
		return payroll.PeriodSummary{}, fmt.Errorf("failed to load period summary: %w", err)
	}
	return s, nil
}

// EmployeeYearSummary implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) EmployeeYearSummary(ctx context.Context, employeeID string, year int) ([]payroll.YearSummaryRow, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT pp.month, p.gross_income, p.total_deduction, p.net_income, t.wht, t.ssf
		FROM payslips p
		JOIN payroll_periods pp ON pp.id = p.period_id
		LEFT JOIN LATERAL (
			SELECT
				COALESCE(SUM(CASE WHEN i.code = $3 THEN i.amount END), 0) AS wht,
				COALESCE(SUM(CASE WHEN i.code = $4 THEN i.amount END), 0) AS ssf
			FROM payslip_items i
			WHERE i.payslip_id = p.id
		) t ON TRUE
		WHERE p.employee_id = $1 AND pp.year = $2
		ORDER BY pp.month
	`

	rows, err := q.Query(ctx, query, employeeID, year, payroll.CodeWithholdingTax, payroll.CodeSocialSecurity)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee year summary: %w", err)
	}
	defer rows.Close()

	var result []payroll.YearSummaryRow
	for rows.Next() {
		var row payroll.YearSummaryRow
		if err := rows.Scan(&row.Month, &row.Gross, &row.Deduction, &row.Net,
			&row.WithholdingTax, &row.SocialSecurity); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
