package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
	"github.com/siamhr/payroll-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, code, first_name, last_name, position, department, phone_number,
	address, citizen_id, hire_date, status, base_salary, bank_name,
	bank_account_no, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Code, &emp.FirstName, &emp.LastName, &emp.Position,
		&emp.Department, &emp.PhoneNumber, &emp.Address, &emp.CitizenID,
		&emp.HireDate, &emp.Status, &emp.BaseSalary, &emp.BankName,
		&emp.BankAccountNo, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := database.QuerierFrom(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, code, first_name, last_name, position, department, phone_number,
			address, citizen_id, hire_date, status, base_salary, bank_name, bank_account_no
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + employeeColumns

	return scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.Code, newEmployee.FirstName, newEmployee.LastName,
		newEmployee.Position, newEmployee.Department, newEmployee.PhoneNumber,
		newEmployee.Address, newEmployee.CitizenID, newEmployee.HireDate,
		newEmployee.Status, newEmployee.BaseSalary, newEmployee.BankName,
		newEmployee.BankAccountNo,
	))
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := database.QuerierFrom(ctx, e.db)

	query := `SELECT` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := database.QuerierFrom(ctx, e.db)

	query := `SELECT` + employeeColumns + ` FROM employees WHERE code = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := database.QuerierFrom(ctx, e.db)

	query := `SELECT` + employeeColumns + ` FROM employees`
	var conditions []string
	var args []interface{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(code ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", n, n, n))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY code"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// GetActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActive(ctx context.Context) ([]employee.Employee, error) {
	status := employee.StatusActive
	return e.List(ctx, employee.EmployeeFilter{Status: &status})
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := database.QuerierFrom(ctx, e.db)

	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, position = $4, department = $5,
			phone_number = $6, address = $7, citizen_id = $8, hire_date = $9,
			base_salary = $10, bank_name = $11, bank_account_no = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID, emp.FirstName, emp.LastName, emp.Position, emp.Department,
		emp.PhoneNumber, emp.Address, emp.CitizenID, emp.HireDate,
		emp.BaseSalary, emp.BankName, emp.BankAccountNo,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

// UpdateStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status employee.Status) error {
	q := database.QuerierFrom(ctx, e.db)

	query := `
		UPDATE employees
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, status).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee status: %w", err)
	}
	return nil
}

// UpsertByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpsertByCode(ctx context.Context, emp employee.Employee) (employee.Employee, bool, error) {
	q := database.QuerierFrom(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, code, first_name, last_name, position, department, phone_number,
			address, citizen_id, hire_date, status, base_salary, bank_name, bank_account_no
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (code) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			position = COALESCE(EXCLUDED.position, employees.position),
			department = COALESCE(EXCLUDED.department, employees.department),
			hire_date = COALESCE(EXCLUDED.hire_date, employees.hire_date),
			base_salary = EXCLUDED.base_salary,
			updated_at = NOW()
		RETURNING (created_at = updated_at),` + employeeColumns

	var created bool
	var saved employee.Employee
	err := q.QueryRow(ctx, query,
		emp.ID, emp.Code, emp.FirstName, emp.LastName, emp.Position, emp.Department,
		emp.PhoneNumber, emp.Address, emp.CitizenID, emp.HireDate, emp.Status,
		emp.BaseSalary, emp.BankName, emp.BankAccountNo,
	).Scan(
		&created,
		&saved.ID, &saved.Code, &saved.FirstName, &saved.LastName, &saved.Position,
		&saved.Department, &saved.PhoneNumber, &saved.Address, &saved.CitizenID,
		&saved.HireDate, &saved.Status, &saved.BaseSalary, &saved.BankName,
		&saved.BankAccountNo, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, false, fmt.Errorf("failed to upsert employee by code: %w", err)
	}
	return saved, created, nil
}

// GetTaxProfile implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetTaxProfile(ctx context.Context, employeeID string) (employee.TaxProfile, error) {
	q := database.QuerierFrom(ctx, e.db)

	query := `
		SELECT id, employee_id, is_married, spouse_has_income, children_count,
			insurance_deduction, provident_fund, home_loan_interest, other_deduction,
			created_at, updated_at
		FROM tax_profiles
		WHERE employee_id = $1
	`

	var p employee.TaxProfile
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&p.ID, &p.EmployeeID, &p.IsMarried, &p.SpouseHasIncome, &p.ChildrenCount,
		&p.InsuranceDeduction, &p.ProvidentFund, &p.HomeLoanInterest, &p.OtherDeduction,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.TaxProfile{}, employee.ErrTaxProfileNotFound
		}
		return employee.TaxProfile{}, fmt.Errorf("failed to get tax profile: %w", err)
	}
	return p, nil
}

// UpsertTaxProfile implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpsertTaxProfile(ctx context.Context, profile employee.TaxProfile) (employee.TaxProfile, error) {
	q := database.QuerierFrom(ctx, e.db)

	query := `
		INSERT INTO tax_profiles (
			id, employee_id, is_married, spouse_has_income, children_count,
			insurance_deduction, provident_fund, home_loan_interest, other_deduction
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id) DO UPDATE SET
			is_married = EXCLUDED.is_married,
			spouse_has_income = EXCLUDED.spouse_has_income,
			children_count = EXCLUDED.children_count,
			insurance_deduction = EXCLUDED.insurance_deduction,
			provident_fund = EXCLUDED.provident_fund,
			home_loan_interest = EXCLUDED.home_loan_interest,
			other_deduction = EXCLUDED.other_deduction,
			updated_at = NOW()
		RETURNING id, employee_id, is_married, spouse_has_income, children_count,
			insurance_deduction, provident_fund, home_loan_interest, other_deduction,
			created_at, updated_at
	`

	var p employee.TaxProfile
	err := q.QueryRow(ctx, query,
		profile.ID, profile.EmployeeID, profile.IsMarried, profile.SpouseHasIncome,
		profile.ChildrenCount, profile.InsuranceDeduction, profile.ProvidentFund,
		profile.HomeLoanInterest, profile.OtherDeduction,
	).Scan(
		&p.ID, &p.EmployeeID, &p.IsMarried, &p.SpouseHasIncome, &p.ChildrenCount,
		&p.InsuranceDeduction, &p.ProvidentFund, &p.HomeLoanInterest, &p.OtherDeduction,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return employee.TaxProfile{}, fmt.Errorf("failed to upsert tax profile: %w", err)
	}
	return p, nil
}
