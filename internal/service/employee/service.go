// Package employee implements employee management: CRUD, CSV import and the
// per-employee tax profile used by payroll withholding.
package employee

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
	"github.com/siamhr/payroll-backend-go/internal/pkg/database"
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
	"github.com/siamhr/payroll-backend-go/internal/repository/postgresql"
	"github.com/siamhr/payroll-backend-go/internal/service/tax"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, repo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{db: db, EmployeeRepository: repo}
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:            emp.ID,
		Code:          emp.Code,
		FirstName:     emp.FirstName,
		LastName:      emp.LastName,
		Position:      emp.Position,
		Department:    emp.Department,
		PhoneNumber:   emp.PhoneNumber,
		Address:       emp.Address,
		CitizenID:     emp.CitizenID,
		Status:        string(emp.Status),
		BaseSalary:    emp.BaseSalary,
		BankName:      emp.BankName,
		BankAccountNo: emp.BankAccountNo,
	}
	if emp.HireDate != nil {
		hd := emp.HireDate.Format("2006-01-02")
		resp.HireDate = &hd
	}
	return resp
}

func toTaxProfileResponse(p employee.TaxProfile) employee.TaxProfileResponse {
	return employee.TaxProfileResponse{
		EmployeeID:         p.EmployeeID,
		IsMarried:          p.IsMarried,
		SpouseHasIncome:    p.SpouseHasIncome,
		ChildrenCount:      p.ChildrenCount,
		InsuranceDeduction: p.InsuranceDeduction,
		ProvidentFund:      p.ProvidentFund,
		HomeLoanInterest:   p.HomeLoanInterest,
		OtherDeduction:     p.OtherDeduction,
		AllowanceTotal:     tax.AllowanceTotal(&p),
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByCode(ctx, req.Code); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	emp := employee.Employee{
		ID:            uuid.NewString(),
		Code:          req.Code,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Position:      req.Position,
		Department:    req.Department,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		CitizenID:     req.CitizenID,
		Status:        employee.StatusActive,
		BaseSalary:    decimal.Zero,
		BankName:      req.BankName,
		BankAccountNo: req.BankAccountNo,
	}
	if req.HireDate != nil {
		hd, _ := validator.IsValidDate(*req.HireDate)
		emp.HireDate = &hd
	}
	if req.Status != nil {
		emp.Status = employee.Status(*req.Status)
	}
	if req.BaseSalary != nil {
		emp.BaseSalary = *req.BaseSalary
	}

	created, err := s.EmployeeRepository.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return toEmployeeResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	emps, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]employee.EmployeeResponse, 0, len(emps))
	for _, emp := range emps {
		resp = append(resp, toEmployeeResponse(emp))
	}
	return resp, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Position != nil {
		emp.Position = req.Position
	}
	if req.Department != nil {
		emp.Department = req.Department
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}
	if req.Address != nil {
		emp.Address = req.Address
	}
	if req.CitizenID != nil {
		emp.CitizenID = req.CitizenID
	}
	if req.HireDate != nil {
		hd, _ := validator.IsValidDate(*req.HireDate)
		emp.HireDate = &hd
	}
	if req.BaseSalary != nil {
		emp.BaseSalary = *req.BaseSalary
	}
	if req.BankName != nil {
		emp.BankName = req.BankName
	}
	if req.BankAccountNo != nil {
		emp.BankAccountNo = req.BankAccountNo
	}

	updated, err := s.EmployeeRepository.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return toEmployeeResponse(updated), nil
}

// UpdateStatus implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateStatus(ctx context.Context, req employee.UpdateStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, req.ID); err != nil {
		return err
	}
	return s.EmployeeRepository.UpdateStatus(ctx, req.ID, employee.Status(req.Status))
}

var importHeader = []string{"code", "first_name", "last_name", "position", "department", "base_salary", "hire_date"}

// ImportCSV implements employee.EmployeeService. Rows are matched on code:
// existing employees are overwritten, unknown codes create new records. The
// batch commits in one transaction; bad rows are reported, not fatal.
func (s *EmployeeServiceImpl) ImportCSV(ctx context.Context, r io.Reader) (employee.ImportReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return employee.ImportReport{}, fmt.Errorf("import file is empty")
	}
	if err != nil {
		return employee.ImportReport{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	if !matchesHeader(header, importHeader[:3]) {
		return employee.ImportReport{}, fmt.Errorf("csv header must start with code, first_name, last_name")
	}

	var report employee.ImportReport
	var rows []employee.Employee
	lines := make(map[int]int)

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Errors = append(report.Errors, employee.ImportRowError{Row: line, Message: "malformed csv row"})
			report.Skipped++
			continue
		}

		emp, msg := parseEmployeeRow(rec)
		if msg != "" {
			report.Errors = append(report.Errors, employee.ImportRowError{Row: line, Message: msg})
			report.Skipped++
			continue
		}
		lines[len(rows)] = line
		rows = append(rows, emp)
	}

	if len(rows) == 0 {
		return report, nil
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for i, emp := range rows {
			_, created, err := s.EmployeeRepository.UpsertByCode(txCtx, emp)
			if err != nil {
				return fmt.Errorf("failed to upsert employee row %d: %w", lines[i], err)
			}
			if created {
				report.Created++
			} else {
				report.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return employee.ImportReport{}, err
	}

	return report, nil
}

func parseEmployeeRow(rec []string) (employee.Employee, string) {
	if len(rec) < 3 {
		return employee.Employee{}, "expected at least code, first_name, last_name"
	}

	get := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	code := get(0)
	first := get(1)
	last := get(2)
	if code == "" || first == "" || last == "" {
		return employee.Employee{}, "code, first_name and last_name are required"
	}

	emp := employee.Employee{
		ID:         uuid.NewString(),
		Code:       code,
		FirstName:  first,
		LastName:   last,
		Status:     employee.StatusActive,
		BaseSalary: decimal.Zero,
	}
	if pos := get(3); pos != "" {
		emp.Position = &pos
	}
	if dept := get(4); dept != "" {
		emp.Department = &dept
	}
	if raw := get(5); raw != "" {
		amount, ok := validator.ParseAmount(raw)
		if !ok || amount.IsNegative() {
			return employee.Employee{}, "base_salary must be a non-negative number"
		}
		emp.BaseSalary = amount
	}
	if raw := get(6); raw != "" {
		hd, ok := validator.IsValidDate(raw)
		if !ok {
			return employee.Employee{}, "hire_date must be YYYY-MM-DD"
		}
		emp.HireDate = &hd
	}

	return emp, ""
}

func matchesHeader(got, want []string) bool {
	if len(got) < len(want) {
		return false
	}
	for i, col := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), col) {
			return false
		}
	}
	return true
}

// GetTaxProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetTaxProfile(ctx context.Context, employeeID string) (employee.TaxProfileResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return employee.TaxProfileResponse{}, err
	}
	profile, err := s.EmployeeRepository.GetTaxProfile(ctx, employeeID)
	if err != nil {
		return employee.TaxProfileResponse{}, err
	}
	return toTaxProfileResponse(profile), nil
}

// UpsertTaxProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpsertTaxProfile(ctx context.Context, req employee.UpsertTaxProfileRequest) (employee.TaxProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.TaxProfileResponse{}, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.TaxProfileResponse{}, err
	}

	profile := employee.TaxProfile{
		ID:              uuid.NewString(),
		EmployeeID:      req.EmployeeID,
		IsMarried:       req.IsMarried,
		SpouseHasIncome: req.SpouseHasIncome,
		ChildrenCount:   req.ChildrenCount,
		UpdatedAt:       time.Now().UTC(),
	}
	profile.InsuranceDeduction = amountOrZero(req.InsuranceDeduction)
	profile.ProvidentFund = amountOrZero(req.ProvidentFund)
	profile.HomeLoanInterest = amountOrZero(req.HomeLoanInterest)
	profile.OtherDeduction = amountOrZero(req.OtherDeduction)

	saved, err := s.EmployeeRepository.UpsertTaxProfile(ctx, profile)
	if err != nil {
		return employee.TaxProfileResponse{}, fmt.Errorf("failed to upsert tax profile: %w", err)
	}
	return toTaxProfileResponse(saved), nil
}

func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
