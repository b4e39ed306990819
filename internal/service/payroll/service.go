package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/siamhr/payroll-backend-go/internal/domain/attendance"
	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
	"github.com/siamhr/payroll-backend-go/internal/domain/leave"
	"github.com/siamhr/payroll-backend-go/internal/domain/payroll"
	"github.com/siamhr/payroll-backend-go/internal/pkg/database"
	"github.com/siamhr/payroll-backend-go/internal/repository/postgresql"
	"github.com/siamhr/payroll-backend-go/internal/service/tax"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	companyRepo    company.CompanyRepository
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	companyRepo company.CompanyRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                db,
		PayrollRepository: payrollRepo,
		employeeRepo:      employeeRepo,
		attendanceRepo:    attendanceRepo,
		leaveRepo:         leaveRepo,
		companyRepo:       companyRepo,
	}
}

func toPeriodResponse(p payroll.PayrollPeriod) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:        p.ID,
		Month:     p.Month,
		Year:      p.Year,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		IsClosed:  p.IsClosed,
	}
}

func toItemResponse(it payroll.PayslipItem) payroll.ItemResponse {
	return payroll.ItemResponse{
		ID:       it.ID,
		ItemType: string(it.ItemType),
		Code:     it.Code,
		Name:     it.Name,
		Amount:   it.Amount,
	}
}

func toPayslipResponse(p payroll.Payslip, items []payroll.PayslipItem) payroll.PayslipResponse {
	resp := payroll.PayslipResponse{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		EmployeeCode:   p.EmployeeCode,
		EmployeeName:   p.EmployeeName,
		Department:     p.Department,
		PeriodID:       p.PeriodID,
		PeriodMonth:    p.PeriodMonth,
		PeriodYear:     p.PeriodYear,
		GrossIncome:    p.GrossIncome,
		TotalDeduction: p.TotalDeduction,
		NetIncome:      p.NetIncome,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, toItemResponse(it))
	}
	return resp
}

// CreatePeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	if _, err := s.PayrollRepository.GetPeriodByMonthYear(ctx, req.Month, req.Year); err == nil {
		return payroll.PeriodResponse{}, payroll.ErrPeriodExists
	} else if !errors.Is(err, payroll.ErrPeriodNotFound) {
		return payroll.PeriodResponse{}, fmt.Errorf("failed to check existing period: %w", err)
	}

	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)

	created, err := s.PayrollRepository.CreatePeriod(ctx, payroll.PayrollPeriod{
		ID:        uuid.NewString(),
		Month:     req.Month,
		Year:      req.Year,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return payroll.PeriodResponse{}, fmt.Errorf("failed to create period: %w", err)
	}

	return toPeriodResponse(created), nil
}

// ListPeriods implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	periods, err := s.PayrollRepository.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}

	resp := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		resp = append(resp, toPeriodResponse(p))
	}
	return resp, nil
}

// GetPeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPeriod(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	p, err := s.PayrollRepository.GetPeriod(ctx, id)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return toPeriodResponse(p), nil
}

// ClosePeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) ClosePeriod(ctx context.Context, id string) error {
	if _, err := s.PayrollRepository.GetPeriod(ctx, id); err != nil {
		return err
	}
	return s.PayrollRepository.ClosePeriod(ctx, id)
}

// SeedDefaults implements payroll.PayrollService.
func (s *PayrollServiceImpl) SeedDefaults(ctx context.Context) error {
	earnings := []payroll.EarningType{
		{ID: uuid.NewString(), Code: payroll.CodeBaseSalary, Name: "Base Salary", IsTaxable: true, IsSSF: true},
	}
	deductions := []payroll.DeductionType{
		{ID: uuid.NewString(), Code: payroll.CodeUnpaid, Name: "Unpaid Leave Deduction"},
		{ID: uuid.NewString(), Code: payroll.CodeWithholdingTax, Name: "Withholding Tax", IsTax: true},
		{ID: uuid.NewString(), Code: payroll.CodeSocialSecurity, Name: "Social Security Fund", IsSSF: true},
	}

	for _, et := range earnings {
		if err := s.PayrollRepository.SeedEarningType(ctx, et); err != nil {
			return fmt.Errorf("failed to seed earning type %s: %w", et.Code, err)
		}
	}
	for _, dt := range deductions {
		if err := s.PayrollRepository.SeedDeductionType(ctx, dt); err != nil {
			return fmt.Errorf("failed to seed deduction type %s: %w", dt.Code, err)
		}
	}
	return nil
}

// Run implements payroll.PayrollService.
func (s *PayrollServiceImpl) Run(ctx context.Context, req payroll.RunPayrollRequest) (payroll.RunPayrollResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunPayrollResult{}, err
	}

	period, err := s.PayrollRepository.GetPeriod(ctx, req.PeriodID)
	if err != nil {
		return payroll.RunPayrollResult{}, err
	}
	if period.IsClosed {
		return payroll.RunPayrollResult{}, payroll.ErrPeriodClosed
	}

	active, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return payroll.RunPayrollResult{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	holidayDates, err := s.companyRepo.HolidayDatesBetween(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.RunPayrollResult{}, fmt.Errorf("failed to load holidays: %w", err)
	}
	holidays := company.NewDateSet(holidayDates)
	workingDays := WorkingDays(period.StartDate, period.EndDate, holidays)

	records, err := s.attendanceRepo.ListBetween(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.RunPayrollResult{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	recordsByEmployee := make(map[string]map[string]attendance.Record)
	for _, rec := range records {
		m, ok := recordsByEmployee[rec.EmployeeID]
		if !ok {
			m = make(map[string]attendance.Record)
			recordsByEmployee[rec.EmployeeID] = m
		}
		m[rec.WorkDate.Format("2006-01-02")] = rec
	}

	leaves, err := s.leaveRepo.ListApprovedOverlapping(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.RunPayrollResult{}, fmt.Errorf("failed to load approved leaves: %w", err)
	}
	leavesByEmployee := make(map[string][]leave.Record)
	for _, l := range leaves {
		leavesByEmployee[l.EmployeeID] = append(leavesByEmployee[l.EmployeeID], l)
	}

	result := payroll.RunPayrollResult{PeriodID: period.ID}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, emp := range active {
			if !emp.BaseSalary.IsPositive() {
				result.Skipped++
				continue
			}

			profile, err := s.taxProfileOrNil(txCtx, emp.ID)
			if err != nil {
				return err
			}

			if err := s.generatePayslip(txCtx, emp, profile, period, workingDays,
				recordsByEmployee[emp.ID], leavesByEmployee[emp.ID]); err != nil {
				return fmt.Errorf("failed to generate payslip for %s: %w", emp.Code, err)
			}
			result.Generated++
		}
		return nil
	})
	if err != nil {
		return payroll.RunPayrollResult{}, err
	}

	return result, nil
}

func (s *PayrollServiceImpl) taxProfileOrNil(ctx context.Context, employeeID string) (*employee.TaxProfile, error) {
	profile, err := s.employeeRepo.GetTaxProfile(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrTaxProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load tax profile: %w", err)
	}
	return &profile, nil
}

// generatePayslip writes one employee's slip for one period. Coded items are
// upserted so re-running replaces them in place; manual ad-hoc items are left
// untouched. Totals are recomputed twice: first so the statutory bases see the
// full earning side including manual items, then again after the withholding
// and social security rows land.
func (s *PayrollServiceImpl) generatePayslip(
	ctx context.Context,
	emp employee.Employee,
	profile *employee.TaxProfile,
	period payroll.PayrollPeriod,
	workingDays []time.Time,
	records map[string]attendance.Record,
	approvedLeaves []leave.Record,
) error {
	slip, _, err := s.PayrollRepository.GetOrCreatePayslip(ctx, emp.ID, period.ID)
	if err != nil {
		return fmt.Errorf("failed to get or create payslip: %w", err)
	}

	if _, err := s.PayrollRepository.UpsertItemByCode(ctx, payroll.PayslipItem{
		ID:        uuid.NewString(),
		PayslipID: slip.ID,
		ItemType:  payroll.ItemTypeEarning,
		Code:      codePtr(payroll.CodeBaseSalary),
		Name:      "Base Salary",
		Amount:    emp.BaseSalary.Round(2),
	}); err != nil {
		return fmt.Errorf("failed to upsert base salary item: %w", err)
	}

	unpaidDays := CountUnpaidDays(workingDays, records, approvedLeaves)
	unpaidAmount := UnpaidDeduction(emp.BaseSalary, len(workingDays), unpaidDays)
	if unpaidAmount.IsPositive() {
		if _, err := s.PayrollRepository.UpsertItemByCode(ctx, payroll.PayslipItem{
			ID:        uuid.NewString(),
			PayslipID: slip.ID,
			ItemType:  payroll.ItemTypeDeduction,
			Code:      codePtr(payroll.CodeUnpaid),
			Name:      "Unpaid Leave Deduction",
			Amount:    unpaidAmount,
		}); err != nil {
			return fmt.Errorf("failed to upsert unpaid deduction item: %w", err)
		}
	} else {
		// A prior run may have priced unpaid days that were since corrected.
		err := s.PayrollRepository.DeleteItemByCode(ctx, slip.ID, payroll.ItemTypeDeduction, payroll.CodeUnpaid)
		if err != nil && !errors.Is(err, payroll.ErrItemNotFound) {
			return fmt.Errorf("failed to remove stale unpaid deduction: %w", err)
		}
	}

	if err := s.recalcTotals(ctx, &slip); err != nil {
		return err
	}

	wht := tax.MonthlyWithholding(slip.GrossIncome, profile)
	if _, err := s.PayrollRepository.UpsertItemByCode(ctx, payroll.PayslipItem{
		ID:        uuid.NewString(),
		PayslipID: slip.ID,
		ItemType:  payroll.ItemTypeDeduction,
		Code:      codePtr(payroll.CodeWithholdingTax),
		Name:      "Withholding Tax",
		Amount:    wht,
	}); err != nil {
		return fmt.Errorf("failed to upsert withholding tax item: %w", err)
	}

	ssf := tax.SocialSecurity(slip.GrossIncome)
	if _, err := s.PayrollRepository.UpsertItemByCode(ctx, payroll.PayslipItem{
		ID:        uuid.NewString(),
		PayslipID: slip.ID,
		ItemType:  payroll.ItemTypeDeduction,
		Code:      codePtr(payroll.CodeSocialSecurity),
		Name:      "Social Security Fund",
		Amount:    ssf,
	}); err != nil {
		return fmt.Errorf("failed to upsert social security item: %w", err)
	}

	return s.recalcTotals(ctx, &slip)
}

func codePtr(code string) *string {
	return &code
}

// recalcTotals reloads a slip's items, recomputes the cached aggregates and
// persists them. Returns the fresh totals.
func (s *PayrollServiceImpl) recalcTotals(ctx context.Context, slip *payroll.Payslip) error {
	items, err := s.PayrollRepository.ListItems(ctx, slip.ID)
	if err != nil {
		return fmt.Errorf("failed to list payslip items: %w", err)
	}
	slip.GrossIncome, slip.TotalDeduction, slip.NetIncome = payroll.Totals(items)
	if err := s.PayrollRepository.UpdatePayslipTotals(ctx, *slip); err != nil {
		return fmt.Errorf("failed to update payslip totals: %w", err)
	}
	return nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	slip, err := s.PayrollRepository.GetPayslip(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	items, err := s.PayrollRepository.ListItems(ctx, slip.ID)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to list payslip items: %w", err)
	}

	resp := toPayslipResponse(slip, items)

	breakdown, err := s.unpaidBreakdown(ctx, slip)
	if err == nil && breakdown != nil {
		resp.Unpaid = breakdown
	}
	return resp, nil
}

// unpaidBreakdown recomputes the calendar behind a slip's unpaid deduction so
// the detail view can show working days, unpaid days and the daily rate.
func (s *PayrollServiceImpl) unpaidBreakdown(ctx context.Context, slip payroll.Payslip) (*payroll.UnpaidBreakdown, error) {
	period, err := s.PayrollRepository.GetPeriod(ctx, slip.PeriodID)
	if err != nil {
		return nil, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, slip.EmployeeID)
	if err != nil {
		return nil, err
	}

	holidayDates, err := s.companyRepo.HolidayDatesBetween(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	workingDays := WorkingDays(period.StartDate, period.EndDate, company.NewDateSet(holidayDates))

	records, err := s.attendanceRepo.ListByEmployeeBetween(ctx, slip.EmployeeID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byDate[rec.WorkDate.Format("2006-01-02")] = rec
	}

	leaves, err := s.leaveRepo.ListApprovedForEmployeeOverlapping(ctx, slip.EmployeeID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	unpaid := UnpaidDays(workingDays, byDate, leaves)
	breakdown := &payroll.UnpaidBreakdown{
		WorkingDays: len(workingDays),
		UnpaidDays:  len(unpaid),
		DailyRate:   DailyRate(emp.BaseSalary, len(workingDays)),
	}
	for _, day := range unpaid {
		breakdown.Days = append(breakdown.Days, payroll.UnpaidDayDetail{
			Date:   day.Date.Format("2006-01-02"),
			Reason: string(day.Reason),
		})
	}
	return breakdown, nil
}

// ListPayslipsByPeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslipsByPeriod(ctx context.Context, periodID string, department *string) ([]payroll.PayslipResponse, error) {
	if _, err := s.PayrollRepository.GetPeriod(ctx, periodID); err != nil {
		return nil, err
	}
	slips, err := s.PayrollRepository.ListPayslipsByPeriod(ctx, periodID, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}

	resp := make([]payroll.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		resp = append(resp, toPayslipResponse(slip, nil))
	}
	return resp, nil
}

// ListPayslipsByEmployee implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslipsByEmployee(ctx context.Context, employeeID string, year *int) ([]payroll.PayslipResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	slips, err := s.PayrollRepository.ListPayslipsByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}

	resp := make([]payroll.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		resp = append(resp, toPayslipResponse(slip, nil))
	}
	return resp, nil
}

// AddItem implements payroll.PayrollService.
func (s *PayrollServiceImpl) AddItem(ctx context.Context, payslipID string, req payroll.AddItemRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	slip, err := s.PayrollRepository.GetPayslip(ctx, payslipID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	period, err := s.PayrollRepository.GetPeriod(ctx, slip.PeriodID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if period.IsClosed {
		return payroll.PayslipResponse{}, payroll.ErrPeriodClosed
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.PayrollRepository.AddItem(txCtx, payroll.PayslipItem{
			ID:        uuid.NewString(),
			PayslipID: slip.ID,
			ItemType:  payroll.ItemType(req.ItemType),
			Name:      req.Name,
			Amount:    req.Amount,
		}); err != nil {
			return fmt.Errorf("failed to add payslip item: %w", err)
		}
		return s.recalcTotals(txCtx, &slip)
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	items, err := s.PayrollRepository.ListItems(ctx, slip.ID)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to list payslip items: %w", err)
	}
	return toPayslipResponse(slip, items), nil
}

// GetPeriodSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPeriodSummary(ctx context.Context, periodID string) (payroll.PeriodSummary, error) {
	if _, err := s.PayrollRepository.GetPeriod(ctx, periodID); err != nil {
		return payroll.PeriodSummary{}, err
	}
	return s.PayrollRepository.PeriodSummary(ctx, periodID)
}

// GetEmployeeYearSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetEmployeeYearSummary(ctx context.Context, employeeID string, year int) ([]payroll.YearSummaryRow, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	rows, err := s.PayrollRepository.EmployeeYearSummary(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load year summary: %w", err)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
