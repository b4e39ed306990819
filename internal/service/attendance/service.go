package attendance

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/siamhr/payroll-backend-go/internal/domain/attendance"
	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
	"github.com/siamhr/payroll-backend-go/internal/domain/leave"
	"github.com/siamhr/payroll-backend-go/internal/pkg/database"
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
	"github.com/siamhr/payroll-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employeeRepo employee.EmployeeRepository
	leaveRepo    leave.LeaveRepository
	companyRepo  company.CompanyRepository
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	companyRepo company.CompanyRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		employeeRepo:         employeeRepo,
		leaveRepo:            leaveRepo,
		companyRepo:          companyRepo,
	}
}

// clockToString renders a stored check-in/out timestamp back to "HH:MM".
func clockToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04")
	return &s
}

// combineClock attaches a "HH:MM" clock to a work date.
func combineClock(day time.Time, hhmm string) (time.Time, error) {
	c, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock %q: %w", hhmm, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}

func toRecordResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeCode: rec.EmployeeCode,
		EmployeeName: rec.EmployeeName,
		Date:         rec.WorkDate.Format("2006-01-02"),
		CheckIn:      clockToString(rec.CheckIn),
		CheckOut:     clockToString(rec.CheckOut),
		Status:       string(rec.Status),
		Source:       string(rec.Source),
		Remark:       rec.Remark,
	}
}

// importRow is one parsed and validated CSV line.
type importRow struct {
	line       int
	employeeID string
	workDate   time.Time
	checkIn    *time.Time
	checkOut   *time.Time
}

var importHeader = []string{"employee_code", "date", "check_in", "check_out"}

// ImportCSV implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ImportCSV(ctx context.Context, r io.Reader) (attendance.ImportReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return attendance.ImportReport{}, attendance.ErrEmptyImportFile
	}
	if err != nil {
		return attendance.ImportReport{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	if !matchesHeader(header, importHeader) {
		return attendance.ImportReport{}, attendance.ErrMissingHeader
	}

	employees, err := a.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return attendance.ImportReport{}, fmt.Errorf("failed to list employees: %w", err)
	}
	byCode := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byCode[e.Code] = e
	}

	var report attendance.ImportReport
	var rows []importRow
	var minDate, maxDate time.Time

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Errors = append(report.Errors, attendance.ImportRowError{Row: line, Message: "malformed csv row"})
			report.Skipped++
			continue
		}

		row, msg := a.parseImportRow(line, rec, byCode)
		if msg != "" {
			report.Errors = append(report.Errors, attendance.ImportRowError{Row: line, Message: msg})
			report.Skipped++
			continue
		}

		if minDate.IsZero() || row.workDate.Before(minDate) {
			minDate = row.workDate
		}
		if maxDate.IsZero() || row.workDate.After(maxDate) {
			maxDate = row.workDate
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		if len(report.Errors) == 0 {
			return attendance.ImportReport{}, attendance.ErrEmptyImportFile
		}
		return report, nil
	}

	rules, err := a.loadWorkRules(ctx)
	if err != nil {
		return attendance.ImportReport{}, err
	}
	holidayDates, err := a.companyRepo.HolidayDatesBetween(ctx, minDate, maxDate)
	if err != nil {
		return attendance.ImportReport{}, fmt.Errorf("failed to load holidays: %w", err)
	}
	holidays := company.NewDateSet(holidayDates)
	leaves, err := a.leaveRepo.ListApprovedOverlapping(ctx, minDate, maxDate)
	if err != nil {
		return attendance.ImportReport{}, fmt.Errorf("failed to load approved leaves: %w", err)
	}
	leavesByEmployee := make(map[string][]leave.Record)
	for _, l := range leaves {
		leavesByEmployee[l.EmployeeID] = append(leavesByEmployee[l.EmployeeID], l)
	}

	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		for _, row := range rows {
			status := ResolveStatus(row.workDate, row.checkIn, rules, holidays, leavesByEmployee[row.employeeID])
			_, created, err := a.AttendanceRepository.Upsert(txCtx, attendance.Record{
				ID:         uuid.NewString(),
				EmployeeID: row.employeeID,
				WorkDate:   row.workDate,
				CheckIn:    row.checkIn,
				CheckOut:   row.checkOut,
				Status:     status,
				Source:     attendance.SourceImported,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert attendance row %d: %w", row.line, err)
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
		return attendance.ImportReport{}, err
	}

	return report, nil
}

func (a *AttendanceServiceImpl) parseImportRow(line int, rec []string, byCode map[string]employee.Employee) (importRow, string) {
	if len(rec) < 2 {
		return importRow{}, "expected at least employee_code and date"
	}

	code := strings.TrimSpace(rec[0])
	if code == "" {
		return importRow{}, "employee_code is required"
	}
	emp, ok := byCode[code]
	if !ok {
		return importRow{}, fmt.Sprintf("unknown employee code %q", code)
	}

	workDate, ok := validator.IsValidDate(strings.TrimSpace(rec[1]))
	if !ok {
		return importRow{}, "date must be YYYY-MM-DD"
	}

	row := importRow{line: line, employeeID: emp.ID, workDate: workDate}

	if len(rec) > 2 {
		if in := strings.TrimSpace(rec[2]); in != "" {
			if !validator.IsValidClock(in) {
				return importRow{}, "check_in must be HH:MM (24h)"
			}
			t, err := combineClock(workDate, in)
			if err != nil {
				return importRow{}, "check_in must be HH:MM (24h)"
			}
			row.checkIn = &t
		}
	}
	if len(rec) > 3 {
		if out := strings.TrimSpace(rec[3]); out != "" {
			if !validator.IsValidClock(out) {
				return importRow{}, "check_out must be HH:MM (24h)"
			}
			t, err := combineClock(workDate, out)
			if err != nil {
				return importRow{}, "check_out must be HH:MM (24h)"
			}
			row.checkOut = &t
		}
	}

	return row, ""
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

// RecordManual implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordManual(ctx context.Context, req attendance.RecordManualRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.RecordResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	workDate, _ := validator.IsValidDate(req.Date)

	var checkIn, checkOut *time.Time
	if req.CheckIn != nil {
		t, err := combineClock(workDate, *req.CheckIn)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		checkIn = &t
	}
	if req.CheckOut != nil {
		t, err := combineClock(workDate, *req.CheckOut)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		checkOut = &t
	}

	rules, err := a.loadWorkRules(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	holidayDates, err := a.companyRepo.HolidayDatesBetween(ctx, workDate, workDate)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load holidays: %w", err)
	}
	leaves, err := a.leaveRepo.ListApprovedForEmployeeOverlapping(ctx, emp.ID, workDate, workDate)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load approved leaves: %w", err)
	}

	status := ResolveStatus(workDate, checkIn, rules, company.NewDateSet(holidayDates), leaves)

	saved, _, err := a.AttendanceRepository.Upsert(ctx, attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		WorkDate:   workDate,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     status,
		Source:     attendance.SourceManual,
		Remark:     req.Remark,
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	resp := toRecordResponse(saved)
	if resp.EmployeeCode == nil {
		resp.EmployeeCode = &emp.Code
	}
	if resp.EmployeeName == nil {
		name := emp.FullName()
		resp.EmployeeName = &name
	}
	return resp, nil
}

// DailyBoard implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DailyBoard(ctx context.Context, date string) (attendance.DailyBoardResponse, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return attendance.DailyBoardResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "must be YYYY-MM-DD"},
		}
	}

	active, err := a.employeeRepo.GetActive(ctx)
	if err != nil {
		return attendance.DailyBoardResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	records, err := a.AttendanceRepository.ListByDate(ctx, day)
	if err != nil {
		return attendance.DailyBoardResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	byEmployee := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = rec
	}

	rules, err := a.loadWorkRules(ctx)
	if err != nil {
		return attendance.DailyBoardResponse{}, err
	}
	holidayDates, err := a.companyRepo.HolidayDatesBetween(ctx, day, day)
	if err != nil {
		return attendance.DailyBoardResponse{}, fmt.Errorf("failed to load holidays: %w", err)
	}
	holidays := company.NewDateSet(holidayDates)
	leaves, err := a.leaveRepo.ListApprovedOverlapping(ctx, day, day)
	if err != nil {
		return attendance.DailyBoardResponse{}, fmt.Errorf("failed to load approved leaves: %w", err)
	}
	leavesByEmployee := make(map[string][]leave.Record)
	for _, l := range leaves {
		leavesByEmployee[l.EmployeeID] = append(leavesByEmployee[l.EmployeeID], l)
	}

	resp := attendance.DailyBoardResponse{Date: day.Format("2006-01-02")}
	for _, emp := range active {
		row := attendance.DailyBoardRow{
			EmployeeID:   emp.ID,
			EmployeeCode: emp.Code,
			EmployeeName: emp.FullName(),
		}

		var checkIn *time.Time
		if rec, ok := byEmployee[emp.ID]; ok {
			checkIn = rec.CheckIn
			row.CheckIn = clockToString(rec.CheckIn)
			row.CheckOut = clockToString(rec.CheckOut)
			row.Remark = rec.Remark
		}
		row.Status = string(ResolveStatus(day, checkIn, rules, holidays, leavesByEmployee[emp.ID]))
		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}

// EmployeeMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EmployeeMonth(ctx context.Context, employeeID string, year, month int) (attendance.MonthSummaryResponse, error) {
	if month < 1 || month > 12 {
		return attendance.MonthSummaryResponse{}, validator.ValidationErrors{
			{Field: "month", Message: "must be between 1 and 12"},
		}
	}
	if _, err := a.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.MonthSummaryResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.MonthSummaryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	records, err := a.AttendanceRepository.ListByEmployeeBetween(ctx, employeeID, start, end)
	if err != nil {
		return attendance.MonthSummaryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	byDate := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byDate[rec.WorkDate.Format("2006-01-02")] = rec
	}

	resp := attendance.MonthSummaryResponse{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Counts:     make(map[string]int),
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		day := attendance.MonthDay{Date: key}
		if rec, ok := byDate[key]; ok {
			r := toRecordResponse(rec)
			day.Record = &r
			resp.Counts[string(rec.Status)]++
		}
		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}

func (a *AttendanceServiceImpl) loadWorkRules(ctx context.Context) (company.WorkRules, error) {
	rules, err := a.companyRepo.GetWorkRules(ctx)
	if err != nil {
		if errors.Is(err, company.ErrWorkRulesNotFound) {
			return company.DefaultWorkRules(), nil
		}
		return company.WorkRules{}, fmt.Errorf("failed to load work rules: %w", err)
	}
	return rules, nil
}
