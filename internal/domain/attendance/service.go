package attendance

import (
	"context"
	"io"
)

// AttendanceService defines business logic for attendance tracking.
type AttendanceService interface {
	// ImportCSV ingests clock data rows (employee_code, date, check_in,
	// check_out). The whole batch commits in one transaction; rows that fail
	// validation are reported without aborting it. Statuses are resolved as
	// rows are written.
	ImportCSV(ctx context.Context, r io.Reader) (ImportReport, error)

	// RecordManual creates or overwrites one day's record by hand and
	// re-resolves its status.
	RecordManual(ctx context.Context, req RecordManualRequest) (RecordResponse, error)

	// DailyBoard resolves a status for every active employee on a date, even
	// those without a record.
	DailyBoard(ctx context.Context, date string) (DailyBoardResponse, error)

	// EmployeeMonth lists all days of a month for one employee with status
	// counts.
	EmployeeMonth(ctx context.Context, employeeID string, year, month int) (MonthSummaryResponse, error)
}
