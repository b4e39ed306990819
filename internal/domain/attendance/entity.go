package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHoliday Status = "holiday"
)

type Source string

const (
	SourceImported Source = "imported"
	SourceManual   Source = "manual"
)

// Record is one employee's clock data for one calendar date. At most one
// record exists per (employee, work date).
type Record struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	Source     Source
	Remark     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeCode *string
	EmployeeName *string
}
