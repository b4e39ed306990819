package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType classifies leave (sick, personal, vacation, unpaid, ...). IsPaid
// decides whether days on this leave count against pay during a payroll run.
type LeaveType struct {
	ID             string
	Code           string
	Name           string
	MaxDaysPerYear decimal.Decimal
	IsPaid         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type RecordStatus string

const (
	StatusPending  RecordStatus = "pending"
	StatusApproved RecordStatus = "approved"
	StatusRejected RecordStatus = "rejected"
)

// Record is one leave request spanning [StartDate, EndDate] with a fractional
// day count. Only approved records affect attendance and payroll.
type Record struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Days        decimal.Decimal
	Reason      *string
	Status      RecordStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	LeaveTypeName *string
	LeaveTypeCode *string
	TypeIsPaid    *bool
	EmployeeCode  *string
	EmployeeName  *string
}

// Covers reports whether this record is approved and spans the given date.
func (r Record) Covers(date time.Time) bool {
	if r.Status != StatusApproved {
		return false
	}
	d := date.Format("2006-01-02")
	return r.StartDate.Format("2006-01-02") <= d && d <= r.EndDate.Format("2006-01-02")
}

// IsUnpaid reports whether the record's leave type withholds pay. Records
// with no joined type information default to paid.
func (r Record) IsUnpaid() bool {
	return r.TypeIsPaid != nil && !*r.TypeIsPaid
}
