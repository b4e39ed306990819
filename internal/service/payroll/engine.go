// Package payroll implements pay-period management and payslip generation.
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/siamhr/payroll-backend-go/internal/domain/attendance"
	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/domain/leave"
)

// WorkingDays enumerates the Monday-to-Friday dates in [start, end] that are
// not holidays. Weekend work and shift calendars are out of scope.
func WorkingDays(start, end time.Time, holidays company.DateSet) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if holidays.Has(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

type UnpaidReason string

const (
	ReasonUnpaidLeave UnpaidReason = "unpaid_leave"
	ReasonNoRecord    UnpaidReason = "no_record"
	ReasonAbsent      UnpaidReason = "absent"
)

// UnpaidDay is one working day an employee loses pay for, with the rule that
// flagged it.
type UnpaidDay struct {
	Date   time.Time
	Reason UnpaidReason
}

// UnpaidDays lists the working days an employee loses pay for: days on
// approved unpaid leave, days with no attendance record at all, and days
// recorded as absent. Paid leave, holiday, present and late days keep pay.
func UnpaidDays(
	workingDays []time.Time,
	records map[string]attendance.Record,
	approvedLeaves []leave.Record,
) []UnpaidDay {
	var unpaid []UnpaidDay
	for _, day := range workingDays {
		if onUnpaidLeave(day, approvedLeaves) {
			unpaid = append(unpaid, UnpaidDay{Date: day, Reason: ReasonUnpaidLeave})
			continue
		}

		rec, ok := records[day.Format("2006-01-02")]
		if !ok {
			if onLeave(day, approvedLeaves) {
				continue
			}
			unpaid = append(unpaid, UnpaidDay{Date: day, Reason: ReasonNoRecord})
			continue
		}
		if rec.Status == attendance.StatusAbsent {
			unpaid = append(unpaid, UnpaidDay{Date: day, Reason: ReasonAbsent})
		}
	}
	return unpaid
}

// CountUnpaidDays is the counting shorthand used by payslip generation.
func CountUnpaidDays(
	workingDays []time.Time,
	records map[string]attendance.Record,
	approvedLeaves []leave.Record,
) int {
	return len(UnpaidDays(workingDays, records, approvedLeaves))
}

func onUnpaidLeave(day time.Time, leaves []leave.Record) bool {
	for _, l := range leaves {
		if l.Covers(day) && l.IsUnpaid() {
			return true
		}
	}
	return false
}

func onLeave(day time.Time, leaves []leave.Record) bool {
	for _, l := range leaves {
		if l.Covers(day) {
			return true
		}
	}
	return false
}

// UnpaidDeduction prices unpaid days against the period's calendar. The daily
// rate is rounded to 2dp before multiplying, then the product is rounded
// again; changing that order changes amounts by satang, so keep it.
func UnpaidDeduction(baseSalary decimal.Decimal, workingDays, unpaidDays int) decimal.Decimal {
	divisor := workingDays
	if divisor < 1 {
		divisor = 1
	}
	dailyRate := baseSalary.Div(decimal.NewFromInt(int64(divisor))).Round(2)
	return dailyRate.Mul(decimal.NewFromInt(int64(unpaidDays))).Round(2)
}

// DailyRate exposes the rounded per-day rate used by UnpaidDeduction, for
// payslip breakdowns.
func DailyRate(baseSalary decimal.Decimal, workingDays int) decimal.Decimal {
	divisor := workingDays
	if divisor < 1 {
		divisor = 1
	}
	return baseSalary.Div(decimal.NewFromInt(int64(divisor))).Round(2)
}
