// Package attendance implements attendance tracking: CSV import, manual
// records, daily boards and per-month summaries, with a single shared status
// resolver.
package attendance

import (
	"time"

	"github.com/siamhr/payroll-backend-go/internal/domain/attendance"
	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/domain/leave"
)

// ResolveStatus derives a day's status from its inputs in strict priority
// order: holiday, then approved leave, then missing check-in means absent,
// then late when the check-in exceeds work start plus the tolerance, otherwise
// present. Check-out never influences the status.
func ResolveStatus(
	workDate time.Time,
	checkIn *time.Time,
	rules company.WorkRules,
	holidays company.DateSet,
	approvedLeaves []leave.Record,
) attendance.Status {
	if holidays.Has(workDate) {
		return attendance.StatusHoliday
	}
	for _, rec := range approvedLeaves {
		if rec.Covers(workDate) {
			return attendance.StatusLeave
		}
	}
	if checkIn == nil {
		return attendance.StatusAbsent
	}

	startMin, err := rules.StartMinutes()
	if err != nil {
		startMin, _ = company.DefaultWorkRules().StartMinutes()
	}
	threshold := startMin + rules.LateAfterMinutes

	inMin := checkIn.Hour()*60 + checkIn.Minute()
	if inMin > threshold {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}
