package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/siamhr/payroll-backend-go/internal/domain/attendance"
	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/domain/leave"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func clockOn(day time.Time, hhmm string) *time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	c := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	return &c
}

func approvedLeave(start, end string) leave.Record {
	return leave.Record{
		Status:    leave.StatusApproved,
		StartDate: date(start),
		EndDate:   date(end),
	}
}

func TestResolveStatus(t *testing.T) {
	rules := company.WorkRules{WorkStart: "09:00", LateAfterMinutes: 15}
	day := date("2026-03-02") // a Monday

	t.Run("holiday wins over everything", func(t *testing.T) {
		holidays := company.NewDateSet([]time.Time{day})
		leaves := []leave.Record{approvedLeave("2026-03-02", "2026-03-02")}

		got := ResolveStatus(day, clockOn(day, "08:30"), rules, holidays, leaves)
		assert.Equal(t, attendance.StatusHoliday, got)
	})

	t.Run("approved leave wins over check-in", func(t *testing.T) {
		leaves := []leave.Record{approvedLeave("2026-03-01", "2026-03-03")}

		got := ResolveStatus(day, clockOn(day, "08:30"), rules, company.DateSet{}, leaves)
		assert.Equal(t, attendance.StatusLeave, got)
	})

	t.Run("pending leave does not count", func(t *testing.T) {
		rec := approvedLeave("2026-03-02", "2026-03-02")
		rec.Status = leave.StatusPending

		got := ResolveStatus(day, nil, rules, company.DateSet{}, []leave.Record{rec})
		assert.Equal(t, attendance.StatusAbsent, got)
	})

	t.Run("no check-in means absent", func(t *testing.T) {
		got := ResolveStatus(day, nil, rules, company.DateSet{}, nil)
		assert.Equal(t, attendance.StatusAbsent, got)
	})

	t.Run("check-in exactly at tolerance is present", func(t *testing.T) {
		got := ResolveStatus(day, clockOn(day, "09:15"), rules, company.DateSet{}, nil)
		assert.Equal(t, attendance.StatusPresent, got)
	})

	t.Run("one minute past tolerance is late", func(t *testing.T) {
		got := ResolveStatus(day, clockOn(day, "09:16"), rules, company.DateSet{}, nil)
		assert.Equal(t, attendance.StatusLate, got)
	})

	t.Run("early check-in is present", func(t *testing.T) {
		got := ResolveStatus(day, clockOn(day, "07:58"), rules, company.DateSet{}, nil)
		assert.Equal(t, attendance.StatusPresent, got)
	})

	t.Run("late check-out alone never makes a day late", func(t *testing.T) {
		got := ResolveStatus(day, clockOn(day, "09:00"), rules, company.DateSet{}, nil)
		assert.Equal(t, attendance.StatusPresent, got)
	})

	t.Run("zero tolerance flags any lateness", func(t *testing.T) {
		strict := company.WorkRules{WorkStart: "09:00", LateAfterMinutes: 0}
		got := ResolveStatus(day, clockOn(day, "09:01"), strict, company.DateSet{}, nil)
		assert.Equal(t, attendance.StatusLate, got)
	})

	t.Run("malformed work start falls back to defaults", func(t *testing.T) {
		broken := company.WorkRules{WorkStart: "not-a-clock", LateAfterMinutes: 15}
		got := ResolveStatus(day, clockOn(day, "09:10"), broken, company.DateSet{}, nil)
		assert.Equal(t, attendance.StatusPresent, got)
	})
}
