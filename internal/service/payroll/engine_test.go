package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
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

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func recordsByDate(recs ...attendance.Record) map[string]attendance.Record {
	m := make(map[string]attendance.Record, len(recs))
	for _, r := range recs {
		m[r.WorkDate.Format("2006-01-02")] = r
	}
	return m
}

func TestWorkingDays(t *testing.T) {
	// June 2026: the 1st is a Monday, 30 days, 22 weekdays.
	start := date("2026-06-01")
	end := date("2026-06-30")

	t.Run("weekdays only", func(t *testing.T) {
		days := WorkingDays(start, end, company.DateSet{})
		assert.Len(t, days, 22)
		for _, day := range days {
			assert.NotEqual(t, time.Saturday, day.Weekday())
			assert.NotEqual(t, time.Sunday, day.Weekday())
		}
	})

	t.Run("holidays are excluded", func(t *testing.T) {
		holidays := company.NewDateSet([]time.Time{date("2026-06-03")})
		days := WorkingDays(start, end, holidays)
		assert.Len(t, days, 21)
	})

	t.Run("weekend holiday changes nothing", func(t *testing.T) {
		holidays := company.NewDateSet([]time.Time{date("2026-06-06")}) // a Saturday
		days := WorkingDays(start, end, holidays)
		assert.Len(t, days, 22)
	})
}

func TestCountUnpaidDays(t *testing.T) {
	// One work week.
	week := WorkingDays(date("2026-06-01"), date("2026-06-05"), company.DateSet{})

	present := func(day string) attendance.Record {
		return attendance.Record{WorkDate: date(day), Status: attendance.StatusPresent}
	}
	absent := func(day string) attendance.Record {
		return attendance.Record{WorkDate: date(day), Status: attendance.StatusAbsent}
	}
	unpaidLeave := func(start, end string) leave.Record {
		paid := false
		return leave.Record{
			Status:     leave.StatusApproved,
			StartDate:  date(start),
			EndDate:    date(end),
			TypeIsPaid: &paid,
		}
	}
	paidLeave := func(start, end string) leave.Record {
		paid := true
		return leave.Record{
			Status:     leave.StatusApproved,
			StartDate:  date(start),
			EndDate:    date(end),
			TypeIsPaid: &paid,
		}
	}

	t.Run("full attendance costs nothing", func(t *testing.T) {
		recs := recordsByDate(
			present("2026-06-01"), present("2026-06-02"), present("2026-06-03"),
			present("2026-06-04"), present("2026-06-05"),
		)
		assert.Equal(t, 0, CountUnpaidDays(week, recs, nil))
	})

	t.Run("missing record is unpaid", func(t *testing.T) {
		recs := recordsByDate(
			present("2026-06-01"), present("2026-06-02"),
			present("2026-06-04"), present("2026-06-05"),
		)
		assert.Equal(t, 1, CountUnpaidDays(week, recs, nil))
	})

	t.Run("absent record is unpaid", func(t *testing.T) {
		recs := recordsByDate(
			present("2026-06-01"), absent("2026-06-02"), present("2026-06-03"),
			present("2026-06-04"), present("2026-06-05"),
		)
		assert.Equal(t, 1, CountUnpaidDays(week, recs, nil))
	})

	t.Run("unpaid leave is unpaid even with a record", func(t *testing.T) {
		recs := recordsByDate(
			present("2026-06-01"),
			attendance.Record{WorkDate: date("2026-06-02"), Status: attendance.StatusLeave},
			present("2026-06-03"), present("2026-06-04"), present("2026-06-05"),
		)
		leaves := []leave.Record{unpaidLeave("2026-06-02", "2026-06-02")}
		assert.Equal(t, 1, CountUnpaidDays(week, recs, leaves))
	})

	t.Run("paid leave without a record keeps pay", func(t *testing.T) {
		recs := recordsByDate(
			present("2026-06-01"), present("2026-06-02"),
			present("2026-06-04"), present("2026-06-05"),
		)
		leaves := []leave.Record{paidLeave("2026-06-03", "2026-06-03")}
		assert.Equal(t, 0, CountUnpaidDays(week, recs, leaves))
	})

	t.Run("multi day unpaid leave counts each working day", func(t *testing.T) {
		leaves := []leave.Record{unpaidLeave("2026-06-02", "2026-06-04")}
		recs := recordsByDate(present("2026-06-01"), present("2026-06-05"))
		assert.Equal(t, 3, CountUnpaidDays(week, recs, leaves))
	})

	t.Run("each day carries its reason", func(t *testing.T) {
		recs := recordsByDate(
			present("2026-06-01"),
			absent("2026-06-03"),
			present("2026-06-05"),
		)
		leaves := []leave.Record{unpaidLeave("2026-06-02", "2026-06-02")}

		days := UnpaidDays(week, recs, leaves)
		assert.Len(t, days, 3)
		assert.Equal(t, ReasonUnpaidLeave, days[0].Reason)
		assert.Equal(t, date("2026-06-02"), days[0].Date)
		assert.Equal(t, ReasonAbsent, days[1].Reason)
		assert.Equal(t, date("2026-06-03"), days[1].Date)
		assert.Equal(t, ReasonNoRecord, days[2].Reason)
		assert.Equal(t, date("2026-06-04"), days[2].Date)
	})
}

func TestUnpaidDeduction(t *testing.T) {
	t.Run("rounds daily rate before multiplying", func(t *testing.T) {
		// 30000 / 22 = 1363.6363... -> 1363.64; x2 = 2727.28.
		got := UnpaidDeduction(d("30000"), 22, 2)
		assert.True(t, d("2727.28").Equal(got), "got %s", got)
	})

	t.Run("zero unpaid days deducts nothing", func(t *testing.T) {
		got := UnpaidDeduction(d("30000"), 22, 0)
		assert.True(t, got.IsZero(), "got %s", got)
	})

	t.Run("zero working days divides by one", func(t *testing.T) {
		got := UnpaidDeduction(d("30000"), 0, 1)
		assert.True(t, d("30000").Equal(got), "got %s", got)
	})
}

func TestDailyRate(t *testing.T) {
	got := DailyRate(d("30000"), 22)
	assert.True(t, d("1363.64").Equal(got), "got %s", got)
}
