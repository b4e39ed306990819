package company

import (
	"context"
	"time"
)

// CompanyRepository defines data access for work rules and the holiday
// calendar.
type CompanyRepository interface {
	GetWorkRules(ctx context.Context) (WorkRules, error)
	UpsertWorkRules(ctx context.Context, rules WorkRules) (WorkRules, error)

	CreateHoliday(ctx context.Context, holiday Holiday) (Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context) ([]Holiday, error)

	// HolidayDatesBetween returns every holiday date in [start, end],
	// inclusive, for fast set lookups.
	HolidayDatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error)
}
