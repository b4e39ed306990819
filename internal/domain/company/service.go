package company

import "context"

// CompanyService manages work rules and the holiday calendar.
type CompanyService interface {
	// GetWorkRules returns the current rules, materializing defaults when no
	// row exists yet.
	GetWorkRules(ctx context.Context) (WorkRules, error)
	UpdateWorkRules(ctx context.Context, req UpdateWorkRulesRequest) (WorkRulesResponse, error)

	AddHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	RemoveHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
}
