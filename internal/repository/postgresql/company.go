package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetWorkRules implements company.CompanyRepository. A single row holds the
// company-wide rules.
func (c *companyRepositoryImpl) GetWorkRules(ctx context.Context) (company.WorkRules, error) {
	q := database.QuerierFrom(ctx, c.db)

	query := `
		SELECT id, work_start, late_after_minutes, updated_at
		FROM work_rules
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var rules company.WorkRules
	err := q.QueryRow(ctx, query).Scan(
		&rules.ID, &rules.WorkStart, &rules.LateAfterMinutes, &rules.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.WorkRules{}, company.ErrWorkRulesNotFound
		}
		return company.WorkRules{}, fmt.Errorf("failed to get work rules: %w", err)
	}
	return rules, nil
}

// UpsertWorkRules implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpsertWorkRules(ctx context.Context, rules company.WorkRules) (company.WorkRules, error) {
	q := database.QuerierFrom(ctx, c.db)

	if rules.ID == "" {
		rules.ID = uuid.NewString()
	}

	query := `
		INSERT INTO work_rules (id, work_start, late_after_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			work_start = EXCLUDED.work_start,
			late_after_minutes = EXCLUDED.late_after_minutes,
			updated_at = NOW()
		RETURNING id, work_start, late_after_minutes, updated_at
	`

	var saved company.WorkRules
	err := q.QueryRow(ctx, query, rules.ID, rules.WorkStart, rules.LateAfterMinutes).Scan(
		&saved.ID, &saved.WorkStart, &saved.LateAfterMinutes, &saved.UpdatedAt,
	)
	if err != nil {
		return company.WorkRules{}, fmt.Errorf("failed to upsert work rules: %w", err)
	}
	return saved, nil
}

// CreateHoliday implements company.CompanyRepository.
func (c *companyRepositoryImpl) CreateHoliday(ctx context.Context, holiday company.Holiday) (company.Holiday, error) {
	q := database.QuerierFrom(ctx, c.db)

	exists := false
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)`, holiday.Date).Scan(&exists); err != nil {
		return company.Holiday{}, fmt.Errorf("failed to check holiday date: %w", err)
	}
	if exists {
		return company.Holiday{}, company.ErrHolidayExists
	}

	query := `
		INSERT INTO holidays (id, date, name, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date, name, is_public
	`

	var created company.Holiday
	err := q.QueryRow(ctx, query, holiday.ID, holiday.Date, holiday.Name, holiday.IsPublic).Scan(
		&created.ID, &created.Date, &created.Name, &created.IsPublic,
	)
	if err != nil {
		return company.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// DeleteHoliday implements company.CompanyRepository.
func (c *companyRepositoryImpl) DeleteHoliday(ctx context.Context, id string) error {
	q := database.QuerierFrom(ctx, c.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrHolidayNotFound
	}
	return nil
}

// ListHolidays implements company.CompanyRepository.
func (c *companyRepositoryImpl) ListHolidays(ctx context.Context) ([]company.Holiday, error) {
	q := database.QuerierFrom(ctx, c.db)

	query := `SELECT id, date, name, is_public FROM holidays ORDER BY date`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []company.Holiday
	for rows.Next() {
		var h company.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.IsPublic); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// HolidayDatesBetween implements company.CompanyRepository.
func (c *companyRepositoryImpl) HolidayDatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	q := database.QuerierFrom(ctx, c.db)

	query := `SELECT date FROM holidays WHERE date BETWEEN $1 AND $2 ORDER BY date`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
