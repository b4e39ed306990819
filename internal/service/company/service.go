// Package company implements work-rule and holiday-calendar management.
package company

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
}

func NewCompanyService(repo company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{CompanyRepository: repo}
}

// GetWorkRules implements company.CompanyService.
func (s *CompanyServiceImpl) GetWorkRules(ctx context.Context) (company.WorkRules, error) {
	rules, err := s.CompanyRepository.GetWorkRules(ctx)
	if err != nil {
		if errors.Is(err, company.ErrWorkRulesNotFound) {
			return s.CompanyRepository.UpsertWorkRules(ctx, company.DefaultWorkRules())
		}
		return company.WorkRules{}, fmt.Errorf("failed to get work rules: %w", err)
	}
	return rules, nil
}

// UpdateWorkRules implements company.CompanyService.
func (s *CompanyServiceImpl) UpdateWorkRules(ctx context.Context, req company.UpdateWorkRulesRequest) (company.WorkRulesResponse, error) {
	if err := req.Validate(); err != nil {
		return company.WorkRulesResponse{}, err
	}

	rules, err := s.GetWorkRules(ctx)
	if err != nil {
		return company.WorkRulesResponse{}, err
	}

	if req.WorkStart != nil {
		rules.WorkStart = *req.WorkStart
	}
	if req.LateAfterMinutes != nil {
		rules.LateAfterMinutes = *req.LateAfterMinutes
	}
	rules.UpdatedAt = time.Now().UTC()

	saved, err := s.CompanyRepository.UpsertWorkRules(ctx, rules)
	if err != nil {
		return company.WorkRulesResponse{}, fmt.Errorf("failed to update work rules: %w", err)
	}

	return company.WorkRulesResponse{
		WorkStart:        saved.WorkStart,
		LateAfterMinutes: saved.LateAfterMinutes,
	}, nil
}

func toHolidayResponse(h company.Holiday) company.HolidayResponse {
	return company.HolidayResponse{
		ID:       h.ID,
		Date:     h.Date.Format("2006-01-02"),
		Name:     h.Name,
		IsPublic: h.IsPublic,
	}
}

// AddHoliday implements company.CompanyService.
func (s *CompanyServiceImpl) AddHoliday(ctx context.Context, req company.CreateHolidayRequest) (company.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return company.HolidayResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	holiday := company.Holiday{
		ID:   uuid.NewString(),
		Date: date,
		Name: req.Name,
	}
	if req.IsPublic != nil {
		holiday.IsPublic = *req.IsPublic
	}

	created, err := s.CompanyRepository.CreateHoliday(ctx, holiday)
	if err != nil {
		if errors.Is(err, company.ErrHolidayExists) {
			return company.HolidayResponse{}, company.ErrHolidayExists
		}
		return company.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return toHolidayResponse(created), nil
}

// RemoveHoliday implements company.CompanyService.
func (s *CompanyServiceImpl) RemoveHoliday(ctx context.Context, id string) error {
	return s.CompanyRepository.DeleteHoliday(ctx, id)
}

// ListHolidays implements company.CompanyService.
func (s *CompanyServiceImpl) ListHolidays(ctx context.Context) ([]company.HolidayResponse, error) {
	holidays, err := s.CompanyRepository.ListHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	resp := make([]company.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, toHolidayResponse(h))
	}
	return resp, nil
}
