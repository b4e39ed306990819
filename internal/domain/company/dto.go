package company

import (
	"github.com/siamhr/payroll-backend-go/internal/pkg/validator"
)

type UpdateWorkRulesRequest struct {
	WorkStart        *string `json:"work_start,omitempty"`
	LateAfterMinutes *int    `json:"late_after_minutes,omitempty"`
}

func (r *UpdateWorkRulesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkStart != nil && !validator.IsValidClock(*r.WorkStart) {
		errs = append(errs, validator.ValidationError{Field: "work_start", Message: "must be HH:MM (24h)"})
	}
	if r.LateAfterMinutes != nil && *r.LateAfterMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_after_minutes", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkRulesResponse struct {
	WorkStart        string `json:"work_start"`
	LateAfterMinutes int    `json:"late_after_minutes"`
}

type CreateHolidayRequest struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}
