package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetWorkRules(w http.ResponseWriter, r *http.Request)
	UpdateWorkRules(w http.ResponseWriter, r *http.Request)

	AddHoliday(w http.ResponseWriter, r *http.Request)
	RemoveHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// GetWorkRules implements CompanyHandler.
func (h *CompanyHandlerImpl) GetWorkRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.companyService.GetWorkRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, company.WorkRulesResponse{
		WorkStart:        rules.WorkStart,
		LateAfterMinutes: rules.LateAfterMinutes,
	})
}

// UpdateWorkRules implements CompanyHandler.
func (h *CompanyHandlerImpl) UpdateWorkRules(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateWorkRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update work rules decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.companyService.UpdateWorkRules(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work rules updated successfully", resp)
}

// AddHoliday implements CompanyHandler.
func (h *CompanyHandlerImpl) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req company.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.companyService.AddHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday added successfully", resp)
}

// RemoveHoliday implements CompanyHandler.
func (h *CompanyHandlerImpl) RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Holiday ID is required", nil)
		return
	}

	if err := h.companyService.RemoveHoliday(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday removed successfully", nil)
}

// ListHolidays implements CompanyHandler.
func (h *CompanyHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	resp, err := h.companyService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
