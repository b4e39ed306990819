package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/siamhr/payroll-backend-go/internal/domain/attendance"
	"github.com/siamhr/payroll-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	RecordManual(w http.ResponseWriter, r *http.Request)
	DailyBoard(w http.ResponseWriter, r *http.Request)
	EmployeeMonth(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Import implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	reader, cleanup, err := csvStream(r)
	if err != nil {
		response.BadRequest(w, "CSV file is required", nil)
		return
	}
	defer cleanup()

	report, err := h.attendanceService.ImportCSV(r.Context(), reader)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance import completed", report)
}

// RecordManual implements AttendanceHandler.
func (h *AttendanceHandlerImpl) RecordManual(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.RecordManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance recorded successfully", resp)
}

// DailyBoard implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DailyBoard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required", nil)
		return
	}

	resp, err := h.attendanceService.DailyBoard(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// EmployeeMonth implements AttendanceHandler.
func (h *AttendanceHandlerImpl) EmployeeMonth(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year query parameter must be a number", nil)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "month query parameter must be a number", nil)
		return
	}

	resp, err := h.attendanceService.EmployeeMonth(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
