package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	companyHandler CompanyHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "siamhr-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Post("/import", employeeHandler.Import)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.Get)
				r.Put("/", employeeHandler.Update)
				r.Patch("/status", employeeHandler.UpdateStatus)

				r.Get("/tax-profile", employeeHandler.GetTaxProfile)
				r.Put("/tax-profile", employeeHandler.UpsertTaxProfile)

				r.Get("/attendance", attendanceHandler.EmployeeMonth)
				r.Get("/payslips", payrollHandler.ListEmployeePayslips)
				r.Get("/payslips/summary", payrollHandler.EmployeeYearSummary)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/", attendanceHandler.RecordManual)
			r.Post("/import", attendanceHandler.Import)
			r.Get("/daily", attendanceHandler.DailyBoard)
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Route("/types", func(r chi.Router) {
				r.Get("/", leaveHandler.ListTypes)
				r.Post("/", leaveHandler.CreateType)
				r.Delete("/{id}", leaveHandler.DeleteType)
			})

			r.Get("/", leaveHandler.ListRecords)
			r.Post("/", leaveHandler.CreateRecord)
			r.Post("/{id}/approve", leaveHandler.ApproveRecord)
			r.Post("/{id}/reject", leaveHandler.RejectRecord)
		})

		r.Route("/company", func(r chi.Router) {
			r.Get("/work-rules", companyHandler.GetWorkRules)
			r.Put("/work-rules", companyHandler.UpdateWorkRules)

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", companyHandler.ListHolidays)
				r.Post("/", companyHandler.AddHoliday)
				r.Delete("/{id}", companyHandler.RemoveHoliday)
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Route("/periods", func(r chi.Router) {
				r.Get("/", payrollHandler.ListPeriods)
				r.Post("/", payrollHandler.CreatePeriod)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetPeriod)
					r.Post("/close", payrollHandler.ClosePeriod)
					r.Post("/run", payrollHandler.Run)
					r.Get("/payslips", payrollHandler.ListPayslipsByPeriod)
					r.Get("/summary", payrollHandler.PeriodSummary)
				})
			})

			r.Route("/payslips/{id}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetPayslip)
				r.Post("/items", payrollHandler.AddPayslipItem)
			})
		})
	})
	return r
}
