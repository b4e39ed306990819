package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/siamhr/payroll-backend-go/internal/config"
	appHTTP "github.com/siamhr/payroll-backend-go/internal/handler/http"
	"github.com/siamhr/payroll-backend-go/internal/pkg/database"
	"github.com/siamhr/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/siamhr/payroll-backend-go/internal/service/attendance"
	companyService "github.com/siamhr/payroll-backend-go/internal/service/company"
	employeeService "github.com/siamhr/payroll-backend-go/internal/service/employee"
	leaveService "github.com/siamhr/payroll-backend-go/internal/service/leave"
	payrollService "github.com/siamhr/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, leaveRepo, companyRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	companySvc := companyService.NewCompanyService(companyRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, attendanceRepo, leaveRepo, companyRepo)

	if err := payrollSvc.SeedDefaults(context.Background()); err != nil {
		fmt.Println("Error seeding payroll categories:", err)
		return
	}

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		companyHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
