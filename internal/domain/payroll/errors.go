package payroll

import "errors"

var (
	ErrPeriodNotFound  = errors.New("payroll period not found")
	ErrPeriodExists    = errors.New("payroll period already exists for this month and year")
	ErrPeriodClosed    = errors.New("payroll period is closed")
	ErrPayslipNotFound = errors.New("payslip not found")
	ErrItemNotFound    = errors.New("payslip item not found")
	ErrInvalidItemType = errors.New("invalid payslip item type")
)
