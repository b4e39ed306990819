package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrTaxProfileNotFound = errors.New("tax profile not found")
	ErrInvalidStatus      = errors.New("invalid employee status")
)
