package leave

import "errors"

var (
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrLeaveTypeCodeExists = errors.New("leave type code already exists")
	ErrRecordNotFound      = errors.New("leave record not found")
	ErrAlreadyProcessed    = errors.New("leave record already processed")
)
