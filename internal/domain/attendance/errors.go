package attendance

import "errors"

var (
	ErrRecordNotFound  = errors.New("attendance record not found")
	ErrMissingHeader   = errors.New("csv is missing required header columns")
	ErrEmptyImportFile = errors.New("import file contains no data rows")
)
