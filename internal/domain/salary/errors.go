package salary

import "errors"

var (
	ErrSalaryNotFound    = errors.New("period salary not found")
	ErrNoRecordsInPeriod = errors.New("no attendance records in the pay period")
	ErrInvalidPeriod     = errors.New("invalid pay period")
)
