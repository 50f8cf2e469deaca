package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrRecordDeleted    = errors.New("attendance record has been deleted")
	ErrNotScheduled     = errors.New("only a scheduled record can be completed")
	ErrNotHardDeletable = errors.New("only a scheduled record can be deleted directly")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidBreak     = errors.New("break must be non-negative and shorter than the shift")
)
