package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID, ErrRecordNotFound if absent
	GetByID(ctx context.Context, id string) (Record, error)

	// Update replaces all mutable fields of an existing record
	Update(ctx context.Context, record Record) error

	// Delete hard-removes a record. Only Scheduled records are ever
	// hard-deleted; Completed ones are soft-deleted via status.
	Delete(ctx context.Context, id string) error

	// ListByAllowanceID retrieves the member records of a weekly aggregate
	ListByAllowanceID(ctx context.Context, allowanceID string) ([]Record, error)

	// ListByContractAndDateRange retrieves records with from <= work date <= to
	ListByContractAndDateRange(ctx context.Context, contractID string, from, to time.Time) ([]Record, error)
}
