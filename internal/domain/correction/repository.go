package correction

import (
	"context"
	"time"
)

// CorrectionRepository defines data access for correction requests.
type CorrectionRepository interface {
	// Create creates a new correction request
	Create(ctx context.Context, r CorrectionRequest) (CorrectionRequest, error)

	// GetByID retrieves a request, ErrRequestNotFound if absent
	GetByID(ctx context.Context, id string) (CorrectionRequest, error)

	// Update replaces the mutable fields of an existing request
	Update(ctx context.Context, r CorrectionRequest) error

	// Delete removes a request (requester cancellation)
	Delete(ctx context.Context, id string) error

	// GetPendingByRecordID finds the pending request targeting a record,
	// ErrRequestNotFound if there is none
	GetPendingByRecordID(ctx context.Context, recordID string) (CorrectionRequest, error)

	// ListPendingCreates retrieves pending Create requests of a contract on
	// one date
	ListPendingCreates(ctx context.Context, contractID string, date time.Time) ([]CorrectionRequest, error)
}
