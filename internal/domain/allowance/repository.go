package allowance

import (
	"context"
	"time"
)

// AllowanceRepository defines data access for weekly allowance aggregates.
type AllowanceRepository interface {
	// Create creates a new aggregate
	Create(ctx context.Context, w WeeklyAllowance) (WeeklyAllowance, error)

	// GetByID retrieves an aggregate, ErrAllowanceNotFound if absent
	GetByID(ctx context.Context, id string) (WeeklyAllowance, error)

	// GetByContractAndWeekStart retrieves the (contract, week) aggregate,
	// ErrAllowanceNotFound if absent
	GetByContractAndWeekStart(ctx context.Context, contractID string, weekStart time.Time) (WeeklyAllowance, error)

	// Update replaces the derived fields of an existing aggregate
	Update(ctx context.Context, w WeeklyAllowance) error

	// Delete removes an aggregate whose member set became empty
	Delete(ctx context.Context, id string) error

	// ListByContractAndMonth retrieves aggregates whose week start falls in
	// (year, month)
	ListByContractAndMonth(ctx context.Context, contractID string, year int, month time.Month) ([]WeeklyAllowance, error)
}
