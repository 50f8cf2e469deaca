package salary

import (
	"context"
	"time"
)

// SalaryService computes and serves pay-period salaries.
type SalaryService interface {
	// Calculate computes (or recomputes) the salary for one pay period and
	// upserts it. ErrNoRecordsInPeriod if no attendance intersects the
	// period bounds.
	Calculate(ctx context.Context, contractID string, year int, month time.Month) (SalaryResponse, error)

	// RecalculateIfPresent recomputes an already-calculated salary. A period
	// that has never been calculated is a valid state, not an error, so a
	// missing salary is a no-op.
	RecalculateIfPresent(ctx context.Context, contractID string, year int, month time.Month) error

	// Get retrieves a previously calculated salary, ErrSalaryNotFound if the
	// period has never been calculated
	Get(ctx context.Context, contractID string, year int, month time.Month) (SalaryResponse, error)
}
