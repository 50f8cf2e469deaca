package salary

import (
	"context"
	"time"
)

// SalaryRepository defines data access for period salaries.
type SalaryRepository interface {
	// Create creates a new period salary
	Create(ctx context.Context, s PeriodSalary) (PeriodSalary, error)

	// GetByContractAndPeriod retrieves the salary of one pay period,
	// ErrSalaryNotFound if it has not been calculated yet
	GetByContractAndPeriod(ctx context.Context, contractID string, year int, month time.Month) (PeriodSalary, error)

	// Update replaces the derived fields of an existing salary
	Update(ctx context.Context, s PeriodSalary) error
}
