package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wagely/payroll-backend-go/internal/domain/salary"
)

type salaryRepository struct {
	store *Store
}

func NewSalaryRepository(store *Store) salary.SalaryRepository {
	return &salaryRepository{store: store}
}

func (r *salaryRepository) Create(_ context.Context, s salary.PeriodSalary) (salary.PeriodSalary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.store.salaries[s.ID] = s
	return s, nil
}

func (r *salaryRepository) GetByContractAndPeriod(_ context.Context, contractID string, year int, month time.Month) (salary.PeriodSalary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.salaries {
		if s.ContractID == contractID && s.Year == year && s.Month == month {
			return s, nil
		}
	}
	return salary.PeriodSalary{}, salary.ErrSalaryNotFound
}

func (r *salaryRepository) Update(_ context.Context, s salary.PeriodSalary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.salaries[s.ID]; !ok {
		return salary.ErrSalaryNotFound
	}
	s.UpdatedAt = time.Now()
	r.store.salaries[s.ID] = s
	return nil
}
