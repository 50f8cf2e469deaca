package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wagely/payroll-backend-go/internal/domain/allowance"
)

type allowanceRepository struct {
	store *Store
}

func NewAllowanceRepository(store *Store) allowance.AllowanceRepository {
	return &allowanceRepository{store: store}
}

func (r *allowanceRepository) Create(_ context.Context, w allowance.WeeklyAllowance) (allowance.WeeklyAllowance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	r.store.allowances[w.ID] = w
	return w, nil
}

func (r *allowanceRepository) GetByID(_ context.Context, id string) (allowance.WeeklyAllowance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	w, ok := r.store.allowances[id]
	if !ok {
		return allowance.WeeklyAllowance{}, allowance.ErrAllowanceNotFound
	}
	return w, nil
}

func (r *allowanceRepository) GetByContractAndWeekStart(_ context.Context, contractID string, weekStart time.Time) (allowance.WeeklyAllowance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, w := range r.store.allowances {
		if w.ContractID == contractID && w.WeekStart.Equal(weekStart) {
			return w, nil
		}
	}
	return allowance.WeeklyAllowance{}, allowance.ErrAllowanceNotFound
}

func (r *allowanceRepository) Update(_ context.Context, w allowance.WeeklyAllowance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.allowances[w.ID]; !ok {
		return allowance.ErrAllowanceNotFound
	}
	w.UpdatedAt = time.Now()
	r.store.allowances[w.ID] = w
	return nil
}

func (r *allowanceRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.allowances[id]; !ok {
		return allowance.ErrAllowanceNotFound
	}
	delete(r.store.allowances, id)
	return nil
}

func (r *allowanceRepository) ListByContractAndMonth(_ context.Context, contractID string, year int, month time.Month) ([]allowance.WeeklyAllowance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []allowance.WeeklyAllowance
	for _, w := range r.store.allowances {
		if w.ContractID != contractID {
			continue
		}
		if w.WeekStart.Year() == year && w.WeekStart.Month() == month {
			out = append(out, w)
		}
	}
	return out, nil
}
