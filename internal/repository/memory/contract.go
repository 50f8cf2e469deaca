package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wagely/payroll-backend-go/internal/domain/contract"
)

type contractRepository struct {
	store *Store
}

func NewContractRepository(store *Store) contract.ContractRepository {
	return &contractRepository{store: store}
}

func (r *contractRepository) GetByID(_ context.Context, id string) (contract.Contract, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.contracts[id]
	if !ok {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

func (r *contractRepository) Create(_ context.Context, c contract.Contract) (contract.Contract, error) {
	if c.PaymentDay < 1 || c.PaymentDay > 31 {
		return contract.Contract{}, contract.ErrInvalidPaymentDay
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.store.contracts[c.ID] = c
	return c, nil
}
