package contract

import "context"

type ContractRepository interface {
	// GetByID retrieves a contract, ErrContractNotFound if absent
	GetByID(ctx context.Context, id string) (Contract, error)

	// Create creates a new contract
	Create(ctx context.Context, c Contract) (Contract, error)
}
