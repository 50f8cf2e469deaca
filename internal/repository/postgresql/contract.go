package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/pkg/database"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

// GetByID implements contract.ContractRepository.
func (r *contractRepository) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, workplace_name, hourly_wage, payment_day,
		       deduction_policy, is_small_workplace, created_at, updated_at
		FROM contracts
		WHERE id = $1
	`

	var c contract.Contract
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EmployeeID, &c.WorkplaceName, &c.HourlyWage, &c.PaymentDay,
		&c.DeductionPolicy, &c.IsSmallWorkplace, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

// Create implements contract.ContractRepository.
func (r *contractRepository) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	if c.PaymentDay < 1 || c.PaymentDay > 31 {
		return contract.Contract{}, contract.ErrInvalidPaymentDay
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contracts (
			employee_id, workplace_name, hourly_wage, payment_day,
			deduction_policy, is_small_workplace
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.EmployeeID, c.WorkplaceName, c.HourlyWage, c.PaymentDay,
		c.DeductionPolicy, c.IsSmallWorkplace,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	return c, nil
}
