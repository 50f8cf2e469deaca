package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagely/payroll-backend-go/internal/domain/contract"
)

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	repo := NewContractRepository(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := uow.Do(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, contract.Contract{
			EmployeeID:    "employee-1",
			WorkplaceName: "Riverside Cafe",
			HourlyWage:    decimal.NewFromInt(10000),
			PaymentDay:    25,
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.contracts)
}

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	repo := NewContractRepository(store)
	ctx := context.Background()

	var id string
	err := uow.Do(ctx, func(ctx context.Context) error {
		created, err := repo.Create(ctx, contract.Contract{
			EmployeeID:    "employee-1",
			WorkplaceName: "Riverside Cafe",
			HourlyWage:    decimal.NewFromInt(10000),
			PaymentDay:    25,
		})
		if err != nil {
			return err
		}
		id = created.ID
		return nil
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Riverside Cafe", got.WorkplaceName)
}

func TestUnitOfWork_NestedCallsJoin(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	repo := NewContractRepository(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := uow.Do(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, contract.Contract{EmployeeID: "employee-1", PaymentDay: 25})
		require.NoError(t, err)

		// inner Do joins the outer unit of work instead of snapshotting again
		return uow.Do(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.contracts)
}
