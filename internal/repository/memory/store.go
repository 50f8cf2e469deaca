// Package memory provides map-backed repository implementations. They mirror
// the postgresql package contract-for-contract and back the unit tests.
package memory

import (
	"context"
	"sync"

	"github.com/wagely/payroll-backend-go/internal/domain/allowance"
	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/domain/correction"
	"github.com/wagely/payroll-backend-go/internal/domain/salary"
)

type Store struct {
	mu          sync.RWMutex
	contracts   map[string]contract.Contract
	records     map[string]attendance.Record
	allowances  map[string]allowance.WeeklyAllowance
	salaries    map[string]salary.PeriodSalary
	corrections map[string]correction.CorrectionRequest
}

func NewStore() *Store {
	return &Store{
		contracts:   make(map[string]contract.Contract),
		records:     make(map[string]attendance.Record),
		allowances:  make(map[string]allowance.WeeklyAllowance),
		salaries:    make(map[string]salary.PeriodSalary),
		corrections: make(map[string]correction.CorrectionRequest),
	}
}

type uowKey struct{}

// UnitOfWork implements database.UnitOfWork over the store: on failure the
// whole store is restored to its pre-call snapshot, so a mutation and its
// cascading recalculations roll back together just like a SQL transaction.
type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(uowKey{}) != nil {
		// Already inside a unit of work; join it.
		return fn(ctx)
	}

	snapshot := u.store.snapshot()
	err := fn(context.WithValue(ctx, uowKey{}, struct{}{}))
	if err != nil {
		u.store.restore(snapshot)
	}
	return err
}

type storeSnapshot struct {
	contracts   map[string]contract.Contract
	records     map[string]attendance.Record
	allowances  map[string]allowance.WeeklyAllowance
	salaries    map[string]salary.PeriodSalary
	corrections map[string]correction.CorrectionRequest
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeSnapshot{
		contracts:   copyMap(s.contracts),
		records:     copyMap(s.records),
		allowances:  copyMap(s.allowances),
		salaries:    copyMap(s.salaries),
		corrections: copyMap(s.corrections),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contracts = snap.contracts
	s.records = snap.records
	s.allowances = snap.allowances
	s.salaries = snap.salaries
	s.corrections = snap.corrections
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
