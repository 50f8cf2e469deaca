package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func (r *attendanceRepository) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.store.records[record.ID] = record
	return record, nil
}

func (r *attendanceRepository) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	record, ok := r.store.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return record, nil
}

func (r *attendanceRepository) Update(_ context.Context, record attendance.Record) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.records[record.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	record.UpdatedAt = time.Now()
	r.store.records[record.ID] = record
	return nil
}

func (r *attendanceRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.records[id]; !ok {
		return attendance.ErrRecordNotFound
	}
	delete(r.store.records, id)
	return nil
}

func (r *attendanceRepository) ListByAllowanceID(_ context.Context, allowanceID string) ([]attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.Record
	for _, record := range r.store.records {
		if record.AllowanceID != nil && *record.AllowanceID == allowanceID {
			out = append(out, record)
		}
	}
	sortByWorkDate(out)
	return out, nil
}

func (r *attendanceRepository) ListByContractAndDateRange(_ context.Context, contractID string, from, to time.Time) ([]attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.Record
	for _, record := range r.store.records {
		if record.ContractID != contractID {
			continue
		}
		if record.WorkDate.Before(from) || record.WorkDate.After(to) {
			continue
		}
		out = append(out, record)
	}
	sortByWorkDate(out)
	return out, nil
}

func sortByWorkDate(records []attendance.Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].WorkDate.Equal(records[j].WorkDate) {
			return records[i].StartTime.Before(records[j].StartTime)
		}
		return records[i].WorkDate.Before(records[j].WorkDate)
	})
}
