package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wagely/payroll-backend-go/internal/domain/correction"
)

type correctionRepository struct {
	store *Store
}

func NewCorrectionRepository(store *Store) correction.CorrectionRepository {
	return &correctionRepository{store: store}
}

func (r *correctionRepository) Create(_ context.Context, req correction.CorrectionRequest) (correction.CorrectionRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.store.corrections[req.ID] = req
	return req, nil
}

func (r *correctionRepository) GetByID(_ context.Context, id string) (correction.CorrectionRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	req, ok := r.store.corrections[id]
	if !ok {
		return correction.CorrectionRequest{}, correction.ErrRequestNotFound
	}
	return req, nil
}

func (r *correctionRepository) Update(_ context.Context, req correction.CorrectionRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.corrections[req.ID]; !ok {
		return correction.ErrRequestNotFound
	}
	req.UpdatedAt = time.Now()
	r.store.corrections[req.ID] = req
	return nil
}

func (r *correctionRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.corrections[id]; !ok {
		return correction.ErrRequestNotFound
	}
	delete(r.store.corrections, id)
	return nil
}

func (r *correctionRepository) GetPendingByRecordID(_ context.Context, recordID string) (correction.CorrectionRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, req := range r.store.corrections {
		if req.Status != correction.StatusPending {
			continue
		}
		if req.RecordID != nil && *req.RecordID == recordID {
			return req, nil
		}
	}
	return correction.CorrectionRequest{}, correction.ErrRequestNotFound
}

func (r *correctionRepository) ListPendingCreates(_ context.Context, contractID string, date time.Time) ([]correction.CorrectionRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []correction.CorrectionRequest
	for _, req := range r.store.corrections {
		if req.Kind != correction.KindCreate || req.Status != correction.StatusPending {
			continue
		}
		if req.ContractID != contractID || req.RequestedDate == nil {
			continue
		}
		if sameDate(*req.RequestedDate, date) {
			out = append(out, req)
		}
	}
	return out, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
