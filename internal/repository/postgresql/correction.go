package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wagely/payroll-backend-go/internal/domain/correction"
	"github.com/wagely/payroll-backend-go/internal/pkg/database"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.CorrectionRepository {
	return &correctionRepository{db: db}
}

const correctionColumns = `
	id, kind, contract_id, record_id, requester_id,
	original_date, original_start, original_end, original_break_minutes, original_memo,
	requested_date, requested_start, requested_end, requested_break_minutes, requested_memo,
	status, decided_at, created_at, updated_at
`

// Create implements correction.CorrectionRepository.
func (r *correctionRepository) Create(ctx context.Context, req correction.CorrectionRequest) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO correction_requests (
			kind, contract_id, record_id, requester_id,
			original_date, original_start, original_end, original_break_minutes, original_memo,
			requested_date, requested_start, requested_end, requested_break_minutes, requested_memo,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.Kind, req.ContractID, req.RecordID, req.RequesterID,
		req.OriginalDate, req.OriginalStart, req.OriginalEnd, req.OriginalBreakMinutes, req.OriginalMemo,
		req.RequestedDate, req.RequestedStart, req.RequestedEnd, req.RequestedBreakMinutes, req.RequestedMemo,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return correction.CorrectionRequest{}, fmt.Errorf("failed to create correction request: %w", err)
	}
	return req, nil
}

// GetByID implements correction.CorrectionRepository.
func (r *correctionRepository) GetByID(ctx context.Context, id string) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionColumns + ` FROM correction_requests WHERE id = $1`

	req, err := scanCorrection(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.CorrectionRequest{}, correction.ErrRequestNotFound
		}
		return correction.CorrectionRequest{}, fmt.Errorf("failed to get correction request: %w", err)
	}
	return req, nil
}

// Update implements correction.CorrectionRepository.
func (r *correctionRepository) Update(ctx context.Context, req correction.CorrectionRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE correction_requests SET
			record_id = $2, status = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.RecordID, req.Status, req.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to update correction request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrRequestNotFound
	}
	return nil
}

// Delete implements correction.CorrectionRepository.
func (r *correctionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM correction_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete correction request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrRequestNotFound
	}
	return nil
}

// GetPendingByRecordID implements correction.CorrectionRepository.
func (r *correctionRepository) GetPendingByRecordID(ctx context.Context, recordID string) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + correctionColumns + `
		FROM correction_requests
		WHERE record_id = $1 AND status = $2
		LIMIT 1
	`

	req, err := scanCorrection(q.QueryRow(ctx, query, recordID, correction.StatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.CorrectionRequest{}, correction.ErrRequestNotFound
		}
		return correction.CorrectionRequest{}, fmt.Errorf("failed to get pending correction request: %w", err)
	}
	return req, nil
}

// ListPendingCreates implements correction.CorrectionRepository.
func (r *correctionRepository) ListPendingCreates(ctx context.Context, contractID string, date time.Time) ([]correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + correctionColumns + `
		FROM correction_requests
		WHERE contract_id = $1 AND kind = $2 AND status = $3 AND requested_date = $4
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, contractID, correction.KindCreate, correction.StatusPending, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending correction requests: %w", err)
	}
	defer rows.Close()

	var out []correction.CorrectionRequest
	for rows.Next() {
		req, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanCorrection(row pgx.Row) (correction.CorrectionRequest, error) {
	var req correction.CorrectionRequest
	err := row.Scan(
		&req.ID, &req.Kind, &req.ContractID, &req.RecordID, &req.RequesterID,
		&req.OriginalDate, &req.OriginalStart, &req.OriginalEnd, &req.OriginalBreakMinutes, &req.OriginalMemo,
		&req.RequestedDate, &req.RequestedStart, &req.RequestedEnd, &req.RequestedBreakMinutes, &req.RequestedMemo,
		&req.Status, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}
