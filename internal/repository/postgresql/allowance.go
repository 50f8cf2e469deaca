package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wagely/payroll-backend-go/internal/domain/allowance"
	"github.com/wagely/payroll-backend-go/internal/pkg/database"
)

type allowanceRepository struct {
	db *database.DB
}

func NewAllowanceRepository(db *database.DB) allowance.AllowanceRepository {
	return &allowanceRepository{db: db}
}

const allowanceColumns = `
	id, contract_id, week_start, week_end,
	total_work_hours, paid_leave_amount, overtime_hours, overtime_amount,
	created_at, updated_at
`

// Create implements allowance.AllowanceRepository.
func (r *allowanceRepository) Create(ctx context.Context, w allowance.WeeklyAllowance) (allowance.WeeklyAllowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO weekly_allowances (
			contract_id, week_start, week_end,
			total_work_hours, paid_leave_amount, overtime_hours, overtime_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		w.ContractID, w.WeekStart, w.WeekEnd,
		w.TotalWorkHours, w.PaidLeaveAmount, w.OvertimeHours, w.OvertimeAmount,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return allowance.WeeklyAllowance{}, fmt.Errorf("failed to create weekly allowance: %w", err)
	}
	return w, nil
}

// GetByID implements allowance.AllowanceRepository.
func (r *allowanceRepository) GetByID(ctx context.Context, id string) (allowance.WeeklyAllowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + allowanceColumns + ` FROM weekly_allowances WHERE id = $1`

	w, err := scanAllowance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return allowance.WeeklyAllowance{}, allowance.ErrAllowanceNotFound
		}
		return allowance.WeeklyAllowance{}, fmt.Errorf("failed to get weekly allowance: %w", err)
	}
	return w, nil
}

// GetByContractAndWeekStart implements allowance.AllowanceRepository.
func (r *allowanceRepository) GetByContractAndWeekStart(ctx context.Context, contractID string, weekStart time.Time) (allowance.WeeklyAllowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + allowanceColumns + ` FROM weekly_allowances WHERE contract_id = $1 AND week_start = $2`

	w, err := scanAllowance(q.QueryRow(ctx, query, contractID, weekStart))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return allowance.WeeklyAllowance{}, allowance.ErrAllowanceNotFound
		}
		return allowance.WeeklyAllowance{}, fmt.Errorf("failed to get weekly allowance: %w", err)
	}
	return w, nil
}

// Update implements allowance.AllowanceRepository.
func (r *allowanceRepository) Update(ctx context.Context, w allowance.WeeklyAllowance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE weekly_allowances SET
			total_work_hours = $2, paid_leave_amount = $3,
			overtime_hours = $4, overtime_amount = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		w.ID, w.TotalWorkHours, w.PaidLeaveAmount, w.OvertimeHours, w.OvertimeAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to update weekly allowance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return allowance.ErrAllowanceNotFound
	}
	return nil
}

// Delete implements allowance.AllowanceRepository.
func (r *allowanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM weekly_allowances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete weekly allowance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return allowance.ErrAllowanceNotFound
	}
	return nil
}

// ListByContractAndMonth implements allowance.AllowanceRepository.
func (r *allowanceRepository) ListByContractAndMonth(ctx context.Context, contractID string, year int, month time.Month) ([]allowance.WeeklyAllowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + allowanceColumns + `
		FROM weekly_allowances
		WHERE contract_id = $1
			AND EXTRACT(YEAR FROM week_start) = $2
			AND EXTRACT(MONTH FROM week_start) = $3
		ORDER BY week_start
	`

	rows, err := q.Query(ctx, query, contractID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly allowances: %w", err)
	}
	defer rows.Close()

	var out []allowance.WeeklyAllowance
	for rows.Next() {
		w, err := scanAllowance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly allowance: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func scanAllowance(row pgx.Row) (allowance.WeeklyAllowance, error) {
	var w allowance.WeeklyAllowance
	err := row.Scan(
		&w.ID, &w.ContractID, &w.WeekStart, &w.WeekEnd,
		&w.TotalWorkHours, &w.PaidLeaveAmount, &w.OvertimeHours, &w.OvertimeAmount,
		&w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}
