package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
	"github.com/wagely/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, contract_id, work_date, start_time, end_time, break_minutes, memo,
	total_hours, regular_hours, overtime_hours, night_hours, holiday_hours,
	status, is_modified, allowance_id, created_at, updated_at
`

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			contract_id, work_date, start_time, end_time, break_minutes, memo,
			total_hours, regular_hours, overtime_hours, night_hours, holiday_hours,
			status, is_modified, allowance_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ContractID, record.WorkDate, record.StartTime, record.EndTime,
		record.BreakMinutes, record.Memo,
		record.TotalHours, record.RegularHours, record.OvertimeHours,
		record.NightHours, record.HolidayHours,
		record.Status, record.IsModified, record.AllowanceID,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return record, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			work_date = $2, start_time = $3, end_time = $4, break_minutes = $5,
			memo = $6, total_hours = $7, regular_hours = $8, overtime_hours = $9,
			night_hours = $10, holiday_hours = $11, status = $12,
			is_modified = $13, allowance_id = $14, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID, record.WorkDate, record.StartTime, record.EndTime,
		record.BreakMinutes, record.Memo,
		record.TotalHours, record.RegularHours, record.OvertimeHours,
		record.NightHours, record.HolidayHours,
		record.Status, record.IsModified, record.AllowanceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// ListByAllowanceID implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByAllowanceID(ctx context.Context, allowanceID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE allowance_id = $1
		ORDER BY work_date, start_time
	`

	rows, err := q.Query(ctx, query, allowanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowance members: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListByContractAndDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByContractAndDateRange(ctx context.Context, contractID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE contract_id = $1 AND work_date >= $2 AND work_date <= $3
		ORDER BY work_date, start_time
	`

	rows, err := q.Query(ctx, query, contractID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var record attendance.Record
	err := row.Scan(
		&record.ID, &record.ContractID, &record.WorkDate,
		&record.StartTime, &record.EndTime, &record.BreakMinutes, &record.Memo,
		&record.TotalHours, &record.RegularHours, &record.OvertimeHours,
		&record.NightHours, &record.HolidayHours,
		&record.Status, &record.IsModified, &record.AllowanceID,
		&record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var out []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}
