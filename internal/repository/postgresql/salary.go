package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wagely/payroll-backend-go/internal/domain/salary"
	"github.com/wagely/payroll-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `
	id, contract_id, year, month,
	total_work_hours, base_pay, overtime_pay, night_pay, holiday_pay,
	paid_leave_pay, total_gross_pay,
	income_tax, local_income_tax, national_pension, health_insurance,
	long_term_care, employment_insurance, total_tax, total_insurance,
	total_deduction, net_pay, payment_due_date, created_at, updated_at
`

// Create implements salary.SalaryRepository.
func (r *salaryRepository) Create(ctx context.Context, s salary.PeriodSalary) (salary.PeriodSalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO period_salaries (
			contract_id, year, month,
			total_work_hours, base_pay, overtime_pay, night_pay, holiday_pay,
			paid_leave_pay, total_gross_pay,
			income_tax, local_income_tax, national_pension, health_insurance,
			long_term_care, employment_insurance, total_tax, total_insurance,
			total_deduction, net_pay, payment_due_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ContractID, s.Year, int(s.Month),
		s.TotalWorkHours, s.BasePay, s.OvertimePay, s.NightPay, s.HolidayPay,
		s.PaidLeavePay, s.TotalGrossPay,
		s.Deduction.IncomeTax, s.Deduction.LocalIncomeTax, s.Deduction.NationalPension,
		s.Deduction.HealthInsurance, s.Deduction.LongTermCare, s.Deduction.EmploymentInsurance,
		s.Deduction.TotalTax, s.Deduction.TotalInsurance, s.Deduction.TotalDeduction,
		s.NetPay, s.PaymentDueDate,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return salary.PeriodSalary{}, fmt.Errorf("failed to create period salary: %w", err)
	}
	return s, nil
}

// GetByContractAndPeriod implements salary.SalaryRepository.
func (r *salaryRepository) GetByContractAndPeriod(ctx context.Context, contractID string, year int, month time.Month) (salary.PeriodSalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM period_salaries WHERE contract_id = $1 AND year = $2 AND month = $3`

	var s salary.PeriodSalary
	var monthNum int
	err := q.QueryRow(ctx, query, contractID, year, int(month)).Scan(
		&s.ID, &s.ContractID, &s.Year, &monthNum,
		&s.TotalWorkHours, &s.BasePay, &s.OvertimePay, &s.NightPay, &s.HolidayPay,
		&s.PaidLeavePay, &s.TotalGrossPay,
		&s.Deduction.IncomeTax, &s.Deduction.LocalIncomeTax, &s.Deduction.NationalPension,
		&s.Deduction.HealthInsurance, &s.Deduction.LongTermCare, &s.Deduction.EmploymentInsurance,
		&s.Deduction.TotalTax, &s.Deduction.TotalInsurance, &s.Deduction.TotalDeduction,
		&s.NetPay, &s.PaymentDueDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.PeriodSalary{}, salary.ErrSalaryNotFound
		}
		return salary.PeriodSalary{}, fmt.Errorf("failed to get period salary: %w", err)
	}
	s.Month = time.Month(monthNum)
	return s, nil
}

// Update implements salary.SalaryRepository.
func (r *salaryRepository) Update(ctx context.Context, s salary.PeriodSalary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE period_salaries SET
			total_work_hours = $2, base_pay = $3, overtime_pay = $4,
			night_pay = $5, holiday_pay = $6, paid_leave_pay = $7,
			total_gross_pay = $8,
			income_tax = $9, local_income_tax = $10, national_pension = $11,
			health_insurance = $12, long_term_care = $13, employment_insurance = $14,
			total_tax = $15, total_insurance = $16, total_deduction = $17,
			net_pay = $18, payment_due_date = $19, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		s.ID,
		s.TotalWorkHours, s.BasePay, s.OvertimePay, s.NightPay, s.HolidayPay,
		s.PaidLeavePay, s.TotalGrossPay,
		s.Deduction.IncomeTax, s.Deduction.LocalIncomeTax, s.Deduction.NationalPension,
		s.Deduction.HealthInsurance, s.Deduction.LongTermCare, s.Deduction.EmploymentInsurance,
		s.Deduction.TotalTax, s.Deduction.TotalInsurance, s.Deduction.TotalDeduction,
		s.NetPay, s.PaymentDueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update period salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryNotFound
	}
	return nil
}
