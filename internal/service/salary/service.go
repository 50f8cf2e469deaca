package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagely/payroll-backend-go/internal/domain/allowance"
	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/domain/salary"
	"github.com/wagely/payroll-backend-go/internal/pkg/database"
)

// Rates carries the differential multipliers applied on top of base pay.
// They are policy inputs, not constants of the aggregation.
type Rates struct {
	Night   decimal.Decimal
	Holiday decimal.Decimal
}

func DefaultRates() Rates {
	half := decimal.NewFromFloat(0.5)
	return Rates{Night: half, Holiday: half}
}

type SalaryServiceImpl struct {
	uow            database.UnitOfWork
	contractRepo   contract.ContractRepository
	attendanceRepo attendance.AttendanceRepository
	allowanceRepo  allowance.AllowanceRepository
	salaryRepo     salary.SalaryRepository
	rates          Rates
}

func NewSalaryService(
	uow database.UnitOfWork,
	contractRepo contract.ContractRepository,
	attendanceRepo attendance.AttendanceRepository,
	allowanceRepo allowance.AllowanceRepository,
	salaryRepo salary.SalaryRepository,
	rates Rates,
) salary.SalaryService {
	return &SalaryServiceImpl{
		uow:            uow,
		contractRepo:   contractRepo,
		attendanceRepo: attendanceRepo,
		allowanceRepo:  allowanceRepo,
		salaryRepo:     salaryRepo,
		rates:          rates,
	}
}

// Calculate implements salary.SalaryService.
func (s *SalaryServiceImpl) Calculate(ctx context.Context, contractID string, year int, month time.Month) (salary.SalaryResponse, error) {
	if month < time.January || month > time.December || year <= 0 {
		return salary.SalaryResponse{}, salary.ErrInvalidPeriod
	}

	var result salary.PeriodSalary
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.recompute(ctx, contractID, year, month, true)
		return err
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.ToResponse(result), nil
}

// RecalculateIfPresent implements salary.SalaryService. It runs inside the
// caller's unit of work: the coordinator invokes it while the triggering
// attendance mutation is still uncommitted.
func (s *SalaryServiceImpl) RecalculateIfPresent(ctx context.Context, contractID string, year int, month time.Month) error {
	_, err := s.salaryRepo.GetByContractAndPeriod(ctx, contractID, year, month)
	if errors.Is(err, salary.ErrSalaryNotFound) {
		// Not yet calculated is a valid state, not an error.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get period salary: %w", err)
	}

	_, err = s.recompute(ctx, contractID, year, month, false)
	return err
}

// Get implements salary.SalaryService.
func (s *SalaryServiceImpl) Get(ctx context.Context, contractID string, year int, month time.Month) (salary.SalaryResponse, error) {
	result, err := s.salaryRepo.GetByContractAndPeriod(ctx, contractID, year, month)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.ToResponse(result), nil
}

// recompute derives every field of the period salary from scratch and
// upserts it. fromScratch controls whether an externally-set payment due
// date is replaced or preserved.
func (s *SalaryServiceImpl) recompute(ctx context.Context, contractID string, year int, month time.Month, fromScratch bool) (salary.PeriodSalary, error) {
	c, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return salary.PeriodSalary{}, err
	}

	period := salary.Period{Year: year, Month: month}
	start, end := period.Bounds(c.PaymentDay, time.UTC)

	records, err := s.attendanceRepo.ListByContractAndDateRange(ctx, contractID, start, end)
	if err != nil {
		return salary.PeriodSalary{}, fmt.Errorf("failed to list attendance in period: %w", err)
	}

	existing, err := s.salaryRepo.GetByContractAndPeriod(ctx, contractID, year, month)
	exists := err == nil
	if err != nil && !errors.Is(err, salary.ErrSalaryNotFound) {
		return salary.PeriodSalary{}, fmt.Errorf("failed to get period salary: %w", err)
	}

	if fromScratch && !exists && !anyLive(records) {
		// A period no attendance ever touched has no salary, not a zero one.
		return salary.PeriodSalary{}, salary.ErrNoRecordsInPeriod
	}

	totalHours := decimal.Zero
	basePay := decimal.Zero
	nightPay := decimal.Zero
	holidayPay := decimal.Zero
	for _, r := range records {
		if r.Status != attendance.StatusCompleted {
			continue
		}
		totalHours = totalHours.Add(r.TotalHours)
		basePay = basePay.Add(r.TotalHours.Mul(c.HourlyWage))
		nightPay = nightPay.Add(r.NightHours.Mul(c.HourlyWage).Mul(s.rates.Night))
		holidayPay = holidayPay.Add(r.HolidayHours.Mul(c.HourlyWage).Mul(s.rates.Holiday))
	}
	basePay = basePay.Round(2)
	nightPay = nightPay.Round(2)
	holidayPay = holidayPay.Round(2)

	// Allowance amounts are pre-computed per week, never re-derived here.
	weeks, err := s.allowanceRepo.ListByContractAndMonth(ctx, contractID, year, month)
	if err != nil {
		return salary.PeriodSalary{}, fmt.Errorf("failed to list weekly allowances: %w", err)
	}
	paidLeavePay := decimal.Zero
	overtimePay := decimal.Zero
	for _, w := range weeks {
		paidLeavePay = paidLeavePay.Add(w.PaidLeaveAmount)
		overtimePay = overtimePay.Add(w.OvertimeAmount)
	}

	gross := basePay.Add(nightPay).Add(holidayPay).Add(paidLeavePay).Add(overtimePay)
	deduction := CalculateDeduction(gross, c.DeductionPolicy)

	if !exists {
		fresh := salary.PeriodSalary{
			ContractID:     contractID,
			Year:           year,
			Month:          month,
			PaymentDueDate: period.DueDate(c.PaymentDay, time.UTC),
		}
		fresh.ApplyTotals(totalHours, basePay, overtimePay, nightPay, holidayPay, paidLeavePay, deduction)
		created, err := s.salaryRepo.Create(ctx, fresh)
		if err != nil {
			return salary.PeriodSalary{}, fmt.Errorf("failed to create period salary: %w", err)
		}
		return created, nil
	}

	existing.ApplyTotals(totalHours, basePay, overtimePay, nightPay, holidayPay, paidLeavePay, deduction)
	if fromScratch {
		existing.PaymentDueDate = period.DueDate(c.PaymentDay, time.UTC)
	}
	if err := s.salaryRepo.Update(ctx, existing); err != nil {
		return salary.PeriodSalary{}, fmt.Errorf("failed to update period salary: %w", err)
	}
	return existing, nil
}

func anyLive(records []attendance.Record) bool {
	for _, r := range records {
		if r.Status != attendance.StatusDeleted {
			return true
		}
	}
	return false
}
