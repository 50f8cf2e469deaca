package recalc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wagely/payroll-backend-go/internal/domain/allowance"
	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/domain/salary"
	"github.com/wagely/payroll-backend-go/internal/pkg/events"
	"github.com/wagely/payroll-backend-go/internal/pkg/keylock"
)

// OvertimeExemption decides whether a contract's workplace is exempt from
// the weekly overtime premium.
type OvertimeExemption func(contract.Contract) bool

// SmallWorkplaceExemption exempts small workplaces, the statutory default.
func SmallWorkplaceExemption(c contract.Contract) bool {
	return c.IsSmallWorkplace
}

// Coordinator keeps the weekly allowance aggregates and period salaries
// consistent with attendance mutations. It always runs inside the unit of
// work of the mutation that triggered it: either everything commits or
// nothing does.
type Coordinator struct {
	contractRepo   contract.ContractRepository
	attendanceRepo attendance.AttendanceRepository
	allowanceRepo  allowance.AllowanceRepository
	salaryService  salary.SalaryService
	entitlement    attendance.EntitlementPolicy
	exempt         OvertimeExemption
	locks          *keylock.Keyed
	sink           events.Sink
}

func NewCoordinator(
	contractRepo contract.ContractRepository,
	attendanceRepo attendance.AttendanceRepository,
	allowanceRepo allowance.AllowanceRepository,
	salaryService salary.SalaryService,
	sink events.Sink,
) *Coordinator {
	return &Coordinator{
		contractRepo:   contractRepo,
		attendanceRepo: attendanceRepo,
		allowanceRepo:  allowanceRepo,
		salaryService:  salaryService,
		entitlement:    attendance.DefaultEntitlement,
		exempt:         SmallWorkplaceExemption,
		locks:          keylock.New(),
		sink:           sink,
	}
}

// OnCreated attaches a freshly persisted record to its weekly aggregate and
// recalculates. Scheduled and Completed records both count toward
// entitlement, so the week's bucket salary is refreshed either way; the
// record's own period is only added for Completed records.
func (c *Coordinator) OnCreated(ctx context.Context, record *attendance.Record) error {
	con, err := c.contractRepo.GetByID(ctx, record.ContractID)
	if err != nil {
		return err
	}

	weekStart, _ := allowance.WeekBounds(record.WorkDate)
	unlock := c.locks.Lock(weekKey(record.ContractID, weekStart))
	defer unlock()

	if err := c.attachAndRecalculate(ctx, con, record); err != nil {
		return err
	}

	periods := []salary.Period{bucketPeriod(weekStart)}
	if record.Status == attendance.StatusCompleted {
		periods = append(periods, salary.PeriodFor(record.WorkDate, con.PaymentDay))
	}
	return c.recalculateSalaries(ctx, con, periods)
}

// OnUpdated re-syncs the aggregates after a time/break edit. When the edit
// moved the record into a different week the old aggregate shrinks (and is
// deleted if it became empty) before the new one is recalculated.
func (c *Coordinator) OnUpdated(ctx context.Context, record *attendance.Record, oldWorkDate time.Time) error {
	con, err := c.contractRepo.GetByID(ctx, record.ContractID)
	if err != nil {
		return err
	}

	oldWeekStart, _ := allowance.WeekBounds(oldWorkDate)
	newWeekStart, _ := allowance.WeekBounds(record.WorkDate)

	if oldWeekStart.Equal(newWeekStart) {
		unlock := c.locks.Lock(weekKey(record.ContractID, newWeekStart))
		defer unlock()

		agg, err := c.allowanceRepo.GetByContractAndWeekStart(ctx, record.ContractID, newWeekStart)
		switch {
		case errors.Is(err, allowance.ErrAllowanceNotFound):
			// Record was never attached (imported data); repair here.
			if err := c.attachAndRecalculate(ctx, con, record); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := c.recalculateWeek(ctx, con, &agg); err != nil {
				return err
			}
		}
	} else {
		unlockAll := c.lockWeeks(record.ContractID, oldWeekStart, newWeekStart)
		defer unlockAll()

		if err := c.moveBetweenWeeks(ctx, con, record, oldWeekStart); err != nil {
			return err
		}
	}

	periods := []salary.Period{bucketPeriod(oldWeekStart), bucketPeriod(newWeekStart)}
	if record.Status == attendance.StatusCompleted {
		periods = append(periods,
			salary.PeriodFor(oldWorkDate, con.PaymentDay),
			salary.PeriodFor(record.WorkDate, con.PaymentDay),
		)
	}
	return c.recalculateSalaries(ctx, con, periods)
}

// OnCompleted recalculates the period salary for a newly completed shift.
// The weekly aggregate is already current: the record counted toward
// entitlement while still Scheduled.
func (c *Coordinator) OnCompleted(ctx context.Context, record attendance.Record) error {
	con, err := c.contractRepo.GetByID(ctx, record.ContractID)
	if err != nil {
		return err
	}
	return c.recalculateSalaries(ctx, con, []salary.Period{
		salary.PeriodFor(record.WorkDate, con.PaymentDay),
	})
}

// OnDeleted detaches a removed record from its weekly aggregate, deleting
// the aggregate when the member set became empty, and recalculates the
// period salary when a Completed record disappeared. recordRemoved marks a
// hard delete: the row is gone and must not be written back.
func (c *Coordinator) OnDeleted(ctx context.Context, record attendance.Record, priorStatus attendance.Status, recordRemoved bool) error {
	con, err := c.contractRepo.GetByID(ctx, record.ContractID)
	if err != nil {
		return err
	}

	weekStart, _ := allowance.WeekBounds(record.WorkDate)
	unlock := c.locks.Lock(weekKey(record.ContractID, weekStart))
	defer unlock()

	if record.AllowanceID != nil {
		agg, err := c.allowanceRepo.GetByID(ctx, *record.AllowanceID)
		if err != nil && !errors.Is(err, allowance.ErrAllowanceNotFound) {
			return err
		}
		if err == nil {
			if !recordRemoved {
				record.AllowanceID = nil
				if err := c.attendanceRepo.Update(ctx, record); err != nil {
					return fmt.Errorf("failed to detach record from allowance: %w", err)
				}
			}
			if err := c.shrinkOrDelete(ctx, con, agg); err != nil {
				return err
			}
		}
	}

	periods := []salary.Period{bucketPeriod(weekStart)}
	if priorStatus == attendance.StatusCompleted {
		periods = append(periods, salary.PeriodFor(record.WorkDate, con.PaymentDay))
	}
	return c.recalculateSalaries(ctx, con, periods)
}

func (c *Coordinator) attachAndRecalculate(ctx context.Context, con contract.Contract, record *attendance.Record) error {
	agg, err := c.getOrCreateWeek(ctx, record.ContractID, record.WorkDate)
	if err != nil {
		return err
	}

	record.AllowanceID = &agg.ID
	if err := c.attendanceRepo.Update(ctx, *record); err != nil {
		return fmt.Errorf("failed to attach record to allowance: %w", err)
	}

	return c.recalculateWeek(ctx, con, &agg)
}

func (c *Coordinator) moveBetweenWeeks(ctx context.Context, con contract.Contract, record *attendance.Record, oldWeekStart time.Time) error {
	oldAgg, err := c.allowanceRepo.GetByContractAndWeekStart(ctx, record.ContractID, oldWeekStart)
	if err != nil && !errors.Is(err, allowance.ErrAllowanceNotFound) {
		return err
	}
	hadOld := err == nil

	if err := c.attachAndRecalculate(ctx, con, record); err != nil {
		return err
	}

	if hadOld {
		return c.shrinkOrDelete(ctx, con, oldAgg)
	}
	return nil
}

// shrinkOrDelete recalculates an aggregate after a member left, deleting it
// when no members remain. Shrink and delete run in the same unit of work as
// the membership change; a dangling empty aggregate is never visible.
func (c *Coordinator) shrinkOrDelete(ctx context.Context, con contract.Contract, agg allowance.WeeklyAllowance) error {
	members, err := c.attendanceRepo.ListByAllowanceID(ctx, agg.ID)
	if err != nil {
		return fmt.Errorf("failed to list allowance members: %w", err)
	}

	if len(members) == 0 {
		if err := c.allowanceRepo.Delete(ctx, agg.ID); err != nil {
			return fmt.Errorf("failed to delete empty allowance: %w", err)
		}
		c.publish(ctx, events.Event{
			Type:       events.TypeAllowanceDeleted,
			ContractID: agg.ContractID,
			WeekStart:  &agg.WeekStart,
		})
		return nil
	}

	agg.Recalculate(members, con.HourlyWage, c.exempt(con), c.entitlement)
	if err := c.allowanceRepo.Update(ctx, agg); err != nil {
		return fmt.Errorf("failed to update allowance: %w", err)
	}
	c.publish(ctx, events.Event{
		Type:       events.TypeAllowanceRecalculated,
		ContractID: agg.ContractID,
		WeekStart:  &agg.WeekStart,
	})
	return nil
}

func (c *Coordinator) recalculateWeek(ctx context.Context, con contract.Contract, agg *allowance.WeeklyAllowance) error {
	members, err := c.attendanceRepo.ListByAllowanceID(ctx, agg.ID)
	if err != nil {
		return fmt.Errorf("failed to list allowance members: %w", err)
	}

	agg.Recalculate(members, con.HourlyWage, c.exempt(con), c.entitlement)
	if err := c.allowanceRepo.Update(ctx, *agg); err != nil {
		return fmt.Errorf("failed to update allowance: %w", err)
	}

	c.publish(ctx, events.Event{
		Type:       events.TypeAllowanceRecalculated,
		ContractID: agg.ContractID,
		WeekStart:  &agg.WeekStart,
	})
	return nil
}

// getOrCreateWeek finds or lazily creates the aggregate owning date's week.
// Creation happens here at the coordinator boundary, never as an implicit
// upsert inside a query.
func (c *Coordinator) getOrCreateWeek(ctx context.Context, contractID string, date time.Time) (allowance.WeeklyAllowance, error) {
	weekStart, _ := allowance.WeekBounds(date)

	agg, err := c.allowanceRepo.GetByContractAndWeekStart(ctx, contractID, weekStart)
	if err == nil {
		return agg, nil
	}
	if !errors.Is(err, allowance.ErrAllowanceNotFound) {
		return allowance.WeeklyAllowance{}, err
	}

	created, err := c.allowanceRepo.Create(ctx, allowance.New(contractID, date))
	if err != nil {
		return allowance.WeeklyAllowance{}, fmt.Errorf("failed to create weekly allowance: %w", err)
	}
	return created, nil
}

// bucketPeriod names the salary period a week's allowance amounts roll up
// into. Weeks group under the calendar month of their Monday, which can
// differ from the period owning an individual work date near a payment-day
// boundary, so both periods must be refreshed when a week changes.
func bucketPeriod(weekStart time.Time) salary.Period {
	return salary.Period{Year: weekStart.Year(), Month: weekStart.Month()}
}

func (c *Coordinator) recalculateSalaries(ctx context.Context, con contract.Contract, periods []salary.Period) error {
	seen := make(map[salary.Period]struct{}, len(periods))
	for _, period := range periods {
		if _, done := seen[period]; done {
			continue
		}
		seen[period] = struct{}{}

		if err := c.salaryService.RecalculateIfPresent(ctx, con.ID, period.Year, period.Month); err != nil {
			return err
		}
		c.publish(ctx, events.Event{
			Type:       events.TypeSalaryRecalculated,
			ContractID: con.ID,
			Year:       period.Year,
			Month:      int(period.Month),
		})
	}
	return nil
}

// lockWeeks acquires both week locks in a stable order so two movers
// crossing the same pair of weeks cannot deadlock.
func (c *Coordinator) lockWeeks(contractID string, a, b time.Time) func() {
	ka, kb := weekKey(contractID, a), weekKey(contractID, b)
	if kb < ka {
		ka, kb = kb, ka
	}
	unlockA := c.locks.Lock(ka)
	unlockB := c.locks.Lock(kb)
	return func() {
		unlockB()
		unlockA()
	}
}

func (c *Coordinator) publish(ctx context.Context, event events.Event) {
	event.At = time.Now()
	// Fire-and-forget: delivery is never awaited and never fails the
	// mutation.
	go c.sink.Publish(context.WithoutCancel(ctx), event)
}

func weekKey(contractID string, weekStart time.Time) string {
	return contractID + "/" + weekStart.Format("2006-01-02")
}
