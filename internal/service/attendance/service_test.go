package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagely/payroll-backend-go/internal/domain/allowance"
	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/domain/salary"
	"github.com/wagely/payroll-backend-go/internal/pkg/calendar"
	"github.com/wagely/payroll-backend-go/internal/pkg/events"
	"github.com/wagely/payroll-backend-go/internal/repository/memory"
	"github.com/wagely/payroll-backend-go/internal/service/recalc"
	salaryService "github.com/wagely/payroll-backend-go/internal/service/salary"
)

type fixture struct {
	contractRepo   contract.ContractRepository
	attendanceRepo attendance.AttendanceRepository
	allowanceRepo  allowance.AllowanceRepository
	salaryRepo     salary.SalaryRepository
	salarySvc      salary.SalaryService
	svc            attendance.AttendanceService
}

func newFixture(t *testing.T, holidays ...time.Time) *fixture {
	t.Helper()

	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)

	contractRepo := memory.NewContractRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	allowanceRepo := memory.NewAllowanceRepository(store)
	salaryRepo := memory.NewSalaryRepository(store)

	salarySvc := salaryService.NewSalaryService(
		uow, contractRepo, attendanceRepo, allowanceRepo, salaryRepo,
		salaryService.DefaultRates(),
	)
	coordinator := recalc.NewCoordinator(
		contractRepo, attendanceRepo, allowanceRepo, salarySvc, events.NopSink{},
	)
	svc := NewAttendanceService(
		uow, attendanceRepo, contractRepo, coordinator,
		calendar.NewStaticOracle(holidays),
	)

	return &fixture{
		contractRepo:   contractRepo,
		attendanceRepo: attendanceRepo,
		allowanceRepo:  allowanceRepo,
		salaryRepo:     salaryRepo,
		salarySvc:      salarySvc,
		svc:            svc,
	}
}

func (f *fixture) createContract(t *testing.T, policy contract.DeductionPolicy) contract.Contract {
	t.Helper()
	con, err := f.contractRepo.Create(context.Background(), contract.Contract{
		EmployeeID:      "employee-1",
		WorkplaceName:   "Riverside Cafe",
		HourlyWage:      decimal.NewFromInt(10000),
		PaymentDay:      25,
		DeductionPolicy: policy,
	})
	require.NoError(t, err)
	return con
}

func (f *fixture) record(t *testing.T, contractID, date, start, end string, breakMinutes int) attendance.AttendanceResponse {
	t.Helper()
	resp, err := f.svc.Record(context.Background(), attendance.CreateAttendanceRequest{
		ContractID:   contractID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMinutes,
	})
	require.NoError(t, err)
	return resp
}

func weekStartOf(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse(attendance.DateLayout, date)
	require.NoError(t, err)
	start, _ := allowance.WeekBounds(d)
	return start
}

func TestRecord_CreatesScheduledAndAttachesWeek(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	resp := f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)

	assert.Equal(t, attendance.StatusScheduled, resp.Status)
	assert.Equal(t, "8", resp.TotalHours.String())
	assert.Equal(t, "8", resp.RegularHours.String())

	agg, err := f.allowanceRepo.GetByContractAndWeekStart(ctx, con.ID, weekStartOf(t, "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "8", agg.TotalWorkHours.String())
	assert.True(t, agg.PaidLeaveAmount.IsZero())

	stored, err := f.attendanceRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AllowanceID)
	assert.Equal(t, agg.ID, *stored.AllowanceID)
}

func TestRecord_UnknownContract(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Record(context.Background(), attendance.CreateAttendanceRequest{
		ContractID: "nope",
		Date:       "2025-03-10",
		StartTime:  "09:00",
		EndTime:    "18:00",
	})
	assert.ErrorIs(t, err, contract.ErrContractNotFound)
}

func TestRecord_WeeklyEntitlementAccrues(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)
	f.record(t, con.ID, "2025-03-11", "09:00", "18:00", 60)
	f.record(t, con.ID, "2025-03-12", "09:00", "18:00", 60)

	agg, err := f.allowanceRepo.GetByContractAndWeekStart(ctx, con.ID, weekStartOf(t, "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "24", agg.TotalWorkHours.String())
	// (24/40) x 8 x 10000
	assert.Equal(t, "48000", agg.PaidLeaveAmount.String())
}

func TestComplete_ThenCalculateSalary(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	resp := f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)
	require.NoError(t, f.svc.Complete(ctx, resp.ID))

	stored, err := f.attendanceRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCompleted, stored.Status)

	// Completion alone never materializes a salary.
	_, err = f.salarySvc.Get(ctx, con.ID, 2025, time.March)
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)

	result, err := f.salarySvc.Calculate(ctx, con.ID, 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, "8", result.TotalWorkHours.String())
	assert.Equal(t, "80000", result.BasePay.String())
	assert.Equal(t, "80000", result.TotalGrossPay.String())
	assert.Equal(t, "80000", result.NetPay.String())
	assert.Equal(t, "2025-03-25", result.PaymentDueDate)
}

func TestComplete_OnHolidayFillsHolidayBucket(t *testing.T) {
	holiday, err := time.Parse(attendance.DateLayout, "2025-03-10")
	require.NoError(t, err)
	f := newFixture(t, holiday)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	resp := f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)
	require.NoError(t, f.svc.Complete(ctx, resp.ID))

	result, err := f.salarySvc.Calculate(ctx, con.ID, 2025, time.March)
	require.NoError(t, err)
	// 8h base plus the 0.5 holiday differential on all 8 hours.
	assert.Equal(t, "80000", result.BasePay.String())
	assert.Equal(t, "40000", result.HolidayPay.String())
	assert.Equal(t, "120000", result.TotalGrossPay.String())
}

func TestUpdate_CompletedRecordPropagatesToSalary(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	resp := f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)
	require.NoError(t, f.svc.Complete(ctx, resp.ID))

	_, err := f.salarySvc.Calculate(ctx, con.ID, 2025, time.March)
	require.NoError(t, err)

	newEnd := "20:00"
	updated, err := f.svc.Update(ctx, attendance.UpdateAttendanceRequest{
		ID:      resp.ID,
		EndTime: &newEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, "10", updated.TotalHours.String())
	assert.True(t, updated.IsModified)

	result, err := f.salarySvc.Get(ctx, con.ID, 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, "10", result.TotalWorkHours.String())
	assert.Equal(t, "100000", result.BasePay.String())
}

func TestStraddlingWeek_RefreshesBucketPeriodSalary(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	march := f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)
	require.NoError(t, f.svc.Complete(ctx, march.ID))
	_, err := f.salarySvc.Calculate(ctx, con.ID, 2025, time.March)
	require.NoError(t, err)

	// The week of Mon 2025-03-31 rolls its allowance into March, while the
	// work dates themselves belong to the April pay period (payment day 25).
	first := f.record(t, con.ID, "2025-04-02", "09:00", "18:00", 60)
	second := f.record(t, con.ID, "2025-04-03", "09:00", "18:00", 60)
	require.NoError(t, f.svc.Complete(ctx, first.ID))
	require.NoError(t, f.svc.Complete(ctx, second.ID))

	// 16h in the straddling week earns 16/40*8*10000 paid leave, and the
	// already calculated March salary picks it up without a recalculate.
	result, err := f.salarySvc.Get(ctx, con.ID, 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, "32000", result.PaidLeavePay.String())
	assert.Equal(t, "112000", result.TotalGrossPay.String())
	assert.Equal(t, "8", result.TotalWorkHours.String())

	// A scheduled shift still counts toward entitlement, so it moves the
	// March paid leave too; deleting it moves it back.
	third := f.record(t, con.ID, "2025-04-04", "09:00", "18:00", 60)
	result, err = f.salarySvc.Get(ctx, con.ID, 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, "48000", result.PaidLeavePay.String())

	require.NoError(t, f.svc.Delete(ctx, third.ID))
	result, err = f.salarySvc.Get(ctx, con.ID, 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, "32000", result.PaidLeavePay.String())

	// April was never calculated; base pay for the April dates stays latent.
	_, err = f.salarySvc.Get(ctx, con.ID, 2025, time.April)
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
}

func TestDelete_LastMemberRemovesAggregate(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	resp := f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)
	require.NoError(t, f.svc.Delete(ctx, resp.ID))

	_, err := f.attendanceRepo.GetByID(ctx, resp.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	_, err = f.allowanceRepo.GetByContractAndWeekStart(ctx, con.ID, weekStartOf(t, "2025-03-10"))
	assert.ErrorIs(t, err, allowance.ErrAllowanceNotFound)
}

func TestDelete_RemainingMembersShrinkAggregate(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	first := f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)
	f.record(t, con.ID, "2025-03-11", "09:00", "19:00", 60)

	agg, err := f.allowanceRepo.GetByContractAndWeekStart(ctx, con.ID, weekStartOf(t, "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "17", agg.TotalWorkHours.String())

	require.NoError(t, f.svc.Delete(ctx, first.ID))

	agg, err = f.allowanceRepo.GetByContractAndWeekStart(ctx, con.ID, weekStartOf(t, "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "9", agg.TotalWorkHours.String())
	assert.True(t, agg.PaidLeaveAmount.IsZero())
}

func TestDelete_CompletedRecordIsRefused(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	resp := f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)
	require.NoError(t, f.svc.Complete(ctx, resp.ID))

	err := f.svc.Delete(ctx, resp.ID)
	assert.ErrorIs(t, err, attendance.ErrNotHardDeletable)

	// still present
	_, err = f.attendanceRepo.GetByID(ctx, resp.ID)
	assert.NoError(t, err)
}

func TestCalculate_EmptyPeriod(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)

	_, err := f.salarySvc.Calculate(context.Background(), con.ID, 2025, time.March)
	assert.ErrorIs(t, err, salary.ErrNoRecordsInPeriod)
}

func TestListByContract(t *testing.T) {
	f := newFixture(t)
	con := f.createContract(t, contract.PolicyNoDeduction)
	ctx := context.Background()

	f.record(t, con.ID, "2025-03-10", "09:00", "18:00", 60)
	f.record(t, con.ID, "2025-03-11", "09:00", "18:00", 60)
	f.record(t, con.ID, "2025-04-02", "09:00", "18:00", 60)

	from, _ := time.Parse(attendance.DateLayout, "2025-03-01")
	to, _ := time.Parse(attendance.DateLayout, "2025-03-31")
	list, err := f.svc.ListByContract(ctx, con.ID, from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}
