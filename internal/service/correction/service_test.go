package correction

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagely/payroll-backend-go/internal/domain/allowance"
	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/domain/correction"
	"github.com/wagely/payroll-backend-go/internal/domain/salary"
	"github.com/wagely/payroll-backend-go/internal/pkg/calendar"
	"github.com/wagely/payroll-backend-go/internal/pkg/events"
	"github.com/wagely/payroll-backend-go/internal/repository/memory"
	attendanceService "github.com/wagely/payroll-backend-go/internal/service/attendance"
	"github.com/wagely/payroll-backend-go/internal/service/recalc"
	salaryService "github.com/wagely/payroll-backend-go/internal/service/salary"
)

type fixture struct {
	contractRepo   contract.ContractRepository
	attendanceRepo attendance.AttendanceRepository
	allowanceRepo  allowance.AllowanceRepository
	attendanceSvc  attendance.AttendanceService
	salarySvc      salary.SalaryService
	svc            correction.CorrectionService
	con            contract.Contract
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)

	contractRepo := memory.NewContractRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	allowanceRepo := memory.NewAllowanceRepository(store)
	salaryRepo := memory.NewSalaryRepository(store)
	correctionRepo := memory.NewCorrectionRepository(store)

	salarySvc := salaryService.NewSalaryService(
		uow, contractRepo, attendanceRepo, allowanceRepo, salaryRepo,
		salaryService.DefaultRates(),
	)
	coordinator := recalc.NewCoordinator(
		contractRepo, attendanceRepo, allowanceRepo, salarySvc, events.NopSink{},
	)
	oracle := calendar.NewStaticOracle(nil)
	attendanceSvc := attendanceService.NewAttendanceService(
		uow, attendanceRepo, contractRepo, coordinator, oracle,
	)
	svc := NewCorrectionService(
		uow, correctionRepo, attendanceRepo, contractRepo, coordinator, oracle,
	)

	con, err := contractRepo.Create(context.Background(), contract.Contract{
		EmployeeID:      "employee-1",
		WorkplaceName:   "Riverside Cafe",
		HourlyWage:      decimal.NewFromInt(10000),
		PaymentDay:      25,
		DeductionPolicy: contract.PolicyNoDeduction,
	})
	require.NoError(t, err)

	return &fixture{
		contractRepo:   contractRepo,
		attendanceRepo: attendanceRepo,
		allowanceRepo:  allowanceRepo,
		attendanceSvc:  attendanceSvc,
		salarySvc:      salarySvc,
		svc:            svc,
		con:            con,
	}
}

func (f *fixture) completedRecord(t *testing.T, date string) attendance.AttendanceResponse {
	t.Helper()
	ctx := context.Background()
	resp, err := f.attendanceSvc.Record(ctx, attendance.CreateAttendanceRequest{
		ContractID:   f.con.ID,
		Date:         date,
		StartTime:    "09:00",
		EndTime:      "18:00",
		BreakMinutes: 60,
	})
	require.NoError(t, err)
	require.NoError(t, f.attendanceSvc.Complete(ctx, resp.ID))
	return resp
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestRequest_CreateKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID:  "employee-1",
		Kind:         correction.KindCreate,
		ContractID:   f.con.ID,
		Date:         strPtr("2025-03-10"),
		StartTime:    strPtr("09:00"),
		EndTime:      strPtr("18:00"),
		BreakMinutes: intPtr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, correction.StatusPending, resp.Status)
	assert.Equal(t, correction.KindCreate, resp.Kind)
	assert.Nil(t, resp.RecordID)
}

func TestRequest_CreateRejectsOverlappingPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	file := func(start, end string) error {
		_, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
			RequesterID: "employee-1",
			Kind:        correction.KindCreate,
			ContractID:  f.con.ID,
			Date:        strPtr("2025-03-10"),
			StartTime:   strPtr(start),
			EndTime:     strPtr(end),
		})
		return err
	}

	require.NoError(t, file("09:00", "13:00"))
	assert.ErrorIs(t, file("12:00", "18:00"), correction.ErrOverlappingPending)
	// adjacent window is fine
	assert.NoError(t, file("13:00", "18:00"))
}

func TestRequest_RejectsForeignRequester(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID: "someone-else",
		Kind:        correction.KindCreate,
		ContractID:  f.con.ID,
		Date:        strPtr("2025-03-10"),
		StartTime:   strPtr("09:00"),
		EndTime:     strPtr("18:00"),
	})
	assert.ErrorIs(t, err, correction.ErrNotTargetOwner)
}

func TestRequest_RejectsDuplicatePendingOnRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.completedRecord(t, "2025-03-10")

	_, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID: "employee-1",
		Kind:        correction.KindUpdate,
		RecordID:    &record.ID,
		EndTime:     strPtr("20:00"),
	})
	require.NoError(t, err)

	_, err = f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID: "employee-1",
		Kind:        correction.KindDelete,
		RecordID:    &record.ID,
	})
	assert.ErrorIs(t, err, correction.ErrDuplicatePending)
}

func TestRequest_ConcurrentDuplicatesKeepOnePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.completedRecord(t, "2025-03-10")

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
				RequesterID: "employee-1",
				Kind:        correction.KindUpdate,
				RecordID:    &record.ID,
				EndTime:     strPtr("20:00"),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var accepted int
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		require.ErrorIs(t, err, correction.ErrDuplicatePending)
	}
	assert.Equal(t, 1, accepted)
}

func TestRequest_ConcurrentOverlappingCreatesConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	windows := [][2]string{{"09:00", "13:00"}, {"12:00", "18:00"}}
	errs := make(chan error, len(windows))
	var wg sync.WaitGroup
	for _, w := range windows {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
				RequesterID: "employee-1",
				Kind:        correction.KindCreate,
				ContractID:  f.con.ID,
				Date:        strPtr("2025-03-12"),
				StartTime:   strPtr(w[0]),
				EndTime:     strPtr(w[1]),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var accepted int
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		require.ErrorIs(t, err, correction.ErrOverlappingPending)
	}
	assert.Equal(t, 1, accepted)
}

func TestApprove_CreateProducesCompletedRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	filed, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID:  "employee-1",
		Kind:         correction.KindCreate,
		ContractID:   f.con.ID,
		Date:         strPtr("2025-03-10"),
		StartTime:    strPtr("09:00"),
		EndTime:      strPtr("18:00"),
		BreakMinutes: intPtr(60),
	})
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, filed.ID)
	require.NoError(t, err)
	assert.Equal(t, correction.StatusApproved, approved.Status)
	require.NotNil(t, approved.RecordID)

	record, err := f.attendanceRepo.GetByID(ctx, *approved.RecordID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCompleted, record.Status)
	assert.Equal(t, "8", record.TotalHours.String())

	weekStart, _ := allowance.WeekBounds(record.WorkDate)
	agg, err := f.allowanceRepo.GetByContractAndWeekStart(ctx, f.con.ID, weekStart)
	require.NoError(t, err)
	assert.Equal(t, "8", agg.TotalWorkHours.String())
}

func TestApprove_UpdateAppliesRequestedTimes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.completedRecord(t, "2025-03-10")

	filed, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID: "employee-1",
		Kind:        correction.KindUpdate,
		RecordID:    &record.ID,
		StartTime:   strPtr("09:00"),
		EndTime:     strPtr("20:00"),
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, filed.ID)
	require.NoError(t, err)

	updated, err := f.attendanceRepo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "10", updated.TotalHours.String())
	assert.True(t, updated.IsModified)
}

func TestApprove_DeleteSoftDeletesAndShrinksSalary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.completedRecord(t, "2025-03-10")
	f.completedRecord(t, "2025-03-11")

	calculated, err := f.salarySvc.Calculate(ctx, f.con.ID, 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, "160000", calculated.BasePay.String())

	filed, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID: "employee-1",
		Kind:        correction.KindDelete,
		RecordID:    &first.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, filed.ID)
	require.NoError(t, err)

	record, err := f.attendanceRepo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusDeleted, record.Status)
	assert.Nil(t, record.AllowanceID)

	result, err := f.salarySvc.Get(ctx, f.con.ID, 2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, "80000", result.BasePay.String())
	assert.Equal(t, "8", result.TotalWorkHours.String())
}

func TestApprove_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.completedRecord(t, "2025-03-10")

	filed, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID: "employee-1",
		Kind:        correction.KindUpdate,
		RecordID:    &record.ID,
		EndTime:     strPtr("20:00"),
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, filed.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, filed.ID)
	assert.ErrorIs(t, err, correction.ErrAlreadyProcessed)
}

func TestReject_LeavesAttendanceUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.completedRecord(t, "2025-03-10")

	filed, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID: "employee-1",
		Kind:        correction.KindDelete,
		RecordID:    &record.ID,
	})
	require.NoError(t, err)

	rejected, err := f.svc.Reject(ctx, filed.ID)
	require.NoError(t, err)
	assert.Equal(t, correction.StatusRejected, rejected.Status)

	stored, err := f.attendanceRepo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCompleted, stored.Status)

	// a rejected request no longer blocks a new one
	_, err = f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID: "employee-1",
		Kind:        correction.KindUpdate,
		RecordID:    &record.ID,
		EndTime:     strPtr("19:00"),
	})
	assert.NoError(t, err)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.completedRecord(t, "2025-03-10")

	filed, err := f.svc.Request(ctx, correction.CreateCorrectionRequest{
		RequesterID: "employee-1",
		Kind:        correction.KindUpdate,
		RecordID:    &record.ID,
		EndTime:     strPtr("20:00"),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Cancel(ctx, "someone-else", filed.ID), correction.ErrNotRequestOwner)

	require.NoError(t, f.svc.Cancel(ctx, "employee-1", filed.ID))
	_, err = f.svc.Get(ctx, filed.ID)
	assert.ErrorIs(t, err, correction.ErrRequestNotFound)
}
