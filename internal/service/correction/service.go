package correction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/domain/correction"
	"github.com/wagely/payroll-backend-go/internal/pkg/calendar"
	"github.com/wagely/payroll-backend-go/internal/pkg/database"
	"github.com/wagely/payroll-backend-go/internal/pkg/keylock"
	"github.com/wagely/payroll-backend-go/internal/service/recalc"
)

type CorrectionServiceImpl struct {
	uow            database.UnitOfWork
	correctionRepo correction.CorrectionRepository
	attendanceRepo attendance.AttendanceRepository
	contractRepo   contract.ContractRepository
	coordinator    *recalc.Coordinator
	holidays       calendar.HolidayOracle
	locks          *keylock.Keyed
}

func NewCorrectionService(
	uow database.UnitOfWork,
	correctionRepo correction.CorrectionRepository,
	attendanceRepo attendance.AttendanceRepository,
	contractRepo contract.ContractRepository,
	coordinator *recalc.Coordinator,
	holidays calendar.HolidayOracle,
) correction.CorrectionService {
	return &CorrectionServiceImpl{
		uow:            uow,
		correctionRepo: correctionRepo,
		attendanceRepo: attendanceRepo,
		contractRepo:   contractRepo,
		coordinator:    coordinator,
		holidays:       holidays,
		locks:          keylock.New(),
	}
}

// Request implements correction.CorrectionService. The pending-conflict
// check and the insert hold a per-target lock and run in one unit of work,
// so two racing requests against the same record or the same requested day
// cannot both slip past the check.
func (s *CorrectionServiceImpl) Request(ctx context.Context, req correction.CreateCorrectionRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	unlock := s.locks.Lock(requestKey(req))
	defer unlock()

	var created correction.CorrectionRequest
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var request correction.CorrectionRequest
		var err error
		switch req.Kind {
		case correction.KindCreate:
			request, err = s.buildCreateRequest(ctx, req)
		default:
			request, err = s.buildTargetedRequest(ctx, req)
		}
		if err != nil {
			return err
		}

		created, err = s.correctionRepo.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create correction request: %w", err)
		}
		return nil
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.ToResponse(created), nil
}

// requestKey serializes conflict checks: create requests contend per
// contract and requested day, targeted requests contend per record.
func requestKey(req correction.CreateCorrectionRequest) string {
	if req.Kind == correction.KindCreate {
		return "create:" + req.ContractID + ":" + *req.Date
	}
	return "record:" + *req.RecordID
}

// Approve implements correction.CorrectionService. The status transition and
// the attendance mutation it authorizes commit together.
func (s *CorrectionServiceImpl) Approve(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	var request correction.CorrectionRequest
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.correctionRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := request.Approve(time.Now()); err != nil {
			return err
		}

		switch request.Kind {
		case correction.KindCreate:
			err = s.applyCreate(ctx, &request)
		case correction.KindUpdate:
			err = s.applyUpdate(ctx, request)
		case correction.KindDelete:
			err = s.applyDelete(ctx, request)
		}
		if err != nil {
			return err
		}

		if err := s.correctionRepo.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update correction request: %w", err)
		}
		return nil
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.ToResponse(request), nil
}

// Reject implements correction.CorrectionService. No side effects on
// attendance data.
func (s *CorrectionServiceImpl) Reject(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	request, err := s.correctionRepo.GetByID(ctx, id)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	if err := request.Reject(time.Now()); err != nil {
		return correction.CorrectionResponse{}, err
	}
	if err := s.correctionRepo.Update(ctx, request); err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to update correction request: %w", err)
	}
	return correction.ToResponse(request), nil
}

// Cancel implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Cancel(ctx context.Context, requesterID, id string) error {
	request, err := s.correctionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.RequesterID != requesterID {
		return correction.ErrNotRequestOwner
	}
	if request.Status != correction.StatusPending {
		return correction.ErrAlreadyProcessed
	}
	if err := s.correctionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete correction request: %w", err)
	}
	return nil
}

// Get implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Get(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	request, err := s.correctionRepo.GetByID(ctx, id)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.ToResponse(request), nil
}

func (s *CorrectionServiceImpl) buildCreateRequest(ctx context.Context, req correction.CreateCorrectionRequest) (correction.CorrectionRequest, error) {
	con, err := s.contractRepo.GetByID(ctx, req.ContractID)
	if err != nil {
		return correction.CorrectionRequest{}, err
	}
	if con.EmployeeID != req.RequesterID {
		return correction.CorrectionRequest{}, correction.ErrNotTargetOwner
	}

	workDate, err := time.Parse(attendance.DateLayout, *req.Date)
	if err != nil {
		return correction.CorrectionRequest{}, attendance.ErrInvalidTimeRange
	}
	start, end, err := attendance.ShiftTimes(workDate, *req.StartTime, *req.EndTime)
	if err != nil {
		return correction.CorrectionRequest{}, err
	}

	pending, err := s.correctionRepo.ListPendingCreates(ctx, req.ContractID, workDate)
	if err != nil {
		return correction.CorrectionRequest{}, fmt.Errorf("failed to list pending create requests: %w", err)
	}
	for _, p := range pending {
		if p.OverlapsWindow(workDate, start, end) {
			return correction.CorrectionRequest{}, correction.ErrOverlappingPending
		}
	}

	return correction.CorrectionRequest{
		Kind:                  correction.KindCreate,
		ContractID:            req.ContractID,
		RequesterID:           req.RequesterID,
		RequestedDate:         &workDate,
		RequestedStart:        &start,
		RequestedEnd:          &end,
		RequestedBreakMinutes: req.BreakMinutes,
		RequestedMemo:         req.Memo,
		Status:                correction.StatusPending,
	}, nil
}

func (s *CorrectionServiceImpl) buildTargetedRequest(ctx context.Context, req correction.CreateCorrectionRequest) (correction.CorrectionRequest, error) {
	record, err := s.attendanceRepo.GetByID(ctx, *req.RecordID)
	if err != nil {
		return correction.CorrectionRequest{}, err
	}
	if record.Status == attendance.StatusDeleted {
		return correction.CorrectionRequest{}, attendance.ErrRecordDeleted
	}

	con, err := s.contractRepo.GetByID(ctx, record.ContractID)
	if err != nil {
		return correction.CorrectionRequest{}, err
	}
	if con.EmployeeID != req.RequesterID {
		return correction.CorrectionRequest{}, correction.ErrNotTargetOwner
	}

	if _, err := s.correctionRepo.GetPendingByRecordID(ctx, record.ID); err == nil {
		return correction.CorrectionRequest{}, correction.ErrDuplicatePending
	} else if !errors.Is(err, correction.ErrRequestNotFound) {
		return correction.CorrectionRequest{}, fmt.Errorf("failed to check pending requests: %w", err)
	}

	request := correction.CorrectionRequest{
		Kind:                 req.Kind,
		ContractID:           record.ContractID,
		RecordID:             &record.ID,
		RequesterID:          req.RequesterID,
		OriginalDate:         &record.WorkDate,
		OriginalStart:        &record.StartTime,
		OriginalEnd:          &record.EndTime,
		OriginalBreakMinutes: &record.BreakMinutes,
		OriginalMemo:         record.Memo,
		Status:               correction.StatusPending,
	}

	if req.Kind == correction.KindUpdate {
		workDate := record.WorkDate
		if req.Date != nil {
			workDate, err = time.Parse(attendance.DateLayout, *req.Date)
			if err != nil {
				return correction.CorrectionRequest{}, attendance.ErrInvalidTimeRange
			}
		}
		startClock := record.StartTime.Format(attendance.ClockLayout)
		endClock := record.EndTime.Format(attendance.ClockLayout)
		if req.StartTime != nil {
			startClock = *req.StartTime
		}
		if req.EndTime != nil {
			endClock = *req.EndTime
		}
		start, end, err := attendance.ShiftTimes(workDate, startClock, endClock)
		if err != nil {
			return correction.CorrectionRequest{}, err
		}

		request.RequestedDate = &workDate
		request.RequestedStart = &start
		request.RequestedEnd = &end
		request.RequestedBreakMinutes = req.BreakMinutes
		request.RequestedMemo = req.Memo
	}

	return request, nil
}

// applyCreate constructs the approved shift as a Completed record: a create
// correction reports time that was actually worked.
func (s *CorrectionServiceImpl) applyCreate(ctx context.Context, request *correction.CorrectionRequest) error {
	breakMinutes := 0
	if request.RequestedBreakMinutes != nil {
		breakMinutes = *request.RequestedBreakMinutes
	}

	record, err := attendance.NewRecord(
		request.ContractID,
		*request.RequestedDate,
		*request.RequestedStart,
		*request.RequestedEnd,
		breakMinutes,
		request.RequestedMemo,
	)
	if err != nil {
		return err
	}

	isHoliday, err := s.holidays.IsHoliday(ctx, record.WorkDate)
	if err != nil {
		return fmt.Errorf("holiday lookup failed: %w", err)
	}
	if err := record.Complete(isHoliday); err != nil {
		return err
	}

	record, err = s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	request.RecordID = &record.ID

	return s.coordinator.OnCreated(ctx, &record)
}

func (s *CorrectionServiceImpl) applyUpdate(ctx context.Context, request correction.CorrectionRequest) error {
	record, err := s.attendanceRepo.GetByID(ctx, *request.RecordID)
	if err != nil {
		return err
	}
	oldWorkDate := record.WorkDate

	workDate := record.WorkDate
	if request.RequestedDate != nil {
		workDate = *request.RequestedDate
	}
	start, end := record.StartTime, record.EndTime
	if request.RequestedStart != nil && request.RequestedEnd != nil {
		start, end = *request.RequestedStart, *request.RequestedEnd
	}
	breakMinutes := record.BreakMinutes
	if request.RequestedBreakMinutes != nil {
		breakMinutes = *request.RequestedBreakMinutes
	}

	isHoliday, err := s.holidays.IsHoliday(ctx, workDate)
	if err != nil {
		return fmt.Errorf("holiday lookup failed: %w", err)
	}

	if err := record.UpdateWorkTime(workDate, start, end, breakMinutes, request.RequestedMemo, isHoliday); err != nil {
		return err
	}
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return s.coordinator.OnUpdated(ctx, &record, oldWorkDate)
}

func (s *CorrectionServiceImpl) applyDelete(ctx context.Context, request correction.CorrectionRequest) error {
	record, err := s.attendanceRepo.GetByID(ctx, *request.RecordID)
	if err != nil {
		return err
	}
	priorStatus := record.Status

	if err := record.MarkAsDeleted(); err != nil {
		return err
	}
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return s.coordinator.OnDeleted(ctx, record, priorStatus, false)
}
