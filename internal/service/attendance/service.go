package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/pkg/calendar"
	"github.com/wagely/payroll-backend-go/internal/pkg/database"
	"github.com/wagely/payroll-backend-go/internal/service/recalc"
)

type AttendanceServiceImpl struct {
	uow            database.UnitOfWork
	attendanceRepo attendance.AttendanceRepository
	contractRepo   contract.ContractRepository
	coordinator    *recalc.Coordinator
	holidays       calendar.HolidayOracle
}

func NewAttendanceService(
	uow database.UnitOfWork,
	attendanceRepo attendance.AttendanceRepository,
	contractRepo contract.ContractRepository,
	coordinator *recalc.Coordinator,
	holidays calendar.HolidayOracle,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		uow:            uow,
		attendanceRepo: attendanceRepo,
		contractRepo:   contractRepo,
		coordinator:    coordinator,
		holidays:       holidays,
	}
}

// Record implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.contractRepo.GetByID(ctx, req.ContractID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	workDate, err := time.Parse(attendance.DateLayout, req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidTimeRange
	}
	start, end, err := attendance.ShiftTimes(workDate, req.StartTime, req.EndTime)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := attendance.NewRecord(req.ContractID, workDate, start, end, req.BreakMinutes, req.Memo)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.attendanceRepo.Create(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		return s.coordinator.OnCreated(ctx, &record)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(record), nil
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var record attendance.Record
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.attendanceRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		oldWorkDate := record.WorkDate

		startClock := record.StartTime.Format(attendance.ClockLayout)
		endClock := record.EndTime.Format(attendance.ClockLayout)
		if req.StartTime != nil {
			startClock = *req.StartTime
		}
		if req.EndTime != nil {
			endClock = *req.EndTime
		}
		breakMinutes := record.BreakMinutes
		if req.BreakMinutes != nil {
			breakMinutes = *req.BreakMinutes
		}

		start, end, err := attendance.ShiftTimes(record.WorkDate, startClock, endClock)
		if err != nil {
			return err
		}

		isHoliday, err := s.holidays.IsHoliday(ctx, record.WorkDate)
		if err != nil {
			return fmt.Errorf("holiday lookup failed: %w", err)
		}

		if err := record.UpdateWorkTime(record.WorkDate, start, end, breakMinutes, req.Memo, isHoliday); err != nil {
			return err
		}
		if err := s.attendanceRepo.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}

		return s.coordinator.OnUpdated(ctx, &record, oldWorkDate)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(record), nil
}

// Complete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Complete(ctx context.Context, id string) error {
	return s.uow.Do(ctx, func(ctx context.Context) error {
		record, err := s.attendanceRepo.GetByID(ctx, id)
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
		if err := s.attendanceRepo.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}

		return s.coordinator.OnCompleted(ctx, record)
	})
}

// Delete implements attendance.AttendanceService. Only Scheduled records are
// hard-deletable here; removing a Completed record requires an approved
// Delete correction.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.uow.Do(ctx, func(ctx context.Context) error {
		record, err := s.attendanceRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if record.Status == attendance.StatusDeleted {
			return attendance.ErrRecordDeleted
		}
		if record.Status != attendance.StatusScheduled {
			return attendance.ErrNotHardDeletable
		}

		if err := s.attendanceRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete attendance record: %w", err)
		}

		return s.coordinator.OnDeleted(ctx, record, record.Status, true)
	})
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

// ListByContract implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByContract(ctx context.Context, contractID string, from, to time.Time) (attendance.ListAttendanceResponse, error) {
	if _, err := s.contractRepo.GetByID(ctx, contractID); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.attendanceRepo.ListByContractAndDateRange(ctx, contractID, from, to)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	items := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		items = append(items, attendance.ToResponse(r))
	}
	return attendance.ListAttendanceResponse{Items: items, Total: len(items)}, nil
}
