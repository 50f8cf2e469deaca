package attendance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagely/payroll-backend-go/internal/pkg/validator"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type CreateAttendanceRequest struct {
	ContractID   string  `json:"contract_id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	Memo         *string `json:"memo"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ContractID) {
		errs = append(errs, validator.ValidationError{
			Field:   "contract_id",
			Message: "contract_id is required",
		})
	}
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes *int    `json:"break_minutes"`
	Memo         *string `json:"memo"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.StartTime != nil && !validator.IsValidClock(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if r.EndTime != nil && !validator.IsValidClock(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	ContractID    string          `json:"contract_id"`
	Date          string          `json:"date"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	BreakMinutes  int             `json:"break_minutes"`
	Memo          *string         `json:"memo,omitempty"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	NightHours    decimal.Decimal `json:"night_hours"`
	HolidayHours  decimal.Decimal `json:"holiday_hours"`
	Status        Status          `json:"status"`
	IsModified    bool            `json:"is_modified"`
}

func ToResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		ID:            r.ID,
		ContractID:    r.ContractID,
		Date:          r.WorkDate.Format(DateLayout),
		StartTime:     r.StartTime.Format(ClockLayout),
		EndTime:       r.EndTime.Format(ClockLayout),
		BreakMinutes:  r.BreakMinutes,
		Memo:          r.Memo,
		TotalHours:    r.TotalHours,
		RegularHours:  r.RegularHours,
		OvertimeHours: r.OvertimeHours,
		NightHours:    r.NightHours,
		HolidayHours:  r.HolidayHours,
		Status:        r.Status,
		IsModified:    r.IsModified,
	}
}

type ListAttendanceResponse struct {
	Items []AttendanceResponse `json:"items"`
	Total int                  `json:"total"`
}

// ShiftTimes anchors wall-clock start/end on the work date. An end at or
// before the start is interpreted as the next day (overnight shift).
func ShiftTimes(workDate time.Time, startClock, endClock string) (start, end time.Time, err error) {
	s, err := time.Parse(ClockLayout, startClock)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	e, err := time.Parse(ClockLayout, endClock)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}

	start = time.Date(workDate.Year(), workDate.Month(), workDate.Day(), s.Hour(), s.Minute(), 0, 0, workDate.Location())
	end = time.Date(workDate.Year(), workDate.Month(), workDate.Day(), e.Hour(), e.Minute(), 0, 0, workDate.Location())
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}
