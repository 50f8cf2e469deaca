package correction

import (
	"time"

	"github.com/wagely/payroll-backend-go/internal/pkg/validator"
)

type CreateCorrectionRequest struct {
	RequesterID string `json:"-"`

	Kind       Kind    `json:"kind"`
	ContractID string  `json:"contract_id"`
	RecordID   *string `json:"record_id"`

	Date         *string `json:"date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes *int    `json:"break_minutes"`
	Memo         *string `json:"memo"`
}

func (r *CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequesterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "requester_id",
			Message: "requester_id is required",
		})
	}
	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of create, update, delete",
		})
	}

	switch r.Kind {
	case KindCreate:
		if validator.IsEmpty(r.ContractID) {
			errs = append(errs, validator.ValidationError{
				Field:   "contract_id",
				Message: "contract_id is required for a create request",
			})
		}
		if r.Date == nil || !validator.IsValidDate(*r.Date) {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if r.StartTime == nil || !validator.IsValidClock(*r.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
		if r.EndTime == nil || !validator.IsValidClock(*r.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
	case KindUpdate:
		if r.RecordID == nil || validator.IsEmpty(*r.RecordID) {
			errs = append(errs, validator.ValidationError{
				Field:   "record_id",
				Message: "record_id is required for an update request",
			})
		}
		if r.Date != nil && !validator.IsValidDate(*r.Date) {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
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
	case KindDelete:
		if r.RecordID == nil || validator.IsEmpty(*r.RecordID) {
			errs = append(errs, validator.ValidationError{
				Field:   "record_id",
				Message: "record_id is required for a delete request",
			})
		}
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

type CorrectionResponse struct {
	ID          string  `json:"id"`
	Kind        Kind    `json:"kind"`
	ContractID  string  `json:"contract_id"`
	RecordID    *string `json:"record_id,omitempty"`
	RequesterID string  `json:"requester_id"`

	Date         *string `json:"date,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	Memo         *string `json:"memo,omitempty"`

	Status    RequestStatus `json:"status"`
	DecidedAt *string       `json:"decided_at,omitempty"`
	CreatedAt string        `json:"created_at"`
}

func ToResponse(r CorrectionRequest) CorrectionResponse {
	resp := CorrectionResponse{
		ID:           r.ID,
		Kind:         r.Kind,
		ContractID:   r.ContractID,
		RecordID:     r.RecordID,
		RequesterID:  r.RequesterID,
		BreakMinutes: r.RequestedBreakMinutes,
		Memo:         r.RequestedMemo,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.RequestedDate != nil {
		s := r.RequestedDate.Format("2006-01-02")
		resp.Date = &s
	}
	if r.RequestedStart != nil {
		s := r.RequestedStart.Format("15:04")
		resp.StartTime = &s
	}
	if r.RequestedEnd != nil {
		s := r.RequestedEnd.Format("15:04")
		resp.EndTime = &s
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}
