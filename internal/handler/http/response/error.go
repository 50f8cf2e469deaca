package response

import (
	"errors"
	"net/http"

	"github.com/wagely/payroll-backend-go/internal/domain/allowance"
	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/domain/correction"
	"github.com/wagely/payroll-backend-go/internal/domain/salary"
	"github.com/wagely/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Contract domain errors
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, contract.ErrInvalidPaymentDay):
		BadRequest(w, "Payment day must be between 1 and 31", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRecordDeleted):
		Conflict(w, "Attendance record is deleted")
	case errors.Is(err, attendance.ErrNotScheduled):
		Conflict(w, "Attendance record is not in scheduled status")
	case errors.Is(err, attendance.ErrNotHardDeletable):
		Conflict(w, "Completed records can only be removed through an approved correction")
	case errors.Is(err, attendance.ErrInvalidTimeRange):
		UnprocessableEntity(w, "Work time range is invalid")
	case errors.Is(err, attendance.ErrInvalidBreak):
		UnprocessableEntity(w, "Break exceeds the shift duration")

	// Allowance domain errors
	case errors.Is(err, allowance.ErrAllowanceNotFound):
		NotFound(w, "Weekly allowance not found")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary has not been calculated for this period")
	case errors.Is(err, salary.ErrNoRecordsInPeriod):
		NotFound(w, "No attendance records in the pay period")
	case errors.Is(err, salary.ErrInvalidPeriod):
		BadRequest(w, "Invalid pay period", nil)

	// Correction domain errors
	case errors.Is(err, correction.ErrRequestNotFound):
		NotFound(w, "Correction request not found")
	case errors.Is(err, correction.ErrAlreadyProcessed):
		Conflict(w, "Correction request already processed")
	case errors.Is(err, correction.ErrDuplicatePending):
		Conflict(w, "A pending correction already targets this record")
	case errors.Is(err, correction.ErrOverlappingPending):
		Conflict(w, "A pending correction overlaps the requested window")
	case errors.Is(err, correction.ErrNotTargetOwner):
		Forbidden(w, "Requester does not own the target record")
	case errors.Is(err, correction.ErrNotRequestOwner):
		Forbidden(w, "Only the requester may cancel this request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
