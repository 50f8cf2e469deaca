package correction

import "time"

type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

func (k Kind) Valid() bool {
	switch k {
	case KindCreate, KindUpdate, KindDelete:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// CorrectionRequest is a worker's proposed attendance change awaiting
// review. Pending is the only non-terminal state; on approval the underlying
// attendance mutation is applied and driven through the recalculation
// coordinator.
type CorrectionRequest struct {
	ID          string
	Kind        Kind
	ContractID  string
	RecordID    *string // nil for Create requests
	RequesterID string

	// Snapshot of the target record at request time (Update/Delete).
	OriginalDate         *time.Time
	OriginalStart        *time.Time
	OriginalEnd          *time.Time
	OriginalBreakMinutes *int
	OriginalMemo         *string

	// What the requester wants the record to become (Create/Update).
	RequestedDate         *time.Time
	RequestedStart        *time.Time
	RequestedEnd          *time.Time
	RequestedBreakMinutes *int
	RequestedMemo         *string

	Status    RequestStatus
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Approve transitions Pending -> Approved.
func (r *CorrectionRequest) Approve(now time.Time) error {
	if r.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	r.Status = StatusApproved
	r.DecidedAt = &now
	return nil
}

// Reject transitions Pending -> Rejected.
func (r *CorrectionRequest) Reject(now time.Time) error {
	if r.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	r.Status = StatusRejected
	r.DecidedAt = &now
	return nil
}

// OverlapsWindow reports whether this Create request's time window on the
// same date intersects [start, end).
func (r *CorrectionRequest) OverlapsWindow(date, start, end time.Time) bool {
	if r.RequestedDate == nil || r.RequestedStart == nil || r.RequestedEnd == nil {
		return false
	}
	if !sameDay(*r.RequestedDate, date) {
		return false
	}
	return r.RequestedStart.Before(end) && start.Before(*r.RequestedEnd)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
