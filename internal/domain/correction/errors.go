package correction

import "errors"

// Correction workflow errors
var (
	ErrRequestNotFound    = errors.New("correction request not found")
	ErrAlreadyProcessed   = errors.New("correction request has already been approved or rejected")
	ErrDuplicatePending   = errors.New("a pending correction already exists for this record")
	ErrOverlappingPending = errors.New("a pending create correction overlaps this time window")
	ErrNotTargetOwner     = errors.New("requester does not own the target record")
	ErrNotRequestOwner    = errors.New("only the requester can cancel a correction request")
)
