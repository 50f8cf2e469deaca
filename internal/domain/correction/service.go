package correction

import "context"

// CorrectionService runs the request/approve/reject workflow. Approval
// applies the underlying attendance mutation and its recalculations in the
// same unit of work as the status transition.
type CorrectionService interface {
	// Request files a new correction, rejecting duplicates, overlapping
	// create windows, deleted targets and requesters who do not own the
	// target.
	Request(ctx context.Context, req CreateCorrectionRequest) (CorrectionResponse, error)

	// Approve applies the requested mutation and transitions to Approved
	Approve(ctx context.Context, id string) (CorrectionResponse, error)

	// Reject transitions to Rejected without touching attendance data
	Reject(ctx context.Context, id string) (CorrectionResponse, error)

	// Cancel deletes a still-pending request; requester-only
	Cancel(ctx context.Context, requesterID, id string) error

	// Get retrieves a request by ID
	Get(ctx context.Context, id string) (CorrectionResponse, error)
}
