package attendance

import (
	"context"
	"time"
)

// AttendanceService defines the attendance lifecycle operations. Every
// mutation runs as one atomic unit with the aggregate recalculations it
// cascades into.
type AttendanceService interface {
	// Record schedules a new shift
	Record(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// Update edits a shift's time range, break or memo
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// Complete transitions a Scheduled shift to Completed and computes the
	// full hour decomposition
	Complete(ctx context.Context, id string) error

	// Delete hard-removes a Scheduled shift. Completed shifts can only be
	// removed through an approved Delete correction.
	Delete(ctx context.Context, id string) error

	// Get retrieves a single record
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// ListByContract retrieves records of one contract inside a date range
	ListByContract(ctx context.Context, contractID string, from, to time.Time) (ListAttendanceResponse, error)
}
