package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusScheduled       Status = "scheduled"
	StatusCompleted       Status = "completed"
	StatusPendingApproval Status = "pending_approval"
	StatusDeleted         Status = "deleted"
)

// Night window in minutes of day: 22:00-24:00 plus 00:00-06:00.
const (
	nightWindowStart = 22 * 60
	nightWindowEnd   = 6 * 60
	minutesPerDay    = 24 * 60
)

var (
	eight      = decimal.NewFromInt(8)
	sixty      = decimal.NewFromInt(60)
	regularCap = eight
)

// Record is one worked or scheduled shift belonging to a contract. Hour
// buckets are derived from the time range: totalHours splits into
// regularHours and overtimeHours at the 8-hour mark, and nightHours /
// holidayHours carry the differential entitlement on top of that split.
type Record struct {
	ID           string
	ContractID   string
	WorkDate     time.Time
	StartTime    time.Time
	EndTime      time.Time
	BreakMinutes int
	Memo         *string

	TotalHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	NightHours    decimal.Decimal
	HolidayHours  decimal.Decimal

	Status     Status
	IsModified bool

	// AllowanceID caches the owning weekly aggregate for fast lookup. The
	// aggregate owns the membership; this is a non-owning back-reference
	// maintained on attach/detach, never inferred.
	AllowanceID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord builds a Scheduled record. The base hour split is computed
// immediately so scheduled shifts count toward weekly entitlement; the
// night/holiday differential buckets stay zero until completion.
func NewRecord(contractID string, workDate, start, end time.Time, breakMinutes int, memo *string) (Record, error) {
	if err := validateTimeRange(start, end, breakMinutes); err != nil {
		return Record{}, err
	}

	r := Record{
		ContractID:   contractID,
		WorkDate:     workDate,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMinutes,
		Memo:         memo,
		Status:       StatusScheduled,
	}
	r.decomposeBase()
	return r, nil
}

// Complete transitions Scheduled -> Completed and computes the full hour
// decomposition, including the night and holiday differential buckets.
func (r *Record) Complete(isHoliday bool) error {
	if r.Status == StatusDeleted {
		return ErrRecordDeleted
	}
	if r.Status != StatusScheduled {
		return ErrNotScheduled
	}

	r.Status = StatusCompleted
	r.decomposeFull(isHoliday)
	return nil
}

// UpdateWorkTime edits the shift. Legal in any non-Deleted status. A
// Completed record is re-decomposed right away; a still-Scheduled record
// keeps its current buckets until its eventual completion recomputes them.
func (r *Record) UpdateWorkTime(workDate, start, end time.Time, breakMinutes int, memo *string, isHoliday bool) error {
	if r.Status == StatusDeleted {
		return ErrRecordDeleted
	}
	if err := validateTimeRange(start, end, breakMinutes); err != nil {
		return err
	}

	r.WorkDate = workDate
	r.StartTime = start
	r.EndTime = end
	r.BreakMinutes = breakMinutes
	if memo != nil {
		r.Memo = memo
	}
	r.IsModified = true

	if r.Status == StatusCompleted {
		r.decomposeFull(isHoliday)
	}
	return nil
}

// MarkAsDeleted soft-deletes the record. Completed records are retained for
// audit, never hard-removed.
func (r *Record) MarkAsDeleted() error {
	if r.Status == StatusDeleted {
		return ErrRecordDeleted
	}
	r.Status = StatusDeleted
	return nil
}

// CountsTowardEntitlement reports whether this record's hours feed weekly
// allowance totals under the given policy.
func (r *Record) CountsTowardEntitlement(policy EntitlementPolicy) bool {
	return policy(r.Status)
}

// EntitlementPolicy decides which statuses count toward weekly entitlement
// hours. The historical rule wavered between revisions, so it is an input
// rather than a constant.
type EntitlementPolicy func(Status) bool

// DefaultEntitlement counts Scheduled and Completed shifts.
func DefaultEntitlement(s Status) bool {
	return s == StatusScheduled || s == StatusCompleted
}

func validateTimeRange(start, end time.Time, breakMinutes int) error {
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	if breakMinutes < 0 {
		return ErrInvalidBreak
	}
	if int64(breakMinutes) >= int64(end.Sub(start)/time.Minute) {
		return ErrInvalidBreak
	}
	return nil
}

func (r *Record) decomposeBase() {
	netMinutes := int64(r.EndTime.Sub(r.StartTime)/time.Minute) - int64(r.BreakMinutes)

	r.TotalHours = decimal.NewFromInt(netMinutes).Div(sixty).Round(2)
	if r.TotalHours.LessThanOrEqual(regularCap) {
		r.RegularHours = r.TotalHours
		r.OvertimeHours = decimal.Zero
	} else {
		r.RegularHours = regularCap
		r.OvertimeHours = r.TotalHours.Sub(regularCap)
	}
}

func (r *Record) decomposeFull(isHoliday bool) {
	r.decomposeBase()

	night := nightOverlapMinutes(r.StartTime, r.EndTime)
	r.NightHours = decimal.NewFromInt(night).Div(sixty).Round(2)

	if isHoliday {
		r.HolidayHours = r.TotalHours
	} else {
		r.HolidayHours = decimal.Zero
	}
}

// nightOverlapMinutes measures how much of the shift falls inside the
// 22:00-06:00 night window. Shifts may cross midnight, so the window is
// unrolled over two days. Breaks are charged against regular time only.
func nightOverlapMinutes(start, end time.Time) int64 {
	s := int64(start.Hour()*60 + start.Minute())
	e := s + int64(end.Sub(start)/time.Minute)

	return overlap(s, e, 0, nightWindowEnd) +
		overlap(s, e, nightWindowStart, minutesPerDay+nightWindowEnd) +
		overlap(s, e, minutesPerDay+nightWindowStart, 2*minutesPerDay)
}

func overlap(aStart, aEnd, bStart, bEnd int64) int64 {
	lo := max(aStart, bStart)
	hi := min(aEnd, bEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}
