package allowance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
)

func recordWithHours(hours string, status attendance.Status) attendance.Record {
	return attendance.Record{
		TotalHours: decimal.RequireFromString(hours),
		Status:     status,
	}
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		weekStart string
		weekEnd   string
	}{
		{name: "wednesday", date: "2025-03-12", weekStart: "2025-03-10", weekEnd: "2025-03-16"},
		{name: "monday is its own week start", date: "2025-03-10", weekStart: "2025-03-10", weekEnd: "2025-03-16"},
		{name: "sunday belongs to the preceding monday", date: "2025-03-16", weekStart: "2025-03-10", weekEnd: "2025-03-16"},
		{name: "crosses a month boundary", date: "2025-04-01", weekStart: "2025-03-31", weekEnd: "2025-04-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			require.NoError(t, err)

			start, end := WeekBounds(date)
			assert.Equal(t, tt.weekStart, start.Format("2006-01-02"))
			assert.Equal(t, tt.weekEnd, end.Format("2006-01-02"))
		})
	}
}

func TestRecalculate_PaidLeave(t *testing.T) {
	wage := decimal.NewFromInt(10000)

	t.Run("twenty hours earn proportional paid leave", func(t *testing.T) {
		w := New("contract-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
		records := []attendance.Record{
			recordWithHours("12", attendance.StatusCompleted),
			recordWithHours("8", attendance.StatusScheduled),
		}

		w.Recalculate(records, wage, false, attendance.DefaultEntitlement)

		assert.Equal(t, "20", w.TotalWorkHours.String())
		assert.Equal(t, "40000", w.PaidLeaveAmount.String())
		assert.True(t, w.OvertimeHours.IsZero())
		assert.True(t, w.OvertimeAmount.IsZero())
	})

	t.Run("below fifteen hours earns nothing", func(t *testing.T) {
		w := New("contract-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
		records := []attendance.Record{
			recordWithHours("14.5", attendance.StatusCompleted),
		}

		w.Recalculate(records, wage, false, attendance.DefaultEntitlement)

		assert.Equal(t, "14.5", w.TotalWorkHours.String())
		assert.True(t, w.PaidLeaveAmount.IsZero())
	})

	t.Run("exactly fifteen hours qualifies", func(t *testing.T) {
		w := New("contract-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
		records := []attendance.Record{
			recordWithHours("15", attendance.StatusCompleted),
		}

		w.Recalculate(records, wage, false, attendance.DefaultEntitlement)

		// (15/40) x 8 x 10000
		assert.Equal(t, "30000", w.PaidLeaveAmount.String())
	})

	t.Run("deleted records do not count", func(t *testing.T) {
		w := New("contract-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
		records := []attendance.Record{
			recordWithHours("10", attendance.StatusCompleted),
			recordWithHours("10", attendance.StatusDeleted),
		}

		w.Recalculate(records, wage, false, attendance.DefaultEntitlement)

		assert.Equal(t, "10", w.TotalWorkHours.String())
		assert.True(t, w.PaidLeaveAmount.IsZero())
	})
}

func TestRecalculate_Overtime(t *testing.T) {
	wage := decimal.NewFromInt(10000)

	t.Run("hours above forty earn the premium", func(t *testing.T) {
		w := New("contract-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
		records := []attendance.Record{
			recordWithHours("45", attendance.StatusCompleted),
		}

		w.Recalculate(records, wage, false, attendance.DefaultEntitlement)

		assert.Equal(t, "5", w.OvertimeHours.String())
		assert.Equal(t, "75000", w.OvertimeAmount.String())
		// paid leave still accrues on the full total
		assert.Equal(t, "90000", w.PaidLeaveAmount.String())
	})

	t.Run("exactly forty hours earn none", func(t *testing.T) {
		w := New("contract-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
		records := []attendance.Record{
			recordWithHours("40", attendance.StatusCompleted),
		}

		w.Recalculate(records, wage, false, attendance.DefaultEntitlement)

		assert.True(t, w.OvertimeHours.IsZero())
		assert.True(t, w.OvertimeAmount.IsZero())
	})

	t.Run("exempt workplace pays no premium", func(t *testing.T) {
		w := New("contract-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
		records := []attendance.Record{
			recordWithHours("45", attendance.StatusCompleted),
		}

		w.Recalculate(records, wage, true, attendance.DefaultEntitlement)

		assert.True(t, w.OvertimeHours.IsZero())
		assert.True(t, w.OvertimeAmount.IsZero())
	})
}

func TestRecalculate_Idempotent(t *testing.T) {
	wage := decimal.NewFromInt(9860)
	w := New("contract-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	records := []attendance.Record{
		recordWithHours("43.5", attendance.StatusCompleted),
	}

	w.Recalculate(records, wage, false, attendance.DefaultEntitlement)
	first := w
	w.Recalculate(records, wage, false, attendance.DefaultEntitlement)

	assert.True(t, first.TotalWorkHours.Equal(w.TotalWorkHours))
	assert.True(t, first.PaidLeaveAmount.Equal(w.PaidLeaveAmount))
	assert.True(t, first.OvertimeHours.Equal(w.OvertimeHours))
	assert.True(t, first.OvertimeAmount.Equal(w.OvertimeAmount))
}
