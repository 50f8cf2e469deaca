package allowance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagely/payroll-backend-go/internal/domain/attendance"
)

var (
	minEntitlementHours = decimal.NewFromInt(15)
	fullWeekHours       = decimal.NewFromInt(40)
	paidLeaveDayHours   = decimal.NewFromInt(8)
	overtimeMultiplier  = decimal.NewFromFloat(1.5)
)

// WeeklyAllowance aggregates one calendar week (Monday-Sunday) of one
// contract. Exactly one exists per (contract, week); it is created lazily on
// the first attendance write into the week and deleted once its member set
// becomes empty.
type WeeklyAllowance struct {
	ID         string
	ContractID string
	WeekStart  time.Time // Monday
	WeekEnd    time.Time // Sunday

	TotalWorkHours  decimal.Decimal
	PaidLeaveAmount decimal.Decimal
	OvertimeHours   decimal.Decimal
	OvertimeAmount  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds an empty aggregate for the week containing date.
func New(contractID string, date time.Time) WeeklyAllowance {
	weekStart, weekEnd := WeekBounds(date)
	return WeeklyAllowance{
		ContractID:      contractID,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		TotalWorkHours:  decimal.Zero,
		PaidLeaveAmount: decimal.Zero,
		OvertimeHours:   decimal.Zero,
		OvertimeAmount:  decimal.Zero,
	}
}

// Recalculate recomputes every derived field from the member records.
// Idempotent: running it twice over the same members yields identical
// fields.
//
// Paid leave: totalWorkHours >= 15 earns (total/40) x 8 x hourlyWage.
// Overtime: hours above 40 earn hourlyWage x 1.5, unless the workplace is
// exempt from the premium.
func (w *WeeklyAllowance) Recalculate(records []attendance.Record, hourlyWage decimal.Decimal, overtimeExempt bool, policy attendance.EntitlementPolicy) {
	total := decimal.Zero
	for _, r := range records {
		if !r.CountsTowardEntitlement(policy) {
			continue
		}
		total = total.Add(r.TotalHours)
	}
	w.TotalWorkHours = total

	if total.GreaterThanOrEqual(minEntitlementHours) {
		w.PaidLeaveAmount = total.Div(fullWeekHours).Mul(paidLeaveDayHours).Mul(hourlyWage).Round(2)
	} else {
		w.PaidLeaveAmount = decimal.Zero
	}

	if total.GreaterThan(fullWeekHours) && !overtimeExempt {
		w.OvertimeHours = total.Sub(fullWeekHours)
		w.OvertimeAmount = w.OvertimeHours.Mul(hourlyWage).Mul(overtimeMultiplier).Round(2)
	} else {
		w.OvertimeHours = decimal.Zero
		w.OvertimeAmount = decimal.Zero
	}
}

// WeekBounds returns the Monday and Sunday of the week containing date.
func WeekBounds(date time.Time) (weekStart, weekEnd time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	offset := int(day.Weekday()-time.Monday+7) % 7
	weekStart = day.AddDate(0, 0, -offset)
	weekEnd = weekStart.AddDate(0, 0, 6)
	return weekStart, weekEnd
}
