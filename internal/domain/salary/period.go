package salary

import "time"

// Period identifies one pay period.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodFor routes a work date to its pay period: dates on or after the
// payment day belong to the next month's period, earlier dates to the
// current one. The same rule must hold for the coordinator and for the
// aggregation query, or records drift between periods.
func PeriodFor(workDate time.Time, paymentDay int) Period {
	day := workDate.Day()
	effective := clampDay(paymentDay, workDate.Year(), workDate.Month())
	if day >= effective {
		next := workDate.AddDate(0, 0, -day+1).AddDate(0, 1, 0)
		return Period{Year: next.Year(), Month: next.Month()}
	}
	return Period{Year: workDate.Year(), Month: workDate.Month()}
}

// Bounds returns the inclusive date range [previous month's payment day,
// this month's payment day - 1], with the payment day clamped to each source
// month's last valid day.
func (p Period) Bounds(paymentDay int, loc *time.Location) (start, end time.Time) {
	prev := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
	start = time.Date(prev.Year(), prev.Month(), clampDay(paymentDay, prev.Year(), prev.Month()), 0, 0, 0, 0, loc)
	end = time.Date(p.Year, p.Month, clampDay(paymentDay, p.Year, p.Month), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	return start, end
}

// DueDate returns the payment due date of the period: the payment day of
// (year, month), clamped to the month length.
func (p Period) DueDate(paymentDay int, loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month, clampDay(paymentDay, p.Year, p.Month), 0, 0, 0, 0, loc)
}

func clampDay(day, year int, month time.Month) int {
	last := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
	if day > last {
		return last
	}
	return day
}
