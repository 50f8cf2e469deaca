package calendar

import (
	"context"
	"time"
)

// HolidayOracle answers whether a work date is a public holiday. Calendar
// ingestion and refresh happen outside this service; the core only consumes
// the answer.
type HolidayOracle interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

// StaticOracle is a HolidayOracle backed by a fixed set of dates.
type StaticOracle struct {
	holidays map[string]struct{}
}

func NewStaticOracle(dates []time.Time) *StaticOracle {
	holidays := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		holidays[d.Format("2006-01-02")] = struct{}{}
	}
	return &StaticOracle{holidays: holidays}
}

func (o *StaticOracle) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	_, ok := o.holidays[date.Format("2006-01-02")]
	return ok, nil
}
