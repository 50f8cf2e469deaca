package events

import (
	"context"
	"log/slog"
	"time"
)

const (
	TypeAllowanceRecalculated = "allowance.recalculated"
	TypeAllowanceDeleted      = "allowance.deleted"
	TypeSalaryRecalculated    = "salary.recalculated"
)

// Event describes one recalculation outcome.
type Event struct {
	Type       string
	ContractID string
	WeekStart  *time.Time
	Year       int
	Month      int
	At         time.Time
}

// Sink receives recalculation outcomes. Publishing is fire-and-forget: the
// wage core never waits on delivery and a failing sink must not fail the
// mutation that produced the event.
type Sink interface {
	Publish(ctx context.Context, event Event)
}

// LogSink writes events to the structured log.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, event Event) {
	attrs := []any{
		slog.String("type", event.Type),
		slog.String("contract_id", event.ContractID),
	}
	if event.WeekStart != nil {
		attrs = append(attrs, slog.String("week_start", event.WeekStart.Format("2006-01-02")))
	}
	if event.Year != 0 {
		attrs = append(attrs, slog.Int("year", event.Year), slog.Int("month", event.Month))
	}
	s.logger.Info("recalculation event", attrs...)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Publish(context.Context, Event) {}
