package database

import "context"

// UnitOfWork runs fn as one atomic unit: every repository write performed
// inside fn commits together or not at all. An attendance mutation and the
// aggregate recalculations it cascades into must never be split across
// commit boundaries.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
