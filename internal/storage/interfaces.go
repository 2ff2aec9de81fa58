// Package storage defines the persistence interfaces for historical bar
// data and their shared error values. Implementations live in the memory,
// postgres, and clickhouse subpackages.
package storage

import (
	"context"
	"time"

	"equity-options-lab/internal/domain"
)

// BarStore provides access to daily bar history, keyed by symbol.
type BarStore interface {
	// InsertBars adds bars for a symbol. Returns ErrDuplicateKey if any
	// (symbol, date) pair already exists; the batch fails as a whole.
	InsertBars(ctx context.Context, symbol string, bars []domain.PriceBar) error

	// GetBars retrieves all bars for a symbol ordered by date ASC.
	// Returns ErrNotFound if the symbol has no bars.
	GetBars(ctx context.Context, symbol string) ([]domain.PriceBar, error)

	// GetBarsByDateRange retrieves bars within [start, end] (inclusive),
	// ordered by date ASC. Returns ErrNotFound if the symbol has no bars
	// at all; an empty range for a known symbol returns an empty slice.
	GetBarsByDateRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceBar, error)

	// ListSymbols returns all symbols with stored bars, sorted ASC.
	ListSymbols(ctx context.Context) ([]string, error)
}

// LoadSeries fetches a symbol's full history and validates it into a
// Series ready for backtesting.
func LoadSeries(ctx context.Context, store BarStore, symbol string) (*domain.Series, error) {
	bars, err := store.GetBars(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return domain.NewSeries(bars)
}
