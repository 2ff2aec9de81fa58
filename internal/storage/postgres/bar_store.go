package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/storage"
)

// BarStore implements storage.BarStore using PostgreSQL. Prices are stored
// as NUMERIC and scanned into decimals without passing through float64.
type BarStore struct {
	pool *Pool
}

// NewBarStore creates a new BarStore.
func NewBarStore(pool *Pool) *BarStore {
	return &BarStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BarStore = (*BarStore)(nil)

// InsertBars adds bars for a symbol atomically. Returns ErrDuplicateKey if
// any (symbol, bar_date) already exists; the transaction rolls back.
func (s *BarStore) InsertBars(ctx context.Context, symbol string, bars []domain.PriceBar) error {
	if symbol == "" {
		return storage.ErrInvalidInput
	}
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO price_bars (
			symbol, bar_date, open, high, low, close, adj_close, volume
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, b := range bars {
		_, err := tx.Exec(ctx, query,
			symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.AdjClose, b.Volume,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert bar: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetBars retrieves all bars for a symbol ordered by date ASC.
func (s *BarStore) GetBars(ctx context.Context, symbol string) ([]domain.PriceBar, error) {
	query := `
		SELECT bar_date, open, high, low, close, adj_close, volume
		FROM price_bars
		WHERE symbol = $1
		ORDER BY bar_date ASC
	`
	return s.queryBars(ctx, query, symbol)
}

// GetBarsByDateRange retrieves bars within [start, end] inclusive, ordered
// by date ASC.
func (s *BarStore) GetBarsByDateRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceBar, error) {
	// The symbol must exist even when the range is empty, so the two
	// cases remain distinguishable to callers.
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM price_bars WHERE symbol = $1)`, symbol,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check symbol exists: %w", err)
	}
	if !exists {
		return nil, storage.ErrNotFound
	}

	query := `
		SELECT bar_date, open, high, low, close, adj_close, volume
		FROM price_bars
		WHERE symbol = $1 AND bar_date >= $2 AND bar_date <= $3
		ORDER BY bar_date ASC
	`
	rows, err := s.pool.Query(ctx, query, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()
	return scanBars(rows)
}

// ListSymbols returns all symbols with stored bars, sorted ASC.
func (s *BarStore) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT symbol FROM price_bars ORDER BY symbol ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	symbols := make([]string, 0)
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

func (s *BarStore) queryBars(ctx context.Context, query, symbol string) ([]domain.PriceBar, error) {
	rows, err := s.pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	bars, err := scanBars(rows)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, storage.ErrNotFound
	}
	return bars, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBars(rows rowScanner) ([]domain.PriceBar, error) {
	bars := make([]domain.PriceBar, 0)
	for rows.Next() {
		var b domain.PriceBar
		var open, high, low, closep, adjClose decimal.Decimal
		if err := rows.Scan(&b.Date, &open, &high, &low, &closep, &adjClose, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Open, b.High, b.Low, b.Close, b.AdjClose = open, high, low, closep, adjClose
		b.Date = b.Date.UTC()
		bars = append(bars, b)
	}
	return bars, rows.Err()
}
