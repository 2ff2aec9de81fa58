package clickhouse

import (
	"context"
	"fmt"
	"time"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/storage"
)

// BarStore implements storage.BarStore using ClickHouse. MergeTree does
// not enforce uniqueness at insert time, so duplicates are rejected with
// explicit checks before the batch is sent.
type BarStore struct {
	conn *Conn
}

// NewBarStore creates a new BarStore.
func NewBarStore(conn *Conn) *BarStore {
	return &BarStore{conn: conn}
}

// Compile-time interface check.
var _ storage.BarStore = (*BarStore)(nil)

// InsertBars adds bars for a symbol. Fails the entire batch on any
// duplicate (symbol, bar_date), existing or intra-batch.
func (s *BarStore) InsertBars(ctx context.Context, symbol string, bars []domain.PriceBar) error {
	if symbol == "" {
		return storage.ErrInvalidInput
	}
	if len(bars) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(bars))
	for _, b := range bars {
		key := b.Date.Unix()
		if _, dup := seen[key]; dup {
			return storage.ErrDuplicateKey
		}
		seen[key] = struct{}{}
	}

	for _, b := range bars {
		exists, err := s.exists(ctx, symbol, b.Date)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO price_bars (
			symbol, bar_date, open, high, low, close, adj_close, volume
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, b := range bars {
		err = batch.Append(
			symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.AdjClose, b.Volume,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetBars retrieves all bars for a symbol ordered by date ASC.
func (s *BarStore) GetBars(ctx context.Context, symbol string) ([]domain.PriceBar, error) {
	query := `
		SELECT bar_date, open, high, low, close, adj_close, volume
		FROM price_bars
		WHERE symbol = ?
		ORDER BY bar_date ASC
	`
	bars, err := s.queryBars(ctx, query, symbol)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, storage.ErrNotFound
	}
	return bars, nil
}

// GetBarsByDateRange retrieves bars within [start, end] inclusive.
func (s *BarStore) GetBarsByDateRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceBar, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT count() FROM price_bars WHERE symbol = ?`, symbol,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("check symbol exists: %w", err)
	}
	if count == 0 {
		return nil, storage.ErrNotFound
	}

	query := `
		SELECT bar_date, open, high, low, close, adj_close, volume
		FROM price_bars
		WHERE symbol = ? AND bar_date >= ? AND bar_date <= ?
		ORDER BY bar_date ASC
	`
	return s.queryBars(ctx, query, symbol, start, end)
}

// ListSymbols returns all symbols with stored bars, sorted ASC.
func (s *BarStore) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx,
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

func (s *BarStore) queryBars(ctx context.Context, query string, args ...any) ([]domain.PriceBar, error) {
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	bars := make([]domain.PriceBar, 0)
	for rows.Next() {
		var b domain.PriceBar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.AdjClose, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Date = b.Date.UTC()
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (s *BarStore) exists(ctx context.Context, symbol string, date time.Time) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT count() FROM price_bars WHERE symbol = ? AND bar_date = ?`,
		symbol, date,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
