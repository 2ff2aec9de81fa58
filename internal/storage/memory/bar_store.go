// Package memory provides in-memory storage implementations, used by
// tests and by runs that load bars from flat files rather than a
// database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/storage"
)

// BarStore is an in-memory implementation of storage.BarStore.
type BarStore struct {
	mu   sync.RWMutex
	data map[string][]domain.PriceBar // per symbol, kept sorted by date
}

// NewBarStore creates a new in-memory bar store.
func NewBarStore() *BarStore {
	return &BarStore{data: make(map[string][]domain.PriceBar)}
}

// Compile-time interface check.
var _ storage.BarStore = (*BarStore)(nil)

// InsertBars adds bars for a symbol. Fails the entire batch on any
// duplicate date, existing or intra-batch.
func (s *BarStore) InsertBars(_ context.Context, symbol string, bars []domain.PriceBar) error {
	if symbol == "" {
		return storage.ErrInvalidInput
	}
	if len(bars) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[int64]struct{}, len(s.data[symbol]))
	for _, b := range s.data[symbol] {
		existing[b.Date.Unix()] = struct{}{}
	}
	for _, b := range bars {
		key := b.Date.Unix()
		if _, dup := existing[key]; dup {
			return storage.ErrDuplicateKey
		}
		existing[key] = struct{}{}
	}

	s.data[symbol] = append(s.data[symbol], bars...)
	sort.Slice(s.data[symbol], func(i, j int) bool {
		return s.data[symbol][i].Date.Before(s.data[symbol][j].Date)
	})
	return nil
}

// GetBars retrieves all bars for a symbol ordered by date ASC.
func (s *BarStore) GetBars(_ context.Context, symbol string) ([]domain.PriceBar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bars, ok := s.data[symbol]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]domain.PriceBar, len(bars))
	copy(out, bars)
	return out, nil
}

// GetBarsByDateRange retrieves bars within [start, end] inclusive.
func (s *BarStore) GetBarsByDateRange(_ context.Context, symbol string, start, end time.Time) ([]domain.PriceBar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bars, ok := s.data[symbol]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]domain.PriceBar, 0)
	for _, b := range bars {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// ListSymbols returns all symbols with stored bars, sorted ASC.
func (s *BarStore) ListSymbols(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbols := make([]string, 0, len(s.data))
	for sym := range s.data {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols, nil
}
