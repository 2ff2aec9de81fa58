package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/storage"
)

func makeBar(n int, close float64) domain.PriceBar {
	d := decimal.NewFromFloat(close)
	return domain.PriceBar{
		Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n),
		Open:     d,
		High:     d.Add(decimal.NewFromInt(1)),
		Low:      d.Sub(decimal.NewFromInt(1)),
		Close:    d,
		AdjClose: d,
		Volume:   1000,
	}
}

func TestBarStore_InsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(pool)
	bars := []domain.PriceBar{makeBar(0, 187.50), makeBar(1, 189.25), makeBar(2, 185.75)}
	require.NoError(t, store.InsertBars(ctx, "AAPL", bars))

	got, err := store.GetBars(ctx, "AAPL")
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i := 1; i < len(got); i++ {
		require.True(t, got[i-1].Date.Before(got[i].Date), "bars must be ordered by date")
	}
	// Prices survive the NUMERIC round trip exactly.
	require.True(t, got[0].Close.Equal(decimal.NewFromFloat(187.50)),
		"close %s after round trip", got[0].Close)
	require.Equal(t, int64(1000), got[0].Volume)
}

func TestBarStore_DuplicateRollsBackBatch(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(pool)
	require.NoError(t, store.InsertBars(ctx, "AAPL", []domain.PriceBar{makeBar(0, 100)}))

	err := store.InsertBars(ctx, "AAPL", []domain.PriceBar{makeBar(1, 101), makeBar(0, 99)})
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	got, err := store.GetBars(ctx, "AAPL")
	require.NoError(t, err)
	require.Len(t, got, 1, "failed batch must not be partially applied")
}

func TestBarStore_UnknownSymbol(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(pool)
	_, err := store.GetBars(ctx, "MISSING")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetBarsByDateRange(ctx, "MISSING", time.Now(), time.Now())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBarStore_DateRangeInclusive(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(pool)
	bars := []domain.PriceBar{makeBar(0, 100), makeBar(1, 101), makeBar(2, 102), makeBar(3, 103)}
	require.NoError(t, store.InsertBars(ctx, "SPY", bars))

	got, err := store.GetBarsByDateRange(ctx, "SPY", bars[1].Date, bars[2].Date)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, got[0].Date.Equal(bars[1].Date))
	require.True(t, got[1].Date.Equal(bars[2].Date))

	// A known symbol with an empty range is not an error.
	got, err = store.GetBarsByDateRange(ctx, "SPY",
		bars[3].Date.AddDate(0, 0, 10), bars[3].Date.AddDate(0, 0, 20))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestBarStore_ListSymbols(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(pool)
	require.NoError(t, store.InsertBars(ctx, "SPY", []domain.PriceBar{makeBar(0, 400)}))
	require.NoError(t, store.InsertBars(ctx, "AAPL", []domain.PriceBar{makeBar(0, 180)}))

	symbols, err := store.ListSymbols(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "SPY"}, symbols)
}
