package clickhouse

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
	conn, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(conn)
	bars := []domain.PriceBar{makeBar(0, 187.50), makeBar(1, 189.25)}
	require.NoError(t, store.InsertBars(ctx, "AAPL", bars))

	got, err := store.GetBars(ctx, "AAPL")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, got[0].Date.Before(got[1].Date))
	require.True(t, got[0].Close.Equal(decimal.NewFromFloat(187.50)),
		"close %s after round trip", got[0].Close)
}

func TestBarStore_DuplicateRejected(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(conn)
	require.NoError(t, store.InsertBars(ctx, "AAPL", []domain.PriceBar{makeBar(0, 100)}))

	err := store.InsertBars(ctx, "AAPL", []domain.PriceBar{makeBar(0, 99)})
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	err = store.InsertBars(ctx, "AAPL", []domain.PriceBar{makeBar(1, 101), makeBar(1, 102)})
	require.ErrorIs(t, err, storage.ErrDuplicateKey, "intra-batch duplicate")
}

func TestBarStore_UnknownSymbol(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(conn)
	_, err := store.GetBars(ctx, "MISSING")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBarStore_DateRangeAndSymbols(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewBarStore(conn)
	bars := []domain.PriceBar{makeBar(0, 100), makeBar(1, 101), makeBar(2, 102)}
	require.NoError(t, store.InsertBars(ctx, "SPY", bars))
	require.NoError(t, store.InsertBars(ctx, "AAPL", []domain.PriceBar{makeBar(0, 180)}))

	got, err := store.GetBarsByDateRange(ctx, "SPY", bars[0].Date, bars[1].Date)
	require.NoError(t, err)
	require.Len(t, got, 2)

	symbols, err := store.ListSymbols(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "SPY"}, symbols)
}
