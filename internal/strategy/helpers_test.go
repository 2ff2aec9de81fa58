package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func seriesFromCloses(t *testing.T, closes []float64) *domain.Series {
	t.Helper()
	bars := make([]domain.PriceBar, len(closes))
	for i, c := range closes {
		d := decimal.NewFromFloat(c)
		bars[i] = domain.PriceBar{
			Date:     day(i),
			Open:     d,
			High:     d.Add(decimal.NewFromInt(1)),
			Low:      d.Sub(decimal.NewFromInt(1)),
			Close:    d,
			AdjClose: d,
			Volume:   1000,
		}
	}
	s, err := domain.NewSeries(bars)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	return s
}

// flatCloses returns n identical closes. Useful for forcing hold signals
// and a zero-volatility quote path.
func flatCloses(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

// sineCloses oscillates around a base price, giving crossovers and band
// touches without a net trend.
func sineCloses(n int, base, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + amp*math.Sin(float64(i)/5)
	}
	return out
}
