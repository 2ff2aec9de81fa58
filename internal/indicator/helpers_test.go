package indicator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
)

// closeSeries builds a series where each bar's high is close+1 and low is
// close-1, with constant volume.
func closeSeries(t *testing.T, closes ...float64) *domain.Series {
	t.Helper()
	bars := make([]domain.PriceBar, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		d := decimal.NewFromFloat(c)
		bars[i] = domain.PriceBar{
			Date:     start.AddDate(0, 0, i),
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
		t.Fatalf("NewSeries failed: %v", err)
	}
	return s
}

// flatSeries builds n identical bars.
func flatSeries(t *testing.T, n int, price float64) *domain.Series {
	t.Helper()
	bars := make([]domain.PriceBar, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := decimal.NewFromFloat(price)
	for i := range bars {
		bars[i] = domain.PriceBar{
			Date: start.AddDate(0, 0, i),
			Open: d, High: d, Low: d, Close: d, AdjClose: d,
			Volume: 1000,
		}
	}
	s, err := domain.NewSeries(bars)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}
	return s
}

// risingSeries builds n bars climbing by step each day from start price.
func risingSeries(t *testing.T, n int, from, step float64) *domain.Series {
	t.Helper()
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = from + float64(i)*step
	}
	return closeSeries(t, closes...)
}

func approxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
