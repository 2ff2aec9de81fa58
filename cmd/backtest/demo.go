package main

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
)

// demoBars generates a deterministic two-year daily series for demo runs:
// a gentle uptrend with a sine swing wide enough to trigger crossover and
// band strategies. Weekends are skipped to mimic a trading calendar.
func demoBars() []domain.PriceBar {
	const count = 500
	bars := make([]domain.PriceBar, 0, count)

	date := time.Date(2022, time.January, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; len(bars) < count; i++ {
		for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			date = date.AddDate(0, 0, 1)
		}

		mid := 100.0 + 0.05*float64(i) + 15.0*math.Sin(float64(i)/25.0)
		cl := decimal.NewFromFloat(mid).Round(2)
		op := decimal.NewFromFloat(mid * 0.995).Round(2)
		hi := decimal.NewFromFloat(mid * 1.01).Round(2)
		lo := decimal.NewFromFloat(mid * 0.99).Round(2)

		bars = append(bars, domain.PriceBar{
			Date:     date,
			Open:     op,
			High:     hi,
			Low:      lo,
			Close:    cl,
			AdjClose: cl,
			Volume:   1_000_000 + int64(i%7)*50_000,
		})
		date = date.AddDate(0, 0, 1)
	}
	return bars
}
