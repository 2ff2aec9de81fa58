package backtest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
)

// stubEquityStrategy replays a fixed script of signals by bar index.
type stubEquityStrategy struct {
	signals map[int]domain.Signal
}

func (s *stubEquityStrategy) Name() string      { return "stub-equity" }
func (s *stubEquityStrategy) WarmupPeriod() int { return 0 }

func (s *stubEquityStrategy) Evaluate(_ *domain.Series, i int) domain.Signal {
	if sig, ok := s.signals[i]; ok {
		return sig
	}
	return domain.SignalHold
}

// stubOptionsStrategy replays scripted signals and hands out one fixed
// set of legs for every open.
type stubOptionsStrategy struct {
	signals map[int]domain.OptionSignal
	legs    []domain.OptionLegSpec
}

func (s *stubOptionsStrategy) Name() string      { return "stub-options" }
func (s *stubOptionsStrategy) WarmupPeriod() int { return 0 }

func (s *stubOptionsStrategy) Evaluate(_ *domain.Series, i int) domain.OptionSignal {
	if sig, ok := s.signals[i]; ok {
		return sig
	}
	return domain.OptionSignalHold
}

func (s *stubOptionsStrategy) Legs(_ *domain.Series, _ int, _ decimal.Decimal) []domain.OptionLegSpec {
	return s.legs
}

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func seriesFromCloses(t *testing.T, closes []float64) *domain.Series {
	t.Helper()
	bars := make([]domain.PriceBar, len(closes))
	for i, c := range closes {
		d := decimal.NewFromFloat(c).Round(2)
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

func flatCloses(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}
