package backtest

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/pricing"
	"equity-options-lab/internal/strategy"
)

func newOptionsEngine(t *testing.T, capital float64) *OptionsEngine {
	t.Helper()
	e, err := NewOptionsEngine(decimal.NewFromFloat(capital), pricing.NewModel(), nil)
	require.NoError(t, err)
	return e
}

func shortCallLeg(strike, premium float64, dte int, contracts int64) domain.OptionLegSpec {
	return domain.OptionLegSpec{
		Type:      domain.Call,
		Direction: domain.Short,
		Strike:    decimal.NewFromFloat(strike),
		TargetDTE: dte,
		Premium:   decimal.NewFromFloat(premium),
		Contracts: contracts,
	}
}

func TestNewOptionsEngine_Validation(t *testing.T) {
	_, err := NewOptionsEngine(decimal.Zero, pricing.NewModel(), nil)
	require.ErrorIs(t, err, ErrNonPositiveCapital)
}

func TestOptionsRun_ShortCallExpiresWorthless(t *testing.T) {
	s := seriesFromCloses(t, flatCloses(40, 100))
	e := newOptionsEngine(t, 100000)

	strat := &stubOptionsStrategy{
		signals: map[int]domain.OptionSignal{5: domain.OptionSignalOpen},
		legs:    []domain.OptionLegSpec{shortCallLeg(105, 2, 10, 1)},
	}
	res, err := e.Run(context.Background(), s, strat)
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	tr := res.Trades[0]
	require.Equal(t, domain.OptionExpiredWorthless, tr.Status)
	require.Equal(t, day(15), tr.ExitDate)
	// Full premium retained: 2 * 1 contract * 100 shares.
	require.True(t, tr.ProfitLoss.Equal(decimal.NewFromInt(200)), "P/L %s", tr.ProfitLoss)
	require.True(t, res.FinalCapital.Equal(decimal.NewFromInt(100200)))
	require.Len(t, tr.ID, 64)
}

func TestOptionsRun_ShortCallAssigned(t *testing.T) {
	closes := flatCloses(40, 100)
	for i := 15; i < 40; i++ {
		closes[i] = 112
	}
	s := seriesFromCloses(t, closes)
	e := newOptionsEngine(t, 100000)

	strat := &stubOptionsStrategy{
		signals: map[int]domain.OptionSignal{5: domain.OptionSignalOpen},
		legs:    []domain.OptionLegSpec{shortCallLeg(105, 2, 10, 1)},
	}
	res, err := e.Run(context.Background(), s, strat)
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	tr := res.Trades[0]
	require.Equal(t, domain.OptionExpiredAssigned, tr.Status)
	// Collected 200, paid out intrinsic 7 * 100 at expiry.
	require.True(t, tr.ProfitLoss.Equal(decimal.NewFromInt(-500)), "P/L %s", tr.ProfitLoss)
	require.True(t, res.FinalCapital.Equal(decimal.NewFromInt(99500)))
}

func TestOptionsRun_CloseBySignalAtModelValue(t *testing.T) {
	s := seriesFromCloses(t, flatCloses(40, 100))
	e := newOptionsEngine(t, 100000)

	// Long 105 put bought for 3. On a flat series the volatility estimate
	// is zero, so the model marks the put at intrinsic value 5.
	strat := &stubOptionsStrategy{
		signals: map[int]domain.OptionSignal{
			5:  domain.OptionSignalOpen,
			10: domain.OptionSignalClose,
		},
		legs: []domain.OptionLegSpec{{
			Type:      domain.Put,
			Direction: domain.Long,
			Strike:    decimal.NewFromInt(105),
			TargetDTE: 30,
			Premium:   decimal.NewFromInt(3),
			Contracts: 2,
		}},
	}
	res, err := e.Run(context.Background(), s, strat)
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	tr := res.Trades[0]
	require.Equal(t, domain.OptionClosedBySignal, tr.Status)
	require.Equal(t, day(10), tr.ExitDate)
	// (5 - 3) * 2 contracts * 100 shares.
	require.True(t, tr.ProfitLoss.Equal(decimal.NewFromInt(400)), "P/L %s", tr.ProfitLoss)
	require.True(t, res.FinalCapital.Equal(decimal.NewFromInt(100400)))
}

func TestOptionsRun_FinalBarForceCloses(t *testing.T) {
	s := seriesFromCloses(t, flatCloses(20, 100))
	e := newOptionsEngine(t, 100000)

	strat := &stubOptionsStrategy{
		signals: map[int]domain.OptionSignal{5: domain.OptionSignalOpen},
		legs:    []domain.OptionLegSpec{shortCallLeg(105, 2, 60, 1)},
	}
	res, err := e.Run(context.Background(), s, strat)
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	require.Equal(t, domain.OptionClosedBySignal, res.Trades[0].Status)
	require.Equal(t, day(19), res.Trades[0].ExitDate)
}

func TestOptionsRun_SkipsUnaffordableStructure(t *testing.T) {
	s := seriesFromCloses(t, flatCloses(20, 100))
	e := newOptionsEngine(t, 100)

	// A long leg costing 500 per contract cannot be opened with 100 of
	// capital; the engine skips it rather than going negative.
	strat := &stubOptionsStrategy{
		signals: map[int]domain.OptionSignal{5: domain.OptionSignalOpen},
		legs: []domain.OptionLegSpec{{
			Type:      domain.Call,
			Direction: domain.Long,
			Strike:    decimal.NewFromInt(100),
			TargetDTE: 30,
			Premium:   decimal.NewFromInt(5),
			Contracts: 1,
		}},
	}
	res, err := e.Run(context.Background(), s, strat)
	require.NoError(t, err)
	require.Empty(t, res.Trades)
	require.True(t, res.FinalCapital.Equal(res.InitialCapital))
}

func TestOptionsRun_CapitalChangeEqualsTradePL(t *testing.T) {
	closes := make([]float64, 150)
	for i := range closes {
		closes[i] = 100 + 8*math.Sin(float64(i)/6)
	}
	s := seriesFromCloses(t, closes)
	e := newOptionsEngine(t, 100000)

	strat, err := strategy.NewCoveredCall(pricing.NewModel(), 0.05, 21)
	require.NoError(t, err)

	res, err := e.Run(context.Background(), s, strat)
	require.NoError(t, err)

	diff := res.FinalCapital.Sub(res.InitialCapital)
	require.True(t, diff.Equal(res.TotalProfitLoss()),
		"capital diff %s != total P/L %s", diff, res.TotalProfitLoss())
	require.Len(t, res.EquityCurve, s.Len())
}

func TestOptionsRun_Deterministic(t *testing.T) {
	closes := make([]float64, 150)
	for i := range closes {
		closes[i] = 100 + 8*math.Sin(float64(i)/6)
	}
	s := seriesFromCloses(t, closes)
	e := newOptionsEngine(t, 100000)

	strat, err := strategy.NewCoveredCall(pricing.NewModel(), 0.05, 21)
	require.NoError(t, err)

	first, err := e.Run(context.Background(), s, strat)
	require.NoError(t, err)
	second, err := e.Run(context.Background(), s, strat)
	require.NoError(t, err)

	require.True(t, first.FinalCapital.Equal(second.FinalCapital))
	require.Equal(t, len(first.Trades), len(second.Trades))
	for i := range first.Trades {
		require.Equal(t, first.Trades[i].ID, second.Trades[i].ID)
	}
}
