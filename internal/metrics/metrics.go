// Package metrics derives performance summaries from backtest results.
// Summaries are always computed from the trade log and equity curve on
// demand; nothing here mutates the result.
package metrics

import (
	"math"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
)

// ProfitFactorCap is reported when a run has winning trades and no losing
// trades, where the true ratio is undefined.
const ProfitFactorCap = 999.0

// TradingDaysPerYear annualizes the Sharpe ratio from daily returns.
const TradingDaysPerYear = 252

const moneyScale = 2

// Summary is the full performance report for one backtest run.
// Percentages are on a 0..100 scale.
type Summary struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64

	TotalProfitLoss decimal.Decimal
	TotalReturnPct  float64
	AvgWin          decimal.Decimal
	AvgLoss         decimal.Decimal
	ProfitFactor    float64

	MaxDrawdownPct float64
	SharpeRatio    float64
}

// Compute summarizes an equity backtest result.
func Compute(r *domain.BacktestResult) Summary {
	pnls := make([]decimal.Decimal, len(r.Trades))
	for i, t := range r.Trades {
		pnls[i] = t.ProfitLoss
	}
	return summarize(r.InitialCapital, r.FinalCapital, pnls, r.EquityCurve)
}

// ComputeOptions summarizes an options backtest result.
func ComputeOptions(r *domain.OptionsBacktestResult) Summary {
	pnls := make([]decimal.Decimal, len(r.Trades))
	for i, t := range r.Trades {
		pnls[i] = t.ProfitLoss
	}
	return summarize(r.InitialCapital, r.FinalCapital, pnls, r.EquityCurve)
}

func summarize(initial, final decimal.Decimal, pnls []decimal.Decimal, curve []decimal.Decimal) Summary {
	s := Summary{
		TotalTrades:     len(pnls),
		TotalProfitLoss: final.Sub(initial),
		AvgWin:          decimal.Zero,
		AvgLoss:         decimal.Zero,
	}

	if initial.IsPositive() {
		ret, _ := final.Sub(initial).Mul(decimal.NewFromInt(100)).Div(initial).Float64()
		s.TotalReturnPct = ret
	}

	grossWin := decimal.Zero
	grossLoss := decimal.Zero
	for _, pnl := range pnls {
		if pnl.IsPositive() {
			s.WinningTrades++
			grossWin = grossWin.Add(pnl)
		} else {
			s.LosingTrades++
			grossLoss = grossLoss.Add(pnl.Abs())
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = 100 * float64(s.WinningTrades) / float64(s.TotalTrades)
	}
	if s.WinningTrades > 0 {
		s.AvgWin = grossWin.DivRound(decimal.NewFromInt(int64(s.WinningTrades)), moneyScale)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = grossLoss.DivRound(decimal.NewFromInt(int64(s.LosingTrades)), moneyScale)
	}

	switch {
	case grossLoss.IsPositive():
		pf, _ := grossWin.Div(grossLoss).Float64()
		s.ProfitFactor = math.Min(pf, ProfitFactorCap)
	case grossWin.IsPositive():
		s.ProfitFactor = ProfitFactorCap
	}

	s.MaxDrawdownPct = maxDrawdown(curve)
	s.SharpeRatio = sharpe(curve)
	return s
}

// maxDrawdown returns the largest peak-to-trough decline of the equity
// curve as a percentage of the peak.
func maxDrawdown(curve []decimal.Decimal) float64 {
	if len(curve) == 0 {
		return 0
	}
	worst := 0.0
	peak := curve[0]
	for _, v := range curve[1:] {
		if v.GreaterThan(peak) {
			peak = v
			continue
		}
		if !peak.IsPositive() {
			continue
		}
		dd, _ := peak.Sub(v).Mul(decimal.NewFromInt(100)).Div(peak).Float64()
		if dd > worst {
			worst = dd
		}
	}
	return worst
}

// sharpe computes the annualized Sharpe ratio of the curve's daily returns
// assuming a zero risk-free rate. A curve with no variance reports zero
// rather than a division blowup.
func sharpe(curve []decimal.Decimal) float64 {
	if len(curve) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev, _ := curve[i-1].Float64()
		cur, _ := curve[i].Float64()
		if prev == 0 {
			return 0
		}
		returns = append(returns, (cur-prev)/prev)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	if len(returns) < 2 {
		return 0
	}
	stdev := math.Sqrt(variance / float64(len(returns)-1))
	if stdev == 0 {
		return 0
	}
	return mean / stdev * math.Sqrt(TradingDaysPerYear)
}
