package domain

import "github.com/shopspring/decimal"

// BacktestResult is the output of one equity backtest run: the full closed
// trade log and an equity curve with one mark-to-market value per bar.
// Performance metrics are always derived from these on demand, never cached
// on the result, so they cannot drift out of sync with the log.
type BacktestResult struct {
	StrategyName   string
	InitialCapital decimal.Decimal
	FinalCapital   decimal.Decimal
	Trades         []Trade
	EquityCurve    []decimal.Decimal
	// BuyHoldFinal is the final capital of the buy-and-hold baseline
	// computed over the same series with the same commission.
	BuyHoldFinal decimal.Decimal
}

// TotalProfitLoss is the sum of realized trade P/L. For a completed run it
// equals FinalCapital - InitialCapital exactly.
func (r *BacktestResult) TotalProfitLoss() decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Trades {
		total = total.Add(t.ProfitLoss)
	}
	return total
}

// OptionsBacktestResult is the output of one options backtest run.
type OptionsBacktestResult struct {
	StrategyName   string
	InitialCapital decimal.Decimal
	FinalCapital   decimal.Decimal
	Trades         []OptionTrade
	EquityCurve    []decimal.Decimal
}

// TotalProfitLoss is the sum of realized option trade P/L.
func (r *OptionsBacktestResult) TotalProfitLoss() decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Trades {
		total = total.Add(t.ProfitLoss)
	}
	return total
}
