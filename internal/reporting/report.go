package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/metrics"
)

// RunKind distinguishes equity runs from options runs in a report.
type RunKind int

const (
	// RunEquity is a stock backtest run.
	RunEquity RunKind = iota
	// RunOptions is an options-structure backtest run.
	RunOptions
)

func (k RunKind) String() string {
	if k == RunOptions {
		return "OPTIONS"
	}
	return "EQUITY"
}

// Report is the complete rendered output of one or more backtest runs over
// a single symbol's bar history. It carries everything the renderers need;
// no computation happens after construction.
type Report struct {
	GeneratedAt time.Time
	Symbol      string
	PeriodStart time.Time
	PeriodEnd   time.Time
	BarCount    int
	Runs        []RunSection
}

// RunSection is one strategy run inside a report: identity, capital, the
// computed performance summary, and the full trade log. Exactly one of
// EquityTrades or OptionTrades is populated, matching Kind.
type RunSection struct {
	StrategyName   string
	Kind           RunKind
	InitialCapital decimal.Decimal
	FinalCapital   decimal.Decimal
	// BuyHoldFinal is the buy-and-hold baseline final capital. Only
	// meaningful for equity runs; zero for options runs.
	BuyHoldFinal decimal.Decimal
	Summary      metrics.Summary
	EquityTrades []domain.Trade
	OptionTrades []domain.OptionTrade
}
