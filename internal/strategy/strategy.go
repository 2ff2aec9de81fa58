// Package strategy holds the trading strategies evaluated by the backtest
// engines. Strategies are stateless: each Evaluate call sees the full bar
// series and an index, and derives its signal from closed bars only. Engines
// own the portfolio state and decide whether a signal is actionable.
package strategy

import (
	"errors"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
)

var (
	ErrNonPositivePeriod   = errors.New("strategy: period must be positive")
	ErrInvertedPeriods     = errors.New("strategy: short period must be less than long period")
	ErrInvertedThresholds  = errors.New("strategy: oversold threshold must be below overbought")
	ErrNonPositivePercent  = errors.New("strategy: percent parameter must be positive")
	ErrNonPositiveDTE      = errors.New("strategy: target days to expiry must be positive")
	ErrNonPositiveScore    = errors.New("strategy: score threshold must be positive")
	ErrUnknownStrategyType = errors.New("strategy: unknown strategy type")
)

// EquityStrategy produces directional signals for a single long-only
// instrument. Evaluate must return SignalHold for any index inside the
// warmup window.
type EquityStrategy interface {
	Name() string

	// WarmupPeriod is the number of leading bars the strategy needs
	// before it can emit a non-hold signal.
	WarmupPeriod() int

	Evaluate(s *domain.Series, i int) domain.Signal
}

// OptionsStrategy produces open/close signals for multi-leg option
// structures. Legs materializes the structure an OptionSignalOpen refers
// to at bar i, sized against the capital available; it returns nil when
// the structure cannot be afforded.
type OptionsStrategy interface {
	Name() string
	WarmupPeriod() int
	Evaluate(s *domain.Series, i int) domain.OptionSignal
	Legs(s *domain.Series, i int, capital decimal.Decimal) []domain.OptionLegSpec
}
