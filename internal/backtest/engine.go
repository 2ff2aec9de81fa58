// Package backtest runs strategies bar by bar over a historical series and
// produces trade logs and equity curves. The equity engine models a single
// long-only position; the options engine models one open multi-leg
// structure at a time with Black-Scholes marks.
package backtest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/idhash"
	"equity-options-lab/internal/strategy"
)

// Engine errors
var (
	ErrNonPositiveCapital = errors.New("backtest: initial capital must be positive")
	ErrNegativeCommission = errors.New("backtest: commission cannot be negative")
	ErrNilStrategy        = errors.New("backtest: strategy is required")
)

// Engine executes an equity strategy over a bar series. Fills happen at the
// bar close that produced the signal, the whole account goes into each
// position, and a flat commission is charged per fill.
type Engine struct {
	initialCapital decimal.Decimal
	commission     decimal.Decimal
	logger         *slog.Logger
}

// NewEngine creates an equity backtest engine. A nil logger falls back to
// the default slog logger.
func NewEngine(initialCapital, commission decimal.Decimal, logger *slog.Logger) (*Engine, error) {
	if !initialCapital.IsPositive() {
		return nil, ErrNonPositiveCapital
	}
	if commission.IsNegative() {
		return nil, ErrNegativeCommission
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		initialCapital: initialCapital,
		commission:     commission,
		logger:         logger,
	}, nil
}

// Run executes the strategy over the full series. The final bar force-closes
// any open position so every run ends flat and every entry has an exit.
func (e *Engine) Run(ctx context.Context, s *domain.Series, strat strategy.EquityStrategy) (*domain.BacktestResult, error) {
	if strat == nil {
		return nil, ErrNilStrategy
	}

	cash := e.initialCapital
	var pos *domain.Position
	trades := make([]domain.Trade, 0)
	curve := make([]decimal.Decimal, 0, s.Len())

	lastBar := s.Len() - 1
	for i := 0; i <= lastBar; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := s.Date(i)
		price := s.CloseAt(i)

		switch strat.Evaluate(s, i) {
		case domain.SignalBuy:
			if pos == nil {
				opened, spent, err := e.open(date, price, cash)
				if err != nil {
					return nil, err
				}
				if opened != nil {
					pos = opened
					cash = cash.Sub(spent)
					e.logger.Debug("position opened",
						"date", date.Format("2006-01-02"),
						"price", price.String(),
						"shares", pos.Shares,
					)
				}
			}
		case domain.SignalSell:
			if pos != nil {
				trade, err := e.close(pos, date, price, strat.Name())
				if err != nil {
					return nil, err
				}
				cash = cash.Add(pos.MarketValue(price)).Sub(e.commission)
				pos = nil
				trades = append(trades, trade)
			}
		}

		if i == lastBar && pos != nil {
			trade, err := e.close(pos, date, price, strat.Name())
			if err != nil {
				return nil, err
			}
			cash = cash.Add(pos.MarketValue(price)).Sub(e.commission)
			pos = nil
			trades = append(trades, trade)
		}

		equity := cash
		if pos != nil {
			equity = cash.Add(pos.MarketValue(price))
		}
		curve = append(curve, equity)
	}

	result := &domain.BacktestResult{
		StrategyName:   strat.Name(),
		InitialCapital: e.initialCapital,
		FinalCapital:   cash,
		Trades:         trades,
		EquityCurve:    curve,
		BuyHoldFinal:   e.buyHold(s),
	}
	e.logger.Info("backtest complete",
		"strategy", strat.Name(),
		"trades", len(trades),
		"final_capital", cash.String(),
	)
	return result, nil
}

// open sizes a new position: as many whole shares as the cash after the
// entry commission can pay for. Returns a nil position when not even one
// share fits; that signal is skipped, not an error.
func (e *Engine) open(date time.Time, price, cash decimal.Decimal) (*domain.Position, decimal.Decimal, error) {
	available := cash.Sub(e.commission)
	if !available.IsPositive() {
		return nil, decimal.Zero, nil
	}
	shares := available.Div(price).Floor().IntPart()
	if shares < 1 {
		return nil, decimal.Zero, nil
	}
	pos, err := domain.OpenPosition(date, price, shares)
	if err != nil {
		return nil, decimal.Zero, err
	}
	spent := price.Mul(decimal.NewFromInt(shares)).Add(e.commission)
	return pos, spent, nil
}

// close settles the position, attributing both the entry and exit
// commission to the trade's P/L.
func (e *Engine) close(pos *domain.Position, date time.Time, price decimal.Decimal, strategyName string) (domain.Trade, error) {
	roundTripCommission := e.commission.Mul(decimal.NewFromInt(2))
	trade, err := pos.Close(date, price, roundTripCommission)
	if err != nil {
		return domain.Trade{}, err
	}
	trade.ID = idhash.EquityTradeID(strategyName, trade)
	return trade, nil
}

// buyHold computes the baseline: buy at the first close, hold, sell at the
// last close, paying the same commissions. Capital too small to buy a
// single share just stays in cash.
func (e *Engine) buyHold(s *domain.Series) decimal.Decimal {
	first := s.CloseAt(0)
	last := s.CloseAt(s.Len() - 1)

	available := e.initialCapital.Sub(e.commission)
	if !available.IsPositive() {
		return e.initialCapital
	}
	shares := available.Div(first).Floor().IntPart()
	if shares < 1 {
		return e.initialCapital
	}
	sharesDec := decimal.NewFromInt(shares)
	cash := e.initialCapital.Sub(first.Mul(sharesDec)).Sub(e.commission)
	return cash.Add(last.Mul(sharesDec)).Sub(e.commission)
}
