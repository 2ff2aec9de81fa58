package backtest

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/idhash"
	"equity-options-lab/internal/pricing"
	"equity-options-lab/internal/strategy"
)

const daysPerYear = 365.0

// OptionsEngine executes an options strategy over a bar series. At most one
// structure is open at a time; its legs expire together and are settled at
// intrinsic value when the bar date reaches their expiration. Open legs are
// marked to market with the same Black-Scholes model the strategies quote
// with, so the equity curve and the quotes never disagree about value.
type OptionsEngine struct {
	initialCapital decimal.Decimal
	model          pricing.Model
	logger         *slog.Logger
}

// NewOptionsEngine creates an options backtest engine.
func NewOptionsEngine(initialCapital decimal.Decimal, model pricing.Model, logger *slog.Logger) (*OptionsEngine, error) {
	if !initialCapital.IsPositive() {
		return nil, ErrNonPositiveCapital
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OptionsEngine{
		initialCapital: initialCapital,
		model:          model,
		logger:         logger,
	}, nil
}

// Run executes the strategy over the full series. Expirations settle before
// the bar's signal is evaluated, so a structure expiring today cannot also
// be closed by signal today. The final bar force-closes any open structure
// at model value.
func (e *OptionsEngine) Run(ctx context.Context, s *domain.Series, strat strategy.OptionsStrategy) (*domain.OptionsBacktestResult, error) {
	if strat == nil {
		return nil, ErrNilStrategy
	}

	cash := e.initialCapital
	var open []*domain.OptionPosition
	trades := make([]domain.OptionTrade, 0)
	curve := make([]decimal.Decimal, 0, s.Len())

	lastBar := s.Len() - 1
	for i := 0; i <= lastBar; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := s.Date(i)
		spot := s.CloseAt(i)

		// Settle expired legs at intrinsic value first.
		if len(open) > 0 && !date.Before(open[0].Expiration) {
			for _, pos := range open {
				trade := pos.SettleAtExpiry(date, spot)
				cash = e.applyExit(cash, pos, trade)
				trade.ID = idhash.OptionTradeID(strat.Name(), trade)
				trades = append(trades, trade)
			}
			open = nil
		}

		switch strat.Evaluate(s, i) {
		case domain.OptionSignalOpen:
			if len(open) == 0 {
				opened, newCash, err := e.openStructure(strat, s, i, cash)
				if err != nil {
					return nil, err
				}
				if len(opened) > 0 {
					open = opened
					cash = newCash
					e.logger.Debug("structure opened",
						"date", date.Format("2006-01-02"),
						"legs", len(opened),
						"contracts", opened[0].Contracts,
					)
				}
			}
		case domain.OptionSignalClose:
			if len(open) > 0 {
				for _, pos := range open {
					trade := pos.CloseBySignal(date, e.mark(s, i, pos))
					cash = e.applyExit(cash, pos, trade)
					trade.ID = idhash.OptionTradeID(strat.Name(), trade)
					trades = append(trades, trade)
				}
				open = nil
			}
		}

		if i == lastBar && len(open) > 0 {
			for _, pos := range open {
				trade := pos.CloseBySignal(date, e.mark(s, i, pos))
				cash = e.applyExit(cash, pos, trade)
				trade.ID = idhash.OptionTradeID(strat.Name(), trade)
				trades = append(trades, trade)
			}
			open = nil
		}

		equity := cash
		for _, pos := range open {
			value := pos.Notional(e.mark(s, i, pos))
			if pos.Direction == domain.Long {
				equity = equity.Add(value)
			} else {
				equity = equity.Sub(value)
			}
		}
		curve = append(curve, equity)
	}

	result := &domain.OptionsBacktestResult{
		StrategyName:   strat.Name(),
		InitialCapital: e.initialCapital,
		FinalCapital:   cash,
		Trades:         trades,
		EquityCurve:    curve,
	}
	e.logger.Info("options backtest complete",
		"strategy", strat.Name(),
		"trades", len(trades),
		"final_capital", cash.String(),
	)
	return result, nil
}

// openStructure asks the strategy for sized legs and books them if the
// aggregate net debit fits the available cash. Returns the opened legs and
// the cash after entry premium flows; an unaffordable or empty structure
// opens nothing.
func (e *OptionsEngine) openStructure(strat strategy.OptionsStrategy, s *domain.Series, i int, cash decimal.Decimal) ([]*domain.OptionPosition, decimal.Decimal, error) {
	specs := strat.Legs(s, i, cash)
	if len(specs) == 0 {
		return nil, cash, nil
	}

	date := s.Date(i)
	opened := make([]*domain.OptionPosition, 0, len(specs))
	netDebit := decimal.Zero
	for _, spec := range specs {
		pos, err := domain.OpenOptionPosition(spec, date)
		if err != nil {
			return nil, cash, err
		}
		notional := pos.Notional(pos.EntryPremium)
		if pos.Direction == domain.Long {
			netDebit = netDebit.Add(notional)
		} else {
			netDebit = netDebit.Sub(notional)
		}
		opened = append(opened, pos)
	}
	if netDebit.GreaterThan(cash) {
		return nil, cash, nil
	}
	return opened, cash.Sub(netDebit), nil
}

// applyExit moves the settlement value through cash: a long leg receives
// the exit value, a short leg pays it.
func (e *OptionsEngine) applyExit(cash decimal.Decimal, pos *domain.OptionPosition, trade domain.OptionTrade) decimal.Decimal {
	value := pos.Notional(trade.ExitPremium)
	if pos.Direction == domain.Long {
		return cash.Add(value)
	}
	return cash.Sub(value)
}

// mark reprices an open leg at bar i with volatility estimated from closes
// up to and including that bar. Time to expiry floors at zero, where the
// model returns intrinsic value.
func (e *OptionsEngine) mark(s *domain.Series, i int, pos *domain.OptionPosition) decimal.Decimal {
	closes := s.Closes()
	vol := pricing.TrailingVolatility(closes, i)
	t := yearsBetween(s.Date(i), pos.Expiration)
	strike, _ := pos.Strike.Float64()
	price := e.model.Price(closes[i], strike, t, vol, pos.Type)
	return decimal.NewFromFloat(price)
}

func yearsBetween(from, to time.Time) float64 {
	days := to.Sub(from).Hours() / 24
	if days < 0 {
		return 0
	}
	return days / daysPerYear
}
