package strategy

import (
	"fmt"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
)

// RSIReversal buys when RSI drops below the oversold threshold and sells
// when it rises above the overbought threshold.
type RSIReversal struct {
	period     int
	oversold   float64
	overbought float64
}

var _ EquityStrategy = (*RSIReversal)(nil)

func NewRSIReversal(period int, oversold, overbought float64) (*RSIReversal, error) {
	if period <= 0 {
		return nil, ErrNonPositivePeriod
	}
	if oversold >= overbought {
		return nil, ErrInvertedThresholds
	}
	return &RSIReversal{period: period, oversold: oversold, overbought: overbought}, nil
}

func (r *RSIReversal) Name() string {
	return fmt.Sprintf("RSI Reversal (%d, %.0f/%.0f)", r.period, r.oversold, r.overbought)
}

func (r *RSIReversal) WarmupPeriod() int { return r.period }

func (r *RSIReversal) Evaluate(series *domain.Series, i int) domain.Signal {
	if i < r.WarmupPeriod() || i >= series.Len() {
		return domain.SignalHold
	}
	rsi := indicator.RSI(series.Closes(), r.period)
	v := rsi[i]
	if !v.OK {
		return domain.SignalHold
	}
	switch {
	case v.V < r.oversold:
		return domain.SignalBuy
	case v.V > r.overbought:
		return domain.SignalSell
	default:
		return domain.SignalHold
	}
}
