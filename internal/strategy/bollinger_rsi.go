package strategy

import (
	"fmt"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
)

// BollingerRSI is a mean-reversion strategy: buy when the close pierces
// the lower Bollinger band while RSI confirms oversold, sell when the
// close pierces the upper band while RSI confirms overbought. Requiring
// both filters cuts down on fading strong trends.
type BollingerRSI struct {
	bollPeriod int
	bollMult   float64
	rsiPeriod  int
	oversold   float64
	overbought float64
}

var _ EquityStrategy = (*BollingerRSI)(nil)

func NewBollingerRSI(bollPeriod int, bollMult float64, rsiPeriod int, oversold, overbought float64) (*BollingerRSI, error) {
	if bollPeriod <= 0 || rsiPeriod <= 0 {
		return nil, ErrNonPositivePeriod
	}
	if bollMult <= 0 {
		return nil, ErrNonPositivePercent
	}
	if oversold >= overbought {
		return nil, ErrInvertedThresholds
	}
	return &BollingerRSI{
		bollPeriod: bollPeriod,
		bollMult:   bollMult,
		rsiPeriod:  rsiPeriod,
		oversold:   oversold,
		overbought: overbought,
	}, nil
}

func (b *BollingerRSI) Name() string {
	return fmt.Sprintf("Bollinger+RSI (%d/%.1f, RSI %d)", b.bollPeriod, b.bollMult, b.rsiPeriod)
}

func (b *BollingerRSI) WarmupPeriod() int {
	if b.bollPeriod > b.rsiPeriod {
		return b.bollPeriod
	}
	return b.rsiPeriod
}

func (b *BollingerRSI) Evaluate(series *domain.Series, i int) domain.Signal {
	if i < b.WarmupPeriod() || i >= series.Len() {
		return domain.SignalHold
	}
	closes := series.Closes()
	bands := indicator.Bollinger(closes, b.bollPeriod, b.bollMult)
	rsi := indicator.RSI(closes, b.rsiPeriod)

	upper, lower, rv := bands.Upper[i], bands.Lower[i], rsi[i]
	if !upper.OK || !lower.OK || !rv.OK {
		return domain.SignalHold
	}

	close := closes[i]
	if close < lower.V && rv.V < b.oversold {
		return domain.SignalBuy
	}
	if close > upper.V && rv.V > b.overbought {
		return domain.SignalSell
	}
	return domain.SignalHold
}
