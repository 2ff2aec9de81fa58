package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
	"equity-options-lab/internal/pricing"
)

// CoveredCall writes an out-of-the-money call while the underlying trades
// above its moving average, collecting premium into a sideways or mildly
// rising market. It buys the call back when the trend breaks below the
// average.
type CoveredCall struct {
	model      pricing.Model
	otmPercent float64
	targetDTE  int
	smaPeriod  int
}

var _ OptionsStrategy = (*CoveredCall)(nil)

func NewCoveredCall(model pricing.Model, otmPercent float64, targetDTE int) (*CoveredCall, error) {
	if otmPercent <= 0 {
		return nil, ErrNonPositivePercent
	}
	if targetDTE <= 0 {
		return nil, ErrNonPositiveDTE
	}
	return &CoveredCall{
		model:      model,
		otmPercent: otmPercent,
		targetDTE:  targetDTE,
		smaPeriod:  indicator.SnapshotSMAShort,
	}, nil
}

func (c *CoveredCall) Name() string {
	return fmt.Sprintf("Covered Call (%.0f%% OTM, %dd)", c.otmPercent*100, c.targetDTE)
}

// WarmupPeriod covers the trend filter plus the volatility window the
// premium quote needs.
func (c *CoveredCall) WarmupPeriod() int { return pricing.DefaultVolatilityWindow + 1 }

func (c *CoveredCall) Evaluate(series *domain.Series, i int) domain.OptionSignal {
	if i < c.WarmupPeriod() || i >= series.Len() {
		return domain.OptionSignalHold
	}
	closes := series.Closes()
	sma := indicator.SMA(closes, c.smaPeriod)
	v := sma[i]
	if !v.OK {
		return domain.OptionSignalHold
	}
	if closes[i] > v.V {
		return domain.OptionSignalOpen
	}
	return domain.OptionSignalClose
}

func (c *CoveredCall) Legs(series *domain.Series, i int, capital decimal.Decimal) []domain.OptionLegSpec {
	if i < c.WarmupPeriod() || i >= series.Len() {
		return nil
	}
	spot := series.Closes()[i]
	strike := spot * (1 + c.otmPercent)
	leg := legTemplate{
		typ:       domain.Call,
		direction: domain.Short,
		strike:    strike,
		premium:   quote(c.model, series, i, domain.Call, strike, c.targetDTE),
	}
	return sizeLegs([]legTemplate{leg}, c.targetDTE, capital)
}
