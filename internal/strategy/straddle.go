package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
	"equity-options-lab/internal/pricing"
)

// Straddle buys an at-the-money call and put into a volatility squeeze,
// profiting if the underlying breaks hard in either direction, and
// unwinds once the expansion it was waiting for has happened.
type Straddle struct {
	model      pricing.Model
	targetDTE  int
	bwGate     float64
	bollPeriod int
	bollMult   float64
}

var _ OptionsStrategy = (*Straddle)(nil)

func NewStraddle(model pricing.Model, targetDTE int) (*Straddle, error) {
	if targetDTE <= 0 {
		return nil, ErrNonPositiveDTE
	}
	return &Straddle{
		model:      model,
		targetDTE:  targetDTE,
		bwGate:     DefaultBandwidthGate,
		bollPeriod: indicator.SnapshotBollPeriod,
		bollMult:   indicator.SnapshotBollMult,
	}, nil
}

func (s *Straddle) Name() string {
	return fmt.Sprintf("Long Straddle (%dd)", s.targetDTE)
}

func (s *Straddle) WarmupPeriod() int { return pricing.DefaultVolatilityWindow + 1 }

func (s *Straddle) Evaluate(series *domain.Series, i int) domain.OptionSignal {
	if i < s.WarmupPeriod() || i >= series.Len() {
		return domain.OptionSignalHold
	}
	bands := indicator.Bollinger(series.Closes(), s.bollPeriod, s.bollMult)
	bw := bands.Bandwidth[i]
	if !bw.OK {
		return domain.OptionSignalHold
	}
	switch {
	case bw.V < s.bwGate:
		return domain.OptionSignalOpen
	case bw.V > 2*s.bwGate:
		return domain.OptionSignalClose
	default:
		return domain.OptionSignalHold
	}
}

func (s *Straddle) Legs(series *domain.Series, i int, capital decimal.Decimal) []domain.OptionLegSpec {
	if i < s.WarmupPeriod() || i >= series.Len() {
		return nil
	}
	spot := series.Closes()[i]
	templates := []legTemplate{
		{
			typ:       domain.Call,
			direction: domain.Long,
			strike:    spot,
			premium:   quote(s.model, series, i, domain.Call, spot, s.targetDTE),
		},
		{
			typ:       domain.Put,
			direction: domain.Long,
			strike:    spot,
			premium:   quote(s.model, series, i, domain.Put, spot, s.targetDTE),
		},
	}
	return sizeLegs(templates, s.targetDTE, capital)
}
