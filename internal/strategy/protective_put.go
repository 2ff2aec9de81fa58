package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
	"equity-options-lab/internal/pricing"
)

// ProtectivePut buys an out-of-the-money put when the underlying drops
// below its moving average, paying premium for downside insurance, and
// sells the put back once the trend recovers.
type ProtectivePut struct {
	model      pricing.Model
	otmPercent float64
	targetDTE  int
	smaPeriod  int
}

var _ OptionsStrategy = (*ProtectivePut)(nil)

func NewProtectivePut(model pricing.Model, otmPercent float64, targetDTE int) (*ProtectivePut, error) {
	if otmPercent <= 0 {
		return nil, ErrNonPositivePercent
	}
	if targetDTE <= 0 {
		return nil, ErrNonPositiveDTE
	}
	return &ProtectivePut{
		model:      model,
		otmPercent: otmPercent,
		targetDTE:  targetDTE,
		smaPeriod:  indicator.SnapshotSMAShort,
	}, nil
}

func (p *ProtectivePut) Name() string {
	return fmt.Sprintf("Protective Put (%.0f%% OTM, %dd)", p.otmPercent*100, p.targetDTE)
}

func (p *ProtectivePut) WarmupPeriod() int { return pricing.DefaultVolatilityWindow + 1 }

func (p *ProtectivePut) Evaluate(series *domain.Series, i int) domain.OptionSignal {
	if i < p.WarmupPeriod() || i >= series.Len() {
		return domain.OptionSignalHold
	}
	closes := series.Closes()
	sma := indicator.SMA(closes, p.smaPeriod)
	v := sma[i]
	if !v.OK {
		return domain.OptionSignalHold
	}
	if closes[i] < v.V {
		return domain.OptionSignalOpen
	}
	return domain.OptionSignalClose
}

func (p *ProtectivePut) Legs(series *domain.Series, i int, capital decimal.Decimal) []domain.OptionLegSpec {
	if i < p.WarmupPeriod() || i >= series.Len() {
		return nil
	}
	spot := series.Closes()[i]
	strike := spot * (1 - p.otmPercent)
	leg := legTemplate{
		typ:       domain.Put,
		direction: domain.Long,
		strike:    strike,
		premium:   quote(p.model, series, i, domain.Put, strike, p.targetDTE),
	}
	return sizeLegs([]legTemplate{leg}, p.targetDTE, capital)
}
