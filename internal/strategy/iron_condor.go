package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
	"equity-options-lab/internal/pricing"
)

// IronCondor sells a call spread above the spot and a put spread below it
// when volatility is compressed, betting the underlying stays inside the
// short strikes. The four legs share one expiry and contract count. It
// unwinds early when the bands widen past the volatility gate.
type IronCondor struct {
	model      pricing.Model
	bodyPct    float64
	wingPct    float64
	targetDTE  int
	bwGate     float64
	bollPeriod int
	bollMult   float64
}

var _ OptionsStrategy = (*IronCondor)(nil)

// DefaultBandwidthGate is the Bollinger bandwidth below which volatility
// counts as compressed.
const DefaultBandwidthGate = 5.0

func NewIronCondor(model pricing.Model, bodyPct, wingPct float64, targetDTE int) (*IronCondor, error) {
	if bodyPct <= 0 || wingPct <= 0 {
		return nil, ErrNonPositivePercent
	}
	if wingPct <= bodyPct {
		return nil, ErrInvertedThresholds
	}
	if targetDTE <= 0 {
		return nil, ErrNonPositiveDTE
	}
	return &IronCondor{
		model:      model,
		bodyPct:    bodyPct,
		wingPct:    wingPct,
		targetDTE:  targetDTE,
		bwGate:     DefaultBandwidthGate,
		bollPeriod: indicator.SnapshotBollPeriod,
		bollMult:   indicator.SnapshotBollMult,
	}, nil
}

func (c *IronCondor) Name() string {
	return fmt.Sprintf("Iron Condor (%.0f/%.0f%%, %dd)", c.bodyPct*100, c.wingPct*100, c.targetDTE)
}

func (c *IronCondor) WarmupPeriod() int { return pricing.DefaultVolatilityWindow + 1 }

func (c *IronCondor) Evaluate(series *domain.Series, i int) domain.OptionSignal {
	if i < c.WarmupPeriod() || i >= series.Len() {
		return domain.OptionSignalHold
	}
	bands := indicator.Bollinger(series.Closes(), c.bollPeriod, c.bollMult)
	bw := bands.Bandwidth[i]
	if !bw.OK {
		return domain.OptionSignalHold
	}
	switch {
	case bw.V < c.bwGate:
		return domain.OptionSignalOpen
	case bw.V > 2*c.bwGate:
		return domain.OptionSignalClose
	default:
		return domain.OptionSignalHold
	}
}

// Legs builds the four legs in a fixed order: short call, long call wing,
// short put, long put wing.
func (c *IronCondor) Legs(series *domain.Series, i int, capital decimal.Decimal) []domain.OptionLegSpec {
	if i < c.WarmupPeriod() || i >= series.Len() {
		return nil
	}
	spot := series.Closes()[i]
	strikes := []struct {
		typ       domain.OptionType
		direction domain.OptionDirection
		strike    float64
	}{
		{domain.Call, domain.Short, spot * (1 + c.bodyPct)},
		{domain.Call, domain.Long, spot * (1 + c.wingPct)},
		{domain.Put, domain.Short, spot * (1 - c.bodyPct)},
		{domain.Put, domain.Long, spot * (1 - c.wingPct)},
	}
	templates := make([]legTemplate, len(strikes))
	for j, leg := range strikes {
		templates[j] = legTemplate{
			typ:       leg.typ,
			direction: leg.direction,
			strike:    leg.strike,
			premium:   quote(c.model, series, i, leg.typ, leg.strike, c.targetDTE),
		}
	}
	return sizeLegs(templates, c.targetDTE, capital)
}
