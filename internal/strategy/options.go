package strategy

import (
	"math"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/pricing"
)

// MaxContracts caps how many contracts a single structure may hold
// regardless of how much capital is available.
const MaxContracts = 10

const daysPerYear = 365.0

// strikeScale rounds model strikes to cents so bookkeeping stays exact.
const strikeScale = 2

// legTemplate is a leg before sizing: the strike and premium are set, the
// contract count is not.
type legTemplate struct {
	typ       domain.OptionType
	direction domain.OptionDirection
	strike    float64
	premium   float64
}

// quote prices one leg with the Black-Scholes model using volatility
// estimated from closes up to and including bar i.
func quote(model pricing.Model, s *domain.Series, i int, typ domain.OptionType, strike float64, dte int) float64 {
	closes := s.Closes()
	vol := pricing.TrailingVolatility(closes, i)
	t := float64(dte) / daysPerYear
	return model.Price(closes[i], strike, t, vol, typ)
}

// sizeLegs turns leg templates into sized specs. Every leg of a structure
// carries the same contract count. For net-debit structures the count is
// what the capital can pay for; for net-credit structures it is sized
// against the largest strike as a collateral proxy. Returns nil when not
// even one contract fits.
func sizeLegs(templates []legTemplate, dte int, capital decimal.Decimal) []domain.OptionLegSpec {
	if len(templates) == 0 {
		return nil
	}

	var netDebit, maxStrike float64
	for _, l := range templates {
		if l.strike <= 0 || l.premium < 0 {
			return nil
		}
		if l.direction == domain.Long {
			netDebit += l.premium
		} else {
			netDebit -= l.premium
		}
		if l.strike > maxStrike {
			maxStrike = l.strike
		}
	}

	basis := netDebit * domain.ContractMultiplier
	if netDebit <= 0 {
		basis = maxStrike * domain.ContractMultiplier
	}
	cap64, _ := capital.Float64()
	if basis <= 0 || cap64 < basis {
		return nil
	}
	contracts := int64(math.Floor(cap64 / basis))
	if contracts < 1 {
		return nil
	}
	if contracts > MaxContracts {
		contracts = MaxContracts
	}

	specs := make([]domain.OptionLegSpec, len(templates))
	for j, l := range templates {
		specs[j] = domain.OptionLegSpec{
			Type:      l.typ,
			Direction: l.direction,
			Strike:    decimal.NewFromFloat(l.strike).Round(strikeScale),
			TargetDTE: dte,
			Premium:   decimal.NewFromFloat(l.premium),
			Contracts: contracts,
		}
	}
	return specs
}
