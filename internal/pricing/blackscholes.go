// Package pricing implements the closed-form option pricing model: the
// Black-Scholes theoretical price and greeks for European options, plus a
// trailing historical volatility estimate. All math here is float64; the
// engines convert premiums to decimal at booking time.
package pricing

import (
	"math"

	"equity-options-lab/internal/domain"
)

// Model defaults.
const (
	DefaultRiskFreeRate = 0.05
	TradingDaysPerYear  = 252
)

// Model prices European options under Black-Scholes assumptions.
type Model struct {
	RiskFreeRate float64
}

// NewModel creates a model with the default 5% risk-free rate.
func NewModel() Model {
	return Model{RiskFreeRate: DefaultRiskFreeRate}
}

// Price returns the theoretical option price for the given spot, strike,
// time to expiry in years, and annualized volatility. At or after expiry,
// or with a non-positive spot, strike, or volatility, the price collapses
// to intrinsic value: these are well-defined limiting cases where d1 would
// otherwise degenerate.
func (m Model) Price(spot, strike, t, vol float64, typ domain.OptionType) float64 {
	if t <= 0 || spot <= 0 || strike <= 0 || vol <= 0 {
		return intrinsic(spot, strike, typ)
	}

	d1, d2 := m.d1d2(spot, strike, t, vol)
	discount := math.Exp(-m.RiskFreeRate * t)

	if typ == domain.Call {
		return spot*normCDF(d1) - strike*discount*normCDF(d2)
	}
	return strike*discount*normCDF(-d2) - spot*normCDF(-d1)
}

// Delta returns the option's sensitivity to the spot price. In the
// degenerate cases it returns the terminal delta: 1 (call) or -1 (put) in
// the money, 0 otherwise.
func (m Model) Delta(spot, strike, t, vol float64, typ domain.OptionType) float64 {
	if t <= 0 || spot <= 0 || strike <= 0 || vol <= 0 {
		if intrinsic(spot, strike, typ) > 0 {
			if typ == domain.Call {
				return 1
			}
			return -1
		}
		return 0
	}

	d1, _ := m.d1d2(spot, strike, t, vol)
	if typ == domain.Call {
		return normCDF(d1)
	}
	return normCDF(d1) - 1
}

// Theta returns the per-year time decay of the option value. Degenerate
// inputs return 0: an expired option has nothing left to decay.
func (m Model) Theta(spot, strike, t, vol float64, typ domain.OptionType) float64 {
	if t <= 0 || spot <= 0 || strike <= 0 || vol <= 0 {
		return 0
	}

	d1, d2 := m.d1d2(spot, strike, t, vol)
	discount := math.Exp(-m.RiskFreeRate * t)
	common := -spot * normPDF(d1) * vol / (2 * math.Sqrt(t))

	if typ == domain.Call {
		return common - m.RiskFreeRate*strike*discount*normCDF(d2)
	}
	return common + m.RiskFreeRate*strike*discount*normCDF(-d2)
}

func (m Model) d1d2(spot, strike, t, vol float64) (float64, float64) {
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(spot/strike) + (m.RiskFreeRate+vol*vol/2)*t) / (vol * sqrtT)
	return d1, d1 - vol*sqrtT
}

// intrinsic is the exercise value: max(spot-strike, 0) for calls,
// max(strike-spot, 0) for puts.
func intrinsic(spot, strike float64, typ domain.OptionType) float64 {
	var v float64
	if typ == domain.Call {
		v = spot - strike
	} else {
		v = strike - spot
	}
	return math.Max(v, 0)
}

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

// normCDF approximates the standard normal cumulative distribution with the
// Abramowitz & Stegun fixed-coefficient polynomial (formula 26.2.17).
// Absolute error is below 7.5e-8 over the whole real line.
func normCDF(x float64) float64 {
	if x < 0 {
		return 1 - normCDF(-x)
	}

	const (
		p  = 0.2316419
		b1 = 0.319381530
		b2 = -0.356563782
		b3 = 1.781477937
		b4 = -1.821255978
		b5 = 1.330274429
	)

	k := 1 / (1 + p*x)
	poly := k * (b1 + k*(b2+k*(b3+k*(b4+k*b5))))
	return 1 - normPDF(x)*poly
}
