package indicator

import "equity-options-lab/internal/domain"

// StochasticResult bundles %K and its SMA-smoothed %D line.
type StochasticResult struct {
	K []Value
	D []Value
}

// Stochastic computes %K = (close - lowestLow) / (highestHigh - lowestLow)
// * 100 over kPeriod bars, and %D as the SMA of %K over dPeriod. A
// zero-range window substitutes the neutral 50. %K is available from index
// kPeriod-1, %D from index kPeriod+dPeriod-2.
func Stochastic(s *domain.Series, kPeriod, dPeriod int) StochasticResult {
	n := s.Len()
	res := StochasticResult{K: unavailable(n), D: unavailable(n)}
	if kPeriod <= 0 || dPeriod <= 0 || n < kPeriod {
		return res
	}

	highs, lows, closes := s.Highs(), s.Lows(), s.Closes()
	k := make([]float64, 0, n-kPeriod+1)
	for i := kPeriod - 1; i < n; i++ {
		hh := windowHigh(highs, i-kPeriod+1, i)
		ll := windowLow(lows, i-kPeriod+1, i)
		v := 50.0
		if hh != ll {
			v = (closes[i] - ll) / (hh - ll) * 100
		}
		res.K[i] = ok(v)
		k = append(k, v)
	}

	d := SMA(k, dPeriod)
	for j, dv := range d {
		if dv.OK {
			res.D[j+kPeriod-1] = dv
		}
	}
	return res
}

// WilliamsR computes Williams %R = (highestHigh - close) / (highestHigh -
// lowestLow) * -100 over period bars, ranging -100..0. A zero-range window
// substitutes the neutral -50. Available from index period-1.
func WilliamsR(s *domain.Series, period int) []Value {
	n := s.Len()
	out := unavailable(n)
	if period <= 0 || n < period {
		return out
	}

	highs, lows, closes := s.Highs(), s.Lows(), s.Closes()
	for i := period - 1; i < n; i++ {
		hh := windowHigh(highs, i-period+1, i)
		ll := windowLow(lows, i-period+1, i)
		if hh == ll {
			out[i] = ok(-50)
			continue
		}
		out[i] = ok((hh - closes[i]) / (hh - ll) * -100)
	}
	return out
}
