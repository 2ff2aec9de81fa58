package indicator

import "equity-options-lab/internal/domain"

// OBV computes on-balance volume: a cumulative sum that adds the bar's
// volume when the close rises, subtracts it when the close falls, and
// carries forward when unchanged. Available from index 0 (starting at 0).
func OBV(s *domain.Series) []Value {
	closes, volumes := s.Closes(), s.Volumes()
	out := make([]Value, s.Len())
	obv := 0.0
	out[0] = ok(0)
	for i := 1; i < s.Len(); i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv += volumes[i]
		case closes[i] < closes[i-1]:
			obv -= volumes[i]
		}
		out[i] = ok(obv)
	}
	return out
}

// MFI computes the money flow index over period bars from typical-price
// money flows. Zero negative flow substitutes 100 (all flow positive),
// analogous to the RSI zero-loss case. Available from index period.
func MFI(s *domain.Series, period int) []Value {
	n := s.Len()
	out := unavailable(n)
	if period <= 0 || n <= period {
		return out
	}

	tp := typicalPrices(s)
	volumes := s.Volumes()

	for i := period; i < n; i++ {
		var positive, negative float64
		for j := i - period + 1; j <= i; j++ {
			flow := tp[j] * volumes[j]
			if tp[j] > tp[j-1] {
				positive += flow
			} else if tp[j] < tp[j-1] {
				negative += flow
			}
		}
		if negative == 0 {
			out[i] = ok(100)
			continue
		}
		ratio := positive / negative
		out[i] = ok(100 - 100/(1+ratio))
	}
	return out
}

// VWAP computes the cumulative-from-start volume-weighted average price of
// the typical price. Zero cumulative volume substitutes the typical price
// itself. Available from index 0.
func VWAP(s *domain.Series) []Value {
	tp := typicalPrices(s)
	volumes := s.Volumes()
	out := make([]Value, s.Len())

	var cumPV, cumVol float64
	for i := range out {
		cumPV += tp[i] * volumes[i]
		cumVol += volumes[i]
		if cumVol == 0 {
			out[i] = ok(tp[i])
			continue
		}
		out[i] = ok(cumPV / cumVol)
	}
	return out
}

// CCI computes the commodity channel index: (tp - SMA(tp)) / (0.015 *
// meanDeviation). A zero mean deviation substitutes 0. Available from index
// period-1.
func CCI(s *domain.Series, period int) []Value {
	n := s.Len()
	out := unavailable(n)
	if period <= 0 || n < period {
		return out
	}

	tp := typicalPrices(s)
	sma := SMA(tp, period)
	for i := period - 1; i < n; i++ {
		mean := sma[i].V
		dev := 0.0
		for j := i - period + 1; j <= i; j++ {
			dev += abs(tp[j] - mean)
		}
		dev /= float64(period)
		if dev == 0 {
			out[i] = ok(0)
			continue
		}
		out[i] = ok((tp[i] - mean) / (0.015 * dev))
	}
	return out
}

// typicalPrices returns (high+low+close)/3 per bar.
func typicalPrices(s *domain.Series) []float64 {
	highs, lows, closes := s.Highs(), s.Lows(), s.Closes()
	tp := make([]float64, s.Len())
	for i := range tp {
		tp[i] = (highs[i] + lows[i] + closes[i]) / 3
	}
	return tp
}
