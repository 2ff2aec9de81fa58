package indicator

import "equity-options-lab/internal/domain"

// TrueRange computes the per-bar true range: the largest of high-low,
// |high-prevClose| and |low-prevClose|. The first bar uses high-low.
func TrueRange(s *domain.Series) []Value {
	highs, lows, closes := s.Highs(), s.Lows(), s.Closes()
	out := make([]Value, s.Len())
	for i := range out {
		tr := highs[i] - lows[i]
		if i > 0 {
			if d := abs(highs[i] - closes[i-1]); d > tr {
				tr = d
			}
			if d := abs(lows[i] - closes[i-1]); d > tr {
				tr = d
			}
		}
		out[i] = ok(tr)
	}
	return out
}

// ATR computes the Wilder-smoothed average true range. The seed at index
// period-1 is the simple mean of the first period true ranges; later values
// use atr = (prevATR*(period-1) + tr) / period.
func ATR(s *domain.Series, period int) []Value {
	out := unavailable(s.Len())
	if period <= 0 || s.Len() < period {
		return out
	}

	tr := TrueRange(s)
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += tr[i].V
	}
	seed /= float64(period)
	out[period-1] = ok(seed)

	prev := seed
	for i := period; i < s.Len(); i++ {
		prev = (prev*float64(period-1) + tr[i].V) / float64(period)
		out[i] = ok(prev)
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
