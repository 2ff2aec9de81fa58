package indicator

import "equity-options-lab/internal/domain"

// Ichimoku period defaults.
const (
	DefaultTenkanPeriod  = 9
	DefaultKijunPeriod   = 26
	DefaultSenkouBPeriod = 52
)

// IchimokuResult bundles the five index-aligned Ichimoku lines. The senkou
// (cloud) lines at index i are computed from data ending at i-displacement,
// i.e. the cloud visible under bar i was projected forward from
// displacement bars earlier; no line uses future data. Chikou at index i is
// the close from displacement bars earlier, the value the lagging span
// compares the current close against.
type IchimokuResult struct {
	Tenkan  []Value
	Kijun   []Value
	SenkouA []Value
	SenkouB []Value
	Chikou  []Value
}

// Ichimoku computes the Ichimoku Kinko Hyo lines from rolling high/low
// midpoints. The kijun period doubles as the forward displacement,
// following the conventional 9/26/52 parameterization.
func Ichimoku(s *domain.Series, tenkanPeriod, kijunPeriod, senkouBPeriod int) IchimokuResult {
	n := s.Len()
	res := IchimokuResult{
		Tenkan:  unavailable(n),
		Kijun:   unavailable(n),
		SenkouA: unavailable(n),
		SenkouB: unavailable(n),
		Chikou:  unavailable(n),
	}
	if tenkanPeriod <= 0 || kijunPeriod <= 0 || senkouBPeriod <= 0 {
		return res
	}

	highs, lows, closes := s.Highs(), s.Lows(), s.Closes()
	displacement := kijunPeriod

	midpoint := func(i, period int) float64 {
		return (windowHigh(highs, i-period+1, i) + windowLow(lows, i-period+1, i)) / 2
	}

	for i := 0; i < n; i++ {
		if i >= tenkanPeriod-1 {
			res.Tenkan[i] = ok(midpoint(i, tenkanPeriod))
		}
		if i >= kijunPeriod-1 {
			res.Kijun[i] = ok(midpoint(i, kijunPeriod))
		}

		src := i - displacement
		if src >= 0 && res.Tenkan[src].OK && res.Kijun[src].OK {
			res.SenkouA[i] = ok((res.Tenkan[src].V + res.Kijun[src].V) / 2)
		}
		if src >= senkouBPeriod-1 {
			res.SenkouB[i] = ok(midpoint(src, senkouBPeriod))
		}
		if src >= 0 {
			res.Chikou[i] = ok(closes[src])
		}
	}
	return res
}
