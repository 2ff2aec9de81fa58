package indicator

import "equity-options-lab/internal/domain"

// Parabolic SAR acceleration factor defaults.
const (
	DefaultSARStep = 0.02
	DefaultSARMax  = 0.20
)

// ParabolicSAR computes Wilder's parabolic stop-and-reverse. This is the one
// indicator whose value at index i recurses on its own prior outputs, so it
// is written as an explicit fold over the series: same series in, same
// output sequence out. The acceleration factor starts at step, grows by step
// on each new extreme point, caps at max, and resets on every trend flip.
// Available from index 1; the initial trend is taken from the first two
// closes.
func ParabolicSAR(s *domain.Series, step, max float64) []Value {
	n := s.Len()
	out := unavailable(n)
	if step <= 0 || max < step || n < 2 {
		return out
	}

	highs, lows, closes := s.Highs(), s.Lows(), s.Closes()

	uptrend := closes[1] >= closes[0]
	af := step
	var sar, ep float64
	if uptrend {
		sar = lows[0]
		ep = highs[1]
	} else {
		sar = highs[0]
		ep = lows[1]
	}
	out[1] = ok(sar)

	for i := 2; i < n; i++ {
		sar = sar + af*(ep-sar)

		if uptrend {
			// SAR may never rise into the prior two bars' range.
			if l := lows[i-1]; sar > l {
				sar = l
			}
			if l := lows[i-2]; sar > l {
				sar = l
			}
			if lows[i] < sar {
				// Flip to downtrend: SAR jumps to the extreme point.
				uptrend = false
				sar = ep
				ep = lows[i]
				af = step
			} else if highs[i] > ep {
				ep = highs[i]
				af += step
				if af > max {
					af = max
				}
			}
		} else {
			if h := highs[i-1]; sar < h {
				sar = h
			}
			if h := highs[i-2]; sar < h {
				sar = h
			}
			if highs[i] > sar {
				uptrend = true
				sar = ep
				ep = highs[i]
				af = step
			} else if lows[i] < ep {
				ep = lows[i]
				af += step
				if af > max {
					af = max
				}
			}
		}
		out[i] = ok(sar)
	}
	return out
}
