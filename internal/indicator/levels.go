package indicator

import "equity-options-lab/internal/domain"

// FibLevels holds retracement levels between the swing low and swing high
// of a lookback window. Level238 through Level786 are the conventional
// 23.6/38.2/50/61.8/78.6% retracements measured down from the swing high.
type FibLevels struct {
	SwingHigh float64
	SwingLow  float64
	Level236  float64
	Level382  float64
	Level500  float64
	Level618  float64
	Level786  float64
}

// Fibonacci computes retracement levels from the swing high/low of the
// lookback window ending at index i. Returns false while fewer than
// lookback bars exist at i.
func Fibonacci(s *domain.Series, i, lookback int) (FibLevels, bool) {
	if lookback <= 0 || i < lookback-1 || i >= s.Len() {
		return FibLevels{}, false
	}

	high := windowHigh(s.Highs(), i-lookback+1, i)
	low := windowLow(s.Lows(), i-lookback+1, i)
	span := high - low

	return FibLevels{
		SwingHigh: high,
		SwingLow:  low,
		Level236:  high - span*0.236,
		Level382:  high - span*0.382,
		Level500:  high - span*0.500,
		Level618:  high - span*0.618,
		Level786:  high - span*0.786,
	}, true
}

// SupportResistance returns the most recent confirmed support and
// resistance levels visible at index i. A bar j is a local low (support) if
// its low is the minimum of the symmetric window [j-window, j+window], and
// a local high (resistance) if its high is the window maximum; the extremum
// is only confirmed window bars later, so nothing here looks ahead of i.
// Either value is unavailable until a respective extremum has been
// confirmed.
func SupportResistance(s *domain.Series, i, window int) (support, resistance Value) {
	if window <= 0 || i >= s.Len() {
		return Value{}, Value{}
	}

	highs, lows := s.Highs(), s.Lows()

	// Latest candidate center whose confirmation window has fully elapsed.
	for j := i - window; j >= window; j-- {
		if !resistance.OK && highs[j] == windowHigh(highs, j-window, j+window) {
			resistance = ok(highs[j])
		}
		if !support.OK && lows[j] == windowLow(lows, j-window, j+window) {
			support = ok(lows[j])
		}
		if support.OK && resistance.OK {
			break
		}
	}
	return support, resistance
}
