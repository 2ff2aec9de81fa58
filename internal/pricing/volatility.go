package pricing

import "math"

// Volatility estimation defaults.
const (
	DefaultVolatilityWindow = 20
	FallbackVolatility      = 0.20
)

// HistoricalVolatility estimates annualized volatility as the sample
// standard deviation of log returns over the trailing window, scaled by
// sqrt(252). The window counts returns, so it needs window+1 closes ending
// at the last element of the slice. An under-populated window, or one with
// non-positive prices, returns the fixed 20% fallback rather than a
// degenerate estimate.
func HistoricalVolatility(closes []float64, window int) float64 {
	if window <= 1 || len(closes) < window+1 {
		return FallbackVolatility
	}

	start := len(closes) - window - 1
	returns := make([]float64, 0, window)
	for i := start + 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return FallbackVolatility
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(TradingDaysPerYear)
}

// TrailingVolatility estimates volatility from the closes ending at index i
// inclusive, using the default window. This is the engines' entry point: it
// never looks past i.
func TrailingVolatility(closes []float64, i int) float64 {
	if i < 0 || i >= len(closes) {
		return FallbackVolatility
	}
	return HistoricalVolatility(closes[:i+1], DefaultVolatilityWindow)
}
