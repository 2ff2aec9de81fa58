package indicator

import "math"

// BollingerResult bundles the index-aligned Bollinger Band outputs.
// Bandwidth is (upper-lower)/middle*100; a zero middle band substitutes 0.
type BollingerResult struct {
	Middle    []Value
	Upper     []Value
	Lower     []Value
	Bandwidth []Value
}

// Bollinger computes middle = SMA(period) and bands at middle ± mult
// population standard deviations of the window. Available from index
// period-1.
func Bollinger(closes []float64, period int, mult float64) BollingerResult {
	n := len(closes)
	res := BollingerResult{
		Middle:    unavailable(n),
		Upper:     unavailable(n),
		Lower:     unavailable(n),
		Bandwidth: unavailable(n),
	}
	if period <= 0 || mult <= 0 || n < period {
		return res
	}

	middle := SMA(closes, period)
	for i := period - 1; i < n; i++ {
		mean := middle[i].V
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))

		upper := mean + mult*sd
		lower := mean - mult*sd
		res.Middle[i] = ok(mean)
		res.Upper[i] = ok(upper)
		res.Lower[i] = ok(lower)

		if mean == 0 {
			res.Bandwidth[i] = ok(0)
		} else {
			res.Bandwidth[i] = ok((upper - lower) / mean * 100)
		}
	}
	return res
}
