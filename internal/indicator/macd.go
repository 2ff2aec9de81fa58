package indicator

// MACDResult bundles the three index-aligned MACD outputs.
type MACDResult struct {
	Line      []Value
	Signal    []Value
	Histogram []Value
}

// MACD computes fast EMA - slow EMA, a signal line that is the EMA of the
// MACD line, and the histogram (line - signal). The line is available from
// index slow-1; the signal and histogram from index slow+signalPeriod-2.
func MACD(closes []float64, fast, slow, signalPeriod int) MACDResult {
	n := len(closes)
	res := MACDResult{
		Line:      unavailable(n),
		Signal:    unavailable(n),
		Histogram: unavailable(n),
	}
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 || fast >= slow || n < slow {
		return res
	}

	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)

	// Compact MACD line values from slow-1 onward, for signal-line EMA.
	line := make([]float64, 0, n-slow+1)
	for i := slow - 1; i < n; i++ {
		v := fastEMA[i].V - slowEMA[i].V
		res.Line[i] = ok(v)
		line = append(line, v)
	}

	signal := EMA(line, signalPeriod)
	for j, sv := range signal {
		if !sv.OK {
			continue
		}
		i := j + slow - 1
		res.Signal[i] = sv
		res.Histogram[i] = ok(res.Line[i].V - sv.V)
	}
	return res
}
