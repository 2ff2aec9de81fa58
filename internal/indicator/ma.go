package indicator

// SMA computes the simple moving average with a sliding running sum.
// Available from index period-1. A non-positive period yields an
// all-unavailable result; strategies validate periods at construction.
func SMA(values []float64, period int) []Value {
	out := unavailable(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = ok(sum / float64(period))
		}
	}
	return out
}

// EMA computes the exponential moving average with smoothing factor
// k = 2/(period+1). The series seeds at the first SMA value (index
// period-1), then recurses ema[i] = (v[i]-ema[i-1])*k + ema[i-1].
func EMA(values []float64, period int) []Value {
	out := unavailable(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	seed /= float64(period)
	out[period-1] = ok(seed)

	k := 2.0 / float64(period+1)
	prev := seed
	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out[i] = ok(prev)
	}
	return out
}

// ROC computes the rate of change over period bars as a percentage.
// Available from index period. A zero reference price substitutes 0.
func ROC(values []float64, period int) []Value {
	out := unavailable(len(values))
	if period <= 0 || len(values) <= period {
		return out
	}

	for i := period; i < len(values); i++ {
		ref := values[i-period]
		if ref == 0 {
			out[i] = ok(0)
			continue
		}
		out[i] = ok((values[i] - ref) / ref * 100)
	}
	return out
}
