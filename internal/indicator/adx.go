package indicator

import "equity-options-lab/internal/domain"

// ADXResult bundles the directional movement outputs. PlusDI and MinusDI
// are available from index period; ADX, which smooths the directional index
// a second time, only once 2*period-1 bars exist.
type ADXResult struct {
	PlusDI  []Value
	MinusDI []Value
	ADX     []Value
}

// ADX computes Wilder's directional movement system. Directional movement
// and true range are Wilder-smoothed over period bars to form +DI/-DI; the
// resulting directional index DX is Wilder-smoothed again to form ADX,
// seeded from the simple mean of the first period DX values. A zero DI sum
// substitutes DX = 0.
func ADX(s *domain.Series, period int) ADXResult {
	n := s.Len()
	res := ADXResult{
		PlusDI:  unavailable(n),
		MinusDI: unavailable(n),
		ADX:     unavailable(n),
	}
	if period <= 0 || n < 2*period {
		return res
	}

	highs, lows := s.Highs(), s.Lows()
	tr := TrueRange(s)

	// Wilder running sums seeded over the first period movements (indices
	// 1..period), then smoothed as sum = sum - sum/period + current.
	var trSum, plusSum, minusSum float64
	for i := 1; i <= period; i++ {
		plusDM, minusDM := directionalMovement(highs, lows, i)
		plusSum += plusDM
		minusSum += minusDM
		trSum += tr[i].V
	}

	dx := make([]float64, 0, n-period)
	record := func(i int) {
		plusDI, minusDI := 0.0, 0.0
		if trSum != 0 {
			plusDI = plusSum / trSum * 100
			minusDI = minusSum / trSum * 100
		}
		res.PlusDI[i] = ok(plusDI)
		res.MinusDI[i] = ok(minusDI)

		sum := plusDI + minusDI
		if sum == 0 {
			dx = append(dx, 0)
		} else {
			dx = append(dx, abs(plusDI-minusDI)/sum*100)
		}
	}
	record(period)

	for i := period + 1; i < n; i++ {
		plusDM, minusDM := directionalMovement(highs, lows, i)
		trSum = trSum - trSum/float64(period) + tr[i].V
		plusSum = plusSum - plusSum/float64(period) + plusDM
		minusSum = minusSum - minusSum/float64(period) + minusDM
		record(i)
	}

	// ADX seeds at the mean of the first period DX values, which lands at
	// index 2*period-1, then Wilder-smooths.
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += dx[i]
	}
	seed /= float64(period)
	res.ADX[2*period-1] = ok(seed)

	prev := seed
	for j := period; j < len(dx); j++ {
		prev = (prev*float64(period-1) + dx[j]) / float64(period)
		res.ADX[j+period] = ok(prev)
	}
	return res
}

// directionalMovement returns (+DM, -DM) for bar i versus bar i-1. Only the
// larger of the up/down moves counts, and only when positive.
func directionalMovement(highs, lows []float64, i int) (float64, float64) {
	up := highs[i] - highs[i-1]
	down := lows[i-1] - lows[i]
	switch {
	case up > down && up > 0:
		return up, 0
	case down > up && down > 0:
		return 0, down
	default:
		return 0, 0
	}
}
