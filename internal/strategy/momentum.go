package strategy

import (
	"fmt"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
)

// Momentum buys when the rate of change exceeds a positive threshold
// with the close above its moving average, and sells when momentum
// turns negative past the threshold with the close below the average.
type Momentum struct {
	rocPeriod int
	smaPeriod int
	threshold float64
}

var _ EquityStrategy = (*Momentum)(nil)

func NewMomentum(rocPeriod, smaPeriod int, threshold float64) (*Momentum, error) {
	if rocPeriod <= 0 || smaPeriod <= 0 {
		return nil, ErrNonPositivePeriod
	}
	if threshold <= 0 {
		return nil, ErrNonPositivePercent
	}
	return &Momentum{rocPeriod: rocPeriod, smaPeriod: smaPeriod, threshold: threshold}, nil
}

func (m *Momentum) Name() string {
	return fmt.Sprintf("Momentum (ROC %d, SMA %d)", m.rocPeriod, m.smaPeriod)
}

func (m *Momentum) WarmupPeriod() int {
	if m.rocPeriod+1 > m.smaPeriod {
		return m.rocPeriod + 1
	}
	return m.smaPeriod
}

func (m *Momentum) Evaluate(series *domain.Series, i int) domain.Signal {
	if i < m.WarmupPeriod() || i >= series.Len() {
		return domain.SignalHold
	}
	closes := series.Closes()
	roc := indicator.ROC(closes, m.rocPeriod)
	sma := indicator.SMA(closes, m.smaPeriod)

	rv, sv := roc[i], sma[i]
	if !rv.OK || !sv.OK {
		return domain.SignalHold
	}

	close := closes[i]
	if rv.V > m.threshold && close > sv.V {
		return domain.SignalBuy
	}
	if rv.V < -m.threshold && close < sv.V {
		return domain.SignalSell
	}
	return domain.SignalHold
}
