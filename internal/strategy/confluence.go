package strategy

import (
	"fmt"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
)

// Confluence polls a fixed panel of trend, momentum and volume indicators
// and counts bullish versus bearish votes. A trade fires only when the
// winning side reaches the score threshold and strictly outvotes the
// opposing side; ties hold. Indicators whose lookback is unsatisfied at
// the index abstain rather than voting zero.
type Confluence struct {
	threshold int
}

var _ EquityStrategy = (*Confluence)(nil)

func NewConfluence(threshold int) (*Confluence, error) {
	if threshold <= 0 {
		return nil, ErrNonPositiveScore
	}
	return &Confluence{threshold: threshold}, nil
}

func (c *Confluence) Name() string {
	return fmt.Sprintf("Confluence (score %d)", c.threshold)
}

// WarmupPeriod covers the slowest panel member, the long moving average.
func (c *Confluence) WarmupPeriod() int { return indicator.SnapshotSMALong }

func (c *Confluence) Evaluate(series *domain.Series, i int) domain.Signal {
	if i < c.WarmupPeriod() || i >= series.Len() {
		return domain.SignalHold
	}
	snap := indicator.Snapshots(series)[i]
	close := series.Closes()[i]

	var bull, bear int
	vote := func(v indicator.Value, isBull, isBear bool) {
		if !v.OK {
			return
		}
		if isBull {
			bull++
		} else if isBear {
			bear++
		}
	}

	vote(snap.SMALong, close > snap.SMALong.V, close < snap.SMALong.V)
	vote(snap.EMA, close > snap.EMA.V, close < snap.EMA.V)
	vote(snap.MACDHist, snap.MACDHist.V > 0, snap.MACDHist.V < 0)
	vote(snap.SAR, close > snap.SAR.V, close < snap.SAR.V)
	vote(snap.RSI, snap.RSI.V > 55, snap.RSI.V < 45)
	vote(snap.StochK, snap.StochK.V > 60, snap.StochK.V < 40)
	vote(snap.CCI, snap.CCI.V > 100, snap.CCI.V < -100)
	vote(snap.MFI, snap.MFI.V > 60, snap.MFI.V < 40)

	switch {
	case bull >= c.threshold && bull > bear:
		return domain.SignalBuy
	case bear >= c.threshold && bear > bull:
		return domain.SignalSell
	default:
		return domain.SignalHold
	}
}
