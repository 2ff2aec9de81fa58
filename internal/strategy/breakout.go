package strategy

import (
	"fmt"

	"equity-options-lab/internal/domain"
)

// Breakout buys when the close exceeds the highest high of the trailing
// lookback window and sells when it drops below the lowest low. The
// current bar is excluded from the window so a bar cannot break out
// against itself.
type Breakout struct {
	lookback int
}

var _ EquityStrategy = (*Breakout)(nil)

func NewBreakout(lookback int) (*Breakout, error) {
	if lookback <= 0 {
		return nil, ErrNonPositivePeriod
	}
	return &Breakout{lookback: lookback}, nil
}

func (b *Breakout) Name() string {
	return fmt.Sprintf("Breakout (%d)", b.lookback)
}

func (b *Breakout) WarmupPeriod() int { return b.lookback }

func (b *Breakout) Evaluate(series *domain.Series, i int) domain.Signal {
	if i < b.WarmupPeriod() || i >= series.Len() {
		return domain.SignalHold
	}
	highs := series.Highs()
	lows := series.Lows()

	highest := highs[i-b.lookback]
	lowest := lows[i-b.lookback]
	for j := i - b.lookback + 1; j < i; j++ {
		if highs[j] > highest {
			highest = highs[j]
		}
		if lows[j] < lowest {
			lowest = lows[j]
		}
	}

	close := series.Closes()[i]
	if close > highest {
		return domain.SignalBuy
	}
	if close < lowest {
		return domain.SignalSell
	}
	return domain.SignalHold
}
