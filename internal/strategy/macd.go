package strategy

import (
	"fmt"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
)

// MACDCross trades crossings of the MACD line against its signal line.
type MACDCross struct {
	fast   int
	slow   int
	signal int
}

var _ EquityStrategy = (*MACDCross)(nil)

func NewMACDCross(fast, slow, signal int) (*MACDCross, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, ErrNonPositivePeriod
	}
	if fast >= slow {
		return nil, ErrInvertedPeriods
	}
	return &MACDCross{fast: fast, slow: slow, signal: signal}, nil
}

func (m *MACDCross) Name() string {
	return fmt.Sprintf("MACD Cross (%d/%d/%d)", m.fast, m.slow, m.signal)
}

func (m *MACDCross) WarmupPeriod() int { return m.slow + m.signal - 1 }

func (m *MACDCross) Evaluate(series *domain.Series, i int) domain.Signal {
	if i < m.WarmupPeriod() || i >= series.Len() {
		return domain.SignalHold
	}
	res := indicator.MACD(series.Closes(), m.fast, m.slow, m.signal)

	prevLine, prevSig := res.Line[i-1], res.Signal[i-1]
	curLine, curSig := res.Line[i], res.Signal[i]
	if !prevLine.OK || !prevSig.OK || !curLine.OK || !curSig.OK {
		return domain.SignalHold
	}

	if prevLine.V <= prevSig.V && curLine.V > curSig.V {
		return domain.SignalBuy
	}
	if prevLine.V >= prevSig.V && curLine.V < curSig.V {
		return domain.SignalSell
	}
	return domain.SignalHold
}
