package strategy

import (
	"fmt"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/indicator"
)

// SMACross trades golden/death crosses of two simple moving averages:
// buy when the short average crosses above the long one, sell on the
// opposite cross.
type SMACross struct {
	short int
	long  int
}

var _ EquityStrategy = (*SMACross)(nil)

func NewSMACross(short, long int) (*SMACross, error) {
	if short <= 0 || long <= 0 {
		return nil, ErrNonPositivePeriod
	}
	if short >= long {
		return nil, ErrInvertedPeriods
	}
	return &SMACross{short: short, long: long}, nil
}

func (s *SMACross) Name() string {
	return fmt.Sprintf("SMA Cross (%d/%d)", s.short, s.long)
}

// WarmupPeriod needs one extra bar beyond the long average so the
// previous bar's averages exist for cross detection.
func (s *SMACross) WarmupPeriod() int { return s.long }

func (s *SMACross) Evaluate(series *domain.Series, i int) domain.Signal {
	if i < s.WarmupPeriod() || i >= series.Len() {
		return domain.SignalHold
	}
	closes := series.Closes()
	shortMA := indicator.SMA(closes, s.short)
	longMA := indicator.SMA(closes, s.long)

	prevShort, prevLong := shortMA[i-1], longMA[i-1]
	curShort, curLong := shortMA[i], longMA[i]
	if !prevShort.OK || !prevLong.OK || !curShort.OK || !curLong.OK {
		return domain.SignalHold
	}

	if prevShort.V <= prevLong.V && curShort.V > curLong.V {
		return domain.SignalBuy
	}
	if prevShort.V >= prevLong.V && curShort.V < curLong.V {
		return domain.SignalSell
	}
	return domain.SignalHold
}
