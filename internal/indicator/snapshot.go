package indicator

import "equity-options-lab/internal/domain"

// Default periods used by the Snapshot bundle. Strategies that need other
// parameterizations call the individual indicator functions directly.
const (
	SnapshotSMAShort   = 20
	SnapshotSMALong    = 50
	SnapshotEMAPeriod  = 20
	SnapshotRSIPeriod  = 14
	SnapshotMACDFast   = 12
	SnapshotMACDSlow   = 26
	SnapshotMACDSignal = 9
	SnapshotBollPeriod = 20
	SnapshotBollMult   = 2.0
	SnapshotATRPeriod  = 14
	SnapshotADXPeriod  = 14
	SnapshotStochK     = 14
	SnapshotStochD     = 3
	SnapshotMFIPeriod  = 14
	SnapshotCCIPeriod  = 20
)

// Snapshot is the fixed bundle of indicator values for one bar index. Each
// field carries its own availability flag; a field whose lookback is
// unsatisfied at that index is unavailable, never zero.
type Snapshot struct {
	SMAShort   Value
	SMALong    Value
	EMA        Value
	RSI        Value
	MACD       Value
	MACDSignal Value
	MACDHist   Value
	BollUpper  Value
	BollMiddle Value
	BollLower  Value
	ATR        Value
	ADX        Value
	StochK     Value
	StochD     Value
	WilliamsR  Value
	OBV        Value
	MFI        Value
	VWAP       Value
	CCI        Value
	SAR        Value
}

// Snapshots computes the full bundle for every bar of the series in one
// pass per indicator. The result is index-aligned with the series and safe
// to share across runs.
func Snapshots(s *domain.Series) []Snapshot {
	closes := s.Closes()

	smaShort := SMA(closes, SnapshotSMAShort)
	smaLong := SMA(closes, SnapshotSMALong)
	ema := EMA(closes, SnapshotEMAPeriod)
	rsi := RSI(closes, SnapshotRSIPeriod)
	macd := MACD(closes, SnapshotMACDFast, SnapshotMACDSlow, SnapshotMACDSignal)
	boll := Bollinger(closes, SnapshotBollPeriod, SnapshotBollMult)
	atr := ATR(s, SnapshotATRPeriod)
	adx := ADX(s, SnapshotADXPeriod)
	stoch := Stochastic(s, SnapshotStochK, SnapshotStochD)
	willr := WilliamsR(s, SnapshotStochK)
	obv := OBV(s)
	mfi := MFI(s, SnapshotMFIPeriod)
	vwap := VWAP(s)
	cci := CCI(s, SnapshotCCIPeriod)
	sar := ParabolicSAR(s, DefaultSARStep, DefaultSARMax)

	out := make([]Snapshot, s.Len())
	for i := range out {
		out[i] = Snapshot{
			SMAShort:   smaShort[i],
			SMALong:    smaLong[i],
			EMA:        ema[i],
			RSI:        rsi[i],
			MACD:       macd.Line[i],
			MACDSignal: macd.Signal[i],
			MACDHist:   macd.Histogram[i],
			BollUpper:  boll.Upper[i],
			BollMiddle: boll.Middle[i],
			BollLower:  boll.Lower[i],
			ATR:        atr[i],
			ADX:        adx.ADX[i],
			StochK:     stoch.K[i],
			StochD:     stoch.D[i],
			WilliamsR:  willr[i],
			OBV:        obv[i],
			MFI:        mfi[i],
			VWAP:       vwap[i],
			CCI:        cci[i],
			SAR:        sar[i],
		}
	}
	return out
}
