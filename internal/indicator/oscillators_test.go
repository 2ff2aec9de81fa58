package indicator

import "testing"

func TestStochastic_ZeroRangeIsNeutral(t *testing.T) {
	s := flatSeries(t, 10, 100)
	res := Stochastic(s, 5, 3)

	if res.K[3].OK {
		t.Error("%K should be unavailable below the window")
	}
	for i := 4; i < 10; i++ {
		if !res.K[i].OK || res.K[i].V != 50 {
			t.Errorf("flat %%K[%d] = %+v, want neutral 50", i, res.K[i])
		}
	}
	for i := 6; i < 10; i++ {
		if !res.D[i].OK || res.D[i].V != 50 {
			t.Errorf("flat %%D[%d] = %+v, want 50", i, res.D[i])
		}
	}
}

func TestStochastic_CloseAtWindowHigh(t *testing.T) {
	s := risingSeries(t, 10, 100, 1)
	res := Stochastic(s, 5, 3)

	// Rising closes with high=close+1, low=close-1: the last close sits at
	// (close - lowestLow) / (highestHigh - lowestLow); for step 1 and
	// period 5 the window spans lows[i-4]=close[i]-5 to highs[i]=close[i]+1.
	for i := 4; i < 10; i++ {
		want := 5.0 / 6.0 * 100
		if !approxEqual(res.K[i].V, want, 1e-9) {
			t.Errorf("%%K[%d] = %v, want %v", i, res.K[i].V, want)
		}
	}
}

func TestWilliamsR_Range(t *testing.T) {
	s := risingSeries(t, 12, 100, 1)
	wr := WilliamsR(s, 5)

	if wr[3].OK {
		t.Error("Williams %R should be unavailable below the window")
	}
	for i := 4; i < 12; i++ {
		if !wr[i].OK || wr[i].V > 0 || wr[i].V < -100 {
			t.Errorf("wr[%d] = %+v, out of [-100, 0]", i, wr[i])
		}
	}
}

func TestWilliamsR_ZeroRangeIsNeutral(t *testing.T) {
	s := flatSeries(t, 8, 100)
	wr := WilliamsR(s, 4)
	for i := 3; i < 8; i++ {
		if !wr[i].OK || wr[i].V != -50 {
			t.Errorf("flat wr[%d] = %+v, want -50", i, wr[i])
		}
	}
}

func TestOBV_Accumulates(t *testing.T) {
	s := closeSeries(t, 100, 101, 100, 100, 102)
	obv := OBV(s)

	want := []float64{0, 1000, 0, 0, 1000}
	for i, w := range want {
		if !obv[i].OK || obv[i].V != w {
			t.Errorf("obv[%d] = %+v, want %v", i, obv[i], w)
		}
	}
}

func TestMFI_AllPositiveFlowIs100(t *testing.T) {
	s := risingSeries(t, 10, 100, 1)
	mfi := MFI(s, 4)

	if mfi[3].OK {
		t.Error("MFI should be unavailable below the window")
	}
	for i := 4; i < 10; i++ {
		if !mfi[i].OK || mfi[i].V != 100 {
			t.Errorf("mfi[%d] = %+v, want 100 with zero negative flow", i, mfi[i])
		}
	}
}

func TestVWAP_FlatSeriesEqualsPrice(t *testing.T) {
	s := flatSeries(t, 6, 100)
	vwap := VWAP(s)
	for i := 0; i < 6; i++ {
		if !vwap[i].OK || vwap[i].V != 100 {
			t.Errorf("vwap[%d] = %+v, want 100", i, vwap[i])
		}
	}
}

func TestVWAP_IsCumulativeFromStart(t *testing.T) {
	// Two bars, equal volume: VWAP at index 1 is the mean of both typical
	// prices, not just the last bar's.
	s := closeSeries(t, 100, 200)
	vwap := VWAP(s)
	if !approxEqual(vwap[1].V, 150, 1e-9) {
		t.Errorf("vwap[1] = %v, want cumulative mean 150", vwap[1].V)
	}
}

func TestCCI_FlatWindowSubstitutesZero(t *testing.T) {
	s := flatSeries(t, 8, 100)
	cci := CCI(s, 5)
	for i := 4; i < 8; i++ {
		if !cci[i].OK || cci[i].V != 0 {
			t.Errorf("flat cci[%d] = %+v, want 0", i, cci[i])
		}
	}
}

func TestCCI_DirectionalSign(t *testing.T) {
	s := closeSeries(t, 100, 100, 100, 100, 120)
	cci := CCI(s, 5)
	if cci[4].V <= 0 {
		t.Errorf("cci after an up spike = %v, want positive", cci[4].V)
	}
}
