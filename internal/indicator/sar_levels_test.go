package indicator

import "testing"

func TestParabolicSAR_Availability(t *testing.T) {
	s := risingSeries(t, 10, 100, 1)
	sar := ParabolicSAR(s, DefaultSARStep, DefaultSARMax)

	if sar[0].OK {
		t.Error("SAR should be unavailable at index 0")
	}
	if !sar[1].OK {
		t.Error("SAR should be available from index 1")
	}
}

func TestParabolicSAR_TrailsBelowUptrend(t *testing.T) {
	s := risingSeries(t, 20, 100, 2)
	sar := ParabolicSAR(s, DefaultSARStep, DefaultSARMax)
	lows := s.Lows()

	for i := 2; i < 20; i++ {
		if sar[i].V > lows[i] {
			t.Errorf("sar[%d] = %v above the low %v in a pure uptrend", i, sar[i].V, lows[i])
		}
	}
	// The stop accelerates toward price as the trend extends.
	if sar[19].V <= sar[5].V {
		t.Errorf("sar should rise with the trend: sar[5]=%v sar[19]=%v", sar[5].V, sar[19].V)
	}
}

func TestParabolicSAR_Deterministic(t *testing.T) {
	s := closeSeries(t, 100, 102, 101, 105, 103, 99, 98, 104, 107, 102)
	a := ParabolicSAR(s, DefaultSARStep, DefaultSARMax)
	b := ParabolicSAR(s, DefaultSARStep, DefaultSARMax)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("SAR fold not referentially transparent at index %d", i)
		}
	}
}

func TestParabolicSAR_FlipsOnReversal(t *testing.T) {
	// Strong rise then a hard break below the trailing stop.
	s := closeSeries(t, 100, 105, 110, 115, 120, 90, 85, 80)
	sar := ParabolicSAR(s, DefaultSARStep, DefaultSARMax)
	highs := s.Highs()

	// After the reversal the SAR must sit above price (downtrend side).
	if sar[6].V < highs[6] {
		t.Errorf("sar[6] = %v should be above price after the flip", sar[6].V)
	}
}

func TestIchimoku_Availability(t *testing.T) {
	s := risingSeries(t, 80, 100, 1)
	res := Ichimoku(s, DefaultTenkanPeriod, DefaultKijunPeriod, DefaultSenkouBPeriod)

	if res.Tenkan[7].OK || !res.Tenkan[8].OK {
		t.Error("tenkan should become available at index 8")
	}
	if res.Kijun[24].OK || !res.Kijun[25].OK {
		t.Error("kijun should become available at index 25")
	}
	// SenkouA needs kijun at i-26, so index 25+26 = 51.
	if res.SenkouA[50].OK || !res.SenkouA[51].OK {
		t.Error("senkouA should become available at index 51")
	}
	// SenkouB needs a full 52-bar window at i-26: index 51+26 = 77.
	if res.SenkouB[76].OK || !res.SenkouB[77].OK {
		t.Error("senkouB should become available at index 77")
	}
}

func TestIchimoku_MidpointsOnRisingSeries(t *testing.T) {
	s := risingSeries(t, 40, 100, 1)
	res := Ichimoku(s, 9, 26, 52)

	// Tenkan at i: (high[i] + low[i-8]) / 2 = (close[i]+1 + close[i-8]-1)/2.
	closes := s.Closes()
	for i := 8; i < 40; i++ {
		want := (closes[i] + closes[i-8]) / 2
		if !approxEqual(res.Tenkan[i].V, want, 1e-9) {
			t.Fatalf("tenkan[%d] = %v, want %v", i, res.Tenkan[i].V, want)
		}
	}
}

func TestFibonacci_Levels(t *testing.T) {
	s := closeSeries(t, 100, 150, 120, 110, 130)

	if _, ok := Fibonacci(s, 2, 5); ok {
		t.Error("Fibonacci should be unavailable before lookback bars exist")
	}

	levels, okF := Fibonacci(s, 4, 5)
	if !okF {
		t.Fatal("Fibonacci should be available at index lookback-1")
	}
	// Swing high 151 (150+1), swing low 99 (100-1), span 52.
	if levels.SwingHigh != 151 || levels.SwingLow != 99 {
		t.Fatalf("swing = %v/%v, want 151/99", levels.SwingHigh, levels.SwingLow)
	}
	if !approxEqual(levels.Level500, 125, 1e-9) {
		t.Errorf("50%% level = %v, want 125", levels.Level500)
	}
	if !approxEqual(levels.Level382, 151-52*0.382, 1e-9) {
		t.Errorf("38.2%% level = %v", levels.Level382)
	}
}

func TestSupportResistance_ConfirmedExtrema(t *testing.T) {
	s := closeSeries(t, 100, 102, 105, 110, 104, 98, 95, 99, 101, 103, 102, 100)

	// Most recent confirmed extrema at i=11 with a 2-bar symmetric window:
	// the local high centered at index 9 (high 104) and the local low
	// centered at index 6 (low 94).
	support, resistance := SupportResistance(s, 11, 2)
	if !resistance.OK || resistance.V != 104 {
		t.Errorf("resistance = %+v, want confirmed local high 104", resistance)
	}
	if !support.OK || support.V != 94 {
		t.Errorf("support = %+v, want confirmed local low 94", support)
	}
}

func TestSupportResistance_NothingConfirmedEarly(t *testing.T) {
	s := risingSeries(t, 6, 100, 1)
	support, resistance := SupportResistance(s, 2, 2)
	if support.OK || resistance.OK {
		t.Error("no extremum can be confirmed in the first few bars")
	}
}
