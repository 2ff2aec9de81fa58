package indicator

import "testing"

func TestSMA_FirstValueIsMeanOfWindow(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	sma := SMA(data, 3)

	for i := 0; i < 2; i++ {
		if sma[i].OK {
			t.Errorf("sma[%d] should be unavailable below the window", i)
		}
	}
	// Mean of the first 3 values at index period-1.
	if !sma[2].OK || sma[2].V != 2 {
		t.Errorf("sma[2] = %+v, want 2", sma[2])
	}
	if !sma[5].OK || sma[5].V != 5 {
		t.Errorf("sma[5] = %+v, want 5", sma[5])
	}
}

func TestSMA_InsufficientData(t *testing.T) {
	sma := SMA([]float64{1, 2}, 5)
	for i, v := range sma {
		if v.OK {
			t.Errorf("sma[%d] should be unavailable with 2 bars and period 5", i)
		}
	}
}

func TestSMA_NonPositivePeriod(t *testing.T) {
	sma := SMA([]float64{1, 2, 3}, 0)
	for i, v := range sma {
		if v.OK {
			t.Errorf("sma[%d] should be unavailable for period 0", i)
		}
	}
}

func TestEMA_SeedsAtFirstSMA(t *testing.T) {
	data := []float64{2, 4, 6, 8, 10}
	ema := EMA(data, 3)
	sma := SMA(data, 3)

	if !ema[2].OK || ema[2].V != sma[2].V {
		t.Errorf("ema[2] = %+v, want SMA seed %v", ema[2], sma[2].V)
	}

	// Hand-rolled recurrence: k = 2/(3+1) = 0.5.
	want := ema[2].V
	for i := 3; i < len(data); i++ {
		want = (data[i]-want)*0.5 + want
		if !ema[i].OK || !approxEqual(ema[i].V, want, 1e-12) {
			t.Errorf("ema[%d] = %+v, want %v", i, ema[i], want)
		}
	}
}

func TestEMA_Deterministic(t *testing.T) {
	data := []float64{5, 3, 8, 2, 9, 4, 7}
	a := EMA(data, 4)
	b := EMA(data, 4)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("EMA not deterministic at index %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestROC(t *testing.T) {
	data := []float64{100, 110, 121}
	roc := ROC(data, 1)
	if roc[0].OK {
		t.Error("roc[0] should be unavailable")
	}
	if !approxEqual(roc[1].V, 10, 1e-9) || !approxEqual(roc[2].V, 10, 1e-9) {
		t.Errorf("roc = %+v, want 10%% each step", roc[1:])
	}
}
