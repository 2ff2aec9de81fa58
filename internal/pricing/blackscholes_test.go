package pricing

import (
	"math"
	"testing"

	"equity-options-lab/internal/domain"
)

func TestPrice_AtExpiryIsIntrinsic(t *testing.T) {
	m := NewModel()

	cases := []struct {
		name   string
		spot   float64
		strike float64
		typ    domain.OptionType
		want   float64
	}{
		{"ITM call", 110, 100, domain.Call, 10},
		{"OTM call", 90, 100, domain.Call, 0},
		{"ATM call", 100, 100, domain.Call, 0},
		{"ITM put", 90, 100, domain.Put, 10},
		{"OTM put", 110, 100, domain.Put, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Price(tc.spot, tc.strike, 0, 0.2, tc.typ)
			if got != tc.want {
				t.Errorf("Price at expiry = %v, want exactly %v", got, tc.want)
			}
		})
	}
}

func TestPrice_DegenerateInputsAreIntrinsic(t *testing.T) {
	m := NewModel()
	if got := m.Price(110, 100, 0.5, 0, domain.Call); got != 10 {
		t.Errorf("zero volatility: got %v, want intrinsic 10", got)
	}
	if got := m.Price(0, 100, 0.5, 0.2, domain.Put); got != 100 {
		t.Errorf("zero spot put: got %v, want intrinsic 100", got)
	}
	if got := m.Price(100, 0, 0.5, 0.2, domain.Call); got != 100 {
		t.Errorf("zero strike call: got %v, want intrinsic 100", got)
	}
}

func TestPrice_KnownReferenceValue(t *testing.T) {
	// Standard textbook case: S=100, K=100, T=1y, r=5%, vol=20%.
	// Call ~ 10.4506, put ~ 5.5735.
	m := NewModel()
	call := m.Price(100, 100, 1, 0.2, domain.Call)
	put := m.Price(100, 100, 1, 0.2, domain.Put)

	if math.Abs(call-10.4506) > 1e-3 {
		t.Errorf("call = %v, want ~10.4506", call)
	}
	if math.Abs(put-5.5735) > 1e-3 {
		t.Errorf("put = %v, want ~5.5735", put)
	}
}

func TestPrice_PutCallParity(t *testing.T) {
	m := NewModel()
	spot, strike, tt, vol := 105.0, 95.0, 0.4, 0.35

	call := m.Price(spot, strike, tt, vol, domain.Call)
	put := m.Price(spot, strike, tt, vol, domain.Put)

	// C - P = S - K*exp(-rT)
	want := spot - strike*math.Exp(-m.RiskFreeRate*tt)
	if math.Abs((call-put)-want) > 1e-6 {
		t.Errorf("parity violated: C-P = %v, want %v", call-put, want)
	}
}

func TestDelta_BoundsAndDegenerates(t *testing.T) {
	m := NewModel()

	d := m.Delta(100, 100, 0.5, 0.2, domain.Call)
	if d <= 0 || d >= 1 {
		t.Errorf("call delta = %v, want in (0,1)", d)
	}
	d = m.Delta(100, 100, 0.5, 0.2, domain.Put)
	if d >= 0 || d <= -1 {
		t.Errorf("put delta = %v, want in (-1,0)", d)
	}

	if got := m.Delta(110, 100, 0, 0.2, domain.Call); got != 1 {
		t.Errorf("expired ITM call delta = %v, want 1", got)
	}
	if got := m.Delta(90, 100, 0, 0.2, domain.Put); got != -1 {
		t.Errorf("expired ITM put delta = %v, want -1", got)
	}
	if got := m.Delta(90, 100, 0, 0.2, domain.Call); got != 0 {
		t.Errorf("expired OTM call delta = %v, want 0", got)
	}
}

func TestTheta_DecayIsNegativeForCalls(t *testing.T) {
	m := NewModel()
	theta := m.Theta(100, 100, 0.5, 0.2, domain.Call)
	if theta >= 0 {
		t.Errorf("ATM call theta = %v, want negative", theta)
	}
	if got := m.Theta(100, 100, 0, 0.2, domain.Call); got != 0 {
		t.Errorf("expired theta = %v, want 0", got)
	}
}

func TestNormCDF_ErrorBound(t *testing.T) {
	// Reference values via the complementary error function in the stdlib;
	// the polynomial approximation must stay within its documented bound.
	const bound = 7.5e-8
	for x := -6.0; x <= 6.0; x += 0.01 {
		want := 0.5 * math.Erfc(-x/math.Sqrt2)
		got := normCDF(x)
		if math.Abs(got-want) > bound {
			t.Fatalf("normCDF(%v) = %v, reference %v, error %v exceeds %v",
				x, got, want, math.Abs(got-want), bound)
		}
	}
}

func TestNormCDF_Symmetry(t *testing.T) {
	for _, x := range []float64{0, 0.5, 1.23, 3.1} {
		if math.Abs(normCDF(x)+normCDF(-x)-1) > 1e-12 {
			t.Errorf("normCDF(%v) + normCDF(-%v) != 1", x, x)
		}
	}
}
