// Package indicator implements the technical indicator library. Every
// function is pure and deterministic: identical input always produces
// identical output, and nothing here holds state between calls.
//
// Results are index-aligned with the input series. An index whose lookback
// window is not yet satisfied is unavailable (OK=false), never a numeric
// placeholder; callers must distinguish unavailable from zero. Degenerate
// denominators (flat windows, zero volume, zero average loss) each have one
// documented substitute value instead of an error.
package indicator

// Value is one indicator output. OK is false while the indicator's lookback
// window is unsatisfied.
type Value struct {
	V  float64
	OK bool
}

// ok wraps a float in an available Value.
func ok(v float64) Value {
	return Value{V: v, OK: true}
}

// unavailable returns an all-unavailable result of length n.
func unavailable(n int) []Value {
	return make([]Value, n)
}

// windowHigh returns the maximum of values[from..to] inclusive.
func windowHigh(values []float64, from, to int) float64 {
	h := values[from]
	for i := from + 1; i <= to; i++ {
		if values[i] > h {
			h = values[i]
		}
	}
	return h
}

// windowLow returns the minimum of values[from..to] inclusive.
func windowLow(values []float64, from, to int) float64 {
	l := values[from]
	for i := from + 1; i <= to; i++ {
		if values[i] < l {
			l = values[i]
		}
	}
	return l
}
