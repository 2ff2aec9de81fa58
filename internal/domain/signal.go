// Package domain holds the core data model shared by indicators, strategies,
// the backtest engines, and the reporting layer: price bars, trade signals,
// equity and option trades, and backtest results.
package domain

// Signal is the decision an equity strategy emits for one bar.
type Signal int

// Equity strategy signals.
const (
	SignalHold Signal = iota
	SignalBuy
	SignalSell
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "BUY"
	case SignalSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// OptionSignal is the decision an options strategy emits for one bar.
// Direction and option type are determined by the strategy itself, not
// encoded in the signal.
type OptionSignal int

// Options strategy signals.
const (
	OptionSignalHold OptionSignal = iota
	OptionSignalOpen
	OptionSignalClose
)

// String returns the signal name.
func (s OptionSignal) String() string {
	switch s {
	case OptionSignalOpen:
		return "OPEN"
	case OptionSignalClose:
		return "CLOSE"
	default:
		return "HOLD"
	}
}
