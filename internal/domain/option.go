package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Option trade errors
var (
	ErrNonPositiveContracts = errors.New("option trade requires a positive contract count")
	ErrNonPositiveStrike    = errors.New("option trade requires a positive strike")
)

// ContractMultiplier is the number of underlying shares per option contract.
const ContractMultiplier = 100

// Premiums are quoted and settled to four decimal places.
const premiumScale = 4

// OptionType distinguishes calls from puts.
type OptionType int

// Option types.
const (
	Call OptionType = iota
	Put
)

// String returns "CALL" or "PUT".
func (t OptionType) String() string {
	if t == Put {
		return "PUT"
	}
	return "CALL"
}

// OptionDirection distinguishes bought from written legs.
type OptionDirection int

// Option directions. A long leg pays premium at entry; a short leg collects it.
const (
	Long OptionDirection = iota
	Short
)

// String returns "LONG" or "SHORT".
func (d OptionDirection) String() string {
	if d == Short {
		return "SHORT"
	}
	return "LONG"
}

// OptionLegSpec describes one leg an options strategy wants to open:
// everything the engine needs to price, size, and book the position.
// Strategies return an ordered list of these so the engine's open step
// is a uniform loop over 1, 2, or 4 legs.
type OptionLegSpec struct {
	Type      OptionType
	Direction OptionDirection
	Strike    decimal.Decimal
	TargetDTE int
	Premium   decimal.Decimal
	Contracts int64
}

// OptionPosition is an open option leg. Like Position, it has no exit
// fields; it is consumed exactly once by one of the settlement methods,
// each producing the immutable OptionTrade record.
type OptionPosition struct {
	Type      OptionType
	Direction OptionDirection
	Strike    decimal.Decimal
	TargetDTE int
	EntryDate time.Time
	// Entrypremium per share, positive for both directions; the direction
	// determines whether it was paid or collected.
	EntryPremium decimal.Decimal
	Contracts    int64
	// Expiration is the calendar expiry implied by EntryDate + TargetDTE.
	Expiration time.Time
}

// OpenOptionPosition validates and creates an open leg from a spec.
func OpenOptionPosition(spec OptionLegSpec, entryDate time.Time) (*OptionPosition, error) {
	if spec.Contracts <= 0 {
		return nil, ErrNonPositiveContracts
	}
	if !spec.Strike.IsPositive() {
		return nil, ErrNonPositiveStrike
	}
	return &OptionPosition{
		Type:         spec.Type,
		Direction:    spec.Direction,
		Strike:       spec.Strike,
		TargetDTE:    spec.TargetDTE,
		EntryDate:    entryDate,
		EntryPremium: spec.Premium.Round(premiumScale),
		Contracts:    spec.Contracts,
		Expiration:   entryDate.AddDate(0, 0, spec.TargetDTE),
	}, nil
}

// Notional returns premium * contracts * multiplier for the given
// per-share premium.
func (p *OptionPosition) Notional(premium decimal.Decimal) decimal.Decimal {
	return premium.Mul(decimal.NewFromInt(p.Contracts * ContractMultiplier))
}

// IntrinsicValue returns the leg's per-share intrinsic value at the given
// spot price: max(spot-strike, 0) for calls, max(strike-spot, 0) for puts.
func (p *OptionPosition) IntrinsicValue(spot decimal.Decimal) decimal.Decimal {
	var v decimal.Decimal
	if p.Type == Call {
		v = spot.Sub(p.Strike)
	} else {
		v = p.Strike.Sub(spot)
	}
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// CloseBySignal settles the leg at the given repriced premium, producing a
// closed-by-exit-signal trade.
func (p *OptionPosition) CloseBySignal(date time.Time, premium decimal.Decimal) OptionTrade {
	return p.settle(date, premium.Round(premiumScale), OptionClosedBySignal)
}

// SettleAtExpiry settles the leg at its intrinsic value. An intrinsic value
// above zero means the option finished in the money and is assigned;
// otherwise it expires worthless.
func (p *OptionPosition) SettleAtExpiry(date time.Time, spot decimal.Decimal) OptionTrade {
	intrinsic := p.IntrinsicValue(spot).Round(premiumScale)
	status := OptionExpiredWorthless
	if intrinsic.IsPositive() {
		status = OptionExpiredAssigned
	}
	return p.settle(date, intrinsic, status)
}

// settle computes the signed P/L once. A long leg paid the entry premium and
// receives the exit value; a short leg collected the entry premium and owes
// the exit value.
func (p *OptionPosition) settle(date time.Time, exitPremium decimal.Decimal, status OptionCloseStatus) OptionTrade {
	var perShare decimal.Decimal
	if p.Direction == Long {
		perShare = exitPremium.Sub(p.EntryPremium)
	} else {
		perShare = p.EntryPremium.Sub(exitPremium)
	}
	pnl := perShare.Mul(decimal.NewFromInt(p.Contracts * ContractMultiplier)).Round(moneyScale)

	return OptionTrade{
		Type:         p.Type,
		Direction:    p.Direction,
		Strike:       p.Strike,
		TargetDTE:    p.TargetDTE,
		Expiration:   p.Expiration,
		EntryDate:    p.EntryDate,
		EntryPremium: p.EntryPremium,
		ExitDate:     date,
		ExitPremium:  exitPremium,
		Contracts:    p.Contracts,
		Status:       status,
		ProfitLoss:   pnl,
	}
}

// OptionCloseStatus is the three-way terminal state of an option trade.
type OptionCloseStatus int

// Terminal states.
const (
	OptionClosedBySignal OptionCloseStatus = iota
	OptionExpiredWorthless
	OptionExpiredAssigned
)

// String returns the terminal state name.
func (s OptionCloseStatus) String() string {
	switch s {
	case OptionExpiredWorthless:
		return "EXPIRED_WORTHLESS"
	case OptionExpiredAssigned:
		return "EXPIRED_ASSIGNED"
	default:
		return "CLOSED_BY_SIGNAL"
	}
}

// OptionTrade is a settled option leg. All fields are computed at settlement
// and never mutated afterwards.
type OptionTrade struct {
	ID           string
	Type         OptionType
	Direction    OptionDirection
	Strike       decimal.Decimal
	TargetDTE    int
	Expiration   time.Time
	EntryDate    time.Time
	EntryPremium decimal.Decimal
	ExitDate     time.Time
	ExitPremium  decimal.Decimal
	Contracts    int64
	Status       OptionCloseStatus
	ProfitLoss   decimal.Decimal
}

// Winning reports whether the trade realized a positive P/L.
func (t OptionTrade) Winning() bool {
	return t.ProfitLoss.IsPositive()
}
