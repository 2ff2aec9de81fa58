package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Trade errors
var (
	ErrNonPositiveShares = errors.New("trade requires a positive share count")
	ErrNonPositivePrice  = errors.New("trade requires a positive price")
)

// Money rounding: option P/L rounds to cents, percentage returns to four
// decimal places. Equity P/L is never rounded; it is built from products
// and differences only, so it stays exactly equal to the account cash
// flows at any price scale.
const (
	moneyScale  = 2
	returnScale = 4
)

// Position is an open long equity position. It carries no exit fields: a
// position either stays open or is consumed exactly once by Close, which
// produces the immutable Trade record. Encoding open and closed as separate
// types makes "closed exactly once" a property of the type system rather
// than a runtime check.
type Position struct {
	EntryDate  time.Time
	EntryPrice decimal.Decimal
	Shares     int64
}

// OpenPosition creates a position. Entry price and share count must be
// positive; anything else is a programmer error in the engine's sizing.
func OpenPosition(date time.Time, price decimal.Decimal, shares int64) (*Position, error) {
	if shares <= 0 {
		return nil, ErrNonPositiveShares
	}
	if !price.IsPositive() {
		return nil, ErrNonPositivePrice
	}
	return &Position{EntryDate: date, EntryPrice: price, Shares: shares}, nil
}

// MarketValue returns the position's value at the given price.
func (p *Position) MarketValue(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(p.Shares))
}

// Close consumes the position and produces the closed trade record with
// realized P/L and percentage return computed once. The commission passed
// here is the total commission attributed to the round trip, so the sum of
// trade P/L stays equal to the change in account capital.
func (p *Position) Close(date time.Time, price decimal.Decimal, commission decimal.Decimal) (Trade, error) {
	if !price.IsPositive() {
		return Trade{}, ErrNonPositivePrice
	}

	shares := decimal.NewFromInt(p.Shares)
	entryValue := p.EntryPrice.Mul(shares)
	exitValue := price.Mul(shares)
	// Products and differences only, so the P/L is exact at whatever scale
	// the prices carry and always matches the engine's cash flows.
	pnl := exitValue.Sub(entryValue).Sub(commission)

	returnPct := decimal.Zero
	if entryValue.IsPositive() {
		returnPct = pnl.Mul(decimal.NewFromInt(100)).DivRound(entryValue, returnScale)
	}

	return Trade{
		EntryDate:  p.EntryDate,
		EntryPrice: p.EntryPrice,
		ExitDate:   date,
		ExitPrice:  price,
		Shares:     p.Shares,
		ProfitLoss: pnl,
		ReturnPct:  returnPct,
	}, nil
}

// Trade is a closed long equity trade. All fields are computed at close time
// and never mutated afterwards.
type Trade struct {
	ID         string
	EntryDate  time.Time
	EntryPrice decimal.Decimal
	ExitDate   time.Time
	ExitPrice  decimal.Decimal
	Shares     int64
	ProfitLoss decimal.Decimal
	ReturnPct  decimal.Decimal
}

// Winning reports whether the trade realized a positive P/L.
func (t Trade) Winning() bool {
	return t.ProfitLoss.IsPositive()
}
