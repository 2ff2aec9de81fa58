package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Series errors
var (
	ErrEmptySeries     = errors.New("price series is empty")
	ErrUnorderedSeries = errors.New("price series dates are not strictly increasing")
	ErrNegativeVolume  = errors.New("price bar has negative volume")
)

// PriceBar is one day's OHLCV record. Bars are created once by an upstream
// loader and never mutated afterwards.
type PriceBar struct {
	Date     time.Time
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	AdjClose decimal.Decimal
	Volume   int64
}

// Series is a validated, strictly date-increasing sequence of price bars.
// All downstream computation addresses bars by integer index 0..Len()-1.
//
// The float64 views (Closes, Highs, ...) are materialized once at
// construction so indicator code can share them without copying or
// synchronization. Accounting code should use the decimal accessors.
type Series struct {
	bars    []PriceBar
	opens   []float64
	highs   []float64
	lows    []float64
	closes  []float64
	volumes []float64
}

// NewSeries validates bars and builds a Series. It fails fast on an empty
// sequence, out-of-order dates, or negative volume: these indicate a broken
// upstream loader, not a condition the engine can work around.
func NewSeries(bars []PriceBar) (*Series, error) {
	if len(bars) == 0 {
		return nil, ErrEmptySeries
	}

	s := &Series{
		bars:    make([]PriceBar, len(bars)),
		opens:   make([]float64, len(bars)),
		highs:   make([]float64, len(bars)),
		lows:    make([]float64, len(bars)),
		closes:  make([]float64, len(bars)),
		volumes: make([]float64, len(bars)),
	}
	copy(s.bars, bars)

	for i, b := range s.bars {
		if b.Volume < 0 {
			return nil, ErrNegativeVolume
		}
		if i > 0 && !b.Date.After(s.bars[i-1].Date) {
			return nil, ErrUnorderedSeries
		}
		s.opens[i], _ = b.Open.Float64()
		s.highs[i], _ = b.High.Float64()
		s.lows[i], _ = b.Low.Float64()
		s.closes[i], _ = b.Close.Float64()
		s.volumes[i] = float64(b.Volume)
	}

	return s, nil
}

// Len returns the number of bars.
func (s *Series) Len() int {
	return len(s.bars)
}

// Bar returns the bar at index i.
func (s *Series) Bar(i int) PriceBar {
	return s.bars[i]
}

// Date returns the date of the bar at index i.
func (s *Series) Date(i int) time.Time {
	return s.bars[i].Date
}

// CloseAt returns the exact close price at index i for accounting.
func (s *Series) CloseAt(i int) decimal.Decimal {
	return s.bars[i].Close
}

// Opens returns the float64 view of open prices. Callers must not mutate it.
func (s *Series) Opens() []float64 { return s.opens }

// Highs returns the float64 view of high prices. Callers must not mutate it.
func (s *Series) Highs() []float64 { return s.highs }

// Lows returns the float64 view of low prices. Callers must not mutate it.
func (s *Series) Lows() []float64 { return s.lows }

// Closes returns the float64 view of close prices. Callers must not mutate it.
func (s *Series) Closes() []float64 { return s.closes }

// Volumes returns the float64 view of volumes. Callers must not mutate it.
func (s *Series) Volumes() []float64 { return s.volumes }
