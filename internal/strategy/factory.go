package strategy

import (
	"fmt"

	"equity-options-lab/internal/pricing"
)

// Strategy type identifiers accepted by the factories.
const (
	TypeSMACross      = "SMA_CROSS"
	TypeRSIReversal   = "RSI_REVERSAL"
	TypeMACDCross     = "MACD_CROSS"
	TypeBollingerRSI  = "BOLLINGER_RSI"
	TypeBreakout      = "BREAKOUT"
	TypeMomentum      = "MOMENTUM"
	TypeConfluence    = "CONFLUENCE"
	TypeCoveredCall   = "COVERED_CALL"
	TypeProtectivePut = "PROTECTIVE_PUT"
	TypeIronCondor    = "IRON_CONDOR"
	TypeStraddle      = "STRADDLE"
)

// Default parameter values applied when a config omits a field.
const (
	DefaultShortPeriod    = 20
	DefaultLongPeriod     = 50
	DefaultRSIPeriod      = 14
	DefaultOversold       = 30.0
	DefaultOverbought     = 70.0
	DefaultMACDFast       = 12
	DefaultMACDSlow       = 26
	DefaultMACDSignal     = 9
	DefaultBollPeriod     = 20
	DefaultBollMult       = 2.0
	DefaultLookback       = 20
	DefaultROCPeriod      = 10
	DefaultROCThreshold   = 2.0
	DefaultScoreThreshold = 3
	DefaultOTMPercent     = 0.05
	DefaultCondorBodyPct  = 0.05
	DefaultCondorWingPct  = 0.10
	DefaultTargetDTE      = 30
)

// Config carries the parameters for any strategy type. Pointer fields
// distinguish "omitted, use the default" from an explicit zero.
type Config struct {
	Type string `yaml:"type"`

	ShortPeriod    *int     `yaml:"short_period,omitempty"`
	LongPeriod     *int     `yaml:"long_period,omitempty"`
	Period         *int     `yaml:"period,omitempty"`
	Oversold       *float64 `yaml:"oversold,omitempty"`
	Overbought     *float64 `yaml:"overbought,omitempty"`
	FastPeriod     *int     `yaml:"fast_period,omitempty"`
	SlowPeriod     *int     `yaml:"slow_period,omitempty"`
	SignalPeriod   *int     `yaml:"signal_period,omitempty"`
	BollPeriod     *int     `yaml:"boll_period,omitempty"`
	BollMult       *float64 `yaml:"boll_mult,omitempty"`
	Lookback       *int     `yaml:"lookback,omitempty"`
	ROCThreshold   *float64 `yaml:"roc_threshold,omitempty"`
	ScoreThreshold *int     `yaml:"score_threshold,omitempty"`
	OTMPercent     *float64 `yaml:"otm_percent,omitempty"`
	BodyPercent    *float64 `yaml:"body_percent,omitempty"`
	WingPercent    *float64 `yaml:"wing_percent,omitempty"`
	TargetDTE      *int     `yaml:"target_dte,omitempty"`
}

// EquityFromConfig creates an equity strategy from a config, applying
// defaults for omitted parameters.
func EquityFromConfig(cfg Config) (EquityStrategy, error) {
	switch cfg.Type {
	case TypeSMACross:
		return NewSMACross(
			intOr(cfg.ShortPeriod, DefaultShortPeriod),
			intOr(cfg.LongPeriod, DefaultLongPeriod),
		)
	case TypeRSIReversal:
		return NewRSIReversal(
			intOr(cfg.Period, DefaultRSIPeriod),
			floatOr(cfg.Oversold, DefaultOversold),
			floatOr(cfg.Overbought, DefaultOverbought),
		)
	case TypeMACDCross:
		return NewMACDCross(
			intOr(cfg.FastPeriod, DefaultMACDFast),
			intOr(cfg.SlowPeriod, DefaultMACDSlow),
			intOr(cfg.SignalPeriod, DefaultMACDSignal),
		)
	case TypeBollingerRSI:
		return NewBollingerRSI(
			intOr(cfg.BollPeriod, DefaultBollPeriod),
			floatOr(cfg.BollMult, DefaultBollMult),
			intOr(cfg.Period, DefaultRSIPeriod),
			floatOr(cfg.Oversold, DefaultOversold),
			floatOr(cfg.Overbought, DefaultOverbought),
		)
	case TypeBreakout:
		return NewBreakout(intOr(cfg.Lookback, DefaultLookback))
	case TypeMomentum:
		return NewMomentum(
			intOr(cfg.Period, DefaultROCPeriod),
			intOr(cfg.LongPeriod, DefaultShortPeriod),
			floatOr(cfg.ROCThreshold, DefaultROCThreshold),
		)
	case TypeConfluence:
		return NewConfluence(intOr(cfg.ScoreThreshold, DefaultScoreThreshold))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategyType, cfg.Type)
	}
}

// OptionsFromConfig creates an options strategy from a config. The model
// is shared with the engine so quotes and marks agree.
func OptionsFromConfig(cfg Config, model pricing.Model) (OptionsStrategy, error) {
	switch cfg.Type {
	case TypeCoveredCall:
		return NewCoveredCall(
			model,
			floatOr(cfg.OTMPercent, DefaultOTMPercent),
			intOr(cfg.TargetDTE, DefaultTargetDTE),
		)
	case TypeProtectivePut:
		return NewProtectivePut(
			model,
			floatOr(cfg.OTMPercent, DefaultOTMPercent),
			intOr(cfg.TargetDTE, DefaultTargetDTE),
		)
	case TypeIronCondor:
		return NewIronCondor(
			model,
			floatOr(cfg.BodyPercent, DefaultCondorBodyPct),
			floatOr(cfg.WingPercent, DefaultCondorWingPct),
			intOr(cfg.TargetDTE, DefaultTargetDTE),
		)
	case TypeStraddle:
		return NewStraddle(model, intOr(cfg.TargetDTE, DefaultTargetDTE))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategyType, cfg.Type)
	}
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func floatOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}
